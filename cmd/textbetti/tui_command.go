package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"textbetti/internal/domain"
	"textbetti/internal/service"
	"textbetti/internal/topology"
	"textbetti/internal/tui"
)

func newTUICommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tui [file...]",
		Short: "Interactive analysis: enter text, pick split mode and delta, view the curves",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			// zap output would corrupt the alternate screen
			svc, err := buildService(cfg, zap.NewNop())
			if err != nil {
				return err
			}
			var text string
			if len(args) > 0 {
				if text, err = service.LoadText(args); err != nil {
					return err
				}
			}
			m := tui.New(svc, tui.Settings{
				Context: cmd.Context(),
				Text:    text,
				Mode:    domain.SplitMode(cfg.Analysis.SplitMode),
				Delta:   cfg.Analysis.Delta,
				Steps:   cfg.Analysis.Steps,
				Formula: topology.Formula(cfg.Analysis.B1Formula),
			})
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"textbetti/internal/config"
	"textbetti/internal/domain"
	"textbetti/internal/report"
	"textbetti/internal/service"
	"textbetti/internal/topology"
)

type analyzeFlags struct {
	mode       string
	delta      float64
	steps      int
	formula    string
	workers    int
	format     string
	plot       bool
	normalizer string
	language   string
	embedder   string
}

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var f analyzeFlags
	cmd := &cobra.Command{
		Use:   "analyze [file...]",
		Short: "Compute b0 and b1 over a sweep of diameters",
		Long: "Split the text into sentences or paragraphs, connect units whose angular distance\n" +
			"is within each diameter delta, 2·delta, …, steps·delta and print the Betti numbers.\n" +
			"Reads standard input when no file is given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			applyAnalyzeFlags(cmd, cfg, f)
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger := ctx.logger(cfg)
			defer func() { _ = logger.Sync() }()

			text, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			svc, err := buildService(cfg, logger)
			if err != nil {
				return err
			}
			res, err := svc.Analyze(cmd.Context(), service.Request{
				Text:    text,
				Mode:    domain.SplitMode(cfg.Analysis.SplitMode),
				Delta:   cfg.Analysis.Delta,
				Steps:   cfg.Analysis.Steps,
				Formula: topology.Formula(cfg.Analysis.B1Formula),
			})
			if err != nil {
				return err
			}
			logger.Info("analysis complete",
				zap.String("analysis_id", res.ID),
				zap.Int("tokens", res.Tokens),
				zap.Int("points", len(res.Points)))

			out := cmd.OutOrStdout()
			if err := report.Write(out, res, cfg.Output.Format); err != nil {
				return err
			}
			if cfg.Output.Plot && cfg.Output.Format == "table" {
				fmt.Fprintln(out)
				fmt.Fprintln(out, report.Plot("b0 vs diameter", res.Points, report.B0, 8))
				fmt.Fprint(out, report.Plot("b1 vs diameter", res.Points, report.B1, 8))
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&f.mode, "mode", "m", "", "Split mode: sentence or paragraph")
	flags.Float64VarP(&f.delta, "delta", "d", 0, "Diameter step (positive)")
	flags.IntVarP(&f.steps, "steps", "k", 0, "Number of diameters")
	flags.StringVar(&f.formula, "formula", "", "b1 formula: source or standard")
	flags.IntVar(&f.workers, "workers", 0, "Diameters computed concurrently")
	flags.StringVarP(&f.format, "output", "o", "", "Output format: table, json or csv")
	flags.BoolVar(&f.plot, "plot", false, "Draw ASCII curves after the table")
	flags.StringVar(&f.normalizer, "normalizer", "", "Word normalizer: identity, fold or snowball")
	flags.StringVar(&f.language, "language", "", "Snowball stemmer language")
	flags.StringVar(&f.embedder, "embedder", "", "Vectorizer: count or tfidf")
	return cmd
}

// applyAnalyzeFlags overrides cfg with every flag the user set explicitly.
func applyAnalyzeFlags(cmd *cobra.Command, cfg *config.AppConfig, f analyzeFlags) {
	changed := cmd.Flags().Changed
	if changed("mode") {
		cfg.Analysis.SplitMode = f.mode
	}
	if changed("delta") {
		cfg.Analysis.Delta = f.delta
	}
	if changed("steps") {
		cfg.Analysis.Steps = f.steps
	}
	if changed("formula") {
		cfg.Analysis.B1Formula = f.formula
	}
	if changed("workers") {
		cfg.Analysis.Workers = f.workers
	}
	if changed("output") {
		cfg.Output.Format = f.format
	}
	if changed("plot") {
		cfg.Output.Plot = f.plot
	}
	if changed("normalizer") {
		cfg.Normalizer.Type = f.normalizer
	}
	if changed("language") {
		cfg.Normalizer.Language = f.language
	}
	if changed("embedder") {
		cfg.Embedder.Type = f.embedder
	}
}

func readInput(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	return service.LoadText(args)
}

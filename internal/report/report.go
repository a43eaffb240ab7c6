// Package report renders sweep results for terminals and files.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"textbetti/internal/service"
)

// Write renders res to w in format (table, json or csv).
func Write(w io.Writer, res *service.Result, format string) error {
	switch format {
	case "table", "":
		_, err := io.WriteString(w, Table(res)+"\n")
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "csv":
		return writeCSV(w, res)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// Table renders the Betti curve as a rounded table.
func Table(res *service.Result) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle(fmt.Sprintf("%d %s units, %d words, b1 formula: %s",
		res.Tokens, res.Mode, res.Vocabulary, res.Formula))
	tw.AppendHeader(table.Row{"diameter", "b0", "b1"})
	for _, p := range res.Points {
		tw.AppendRow(table.Row{formatDiameter(p.Diameter), p.B0, p.B1})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

func writeCSV(w io.Writer, res *service.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"diameter", "b0", "b1"}); err != nil {
		return err
	}
	for _, p := range res.Points {
		row := []string{formatDiameter(p.Diameter), strconv.Itoa(p.B0), strconv.Itoa(p.B1)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatDiameter(d float64) string {
	return strconv.FormatFloat(d, 'g', 6, 64)
}

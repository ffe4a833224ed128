package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfxtools/seshis/internal/domain"
	"github.com/pfxtools/seshis/internal/report"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export session analysis to CSV, JSON, or PDF",
	Long: `Export session data with derived metrics for external analysis.

Examples:
  seshis export --format csv --output sessions.csv --no-prompt --range week
  seshis export --format csv --users --output users.csv
  seshis export --format json --output sessions.json
  seshis export --format pdf --output report.pdf --threshold 1.0`,
	RunE: runExport,
}

var (
	exportFetch     fetchOptions
	exportFormat    string
	exportOutput    string
	exportThreshold float64
	exportUsers     bool
)

func init() {
	rootCmd.AddCommand(exportCmd)
	registerFetchFlags(exportCmd, &exportFetch)

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "Output format: csv, json, pdf")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout; required for pdf)")
	exportCmd.Flags().Float64Var(&exportThreshold, "threshold", 0, "Microsession threshold in kWh")
	exportCmd.Flags().BoolVar(&exportUsers, "users", false, "Export per-user aggregates instead of session rows (csv only)")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	n, runID, q, err := loadSessions(ctx, &exportFetch)
	if err != nil {
		return err
	}

	if exportFormat == "pdf" && exportOutput == "" {
		return fmt.Errorf("--output is required for pdf export")
	}

	out := os.Stdout
	if exportOutput != "" {
		out, err = os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = out.Close() }()
	}

	calc := domain.NewCalculator(cfg.Voltage)

	switch exportFormat {
	case "csv":
		if exportUsers {
			err = report.WriteUsersCSV(out, domain.GroupByUser(n.Sessions, exportThreshold))
		} else {
			err = report.WriteSessionsCSV(out, n.Sessions, calc, exportThreshold)
		}
	case "json":
		err = writeRawSessions(out, n.Sessions)
	case "pdf":
		err = report.RenderPDF(out, report.PDFData{
			Title:       "Charging session report",
			GeneratedAt: time.Now(),
			RunID:       runID,
			ACN:         q.ACN,
			Account:     q.Account,
			Threshold:   exportThreshold,
			Summary:     domain.Summarize(n.Sessions, exportThreshold),
			Users:       domain.GroupByUser(n.Sessions, exportThreshold),
			Calc:        calc,
		})
	default:
		return fmt.Errorf("unsupported format: %s (use csv, json, or pdf)", exportFormat)
	}
	if err != nil {
		return err
	}

	if exportOutput != "" {
		fmt.Fprintf(os.Stderr, "Exported %d sessions to %s\n", n.Valid(), exportOutput)
	}
	return nil
}

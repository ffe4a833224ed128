package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pfxtools/seshis/internal/domain"
	"github.com/pfxtools/seshis/internal/report"
	"github.com/pfxtools/seshis/internal/telemetry"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Analyze empty sessions and microsessions",
	Long: `Fetch sessions and report on energy delivery.

Examples:
  seshis report --empty                          # Empty session summary
  seshis report --micro --threshold 1.0          # Microsession summary
  seshis report --empty --micro --threshold 1.0  # Both, plus combined rollup
  seshis report --empty --graph empty.png        # Save a daily line chart
  seshis report --user alice --empty             # Limit to one user
  seshis report --from-cache <run-id> --empty    # Replay a cached fetch`,
	RunE: runReport,
}

var (
	reportFetch         fetchOptions
	reportEmpty         bool
	reportMicro         bool
	reportThreshold     float64
	reportGraph         string
	reportPrintSessions bool
	reportUser          string
)

func init() {
	rootCmd.AddCommand(reportCmd)
	registerFetchFlags(reportCmd, &reportFetch)

	reportCmd.Flags().BoolVar(&reportEmpty, "empty", false, "Show empty session summary (0 kWh)")
	reportCmd.Flags().BoolVar(&reportMicro, "micro", false, "Show microsession summary (0 < kWh < threshold)")
	reportCmd.Flags().Float64Var(&reportThreshold, "threshold", 0, "Microsession threshold in kWh (prompted if --micro without it)")
	reportCmd.Flags().StringVar(&reportGraph, "graph", "", "Write a daily percentage line chart to this PNG file")
	reportCmd.Flags().BoolVar(&reportPrintSessions, "print-sessions", false, "Print matching session details")
	reportCmd.Flags().StringVar(&reportUser, "user", "all", "Limit the analysis to one user")
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	threshold := reportThreshold
	if reportMicro && threshold <= 0 {
		if reportFetch.noPrompt {
			return fmt.Errorf("--micro requires --threshold when prompting is disabled")
		}
		threshold = NewPrompter(os.Stdin, os.Stderr).PositiveFloat("Enter microsession threshold (kWh, e.g., 1.0)")
	}

	n, runID, q, err := loadSessions(ctx, &reportFetch)
	if err != nil {
		return err
	}
	sessions := n.Sessions

	if reportUser != "" && reportUser != "all" {
		bucket, err := domain.FindUser(domain.GroupByUser(sessions, threshold), reportUser)
		if err != nil {
			var notFound *domain.UserNotFoundError
			if errors.As(err, &notFound) {
				fmt.Printf("User %q not found in the result set.\n", notFound.User)
				if len(notFound.Known) > 0 {
					fmt.Printf("Known users:\n  %s\n", strings.Join(notFound.Known, "\n  "))
				}
			}
			return err
		}
		sessions = bucket.Sessions
	}

	if !reportEmpty && !reportMicro {
		return writeRawSessions(os.Stdout, sessions)
	}

	calc := domain.NewCalculator(cfg.Voltage)
	summary := domain.Summarize(sessions, threshold)

	if reportEmpty {
		report.WriteFetchCounts(os.Stdout, n.Valid(), n.Total)
		report.WriteClassLine(os.Stdout, domain.ClassEmpty, threshold, summary.Empty, len(sessions))
		daily := domain.GroupByDay(sessions, threshold)
		report.WriteDaily(os.Stdout, domain.ClassEmpty, daily)
		if reportGraph != "" {
			if err := renderChart(reportGraph, domain.ClassEmpty, daily, "Daily empty session percentage"); err != nil {
				return err
			}
		}
		if reportPrintSessions {
			printClassSessions(sessions, domain.ClassEmpty, threshold, calc)
		}
	}

	if reportMicro {
		report.WriteFetchCounts(os.Stdout, n.Valid(), n.Total)
		report.WriteClassLine(os.Stdout, domain.ClassMicro, threshold, summary.Micro, len(sessions))
		daily := domain.GroupByDay(sessions, threshold)
		report.WriteDaily(os.Stdout, domain.ClassMicro, daily)
		if reportGraph != "" && !reportEmpty {
			title := fmt.Sprintf("Daily microsession percentage (< %g kWh)", threshold)
			if err := renderChart(reportGraph, domain.ClassMicro, daily, title); err != nil {
				return err
			}
		}
		if reportPrintSessions {
			printClassSessions(sessions, domain.ClassMicro, threshold, calc)
		}
	}

	if reportEmpty && reportMicro {
		report.WriteSummary(os.Stdout, summary, threshold)
	}

	reportRunMetrics(ctx, telemetry.RunMetrics{
		RunID:    runID,
		ACN:      q.ACN,
		Account:  q.Account,
		Summary:  summary,
		TotalKWH: totalEnergy(sessions),
	})
	return nil
}

func renderChart(path string, class domain.Class, daily domain.DailyBreakdown, title string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := report.RenderDailyChart(f, class, daily, title); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Chart written to %s\n", path)
	return nil
}

func printClassSessions(sessions []domain.Session, class domain.Class, threshold float64, calc domain.Calculator) {
	matching := make([]domain.Session, 0, len(sessions))
	for i := range sessions {
		if domain.Classify(sessions[i], threshold) == class {
			matching = append(matching, sessions[i])
		}
	}
	fmt.Printf("\nSession details (%s, %d sessions):\n", class, len(matching))
	report.WriteSessionDetails(os.Stdout, matching, calc)
}

// reportRunMetrics pushes run aggregates when telemetry is configured.
// Export problems never fail the report.
func reportRunMetrics(ctx context.Context, m telemetry.RunMetrics) {
	reporter, err := telemetry.NewReporter(ctx, telemetry.LoadConfig())
	if err != nil {
		logger.Warn("telemetry unavailable", zap.Error(err))
		return
	}
	defer reporter.Shutdown(ctx)

	if err := reporter.ReportRun(ctx, m); err != nil {
		logger.Warn("failed to export run metrics", zap.Error(err))
	}
}

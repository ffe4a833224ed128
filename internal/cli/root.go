package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pfxtools/seshis/internal/config"
	"github.com/pfxtools/seshis/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "seshis",
	Short: "Analyze EV-charging sessions from the PowerFlex API",
	Long: `seshis retrieves charging session records from the PowerFlex public
sessions API and analyzes energy delivery.

Sessions are classified as empty (0 kWh), micro (under a configurable
threshold), or normal, with per-day and per-user breakdowns rendered as
console tables, PNG line charts, CSV, or PDF reports.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.NewLogger(debugFlag)
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		return nil
	},
}

// Shared command state, set up by PersistentPreRunE.
var (
	debugFlag bool
	logger    *zap.Logger
	cfg       config.Config
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Print debug information")
}

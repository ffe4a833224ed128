package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pfxtools/seshis/internal/domain"
	"github.com/pfxtools/seshis/internal/report"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Per-user session breakdown",
	Long: `Group sessions by user and show classification counts per user.
Unclaimed sessions (no user on the record) are listed last.

Examples:
  seshis users --threshold 1.0 --no-prompt --range week
  seshis users --user alice --threshold 1.0   # One user, with session details`,
	RunE: runUsers,
}

var (
	usersFetch     fetchOptions
	usersThreshold float64
	usersUser      string
)

func init() {
	rootCmd.AddCommand(usersCmd)
	registerFetchFlags(usersCmd, &usersFetch)

	usersCmd.Flags().Float64Var(&usersThreshold, "threshold", 0, "Microsession threshold in kWh")
	usersCmd.Flags().StringVar(&usersUser, "user", "all", "Show a single user's breakdown and sessions")
}

func runUsers(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	n, _, _, err := loadSessions(ctx, &usersFetch)
	if err != nil {
		return err
	}

	buckets := domain.GroupByUser(n.Sessions, usersThreshold)

	if usersUser != "" && usersUser != "all" {
		bucket, err := domain.FindUser(buckets, usersUser)
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
		report.WriteUsers(os.Stdout, []domain.UserBucket{bucket})
		fmt.Println()
		report.WriteSessionDetails(os.Stdout, bucket.Sessions, domain.NewCalculator(cfg.Voltage))
		return nil
	}

	report.WriteFetchCounts(os.Stdout, n.Valid(), n.Total)
	fmt.Println()
	report.WriteUsers(os.Stdout, buckets)
	return nil
}

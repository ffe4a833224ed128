package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pfxtools/seshis/internal/cache"
	"github.com/pfxtools/seshis/internal/util"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Manage cached fetch runs",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached runs",
	Long: `List cached fetches, newest first. Any run ID here can be replayed
with --from-cache on report, users, or export.`,
	RunE: runRunsList,
}

var runsLast int

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.AddCommand(runsListCmd)

	runsListCmd.Flags().IntVarP(&runsLast, "last", "n", 20, "Number of runs to show")
}

func runRunsList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	store, err := cache.Open(cfg.CachePath)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.ListRuns(ctx, runsLast)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No cached runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tFETCHED\tACN\tACCOUNT\tTOTAL\tVALID")
	fmt.Fprintln(w, "---\t-------\t---\t-------\t-----\t-----")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n",
			util.Truncate(r.ID, 12), r.FetchedAt.Local().Format("2006-01-02 15:04"),
			r.ACN, r.Account, r.Total, r.Valid)
	}
	w.Flush()

	fmt.Printf("\nShowing %d run(s)\n", len(runs))
	return nil
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pfxtools/seshis/internal/cache"
	"github.com/pfxtools/seshis/internal/domain"
	"github.com/pfxtools/seshis/internal/powerflex"
)

// fetchOptions are the flags shared by every command that needs a
// session list.
type fetchOptions struct {
	acn           string
	account       string
	anonymize     bool
	includeActive bool
	sortBy        string
	sortOrder     string
	limit         int
	page          int
	rangePreset   string
	fromDate      string
	toDate        string
	fromCache     string
	noPrompt      bool
}

func registerFetchFlags(cmd *cobra.Command, o *fetchOptions) {
	cmd.Flags().StringVar(&o.acn, "acn", "", "ACN to query (default from config)")
	cmd.Flags().StringVar(&o.account, "account", "", "Account to query (default from config)")
	cmd.Flags().BoolVar(&o.anonymize, "anonymize", false, "Anonymize user identifiers")
	cmd.Flags().BoolVar(&o.includeActive, "include-active", false, "Include active sessions")
	cmd.Flags().StringVar(&o.sortBy, "sort-by", "session_start_time", "Sort field")
	cmd.Flags().StringVar(&o.sortOrder, "sort-order", "DESC", "Sort order: ASC or DESC")
	cmd.Flags().IntVar(&o.limit, "limit", 25, "Maximum sessions per page")
	cmd.Flags().IntVar(&o.page, "page", 1, "Result page")
	cmd.Flags().StringVar(&o.rangePreset, "range", "", "Date range preset: today, week, month")
	cmd.Flags().StringVar(&o.fromDate, "from", "", "Range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&o.toDate, "to", "", "Range end (YYYY-MM-DD)")
	cmd.Flags().StringVar(&o.fromCache, "from-cache", "", "Re-analyze a cached run instead of fetching")
	cmd.Flags().BoolVar(&o.noPrompt, "no-prompt", false, "Never prompt; use flags and config defaults")
}

// resolveRange turns the range flags into a concrete window. An empty
// preset with no explicit dates means "today".
func resolveRange(preset, fromDate, toDate string, now time.Time) (from, to time.Time, err error) {
	if fromDate != "" || toDate != "" {
		if fromDate == "" || toDate == "" {
			return time.Time{}, time.Time{}, fmt.Errorf("--from and --to must be given together")
		}
		from, err = time.ParseInLocation("2006-01-02", fromDate, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --from date: %w", err)
		}
		to, err = time.ParseInLocation("2006-01-02", toDate, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --to date: %w", err)
		}
		if to.Before(from) {
			return time.Time{}, time.Time{}, fmt.Errorf("--to is before --from")
		}
		return from, to, nil
	}

	switch preset {
	case "", "today":
		return startOfDay(now), now, nil
	case "week":
		return now.AddDate(0, 0, -7), now, nil
	case "month":
		return now.AddDate(0, 0, -30), now, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("unknown range preset %q (use today, week, or month)", preset)
	}
}

// buildQuery assembles the API query from flags, config defaults, and,
// unless disabled, the interactive prompt sequence.
func buildQuery(o *fetchOptions, now time.Time) (powerflex.Query, error) {
	q := powerflex.Query{
		ACN:           o.acn,
		Account:       o.account,
		Anonymize:     o.anonymize,
		IncludeActive: o.includeActive,
		SortBy:        o.sortBy,
		SortOrder:     o.sortOrder,
		Limit:         o.limit,
		Page:          o.page,
	}
	if q.ACN == "" {
		q.ACN = cfg.DefaultACN
	}
	if q.Account == "" {
		q.Account = cfg.DefaultAccount
	}

	if o.noPrompt {
		from, to, err := resolveRange(o.rangePreset, o.fromDate, o.toDate, now)
		if err != nil {
			return powerflex.Query{}, err
		}
		q.From, q.To = from, to
		return q, nil
	}

	p := NewPrompter(os.Stdin, os.Stderr)
	q.ACN = p.String("Enter ACN", q.ACN)
	q.Account = p.String("Enter account", q.Account)
	q.Anonymize = p.Bool("Anonymize?", q.Anonymize)
	q.IncludeActive = p.Bool("Include active sessions?", q.IncludeActive)
	q.SortBy = p.String("Sort by", q.SortBy)
	q.SortOrder = p.String("Sort order (ASC/DESC)", q.SortOrder)
	q.Limit = p.Int("Limit", q.Limit)
	q.Page = p.Int("Page", q.Page)

	if o.rangePreset != "" || o.fromDate != "" || o.toDate != "" {
		from, to, err := resolveRange(o.rangePreset, o.fromDate, o.toDate, now)
		if err != nil {
			return powerflex.Query{}, err
		}
		q.From, q.To = from, to
		return q, nil
	}
	from, to, err := p.DateRange(now)
	if err != nil {
		return powerflex.Query{}, err
	}
	q.From, q.To = from, to
	return q, nil
}

// loadSessions resolves the session list for a command: either replaying
// a cached run or fetching from the API (and caching the result). It
// returns the normalized sessions, the run ID, and the query context for
// reporting.
func loadSessions(ctx context.Context, o *fetchOptions) (*powerflex.Normalized, string, powerflex.Query, error) {
	if o.fromCache != "" {
		n, run, err := loadCachedRun(ctx, o.fromCache)
		if err != nil {
			return nil, "", powerflex.Query{}, err
		}
		return n, run.ID, powerflex.Query{ACN: run.ACN, Account: run.Account}, nil
	}

	q, err := buildQuery(o, time.Now())
	if err != nil {
		return nil, "", powerflex.Query{}, err
	}

	client := powerflex.NewClient(cfg.APIBaseURL, cfg.APIToken, logger)

	sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	sp.Suffix = " fetching sessions..."
	sp.Start()
	n, raw, err := client.FetchSessions(ctx, q)
	sp.Stop()
	if err != nil {
		return nil, "", powerflex.Query{}, err
	}

	runID := uuid.NewString()
	saveRun(ctx, cache.Run{
		ID:        runID,
		FetchedAt: time.Now(),
		ACN:       q.ACN,
		Account:   q.Account,
		Total:     n.Total,
		Valid:     n.Valid(),
		Payload:   raw,
	})
	return n, runID, q, nil
}

func loadCachedRun(ctx context.Context, id string) (*powerflex.Normalized, *cache.Run, error) {
	store, err := cache.Open(cfg.CachePath)
	if err != nil {
		return nil, nil, err
	}
	defer store.Close()

	run, err := store.GetRun(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	n, err := powerflex.Normalize(run.Payload)
	if err != nil {
		return nil, nil, fmt.Errorf("cached run %s: %w", id, err)
	}
	logger.Debug("loaded cached run", zap.String("run_id", id), zap.Int("valid", n.Valid()))
	return n, run, nil
}

// saveRun caches a fetch for later replay. Failures are logged, never
// fatal: the analysis still has its data.
func saveRun(ctx context.Context, run cache.Run) {
	store, err := cache.Open(cfg.CachePath)
	if err != nil {
		logger.Warn("run cache unavailable", zap.Error(err))
		return
	}
	defer store.Close()

	if err := store.SaveRun(ctx, run); err != nil {
		logger.Warn("failed to cache run", zap.Error(err))
		return
	}
	logger.Debug("cached run", zap.String("run_id", run.ID))
}

// writeRawSessions dumps the retained raw records as an indented JSON
// array, matching what the API sent for each surviving record.
func writeRawSessions(w io.Writer, sessions []domain.Session) error {
	raws := make([]json.RawMessage, 0, len(sessions))
	for i := range sessions {
		raws = append(raws, sessions[i].Raw)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(raws)
}

// totalEnergy sums delivered kWh across sessions.
func totalEnergy(sessions []domain.Session) float64 {
	var kwh float64
	for i := range sessions {
		kwh += sessions[i].SessionKWH
	}
	return kwh
}

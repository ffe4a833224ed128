package report

import (
	"fmt"
	"io"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/pfxtools/seshis/internal/domain"
	"github.com/pfxtools/seshis/internal/util"
)

// PDFData is everything the PDF report renders.
type PDFData struct {
	Title       string
	GeneratedAt time.Time
	RunID       string
	ACN         string
	Account     string
	Threshold   float64
	Summary     domain.Summary
	Users       []domain.UserBucket
	Calc        domain.Calculator
}

// RenderPDF writes the session analysis report as a PDF document: the
// combined summary, the per-user aggregate table, then a session detail
// table per user.
func RenderPDF(w io.Writer, data PDFData) error {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, data.Title, props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	m.AddRow(16,
		col.New(6).Add(
			text.New("Generated: "+data.GeneratedAt.Format("2006-01-02 15:04"), props.Text{Top: 0, Size: 9}),
			text.New("Run: "+data.RunID, props.Text{Top: 4, Size: 9}),
			text.New(fmt.Sprintf("ACN %s / account %s", data.ACN, data.Account), props.Text{Top: 8, Size: 9}),
		),
		col.New(6),
	)

	addSummary(m, data)
	addUserTable(m, data.Users)
	for _, b := range data.Users {
		addSessionTable(m, b, data.Calc)
	}

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("failed to generate PDF: %w", err)
	}
	if _, err := w.Write(doc.GetBytes()); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

func addSummary(m core.Maroto, data PDFData) {
	s := data.Summary

	m.AddRow(10,
		text.NewCol(12, "Summary", props.Text{Size: 13, Style: fontstyle.Bold}),
	)
	m.AddRow(30,
		col.New(12).Add(
			text.New(fmt.Sprintf("Total sessions analyzed: %d", s.Total), props.Text{Top: 0, Size: 10}),
			text.New(fmt.Sprintf("Empty sessions (0 kWh): %d (%s)", s.Empty, util.FormatPercent(s.EmptyPct)), props.Text{Top: 5, Size: 10}),
			text.New(fmt.Sprintf("Microsessions (0 < kWh < %g): %d (%s)", data.Threshold, s.Micro, util.FormatPercent(s.MicroPct)), props.Text{Top: 10, Size: 10}),
			text.New(fmt.Sprintf("Combined (empty + micro): %d (%s)", s.Combined, util.FormatPercent(s.CombinedPct)), props.Text{Top: 15, Size: 10}),
			text.New(fmt.Sprintf("Normal sessions: %d (%s)", s.Normal, util.FormatPercent(s.NormalPct)), props.Text{Top: 20, Size: 10}),
		),
	)
}

func addUserTable(m core.Maroto, buckets []domain.UserBucket) {
	m.AddRow(10,
		text.NewCol(12, "Per-user breakdown", props.Text{Size: 13, Style: fontstyle.Bold}),
	)
	m.AddRow(8,
		text.NewCol(4, "User", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Empty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Micro", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Normal %", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
	for _, b := range buckets {
		m.AddRow(6,
			text.NewCol(4, b.User, props.Text{Size: 9}),
			text.NewCol(2, fmt.Sprintf("%d", b.Total), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, fmt.Sprintf("%d", b.Empty), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, fmt.Sprintf("%d", b.Micro), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, util.FormatPercent(b.NormalPct), props.Text{Size: 9, Align: align.Right}),
		)
	}
}

func addSessionTable(m core.Maroto, b domain.UserBucket, calc domain.Calculator) {
	m.AddRow(10,
		text.NewCol(12, "Sessions: "+b.User, props.Text{Size: 11, Style: fontstyle.Bold, Top: 2}),
	)
	m.AddRow(8,
		text.NewCol(4, "Session", props.Text{Style: fontstyle.Bold, Size: 8}),
		text.NewCol(2, "kWh", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right}),
		text.NewCol(2, "Duration", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right}),
		text.NewCol(2, "Avg amps", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right}),
		text.NewCol(2, "Tier", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right}),
	)
	for i := range b.Sessions {
		s := &b.Sessions[i]
		mx := calc.Compute(*s)
		amps := "N/A"
		if mx.Tier != domain.TierUnknown {
			amps = fmt.Sprintf("%.2f", mx.AvgAmps)
		}
		m.AddRow(6,
			text.NewCol(4, util.Truncate(s.SessionID, 24), props.Text{Size: 8}),
			text.NewCol(2, fmt.Sprintf("%.3f", s.SessionKWH), props.Text{Size: 8, Align: align.Right}),
			text.NewCol(2, mx.DurationLabel, props.Text{Size: 8, Align: align.Right}),
			text.NewCol(2, amps, props.Text{Size: 8, Align: align.Right}),
			text.NewCol(2, mx.Tier.String(), props.Text{Size: 8, Align: align.Right}),
		)
	}
}

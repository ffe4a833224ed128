package report

import (
	"fmt"
	"io"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/pfxtools/seshis/internal/domain"
)

// RenderDailyChart draws the daily percentage for one class of session as
// a PNG line chart. It needs at least two bucketed days to draw a line.
func RenderDailyChart(w io.Writer, class domain.Class, d domain.DailyBreakdown, title string) error {
	if len(d.Buckets) < 2 {
		return fmt.Errorf("need at least 2 days of data to chart, have %d", len(d.Buckets))
	}

	xs := make([]time.Time, 0, len(d.Buckets))
	ys := make([]float64, 0, len(d.Buckets))
	for _, b := range d.Buckets {
		pct := b.EmptyPct
		if class == domain.ClassMicro {
			pct = b.MicroPct
		}
		xs = append(xs, b.Date)
		ys = append(ys, pct)
	}

	seriesName := "Empty sessions (%)"
	if class == domain.ClassMicro {
		seriesName = "Microsessions (%)"
	}

	graph := chart.Chart{
		Title:  title,
		Width:  1000,
		Height: 500,
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{
			Name: seriesName,
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    seriesName,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeWidth: 2,
					DotWidth:    4,
				},
			},
		},
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

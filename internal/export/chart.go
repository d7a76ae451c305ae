package export

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/naka-gawa/reposcore/internal/domain"
)

const (
	chartWidth     = "1000px"
	chartRowHeight = 28
	chartMinHeight = 240
)

// ChartExporter writes <repo>_chart.html, a horizontal bar chart of total scores.
type ChartExporter struct{}

func (ChartExporter) Export(report domain.RepoReport, dir string) (string, error) {
	f, path, err := createReportFile(dir, report.Repository, "_chart.html")
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := NewScoreChart(report).Render(f); err != nil {
		return "", fmt.Errorf("failed to render chart %s: %w", path, err)
	}
	return path, nil
}

// chartLabels returns bar labels and values with the top-ranked user last,
// so the leader is drawn at the top of a category axis.
func chartLabels(entries []domain.RankedEntry) ([]string, []opts.BarData) {
	labels := make([]string, 0, len(entries))
	values := make([]opts.BarData, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		labels = append(labels, fmt.Sprintf("%s (%s)", e.UserID, humanize.Ordinal(e.Rank)))
		values = append(values, opts.BarData{Value: e.Score.Total})
	}
	return labels, values
}

// NewScoreChart builds the bar chart of report.
func NewScoreChart(report domain.RepoReport) *charts.Bar {
	labels, values := chartLabels(report.Entries)
	s := report.Summary

	height := max(chartMinHeight, chartRowHeight*len(labels)+120)

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: report.Repository + " scores",
			Width:     chartWidth,
			Height:    fmt.Sprintf("%dpx", height),
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "Contribution scores: " + report.Repository,
			Subtitle: fmt.Sprintf("Generated %s  Participants:%d  Avg:%.1f  Max:%.1f  Min:%.1f",
				now().Format(dateTimeLayout), s.ParticipantCount, s.Average, s.Max, s.Min),
		}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Score"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: labels}),
	)
	bar.AddSeries("total", values,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "right"}),
	)
	return bar
}

package export

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/naka-gawa/reposcore/internal/domain"
)

const dateTimeLayout = "2006-01-02 15:04"

// TableExporter writes <repo>.txt, a ranked plain-text table.
type TableExporter struct{}

func (TableExporter) Export(report domain.RepoReport, dir string) (string, error) {
	return writeReportFile(dir, report.Repository, ".txt", []byte(RenderTable(report)))
}

// RenderTable renders the leaderboard as an aligned text table.
func RenderTable(report domain.RepoReport) string {
	s := report.Summary

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateColumns = true
	tbl.Style().Format.Header = text.FormatDefault
	tbl.AppendHeader(table.Row{"Rank", "UserId", "f/b_PR", "doc_PR", "typo", "f/b_issue", "doc_issue", "PR_rate", "IS_rate", "total"})

	// Numbers are right aligned, the user column stays left aligned.
	configs := make([]table.ColumnConfig, 0, 9)
	for col := 1; col <= 10; col++ {
		if col == 2 {
			continue
		}
		configs = append(configs, table.ColumnConfig{Number: col, Align: text.AlignRight})
	}
	tbl.SetColumnConfigs(configs)

	for _, e := range report.Entries {
		sc := e.Score
		tbl.AppendRow(table.Row{
			e.Rank, e.UserID,
			sc.PRFeatureBugfix, sc.PRDocs, sc.PRTypo,
			sc.IssueFeatureBugfix, sc.IssueDocs,
			formatRate(e.PRRate), formatRate(e.ISRate),
			sc.Total,
		})
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Scoring weights: %s\n", WeightLegend())
	fmt.Fprintf(&b, "# Repo: %s  Date: %s  Avg: %.1f  Max: %.1f  Min: %.1f\n",
		report.Repository, now().Format(dateTimeLayout), s.Average, s.Max, s.Min)
	fmt.Fprintf(&b, "# Participants: %d\n", s.ParticipantCount)
	b.WriteString(tbl.Render())
	b.WriteString("\n")
	return b.String()
}

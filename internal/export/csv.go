package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/naka-gawa/reposcore/internal/domain"
)

var csvHeader = []string{"User", "GitHubProfile", "f/b_PR", "doc_PR", "typo", "f/b_issue", "doc_issue", "PR_rate", "IS_rate", "total"}

// CSVExporter writes <repo>.csv with a commented legend and summary header.
type CSVExporter struct{}

func (CSVExporter) Export(report domain.RepoReport, dir string) (string, error) {
	data, err := RenderCSV(report)
	if err != nil {
		return "", err
	}
	return writeReportFile(dir, report.Repository, ".csv", data)
}

// RenderCSV renders the leaderboard as CSV.
func RenderCSV(report domain.RepoReport) ([]byte, error) {
	var buf bytes.Buffer
	s := report.Summary
	fmt.Fprintf(&buf, "# Scoring weights: %s\n", WeightLegend())
	fmt.Fprintf(&buf, "# Repo: %s  Avg:%.1f  Max:%.1f  Min:%.1f  Participants:%d\n",
		report.Repository, s.Average, s.Max, s.Min, s.ParticipantCount)

	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, e := range report.Entries {
		sc := e.Score
		row := []string{
			e.UserID,
			e.ProfileURL(),
			strconv.Itoa(sc.PRFeatureBugfix),
			strconv.Itoa(sc.PRDocs),
			strconv.Itoa(sc.PRTypo),
			strconv.Itoa(sc.IssueFeatureBugfix),
			strconv.Itoa(sc.IssueDocs),
			formatRate(e.PRRate),
			formatRate(e.ISRate),
			strconv.Itoa(sc.Total),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row for %s: %w", e.UserID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

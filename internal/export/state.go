package export

import (
	"fmt"
	"strings"

	"github.com/naka-gawa/reposcore/internal/domain"
)

// StateExporter writes <repo>_state.txt with the PR and issue state counts.
type StateExporter struct{}

func (StateExporter) Export(report domain.RepoReport, dir string) (string, error) {
	return writeReportFile(dir, report.Repository, "_state.txt", []byte(RenderState(report)))
}

// RenderState renders the state summary of report.
func RenderState(report domain.RepoReport) string {
	st := report.States
	var b strings.Builder
	fmt.Fprintf(&b, "# Repo: %s\n", report.Repository)
	fmt.Fprintf(&b, "Merged PRs: %d\n", st.MergedPR)
	fmt.Fprintf(&b, "Unmerged PRs: %d\n", st.UnmergedPR)
	fmt.Fprintf(&b, "Open issues: %d\n", st.OpenIssue)
	fmt.Fprintf(&b, "Closed issues: %d\n", st.ClosedIssue)
	return b.String()
}

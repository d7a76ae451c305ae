package scoring

import (
	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/reposcore/internal/domain"
)

// Summarize computes participant count and average/max/min of the totals.
// An empty collection yields a zero summary.
func Summarize(scores []domain.UserScore) domain.RepoSummary {
	if len(scores) == 0 {
		return domain.RepoSummary{}
	}

	totals := make([]int, len(scores))
	for i, s := range scores {
		totals[i] = s.Total
	}
	data := stats.LoadRawData(totals)

	// stats only fails on empty input, which is handled above.
	avg, _ := stats.Mean(data)
	hi, _ := stats.Max(data)
	lo, _ := stats.Min(data)

	return domain.RepoSummary{
		ParticipantCount: len(scores),
		Average:          avg,
		Max:              hi,
		Min:              lo,
	}
}

// CountStates tallies pull requests by merge state and issues by open state.
func CountStates(records []domain.ActivityRecord) domain.StateSummary {
	var s domain.StateSummary
	for _, rec := range records {
		switch {
		case rec.IsPullRequest && rec.Merged:
			s.MergedPR++
		case rec.IsPullRequest:
			s.UnmergedPR++
		case rec.Open:
			s.OpenIssue++
		default:
			s.ClosedIssue++
		}
	}
	return s
}

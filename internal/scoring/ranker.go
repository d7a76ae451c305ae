package scoring

import (
	"sort"

	"github.com/naka-gawa/reposcore/internal/domain"
)

const percent = 100

// Rank orders contributors by total descending and assigns competition ranks:
// tied totals share a rank and the next distinct total is ranked by its
// 1-based position (100,100,90,80 -> 1,1,3,4). Ties are ordered by user ID.
func Rank(scores map[string]domain.UserScore) []domain.RankedEntry {
	users := make([]string, 0, len(scores))
	var sumPR, sumIS int
	for user, s := range scores {
		users = append(users, user)
		sumPR += s.PRFeatureBugfix + s.PRDocs + s.PRTypo
		sumIS += s.IssueFeatureBugfix + s.IssueDocs
	}
	sort.Slice(users, func(i, j int) bool {
		ti, tj := scores[users[i]].Total, scores[users[j]].Total
		if ti != tj {
			return ti > tj
		}
		return users[i] < users[j]
	})

	entries := make([]domain.RankedEntry, 0, len(users))
	currentRank := 1
	for i, user := range users {
		s := scores[user]
		pos := i + 1
		if i == 0 || s.Total != scores[users[i-1]].Total {
			currentRank = pos
		}
		entries = append(entries, domain.RankedEntry{
			Rank:   currentRank,
			UserID: user,
			Score:  s,
			PRRate: share(s.PRFeatureBugfix+s.PRDocs+s.PRTypo, sumPR),
			ISRate: share(s.IssueFeatureBugfix+s.IssueDocs, sumIS),
		})
	}
	return entries
}

// share returns part as a percentage of whole, or 0 when whole is 0.
func share(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * percent
}

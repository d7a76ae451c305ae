package scoring

import "github.com/naka-gawa/reposcore/internal/domain"

// Score weights per activity kind.
const (
	WeightFeaturePR    = 3
	WeightBugfixPR     = 3
	WeightDocsPR       = 2
	WeightTypoPR       = 1
	WeightFeatureIssue = 2
	WeightDocsIssue    = 1
)

// Anti-gaming caps: support PRs are bounded by feature PRs (floored at one),
// issues by valid PRs.
const (
	supportPRPerFeaturePR = 3
	issuesPerValidPR      = 4
)

// Score computes the weighted total and the capped counts.
// The total is taken from raw counts; the caps are reported alongside.
func Score(c domain.ScoreComponents) domain.ScoreBreakdown {
	total := c.FeaturePR*WeightFeaturePR +
		c.BugfixPR*WeightBugfixPR +
		c.DocsPR*WeightDocsPR +
		c.TypoPR*WeightTypoPR +
		c.FeatureIssue*WeightFeatureIssue +
		c.DocsIssue*WeightDocsIssue

	validPR := validPRCount(c)
	return domain.ScoreBreakdown{
		Total:      total,
		ValidPR:    validPR,
		ValidIssue: min(c.FeatureIssue+c.DocsIssue, issuesPerValidPR*validPR),
	}
}

func validPRCount(c domain.ScoreComponents) int {
	supportPR := c.DocsPR + c.TypoPR
	return c.FeaturePR + min(supportPR, supportPRPerFeaturePR*max(c.FeaturePR, 1))
}

// Components maps a tally onto scoring inputs. Feature and bugfix PRs share one
// counter, so all of it is attributed to FeaturePR and BugfixPR stays zero.
func Components(a domain.UserActivity) domain.ScoreComponents {
	return domain.ScoreComponents{
		FeaturePR:    a.PRFeatureBugfix,
		DocsPR:       a.PRDocs,
		TypoPR:       a.PRTypo,
		FeatureIssue: a.IssueFeatureBugfix,
		DocsIssue:    a.IssueDocs,
	}
}

// ScoreUser scores a single contributor.
func ScoreUser(a domain.UserActivity) domain.UserScore {
	b := Score(Components(a))
	return domain.UserScore{
		PRFeatureBugfix:    a.PRFeatureBugfix,
		PRDocs:             a.PRDocs,
		PRTypo:             a.PRTypo,
		IssueFeatureBugfix: a.IssueFeatureBugfix,
		IssueDocs:          a.IssueDocs,
		Total:              b.Total,
		ValidPR:            b.ValidPR,
		ValidIssue:         b.ValidIssue,
	}
}

// ScoreAll scores every contributor.
func ScoreAll(activities map[string]domain.UserActivity) map[string]domain.UserScore {
	scores := make(map[string]domain.UserScore, len(activities))
	for user, a := range activities {
		scores[user] = ScoreUser(a)
	}
	return scores
}

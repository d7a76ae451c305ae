package scoring

import (
	"testing"

	"github.com/naka-gawa/reposcore/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	testCases := []struct {
		name       string
		components domain.ScoreComponents
		expected   domain.ScoreBreakdown
	}{
		{
			name:       "zero activity",
			components: domain.ScoreComponents{},
			expected:   domain.ScoreBreakdown{},
		},
		{
			name:       "weights apply to every component",
			components: domain.ScoreComponents{FeaturePR: 1, BugfixPR: 1, DocsPR: 1, TypoPR: 1, FeatureIssue: 1, DocsIssue: 1},
			expected:   domain.ScoreBreakdown{Total: 12, ValidPR: 3, ValidIssue: 2},
		},
		{
			name:       "support PRs capped at three per feature PR",
			components: domain.ScoreComponents{FeaturePR: 1, DocsPR: 10, FeatureIssue: 100},
			expected:   domain.ScoreBreakdown{Total: 3 + 20 + 200, ValidPR: 4, ValidIssue: 16},
		},
		{
			name:       "zero feature PRs still bank three support PRs",
			components: domain.ScoreComponents{DocsPR: 5},
			expected:   domain.ScoreBreakdown{Total: 10, ValidPR: 3, ValidIssue: 0},
		},
		{
			name:       "issue-only contributor gets no valid issues",
			components: domain.ScoreComponents{FeatureIssue: 7, DocsIssue: 2},
			expected:   domain.ScoreBreakdown{Total: 16, ValidPR: 0, ValidIssue: 0},
		},
		{
			name:       "under the caps nothing is cut",
			components: domain.ScoreComponents{FeaturePR: 2, DocsPR: 3, TypoPR: 2, FeatureIssue: 4},
			expected:   domain.ScoreBreakdown{Total: 6 + 6 + 2 + 8, ValidPR: 7, ValidIssue: 4},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Score(tc.components))
		})
	}
}

func TestScore_Properties(t *testing.T) {
	const limit = 6
	for fPR := 0; fPR < limit; fPR++ {
		for bPR := 0; bPR < limit; bPR += 2 {
			for dPR := 0; dPR < limit; dPR++ {
				for tPR := 0; tPR < limit; tPR++ {
					for fIS := 0; fIS < limit*3; fIS += 5 {
						for dIS := 0; dIS < limit; dIS += 2 {
							c := domain.ScoreComponents{
								FeaturePR: fPR, BugfixPR: bPR, DocsPR: dPR, TypoPR: tPR,
								FeatureIssue: fIS, DocsIssue: dIS,
							}
							got := Score(c)

							if got != Score(c) {
								t.Fatalf("Score is not deterministic for %+v", c)
							}
							wantTotal := fPR*3 + bPR*3 + dPR*2 + tPR + fIS*2 + dIS
							if got.Total != wantTotal {
								t.Fatalf("total for %+v: got %d, want %d", c, got.Total, wantTotal)
							}
							if got.ValidPR < 0 || got.ValidPR > fPR+dPR+tPR {
								t.Fatalf("validPR out of bounds for %+v: %d", c, got.ValidPR)
							}
							if got.ValidIssue < 0 || got.ValidIssue > fIS+dIS {
								t.Fatalf("validIssue out of bounds for %+v: %d", c, got.ValidIssue)
							}
						}
					}
				}
			}
		}
	}
}

func TestScoreUser(t *testing.T) {
	activity := domain.UserActivity{PRFeatureBugfix: 2, PRDocs: 1, PRTypo: 1, IssueFeatureBugfix: 3, IssueDocs: 1}

	got := ScoreUser(activity)

	assert.Equal(t, domain.UserScore{
		PRFeatureBugfix:    2,
		PRDocs:             1,
		PRTypo:             1,
		IssueFeatureBugfix: 3,
		IssueDocs:          1,
		Total:              6 + 2 + 1 + 6 + 1,
		ValidPR:            4,
		ValidIssue:         4,
	}, got)
}

func TestComponents_AttributesMergedCounterToFeature(t *testing.T) {
	c := Components(domain.UserActivity{PRFeatureBugfix: 5})

	assert.Equal(t, 5, c.FeaturePR)
	assert.Zero(t, c.BugfixPR)
}

func TestScoreAll(t *testing.T) {
	scores := ScoreAll(map[string]domain.UserActivity{
		"alice": {PRFeatureBugfix: 1},
		"bob":   {IssueDocs: 2},
	})

	assert.Len(t, scores, 2)
	assert.Equal(t, 3, scores["alice"].Total)
	assert.Equal(t, 2, scores["bob"].Total)
}

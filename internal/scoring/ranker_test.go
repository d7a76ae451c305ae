package scoring

import (
	"testing"

	"github.com/naka-gawa/reposcore/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ranksOf(entries []domain.RankedEntry) map[string]int {
	ranks := make(map[string]int, len(entries))
	for _, e := range entries {
		ranks[e.UserID] = e.Rank
	}
	return ranks
}

func TestRank(t *testing.T) {
	testCases := []struct {
		name          string
		scores        map[string]domain.UserScore
		expectedOrder []string
		expectedRanks []int
	}{
		{
			name: "ties share the lower rank and the next rank skips",
			scores: map[string]domain.UserScore{
				"a": {Total: 100},
				"b": {Total: 100},
				"c": {Total: 90},
				"d": {Total: 80},
			},
			expectedOrder: []string{"a", "b", "c", "d"},
			expectedRanks: []int{1, 1, 3, 4},
		},
		{
			name: "tie in the middle",
			scores: map[string]domain.UserScore{
				"A": {Total: 78},
				"B": {Total: 60},
				"C": {Total: 60},
				"D": {Total: 41},
			},
			expectedOrder: []string{"A", "B", "C", "D"},
			expectedRanks: []int{1, 2, 2, 4},
		},
		{
			name: "all tied",
			scores: map[string]domain.UserScore{
				"x": {Total: 5},
				"y": {Total: 5},
				"z": {Total: 5},
			},
			expectedOrder: []string{"x", "y", "z"},
			expectedRanks: []int{1, 1, 1},
		},
		{
			name:          "empty case",
			scores:        map[string]domain.UserScore{},
			expectedOrder: []string{},
			expectedRanks: []int{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			entries := Rank(tc.scores)

			order := make([]string, 0, len(entries))
			ranks := make([]int, 0, len(entries))
			for _, e := range entries {
				order = append(order, e.UserID)
				ranks = append(ranks, e.Rank)
			}
			assert.Equal(t, tc.expectedOrder, order)
			assert.Equal(t, tc.expectedRanks, ranks)
		})
	}
}

func TestRank_SampleLeaderboard(t *testing.T) {
	scores := map[string]domain.UserScore{
		"user01": {PRFeatureBugfix: 21, PRDocs: 8, PRTypo: 0, IssueFeatureBugfix: 4, IssueDocs: 3, Total: 36},
		"user04": {PRFeatureBugfix: 18, PRDocs: 10, PRTypo: 4, IssueFeatureBugfix: 8, IssueDocs: 1, Total: 41},
		"user08": {PRFeatureBugfix: 27, PRDocs: 16, PRTypo: 3, IssueFeatureBugfix: 10, IssueDocs: 4, Total: 60},
		"user10": {PRFeatureBugfix: 24, PRDocs: 18, PRTypo: 2, IssueFeatureBugfix: 14, IssueDocs: 2, Total: 60},
		"user11": {PRFeatureBugfix: 33, PRDocs: 20, PRTypo: 4, IssueFeatureBugfix: 16, IssueDocs: 5, Total: 78},
	}

	ranks := ranksOf(Rank(scores))

	assert.Equal(t, map[string]int{"user11": 1, "user08": 2, "user10": 2, "user04": 4, "user01": 5}, ranks)
}

func TestRank_Rates(t *testing.T) {
	scores := map[string]domain.UserScore{
		"alice": {PRFeatureBugfix: 3, PRDocs: 1, IssueFeatureBugfix: 1, Total: 13},
		"bob":   {PRTypo: 4, IssueDocs: 3, Total: 7},
		"carol": {Total: 0},
	}

	entries := Rank(scores)
	require.Len(t, entries, 3)

	byUser := make(map[string]domain.RankedEntry)
	for _, e := range entries {
		byUser[e.UserID] = e
	}
	assert.InDelta(t, 50.0, byUser["alice"].PRRate, 1e-9)
	assert.InDelta(t, 25.0, byUser["alice"].ISRate, 1e-9)
	assert.InDelta(t, 50.0, byUser["bob"].PRRate, 1e-9)
	assert.InDelta(t, 75.0, byUser["bob"].ISRate, 1e-9)
	assert.Zero(t, byUser["carol"].PRRate)
	assert.Zero(t, byUser["carol"].ISRate)
}

func TestRank_ZeroSumsGiveZeroRates(t *testing.T) {
	scores := map[string]domain.UserScore{
		"alice": {IssueFeatureBugfix: 2, Total: 4},
		"bob":   {},
	}

	for _, e := range Rank(scores) {
		assert.Zero(t, e.PRRate, e.UserID)
	}
}

func TestRankedEntry_ProfileURL(t *testing.T) {
	assert.Equal(t, "https://github.com/octocat", domain.RankedEntry{UserID: "octocat"}.ProfileURL())
}

package scoring

import (
	"testing"

	"github.com/naka-gawa/reposcore/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Report(t *testing.T) {
	records := []domain.ActivityRecord{
		mergedPR("alice", "bug"),
		mergedPR("alice", "bug"),
		countedIssue("alice", "enhancement"),
		mergedPR("bob", "documentation"),
		mergedPR("bob", "typo"),
		countedIssue("bob", "documentation"),
		mergedPR("carol", "bug"),
		{Author: "carol", IsPullRequest: true, PrimaryLabel: "bug"},
		{Author: "", IsPullRequest: true, Merged: true, PrimaryLabel: "bug"},
	}

	report := NewEngine().Report("octo/repo", records)

	assert.Equal(t, "octo/repo", report.Repository)
	require.Len(t, report.Entries, 3)

	// alice: 2*3 + 1*2 = 8, bob: 2 + 1 + 1 = 4, carol: 3
	assert.Equal(t, "alice", report.Entries[0].UserID)
	assert.Equal(t, 8, report.Entries[0].Score.Total)
	assert.Equal(t, 1, report.Entries[0].Rank)
	assert.Equal(t, "bob", report.Entries[1].UserID)
	assert.Equal(t, 4, report.Entries[1].Score.Total)
	assert.Equal(t, "carol", report.Entries[2].UserID)
	assert.Equal(t, 3, report.Entries[2].Rank)

	assert.Equal(t, 3, report.Summary.ParticipantCount)
	assert.InDelta(t, 5.0, report.Summary.Average, 1e-9)
	assert.Equal(t, 8.0, report.Summary.Max)
	assert.Equal(t, 3.0, report.Summary.Min)

	assert.Equal(t, domain.StateSummary{MergedPR: 6, UnmergedPR: 1, OpenIssue: 2}, report.States)
}

func TestEngine_ReportEmpty(t *testing.T) {
	report := NewEngine().Report("octo/empty", nil)

	assert.Empty(t, report.Entries)
	assert.NotNil(t, report.Entries)
	assert.Equal(t, domain.RepoSummary{}, report.Summary)
}

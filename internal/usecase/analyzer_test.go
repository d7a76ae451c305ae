package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/naka-gawa/reposcore/internal/domain"
	"github.com/naka-gawa/reposcore/internal/gateway"
	"github.com/naka-gawa/reposcore/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockFetcher is a mock implementation of the gateway.Fetcher interface.
// It allows us to simulate the behavior of the GitHub gateway without making real API calls.
type mockFetcher struct {
	mock.Mock
}

// FetchActivity is our mock's implementation of the FetchActivity method.
func (m *mockFetcher) FetchActivity(ctx context.Context, repo domain.RepoRef, window domain.DateWindow) ([]domain.ActivityRecord, error) {
	args := m.Called(ctx, repo, window)
	// We need to handle the case where the returned slice is nil (e.g., when an error occurs).
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityRecord), args.Error(1)
}

// FetchRateLimit is the mock's implementation for the quota lookup.
func (m *mockFetcher) FetchRateLimit(ctx context.Context) (domain.RateLimit, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.RateLimit), args.Error(1)
}

var (
	repoA = domain.RepoRef{Owner: "org", Name: "repo-a"}
	repoB = domain.RepoRef{Owner: "org", Name: "repo-b"}
)

// TestAnalyzer_AnalyzeAll uses a table-driven approach to test the analyzer.
func TestAnalyzer_AnalyzeAll(t *testing.T) {
	testCases := []struct {
		name            string
		recordsA        []domain.ActivityRecord
		recordsB        []domain.ActivityRecord
		errA            error
		errB            error
		expectedLeaderA []string
		expectedLeaderB []string
	}{
		{
			name: "happy path - both repositories are scored",
			recordsA: []domain.ActivityRecord{
				{Author: "alice", IsPullRequest: true, Merged: true, PrimaryLabel: "bug"},
				{Author: "bob", IsOpenOrCompleted: true, PrimaryLabel: "documentation"},
			},
			recordsB: []domain.ActivityRecord{
				{Author: "carol", IsPullRequest: true, Merged: true, PrimaryLabel: "typo"},
			},
			expectedLeaderA: []string{"alice", "bob"},
			expectedLeaderB: []string{"carol"},
		},
		{
			name: "error case - one repository fails, the other is still scored",
			recordsB: []domain.ActivityRecord{
				{Author: "carol", IsPullRequest: true, Merged: true, PrimaryLabel: "typo"},
			},
			errA:            gateway.ErrRepositoryNotFound,
			expectedLeaderB: []string{"carol"},
		},
		{
			name:            "empty case - repositories without activity",
			recordsA:        []domain.ActivityRecord{},
			recordsB:        []domain.ActivityRecord{},
			expectedLeaderA: []string{},
			expectedLeaderB: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Arrange: Set up the test for this specific case ---
			ctx := context.Background()
			logger := log.New(io.Discard, "", 0)
			fetcher := new(mockFetcher)
			window := domain.DateWindow{Since: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}

			fetcher.On("FetchActivity", mock.Anything, repoA, window).Return(tc.recordsA, tc.errA)
			fetcher.On("FetchActivity", mock.Anything, repoB, window).Return(tc.recordsB, tc.errB)

			analyzer := NewAnalyzer(fetcher, scoring.NewEngine(), logger, WithWindow(window), WithConcurrency(2))

			// --- Act: Execute the method we want to test ---
			results := analyzer.AnalyzeAll(ctx, []domain.RepoRef{repoA, repoB})

			// --- Assert: Check the results ---
			require.Len(t, results, 2)
			assertResult(t, results[0], repoA, tc.errA, tc.expectedLeaderA)
			assertResult(t, results[1], repoB, tc.errB, tc.expectedLeaderB)

			// Verify that the mock methods were called as expected
			fetcher.AssertExpectations(t)
		})
	}
}

func assertResult(t *testing.T, result Result, repo domain.RepoRef, expectedErr error, expectedUsers []string) {
	t.Helper()
	assert.Equal(t, repo, result.Repo)
	if expectedErr != nil {
		assert.ErrorIs(t, result.Err, expectedErr)
		return
	}
	require.NoError(t, result.Err)
	assert.Equal(t, repo.String(), result.Report.Repository)
	users := make([]string, 0, len(result.Report.Entries))
	for _, e := range result.Report.Entries {
		users = append(users, e.UserID)
	}
	assert.Equal(t, expectedUsers, users)
}

func TestAnalyzer_AnalyzeReportsRateLimit(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("FetchRateLimit", mock.Anything).Return(domain.RateLimit{Limit: 5000, Remaining: 4990}, nil).Twice()
	fetcher.On("FetchActivity", mock.Anything, repoA, domain.DateWindow{}).Return([]domain.ActivityRecord{}, nil)

	var quota bytes.Buffer
	analyzer := NewAnalyzer(fetcher, scoring.NewEngine(), log.New(io.Discard, "", 0),
		WithRateLimitReport(log.New(&quota, "", 0)))

	_, err := analyzer.Analyze(context.Background(), repoA)

	require.NoError(t, err)
	assert.Contains(t, quota.String(), "[org/repo-a] rate limit before analysis: remaining=4990/5000")
	assert.Contains(t, quota.String(), "[org/repo-a] rate limit after analysis")
	fetcher.AssertExpectations(t)
}

func TestAnalyzer_AnalyzeRateLimitLookupFailureIsNotFatal(t *testing.T) {
	fetcher := new(mockFetcher)
	fetcher.On("FetchRateLimit", mock.Anything).Return(domain.RateLimit{}, errors.New("boom"))
	fetcher.On("FetchActivity", mock.Anything, repoA, domain.DateWindow{}).Return([]domain.ActivityRecord{
		{Author: "alice", IsPullRequest: true, Merged: true, PrimaryLabel: "bug"},
	}, nil)

	var quota bytes.Buffer
	analyzer := NewAnalyzer(fetcher, scoring.NewEngine(), log.New(io.Discard, "", 0),
		WithRateLimitReport(log.New(&quota, "", 0)))

	report, err := analyzer.Analyze(context.Background(), repoA)

	require.NoError(t, err)
	assert.Equal(t, 3, report.Entries[0].Score.Total)
	assert.Contains(t, quota.String(), "rate limit lookup failed")
}

// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/naka-gawa/reposcore/internal/domain"
)

const (
	perPage               = 100
	maxSecondaryLimitWait = 1 * time.Hour
	stateOpen             = "open"
	stateReasonCompleted  = "completed"
)

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	// FetchActivity returns every issue and pull request of repo inside window.
	FetchActivity(ctx context.Context, repo domain.RepoRef, window domain.DateWindow) ([]domain.ActivityRecord, error)
	FetchRateLimit(ctx context.Context) (domain.RateLimit, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *log.Logger
	useGraphQL    bool
}

// Option configures a GitHubGateway.
type Option func(*GitHubGateway)

// WithGraphQL fetches activity through the GraphQL API instead of REST.
func WithGraphQL() Option {
	return func(g *GitHubGateway) {
		g.useGraphQL = true
	}
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// An empty token yields an unauthenticated client with the lower anonymous quota.
func NewGitHubGateway(token string, logger *log.Logger, opts ...Option) (*GitHubGateway, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil,
		github_ratelimit.WithSingleSleepLimit(maxSecondaryLimitWait, nil),
		github_ratelimit.WithLimitDetectedCallback(func(cb *github_ratelimit.CallbackContext) {
			if cb.SleepUntil != nil {
				logger.Printf("Secondary rate limit hit, sleeping until %s", cb.SleepUntil.Format(time.RFC3339))
			}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}

	var transport http.RoundTripper = rateLimitWaiter
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		transport = &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		}
	}
	httpClient := &http.Client{Transport: transport}

	g := &GitHubGateway{
		restClient:    github.NewClient(httpClient),
		graphqlClient: githubv4.NewClient(httpClient),
		logger:        logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// FetchActivity fetches the repository's issues and pull requests as activity records.
func (g *GitHubGateway) FetchActivity(ctx context.Context, repo domain.RepoRef, window domain.DateWindow) ([]domain.ActivityRecord, error) {
	if g.useGraphQL {
		return g.fetchActivityGraphQL(ctx, repo, window)
	}
	return g.fetchActivityREST(ctx, repo, window)
}

// fetchActivityREST lists issues with state=all; the issues endpoint also returns
// pull requests, which carry PullRequestLinks.
func (g *GitHubGateway) fetchActivityREST(ctx context.Context, repo domain.RepoRef, window domain.DateWindow) ([]domain.ActivityRecord, error) {
	g.logger.Printf("Fetching issues and pull requests of %s using REST API...", repo)
	opts := &github.IssueListByRepoOptions{
		State:       "all",
		Since:       window.Since,
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	var records []domain.ActivityRecord
	for {
		issues, resp, err := g.restClient.Issues.ListByRepo(ctx, repo.Owner, repo.Name, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list issues of %s with REST API: %w", repo, classifyRESTError(err))
		}
		for _, issue := range issues {
			rec := recordFromIssue(issue)
			if !window.Until.IsZero() && rec.CreatedAt.After(window.Until) {
				continue
			}
			records = append(records, rec)
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		g.logger.Println("  Fetching next page of issues...")
	}
	g.logger.Printf("Completed fetching %d items of %s.", len(records), repo)
	return records, nil
}

func recordFromIssue(issue *github.Issue) domain.ActivityRecord {
	rec := domain.ActivityRecord{
		Author:    issue.GetUser().GetLogin(),
		Number:    issue.GetNumber(),
		Open:      issue.GetState() == stateOpen,
		CreatedAt: issue.GetCreatedAt().Time,
	}
	// Only the first label is considered.
	if len(issue.Labels) > 0 {
		rec.PrimaryLabel = issue.Labels[0].GetName()
	}
	if issue.IsPullRequest() {
		rec.IsPullRequest = true
		rec.Merged = issue.PullRequestLinks.MergedAt != nil
		return rec
	}
	rec.IsOpenOrCompleted = rec.Open || issue.GetStateReason() == stateReasonCompleted
	return rec
}

// FetchRateLimit returns the core REST API quota.
func (g *GitHubGateway) FetchRateLimit(ctx context.Context) (domain.RateLimit, error) {
	limits, _, err := g.restClient.RateLimit.Get(ctx)
	if err != nil {
		return domain.RateLimit{}, fmt.Errorf("failed to fetch rate limit: %w", classifyRESTError(err))
	}
	if limits == nil || limits.Core == nil {
		return domain.RateLimit{}, nil
	}
	return domain.RateLimit{
		Limit:     limits.Core.Limit,
		Remaining: limits.Core.Remaining,
		ResetAt:   limits.Core.Reset.Time,
	}, nil
}

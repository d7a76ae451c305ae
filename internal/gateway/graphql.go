package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/shurcooL/githubv4"
	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/reposcore/internal/domain"
)

type pageInfo struct {
	HasNextPage bool
	EndCursor   githubv4.String
}

// actor is nil for deleted accounts.
type actor struct {
	Login string
}

func (a *actor) login() string {
	if a == nil {
		return ""
	}
	return a.Login
}

// firstLabel only asks for one label, matching the scoring rule.
type firstLabel struct {
	Nodes []struct {
		Name string
	}
}

func (l firstLabel) name() string {
	if len(l.Nodes) == 0 {
		return ""
	}
	return l.Nodes[0].Name
}

// pullRequestsQuery pages through all pull requests of a repository.
type pullRequestsQuery struct {
	Repository struct {
		PullRequests struct {
			PageInfo pageInfo
			Nodes    []struct {
				Number    int
				Author    *actor
				State     string
				Merged    bool
				CreatedAt githubv4.DateTime
				UpdatedAt githubv4.DateTime
				Labels    firstLabel `graphql:"labels(first: 1)"`
			}
		} `graphql:"pullRequests(first: 100, after: $cursor)"`
	} `graphql:"repository(owner: $owner, name: $name)"`
}

// issuesQuery pages through all issues of a repository.
type issuesQuery struct {
	Repository struct {
		Issues struct {
			PageInfo pageInfo
			Nodes    []struct {
				Number      int
				Author      *actor
				State       string
				StateReason string
				CreatedAt   githubv4.DateTime
				UpdatedAt   githubv4.DateTime
				Labels      firstLabel `graphql:"labels(first: 1)"`
			}
		} `graphql:"issues(first: 100, after: $cursor)"`
	} `graphql:"repository(owner: $owner, name: $name)"`
}

// fetchActivityGraphQL fetches pull requests and issues concurrently.
// Both date bounds are applied client-side: since on updatedAt, until on createdAt.
func (g *GitHubGateway) fetchActivityGraphQL(ctx context.Context, repo domain.RepoRef, window domain.DateWindow) ([]domain.ActivityRecord, error) {
	g.logger.Printf("Fetching issues and pull requests of %s using GraphQL API...", repo)

	var prs, issues []domain.ActivityRecord
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		var err error
		prs, err = g.fetchPullRequests(egCtx, repo, window)
		return err
	})

	eg.Go(func() error {
		var err error
		issues, err = g.fetchIssues(egCtx, repo, window)
		return err
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	records := make([]domain.ActivityRecord, 0, len(prs)+len(issues))
	records = append(records, prs...)
	records = append(records, issues...)
	g.logger.Printf("Completed fetching %d items of %s.", len(records), repo)
	return records, nil
}

func (g *GitHubGateway) fetchPullRequests(ctx context.Context, repo domain.RepoRef, window domain.DateWindow) ([]domain.ActivityRecord, error) {
	variables := repoVariables(repo)
	var records []domain.ActivityRecord
	for {
		var q pullRequestsQuery
		if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
			return nil, fmt.Errorf("failed to execute GraphQL query for pull requests of %s: %w", repo, classifyGraphQLError(err))
		}
		for _, pr := range q.Repository.PullRequests.Nodes {
			if !inWindow(window, pr.CreatedAt, pr.UpdatedAt) {
				continue
			}
			records = append(records, domain.ActivityRecord{
				Author:        pr.Author.login(),
				IsPullRequest: true,
				Merged:        pr.Merged,
				PrimaryLabel:  pr.Labels.name(),
				Number:        pr.Number,
				Open:          strings.EqualFold(pr.State, stateOpen),
				CreatedAt:     pr.CreatedAt.Time,
			})
		}
		if !q.Repository.PullRequests.PageInfo.HasNextPage {
			break
		}
		variables["cursor"] = githubv4.NewString(q.Repository.PullRequests.PageInfo.EndCursor)
		g.logger.Println("  Fetching next page of pull requests...")
	}
	return records, nil
}

func (g *GitHubGateway) fetchIssues(ctx context.Context, repo domain.RepoRef, window domain.DateWindow) ([]domain.ActivityRecord, error) {
	variables := repoVariables(repo)
	var records []domain.ActivityRecord
	for {
		var q issuesQuery
		if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
			return nil, fmt.Errorf("failed to execute GraphQL query for issues of %s: %w", repo, classifyGraphQLError(err))
		}
		for _, issue := range q.Repository.Issues.Nodes {
			if !inWindow(window, issue.CreatedAt, issue.UpdatedAt) {
				continue
			}
			open := strings.EqualFold(issue.State, stateOpen)
			records = append(records, domain.ActivityRecord{
				Author:            issue.Author.login(),
				IsOpenOrCompleted: open || strings.EqualFold(issue.StateReason, stateReasonCompleted),
				PrimaryLabel:      issue.Labels.name(),
				Number:            issue.Number,
				Open:              open,
				CreatedAt:         issue.CreatedAt.Time,
			})
		}
		if !q.Repository.Issues.PageInfo.HasNextPage {
			break
		}
		variables["cursor"] = githubv4.NewString(q.Repository.Issues.PageInfo.EndCursor)
		g.logger.Println("  Fetching next page of issues...")
	}
	return records, nil
}

func repoVariables(repo domain.RepoRef) map[string]interface{} {
	return map[string]interface{}{
		"owner":  githubv4.String(repo.Owner),
		"name":   githubv4.String(repo.Name),
		"cursor": (*githubv4.String)(nil),
	}
}

func inWindow(window domain.DateWindow, createdAt, updatedAt githubv4.DateTime) bool {
	if !window.Since.IsZero() && updatedAt.Before(window.Since) {
		return false
	}
	if !window.Until.IsZero() && createdAt.After(window.Until) {
		return false
	}
	return true
}

// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"log"

	"github.com/naka-gawa/reposcore/internal/domain"
	"github.com/naka-gawa/reposcore/internal/gateway"
	"github.com/naka-gawa/reposcore/internal/scoring"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 4

// Result is the outcome for one repository. Exactly one of Report and Err is meaningful.
type Result struct {
	Repo   domain.RepoRef
	Report domain.RepoReport
	Err    error
}

// Analyzer is the use case for scoring repositories.
// It orchestrates fetching activity and running the scoring engine.
type Analyzer struct {
	fetcher     gateway.Fetcher
	engine      *scoring.Engine
	logger      *log.Logger
	window      domain.DateWindow
	concurrency int
	quotaLogger *log.Logger
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithWindow restricts fetched activity to window.
func WithWindow(window domain.DateWindow) AnalyzerOption {
	return func(a *Analyzer) {
		a.window = window
	}
}

// WithConcurrency bounds the number of repositories analysed at once.
func WithConcurrency(n int) AnalyzerOption {
	return func(a *Analyzer) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

// WithRateLimitReport writes the API quota before and after each repository to logger.
func WithRateLimitReport(logger *log.Logger) AnalyzerOption {
	return func(a *Analyzer) {
		a.quotaLogger = logger
	}
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer(fetcher gateway.Fetcher, engine *scoring.Engine, logger *log.Logger, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		fetcher:     fetcher,
		engine:      engine,
		logger:      logger,
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze fetches and scores a single repository.
func (a *Analyzer) Analyze(ctx context.Context, repo domain.RepoRef) (domain.RepoReport, error) {
	a.logRateLimit(ctx, repo, "before")
	records, err := a.fetcher.FetchActivity(ctx, repo, a.window)
	if err != nil {
		return domain.RepoReport{}, err
	}
	a.logRateLimit(ctx, repo, "after")

	report := a.engine.Report(repo.String(), records)
	a.logger.Printf("Usecase: %s scored, %d participants.", repo, report.Summary.ParticipantCount)
	return report, nil
}

// AnalyzeAll scores every repository concurrently. A failing repository only
// sets its own Result.Err; results keep the order of repos.
func (a *Analyzer) AnalyzeAll(ctx context.Context, repos []domain.RepoRef) []Result {
	a.logger.Printf("Usecase: Starting analysis of %d repositories...", len(repos))

	results := make([]Result, len(repos))
	var eg errgroup.Group
	eg.SetLimit(a.concurrency)

	for i, repo := range repos {
		eg.Go(func() error {
			report, err := a.Analyze(ctx, repo)
			results[i] = Result{Repo: repo, Report: report, Err: err}
			if err != nil {
				a.logger.Printf("Usecase: %s failed: %v", repo, err)
			}
			return nil
		})
	}
	_ = eg.Wait()

	a.logger.Println("Usecase: Analysis complete.")
	return results
}

func (a *Analyzer) logRateLimit(ctx context.Context, repo domain.RepoRef, when string) {
	if a.quotaLogger == nil {
		return
	}
	limit, err := a.fetcher.FetchRateLimit(ctx)
	if err != nil {
		a.quotaLogger.Printf("[%s] rate limit lookup failed (%s): %v", repo, when, err)
		return
	}
	a.quotaLogger.Printf("[%s] rate limit %s analysis: remaining=%d/%d, reset=%s",
		repo, when, limit.Remaining, limit.Limit, limit.ResetAt.Local().Format("2006-01-02 15:04:05"))
}

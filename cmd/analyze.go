package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/reposcore/internal/config"
	"github.com/naka-gawa/reposcore/internal/domain"
	"github.com/naka-gawa/reposcore/internal/export"
	"github.com/naka-gawa/reposcore/internal/gateway"
	"github.com/naka-gawa/reposcore/internal/scoring"
	"github.com/naka-gawa/reposcore/internal/usecase"
)

// ErrAnalysisFailed is returned when at least one repository could not be analysed.
var ErrAnalysisFailed = errors.New("analysis failed")

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	errColor  = color.New(color.FgRed)
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze owner/repo [owner/repo...]",
	Short: "Scores the contributors of GitHub repositories",
	Long: `Fetches issues and pull requests of the given repositories, scores every
contributor by label category and writes one leaderboard per repository plus
summary.csv and index.html covering all of them.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringP("output", "o", "output", "Output directory")
	analyzeCmd.Flags().StringSliceP("format", "f", []string{export.FormatCSV, export.FormatTable},
		"Output formats: csv, table, chart, json, yaml, state (repeatable or comma separated)")
	analyzeCmd.Flags().String("since", "", "Only count activity updated on or after this date (YYYY-MM-DD)")
	analyzeCmd.Flags().String("until", "", "Only count activity created on or before this date (YYYY-MM-DD)")
	analyzeCmd.Flags().String("source", config.SourceREST, "Activity source: rest or graphql")
	analyzeCmd.Flags().Int("concurrency", 4, "Number of repositories analysed in parallel")
	analyzeCmd.Flags().Bool("show-api-limit", false, "Print the API quota before and after each repository")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd)

	repos, err := parseRepos(args)
	if err != nil {
		return err
	}

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return err
	}
	window, err := cfg.Window()
	if err != nil {
		return err
	}

	if cfg.Token == "" {
		warnColor.Fprintln(cmd.ErrOrStderr(), "No GitHub token configured, using the anonymous API quota.")
	}

	var gatewayOpts []gateway.Option
	if cfg.Source == config.SourceGraphQL {
		gatewayOpts = append(gatewayOpts, gateway.WithGraphQL())
	}
	githubGateway, err := gateway.NewGitHubGateway(cfg.Token, logger, gatewayOpts...)
	if err != nil {
		return fmt.Errorf("failed to create GitHub gateway: %w", err)
	}

	analyzerOpts := []usecase.AnalyzerOption{
		usecase.WithWindow(window),
		usecase.WithConcurrency(cfg.Concurrency),
	}
	if cfg.ShowAPILimit {
		analyzerOpts = append(analyzerOpts, usecase.WithRateLimitReport(log.New(cmd.ErrOrStderr(), "", 0)))
	}
	engine := scoring.NewEngine(scoring.WithClassifier(cfg.Classifier()))
	analyzer := usecase.NewAnalyzer(githubGateway, engine, logger, analyzerOpts...)

	results := analyzer.AnalyzeAll(cmd.Context(), repos)
	return writeResults(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, results)
}

// parseRepos parses and de-duplicates owner/name arguments, keeping their order.
func parseRepos(args []string) ([]domain.RepoRef, error) {
	seen := make(map[domain.RepoRef]bool, len(args))
	repos := make([]domain.RepoRef, 0, len(args))
	for _, arg := range args {
		repo, err := domain.ParseRepoRef(arg)
		if err != nil {
			return nil, err
		}
		if seen[repo] {
			continue
		}
		seen[repo] = true
		repos = append(repos, repo)
	}
	return repos, nil
}

// writeResults exports every successful report and the batch files, and
// reports failed repositories. Failures of one repository never stop the others.
func writeResults(stdout, stderr io.Writer, cfg *config.Config, results []usecase.Result) error {
	exporters := make([]export.Exporter, 0, len(cfg.Formats))
	for _, format := range cfg.Formats {
		e, err := export.Lookup(format)
		if err != nil {
			return err
		}
		exporters = append(exporters, e)
	}

	var (
		reports []domain.RepoReport
		failed  int
	)
	for _, r := range results {
		if r.Err != nil {
			failed++
			errColor.Fprintf(stderr, "[%s] analysis failed: %v\n", r.Repo, r.Err)
			continue
		}
		repoFailed := false
		for _, e := range exporters {
			path, err := e.Export(r.Report, cfg.Output)
			if err != nil {
				repoFailed = true
				errColor.Fprintf(stderr, "[%s] export failed: %v\n", r.Repo, err)
				continue
			}
			okColor.Fprintf(stdout, "[%s] generated %s\n", r.Repo, path)
		}
		if repoFailed {
			failed++
		}
		reports = append(reports, r.Report)
	}

	if len(reports) > 0 {
		for _, write := range []func(string, []domain.RepoReport) (string, error){export.WriteSummary, export.WriteIndex} {
			path, err := write(cfg.Output, reports)
			if err != nil {
				return err
			}
			okColor.Fprintf(stdout, "generated %s\n", path)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d repositories", ErrAnalysisFailed, failed, len(results))
	}
	return nil
}

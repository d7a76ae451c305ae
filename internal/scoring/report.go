package scoring

import "github.com/naka-gawa/reposcore/internal/domain"

// Engine runs the full scoring pipeline with a given label taxonomy.
type Engine struct {
	classifier *Classifier
}

// Option configures an Engine.
type Option func(*Engine)

// WithClassifier replaces the built-in taxonomy.
func WithClassifier(c *Classifier) Option {
	return func(e *Engine) {
		if c != nil {
			e.classifier = c
		}
	}
}

var defaultEngine = NewEngine()

// NewEngine creates a new Engine instance.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{classifier: defaultClassifier}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Report aggregates, scores, ranks and summarizes the records of one repository.
func (e *Engine) Report(repo string, records []domain.ActivityRecord) domain.RepoReport {
	scores := ScoreAll(e.Aggregate(records))

	list := make([]domain.UserScore, 0, len(scores))
	for _, s := range scores {
		list = append(list, s)
	}

	return domain.RepoReport{
		Repository: repo,
		Entries:    Rank(scores),
		Summary:    Summarize(list),
		States:     CountStates(records),
	}
}

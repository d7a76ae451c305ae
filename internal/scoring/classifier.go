// Package scoring turns classified activity records into a ranked score report.
// Everything in this package is pure and safe for concurrent use.
package scoring

import (
	"strings"

	"github.com/naka-gawa/reposcore/internal/domain"
)

// LabelSet lists additional label names per category.
type LabelSet struct {
	FeatureBugfix []string `mapstructure:"feature_bugfix"`
	Docs          []string `mapstructure:"docs"`
	Typo          []string `mapstructure:"typo"`
}

var defaultLabels = map[string]domain.Category{
	"bug":           domain.CategoryFeatureBugfix,
	"enhancement":   domain.CategoryFeatureBugfix,
	"documentation": domain.CategoryDocs,
	"typo":          domain.CategoryTypo,
}

// Classifier maps label names to categories.
type Classifier struct {
	labels map[string]domain.Category
}

var defaultClassifier = NewClassifier(LabelSet{})

// NewClassifier returns a classifier for the fixed taxonomy extended with extra.
// Extra names never override the built-in labels.
func NewClassifier(extra LabelSet) *Classifier {
	labels := make(map[string]domain.Category, len(defaultLabels))
	add := func(names []string, cat domain.Category) {
		for _, name := range names {
			key := normalizeLabel(name)
			if key == "" {
				continue
			}
			if _, builtin := defaultLabels[key]; builtin {
				continue
			}
			labels[key] = cat
		}
	}
	add(extra.FeatureBugfix, domain.CategoryFeatureBugfix)
	add(extra.Docs, domain.CategoryDocs)
	add(extra.Typo, domain.CategoryTypo)
	for name, cat := range defaultLabels {
		labels[name] = cat
	}
	return &Classifier{labels: labels}
}

// Classify returns the category for label. Unknown and empty labels are unclassified.
func (c *Classifier) Classify(label string) domain.Category {
	return c.labels[normalizeLabel(label)]
}

// Classify uses the built-in taxonomy.
func Classify(label string) domain.Category {
	return defaultClassifier.Classify(label)
}

func normalizeLabel(label string) string {
	return strings.ToLower(label)
}

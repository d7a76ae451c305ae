package scoring

import "github.com/naka-gawa/reposcore/internal/domain"

// tally is the mutable accumulator behind domain.UserActivity.
// It never leaves this file.
type tally struct {
	prFB, prDoc, prTypo int
	isFB, isDoc         int
}

func (t *tally) snapshot() domain.UserActivity {
	return domain.UserActivity{
		PRFeatureBugfix:    t.prFB,
		PRDocs:             t.prDoc,
		PRTypo:             t.prTypo,
		IssueFeatureBugfix: t.isFB,
		IssueDocs:          t.isDoc,
	}
}

func (t *tally) addPR(cat domain.Category) {
	switch cat {
	case domain.CategoryFeatureBugfix:
		t.prFB++
	case domain.CategoryDocs:
		t.prDoc++
	case domain.CategoryTypo:
		t.prTypo++
	}
}

// Typo has no issue counterpart.
func (t *tally) addIssue(cat domain.Category) {
	switch cat {
	case domain.CategoryFeatureBugfix:
		t.isFB++
	case domain.CategoryDocs:
		t.isDoc++
	}
}

// Aggregate folds records into per-contributor activity using the engine's classifier.
// Records without an author are skipped; every other contributor gets an entry,
// even if none of their records counted.
func (e *Engine) Aggregate(records []domain.ActivityRecord) map[string]domain.UserActivity {
	tallies := make(map[string]*tally)
	for _, rec := range records {
		if rec.Author == "" {
			continue
		}
		t, ok := tallies[rec.Author]
		if !ok {
			t = &tally{}
			tallies[rec.Author] = t
		}

		cat := e.classifier.Classify(rec.PrimaryLabel)
		if rec.IsPullRequest {
			if rec.Merged {
				t.addPR(cat)
			}
			continue
		}
		if rec.IsOpenOrCompleted {
			t.addIssue(cat)
		}
	}

	activities := make(map[string]domain.UserActivity, len(tallies))
	for user, t := range tallies {
		activities[user] = t.snapshot()
	}
	return activities
}

// Aggregate folds records using the built-in taxonomy.
func Aggregate(records []domain.ActivityRecord) map[string]domain.UserActivity {
	return defaultEngine.Aggregate(records)
}

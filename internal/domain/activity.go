// Package domain contains the core data structures shared by the
// activity source, the scoring engine and the report exporters.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// ActivityRecord is a single issue or pull request as seen by the scoring engine.
// An empty Author or PrimaryLabel means the value was absent at the source.
type ActivityRecord struct {
	Author            string `json:"author" yaml:"author"`
	IsPullRequest     bool   `json:"is_pull_request" yaml:"is_pull_request"`
	Merged            bool   `json:"merged" yaml:"merged"`
	IsOpenOrCompleted bool   `json:"is_open_or_completed" yaml:"is_open_or_completed"`
	PrimaryLabel      string `json:"primary_label,omitempty" yaml:"primary_label,omitempty"`

	// Descriptive fields. They never influence scores.
	Number    int       `json:"number,omitempty" yaml:"number,omitempty"`
	Open      bool      `json:"open" yaml:"open"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Category is the scoring bucket a label falls into.
type Category int

const (
	CategoryUnclassified Category = iota
	CategoryFeatureBugfix
	CategoryDocs
	CategoryTypo
)

func (c Category) String() string {
	switch c {
	case CategoryFeatureBugfix:
		return "feature_bugfix"
	case CategoryDocs:
		return "docs"
	case CategoryTypo:
		return "typo"
	default:
		return "unclassified"
	}
}

// UserActivity is the frozen per-contributor tally produced by aggregation.
type UserActivity struct {
	PRFeatureBugfix    int `json:"pr_fb" yaml:"pr_fb"`
	PRDocs             int `json:"pr_doc" yaml:"pr_doc"`
	PRTypo             int `json:"pr_typo" yaml:"pr_typo"`
	IssueFeatureBugfix int `json:"is_fb" yaml:"is_fb"`
	IssueDocs          int `json:"is_doc" yaml:"is_doc"`
}

// PRCount is the raw number of counted pull requests.
func (a UserActivity) PRCount() int {
	return a.PRFeatureBugfix + a.PRDocs + a.PRTypo
}

// IssueCount is the raw number of counted issues.
func (a UserActivity) IssueCount() int {
	return a.IssueFeatureBugfix + a.IssueDocs
}

// RepoRef identifies a GitHub repository.
type RepoRef struct {
	Owner string `json:"owner" yaml:"owner"`
	Name  string `json:"name" yaml:"name"`
}

// ParseRepoRef parses an "owner/name" string.
func ParseRepoRef(s string) (RepoRef, error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return RepoRef{}, fmt.Errorf("invalid repository %q: expected owner/name", s)
	}
	return RepoRef{Owner: owner, Name: name}, nil
}

func (r RepoRef) String() string {
	return r.Owner + "/" + r.Name
}

// DateWindow bounds the items fetched from the source. Zero values are unbounded.
type DateWindow struct {
	Since time.Time
	Until time.Time
}

// Contains reports whether t lies inside the window, bounds inclusive.
func (w DateWindow) Contains(t time.Time) bool {
	if !w.Since.IsZero() && t.Before(w.Since) {
		return false
	}
	if !w.Until.IsZero() && t.After(w.Until) {
		return false
	}
	return true
}

// RateLimit is a snapshot of the API quota.
type RateLimit struct {
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"reset_at"`
}

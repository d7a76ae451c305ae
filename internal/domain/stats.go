package domain

const githubProfileBase = "https://github.com/"

// ScoreComponents is one contributor's tally viewed as scoring inputs.
type ScoreComponents struct {
	FeaturePR    int
	BugfixPR     int
	DocsPR       int
	TypoPR       int
	FeatureIssue int
	DocsIssue    int
}

// ScoreBreakdown is the weighted total together with the capped counts.
type ScoreBreakdown struct {
	Total      int
	ValidPR    int
	ValidIssue int
}

// UserScore holds the activity counts and the resulting score for one contributor.
// It is the core domain entity of this application.
type UserScore struct {
	PRFeatureBugfix    int `json:"pr_fb" yaml:"pr_fb"`
	PRDocs             int `json:"pr_doc" yaml:"pr_doc"`
	PRTypo             int `json:"pr_typo" yaml:"pr_typo"`
	IssueFeatureBugfix int `json:"is_fb" yaml:"is_fb"`
	IssueDocs          int `json:"is_doc" yaml:"is_doc"`
	Total              int `json:"total" yaml:"total"`
	ValidPR            int `json:"valid_pr" yaml:"valid_pr"`
	ValidIssue         int `json:"valid_issue" yaml:"valid_issue"`
}

// RankedEntry is one leaderboard row.
type RankedEntry struct {
	Rank   int       `json:"rank" yaml:"rank"`
	UserID string    `json:"user" yaml:"user"`
	Score  UserScore `json:"score" yaml:"score"`
	PRRate float64   `json:"pr_rate" yaml:"pr_rate"`
	ISRate float64   `json:"is_rate" yaml:"is_rate"`
}

// ProfileURL returns the contributor's GitHub profile link.
func (e RankedEntry) ProfileURL() string {
	return githubProfileBase + e.UserID
}

// RepoSummary aggregates the totals of one repository.
type RepoSummary struct {
	ParticipantCount int     `json:"participants" yaml:"participants"`
	Average          float64 `json:"average" yaml:"average"`
	Max              float64 `json:"max" yaml:"max"`
	Min              float64 `json:"min" yaml:"min"`
}

// StateSummary counts items by state regardless of labels.
type StateSummary struct {
	MergedPR    int `json:"merged_prs" yaml:"merged_prs"`
	UnmergedPR  int `json:"unmerged_prs" yaml:"unmerged_prs"`
	OpenIssue   int `json:"open_issues" yaml:"open_issues"`
	ClosedIssue int `json:"closed_issues" yaml:"closed_issues"`
}

// RepoReport is the ranked result for a single repository.
type RepoReport struct {
	Repository string        `json:"repository" yaml:"repository"`
	Entries    []RankedEntry `json:"entries" yaml:"entries"`
	Summary    RepoSummary   `json:"summary" yaml:"summary"`
	States     StateSummary  `json:"states" yaml:"states"`
}

package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strconv"

	"github.com/naka-gawa/reposcore/internal/domain"
)

const (
	summaryFile = "summary.csv"
	indexFile   = "index.html"
)

// WriteSummary writes summary.csv with one row per repository.
func WriteSummary(dir string, reports []domain.RepoReport) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Repo", "Participant", "Average", "Max", "Min"}); err != nil {
		return "", fmt.Errorf("failed to write summary header: %w", err)
	}
	for _, r := range reports {
		s := r.Summary
		row := []string{
			r.Repository,
			strconv.Itoa(s.ParticipantCount),
			fmt.Sprintf("%.1f", s.Average),
			fmt.Sprintf("%.1f", s.Max),
			fmt.Sprintf("%.1f", s.Min),
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("failed to write summary row for %s: %w", r.Repository, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush summary: %w", err)
	}
	return writeBatchFile(dir, summaryFile, buf.Bytes())
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Contribution scores</title>
<style>
body { font-family: sans-serif; margin: 2em; }
.tabs button { padding: .5em 1em; border: 1px solid #ccc; background: #f5f5f5; cursor: pointer; }
.tabs button.active { background: #fff; border-bottom-color: #fff; }
.panel { display: none; border: 1px solid #ccc; padding: 1em; }
.panel.active { display: block; }
table { border-collapse: collapse; }
th, td { padding: .25em .75em; border-bottom: 1px solid #eee; text-align: right; }
td.user { text-align: left; }
</style>
</head>
<body>
<h1>Contribution scores</h1>
<p>Generated {{.Generated}}. Scoring weights: {{.Legend}}</p>
{{- if .Reports}}
<div class="tabs">
{{- range $i, $r := .Reports}}
<button class="{{if eq $i 0}}active{{end}}" onclick="show({{$i}})">{{$r.Repository}}</button>
{{- end}}
</div>
{{- range $i, $r := .Reports}}
<div class="panel{{if eq $i 0}} active{{end}}" id="panel-{{$i}}">
<p>Participants: {{$r.Summary.ParticipantCount}} Avg: {{printf "%.1f" $r.Summary.Average}} Max: {{printf "%.1f" $r.Summary.Max}} Min: {{printf "%.1f" $r.Summary.Min}}</p>
<table>
<tr><th>Rank</th><th>User</th><th>f/b_PR</th><th>doc_PR</th><th>typo</th><th>f/b_issue</th><th>doc_issue</th><th>PR_rate</th><th>IS_rate</th><th>total</th></tr>
{{- range $r.Entries}}
<tr><td>{{.Rank}}</td><td class="user"><a href="{{.ProfileURL}}">{{.UserID}}</a></td><td>{{.Score.PRFeatureBugfix}}</td><td>{{.Score.PRDocs}}</td><td>{{.Score.PRTypo}}</td><td>{{.Score.IssueFeatureBugfix}}</td><td>{{.Score.IssueDocs}}</td><td>{{printf "%.1f" .PRRate}}</td><td>{{printf "%.1f" .ISRate}}</td><td>{{.Score.Total}}</td></tr>
{{- end}}
</table>
</div>
{{- end}}
<script>
function show(n) {
  document.querySelectorAll('.tabs button').forEach((b, i) => b.classList.toggle('active', i === n));
  document.querySelectorAll('.panel').forEach((p, i) => p.classList.toggle('active', i === n));
}
</script>
{{- else}}
<p>No repositories were analyzed.</p>
{{- end}}
</body>
</html>
`))

// WriteIndex writes index.html, one tab per repository leaderboard.
func WriteIndex(dir string, reports []domain.RepoReport) (string, error) {
	var buf bytes.Buffer
	data := struct {
		Generated string
		Legend    string
		Reports   []domain.RepoReport
	}{
		Generated: now().Format(dateTimeLayout),
		Legend:    WeightLegend(),
		Reports:   reports,
	}
	if err := indexTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", indexFile, err)
	}
	return writeBatchFile(dir, indexFile, buf.Bytes())
}

func writeBatchFile(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

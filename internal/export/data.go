package export

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/naka-gawa/reposcore/internal/domain"
)

// JSONExporter writes <repo>.json with the full report.
type JSONExporter struct{}

func (JSONExporter) Export(report domain.RepoReport, dir string) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report to JSON: %w", err)
	}
	return writeReportFile(dir, report.Repository, ".json", append(data, '\n'))
}

// YAMLExporter writes <repo>.yaml with the full report.
type YAMLExporter struct{}

func (YAMLExporter) Export(report domain.RepoReport, dir string) (string, error) {
	data, err := yaml.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("failed to marshal report to YAML: %w", err)
	}
	return writeReportFile(dir, report.Repository, ".yaml", data)
}

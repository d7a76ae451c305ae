// Package export writes ranked repository reports to files.
// Exporters only render what the scoring engine computed; they never re-derive scores.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/naka-gawa/reposcore/internal/domain"
	"github.com/naka-gawa/reposcore/internal/scoring"
)

// Supported output formats.
const (
	FormatCSV   = "csv"
	FormatTable = "table"
	FormatChart = "chart"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatState = "state"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// ErrUnknownFormat is returned by Lookup for unsupported formats.
var ErrUnknownFormat = errors.New("unknown output format")

// now is swapped in tests.
var now = time.Now

// Exporter writes one repository report.
type Exporter interface {
	// Export writes report below dir and returns the written file path.
	Export(report domain.RepoReport, dir string) (string, error)
}

var registry = map[string]Exporter{
	FormatCSV:   CSVExporter{},
	FormatTable: TableExporter{},
	FormatChart: ChartExporter{},
	FormatJSON:  JSONExporter{},
	FormatYAML:  YAMLExporter{},
	FormatState: StateExporter{},
}

// Lookup returns the exporter registered for format.
func Lookup(format string) (Exporter, error) {
	e, ok := registry[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("%w %q (supported: %s)", ErrUnknownFormat, format, strings.Join(Formats(), ", "))
	}
	return e, nil
}

// Formats lists the supported formats in alphabetical order.
func Formats() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WeightLegend describes the scoring weights for report headers.
func WeightLegend() string {
	return fmt.Sprintf("PR_fb*%d, PR_doc*%d, PR_typo*%d, IS_fb*%d, IS_doc*%d",
		scoring.WeightFeaturePR, scoring.WeightDocsPR, scoring.WeightTypoPR,
		scoring.WeightFeatureIssue, scoring.WeightDocsIssue)
}

// fileStem turns "owner/name" into a file-system friendly "owner_name".
func fileStem(repository string) string {
	return strings.ReplaceAll(repository, "/", "_")
}

// createReportFile creates dir/<stem>/<stem><suffix>.
func createReportFile(dir, repository, suffix string) (*os.File, string, error) {
	stem := fileStem(repository)
	repoDir := filepath.Join(dir, stem)
	if err := os.MkdirAll(repoDir, dirPerm); err != nil {
		return nil, "", fmt.Errorf("failed to create output directory %s: %w", repoDir, err)
	}
	path := filepath.Join(repoDir, stem+suffix)
	f, err := os.Create(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f, path, nil
}

// writeReportFile writes data in one go, for exporters that render in memory.
func writeReportFile(dir, repository, suffix string, data []byte) (string, error) {
	f, path, err := createReportFile(dir, repository, suffix)
	if err != nil {
		return "", err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}
	return path, nil
}

func formatRate(rate float64) string {
	return fmt.Sprintf("%.1f", rate)
}

// Package edgecase detects unusual installation layouts from candidate
// configuration paths alone: multiple standard installs, or configs in
// non-standard locations. It is independent of the config loader and
// operates purely on path strings plus existence checks.
package edgecase

import (
	"os"
	"sort"

	"github.com/thoreinstein/mcpdoctor/internal/paths"
)

// Report status values.
const (
	StatusNormal                = "normal"
	StatusMultipleInstallations = "multiple_installations"
	StatusCustomConfig          = "custom_config"
)

// Report describes the installation layout found on disk.
type Report struct {
	Status                string   `json:"status"`
	MultipleInstallations bool     `json:"multipleInstallations"`
	CustomConfigDetected  bool     `json:"customConfigDetected"`
	StandardPaths         []string `json:"standardPaths,omitempty"`
	CustomPaths           []string `json:"customPaths,omitempty"`
	Recommendation        string   `json:"recommendation,omitempty"`
}

// ExistsFunc reports whether a path exists. Injectable for tests.
type ExistsFunc func(path string) bool

// FileExists is the default ExistsFunc, backed by os.Stat.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Detect partitions the existing candidate paths into standard locations
// (per-OS install conventions) and custom ones, and flags the two edge
// cases. Multiple standard installs take precedence over custom configs.
func Detect(candidatePaths []string, exists ExistsFunc) *Report {
	if exists == nil {
		exists = FileExists
	}

	report := &Report{Status: StatusNormal}
	for _, path := range candidatePaths {
		if !exists(path) {
			continue
		}
		if paths.IsStandardLocation(path) {
			report.StandardPaths = append(report.StandardPaths, path)
		} else {
			report.CustomPaths = append(report.CustomPaths, path)
		}
	}
	sort.Strings(report.StandardPaths)
	sort.Strings(report.CustomPaths)

	switch {
	case len(report.StandardPaths) >= 2:
		report.Status = StatusMultipleInstallations
		report.MultipleInstallations = true
		report.Recommendation = "Multiple standard configuration files exist; consolidate your mcpServers entries into one file and remove the others, otherwise edits may land in a file Claude Desktop never reads."
	case len(report.CustomPaths) > 0:
		report.Status = StatusCustomConfig
		report.CustomConfigDetected = true
		report.Recommendation = "A configuration file was found outside the standard location; verify Claude Desktop is actually reading it and that the file is accessible to your user."
	}

	return report
}

// Package settings loads faultline configuration from
// .faultline/settings.yaml.
//
// Settings tune the analysis without touching the fault tree text itself:
// the cut set term budget, report precision, and whether figures are
// rendered at all.
package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultSignificantFigures is the report precision used when no settings
// file overrides it.
const DefaultSignificantFigures = 4

// Settings holds faultline configuration from .faultline/settings.yaml.
type Settings struct {
	Analysis Analysis `yaml:"analysis"`
	Report   Report   `yaml:"report"`
	Figures  Figures  `yaml:"figures"`
}

// Analysis tunes cut set computation.
type Analysis struct {
	// TermLimit caps how many candidate terms a single AND may generate
	// before minimization. Zero means no cap.
	TermLimit int `yaml:"term_limit"`
}

// Report tunes the tabular output.
type Report struct {
	// SignificantFigures is the display precision for quantities.
	// Zero means the default of 4.
	SignificantFigures int `yaml:"significant_figures"`
}

// Figures tunes the SVG output.
type Figures struct {
	// Skip disables figure rendering entirely.
	Skip bool `yaml:"skip"`
}

// Load reads .faultline/settings.yaml relative to root.
// Returns nil (not an error) if the file does not exist.
func Load(root string) (*Settings, error) {
	path := filepath.Join(root, ".faultline", "settings.yaml")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	return &s, nil
}

// TermLimit returns the configured cut set term budget, zero when unlimited.
// Safe to call on a nil *Settings receiver.
func (s *Settings) TermLimit() int {
	if s == nil {
		return 0
	}
	return s.Analysis.TermLimit
}

// SignificantFigures returns the configured report precision.
// Safe to call on a nil *Settings receiver.
func (s *Settings) SignificantFigures() int {
	if s == nil || s.Report.SignificantFigures == 0 {
		return DefaultSignificantFigures
	}
	return s.Report.SignificantFigures
}

// SkipFigures reports whether figure rendering is disabled.
// Safe to call on a nil *Settings receiver.
func (s *Settings) SkipFigures() bool {
	if s == nil {
		return false
	}
	return s.Figures.Skip
}

package settings

// settings_test.go — Tests for settings loading and defaulting.

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, ".faultline")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(dir, "settings.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	return root
}

func TestLoadMissingFile(t *testing.T) {
	s, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s != nil {
		t.Errorf("Load = %+v, want nil for a missing file", s)
	}
}

func TestLoad(t *testing.T) {
	root := writeSettings(t, ""+
		"analysis:\n"+
		"  term_limit: 100000\n"+
		"report:\n"+
		"  significant_figures: 3\n"+
		"figures:\n"+
		"  skip: true\n")
	s, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := s.TermLimit(); got != 100000 {
		t.Errorf("TermLimit = %d, want 100000", got)
	}
	if got := s.SignificantFigures(); got != 3 {
		t.Errorf("SignificantFigures = %d, want 3", got)
	}
	if !s.SkipFigures() {
		t.Error("SkipFigures = false, want true")
	}
}

func TestLoadMalformed(t *testing.T) {
	root := writeSettings(t, "analysis: [not a mapping\n")
	if _, err := Load(root); err == nil {
		t.Error("Load succeeded on malformed YAML")
	}
}

// TestNilDefaults checks that every accessor works on the nil settings a
// missing file produces.
func TestNilDefaults(t *testing.T) {
	var s *Settings
	if got := s.TermLimit(); got != 0 {
		t.Errorf("TermLimit = %d, want 0", got)
	}
	if got := s.SignificantFigures(); got != DefaultSignificantFigures {
		t.Errorf("SignificantFigures = %d, want %d", got, DefaultSignificantFigures)
	}
	if s.SkipFigures() {
		t.Error("SkipFigures = true, want false")
	}
}

func TestPartialSettings(t *testing.T) {
	root := writeSettings(t, "analysis:\n  term_limit: 50\n")
	s, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := s.SignificantFigures(); got != DefaultSignificantFigures {
		t.Errorf("SignificantFigures = %d, want the default %d", got, DefaultSignificantFigures)
	}
	if got := s.TermLimit(); got != 50 {
		t.Errorf("TermLimit = %d, want 50", got)
	}
}

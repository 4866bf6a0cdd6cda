// Package outdir manages the output directory hierarchy of an analysis.
//
// Directory layout:
//
//	<input>.out/
//	    events.tsv               # all declared events
//	    gates.tsv                # all declared gates
//	    cut-sets/<gate>.tsv      # minimal cut sets per gate
//	    contributions/<gate>.tsv # per-event contributions per gate
//	    figures/<gate>.svg       # one figure per top or paged gate
//	    figures/index.html       # two-way object/figure lookup
package outdir

import (
	"fmt"
	"os"
	"path/filepath"
)

// Dir is the output directory for one analysed input file.
type Dir struct {
	Path string
}

// For returns the output directory belonging to an input file, named by
// appending ".out" to its path.
func For(inputPath string) Dir {
	return Dir{Path: inputPath + ".out"}
}

// Recreate replaces the directory and the named subdirectories with empty
// ones. Whatever occupies their paths first, file or directory, is removed,
// so stale artifacts from a previous run never survive.
func (d Dir) Recreate(subdirs ...string) error {
	if err := os.RemoveAll(d.Path); err != nil {
		return fmt.Errorf("remove %s: %w", d.Path, err)
	}
	if err := os.MkdirAll(d.Path, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", d.Path, err)
	}
	for _, sub := range subdirs {
		path := filepath.Join(d.Path, sub)
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
	}
	return nil
}

// Join resolves a path inside the directory.
func (d Dir) Join(parts ...string) string {
	return filepath.Join(append([]string{d.Path}, parts...)...)
}

// WriteFile writes one artifact inside the directory.
func (d Dir) WriteFile(name string, data []byte) error {
	path := d.Join(name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

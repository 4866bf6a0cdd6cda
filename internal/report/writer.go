package report

// writer.go — TSV serialization and artifact layout.

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"faultline/internal/outdir"
	"faultline/internal/tree"
)

// WriteTSV serializes the table as tab-separated values, header row first.
func (t Table) WriteTSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	if err := cw.Write(t.FieldNames); err != nil {
		return err
	}
	return cw.WriteAll(t.Rows)
}

// WriteAll writes events.tsv, gates.tsv, and the per-gate cut-sets/ and
// contributions/ tables into the output directory. The per-gate files are
// independent, so they are written concurrently.
func WriteAll(dir outdir.Dir, ft *tree.FaultTree, significantFigures int) error {
	if err := writeTable(dir, "events.tsv", EventsTable(ft, significantFigures)); err != nil {
		return err
	}
	if err := writeTable(dir, "gates.tsv", GatesTable(ft, significantFigures)); err != nil {
		return err
	}

	var group errgroup.Group
	for id, table := range CutSetTables(ft, significantFigures) {
		group.Go(func() error {
			return writeTable(dir, filepath.Join("cut-sets", id+".tsv"), table)
		})
	}
	for id, table := range ContributionTables(ft, significantFigures) {
		group.Go(func() error {
			return writeTable(dir, filepath.Join("contributions", id+".tsv"), table)
		})
	}
	return group.Wait()
}

func writeTable(dir outdir.Dir, name string, table Table) error {
	var buf bytes.Buffer
	if err := table.WriteTSV(&buf); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return dir.WriteFile(name, buf.Bytes())
}

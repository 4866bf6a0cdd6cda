package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"faultline/internal/outdir"
	"faultline/internal/tree"
)

const sampleText = "" +
	"- time_unit: h\n" +
	"\n" +
	"Event: leak_starts\n" +
	"- label: Leak starts\n" +
	"- rate: 2e-4\n" +
	"\n" +
	"Event: alarm_fails\n" +
	"- probability: 0.05\n" +
	"\n" +
	"Event: spare_event\n" +
	"- probability: 0.5\n" +
	"\n" +
	"Gate: unmitigated_leak\n" +
	"- label: Unmitigated leak\n" +
	"- type: AND\n" +
	"- inputs: leak_starts, alarm_fails\n"

func sampleTree(t *testing.T) *tree.FaultTree {
	t.Helper()
	ft, err := tree.Build(sampleText, tree.Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return ft
}

func TestEventsTable(t *testing.T) {
	table := EventsTable(sampleTree(t), 4)
	want := [][]string{
		{"alarm_fails", "True", "probability", "0.05", "1", ""},
		{"leak_starts", "True", "rate", "2E-4", "/h", "Leak starts"},
		{"spare_event", "False", "probability", "0.5", "1", ""},
	}
	if diff := cmp.Diff(want, table.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestGatesTable(t *testing.T) {
	table := GatesTable(sampleTree(t), 4)
	want := [][]string{
		{
			"unmitigated_leak", "True", "False", "rate", "1E-5", "/h",
			"AND", "leak_starts,alarm_fails", "Unmitigated leak",
		},
	}
	if diff := cmp.Diff(want, table.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestCutSetTables(t *testing.T) {
	tables := CutSetTables(sampleTree(t), 4)
	want := [][]string{
		{"rate", "1E-5", "/h", "leak_starts.alarm_fails", "2"},
	}
	if diff := cmp.Diff(want, tables["unmitigated_leak"].Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestContributionTables(t *testing.T) {
	tables := ContributionTables(sampleTree(t), 4)
	want := [][]string{
		{"alarm_fails", "rate", "1E-5", "/h", "1"},
		{"leak_starts", "rate", "1E-5", "/h", "1"},
		{"spare_event", "rate", "0", "/h", "0"},
	}
	if diff := cmp.Diff(want, tables["unmitigated_leak"].Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteTSV(t *testing.T) {
	table := Table{
		FieldNames: []string{"id", "label"},
		Rows:       [][]string{{"a", "first"}, {"b", "second"}},
	}
	var buf bytes.Buffer
	if err := table.WriteTSV(&buf); err != nil {
		t.Fatalf("WriteTSV: %v", err)
	}
	want := "id\tlabel\na\tfirst\nb\tsecond\n"
	if got := buf.String(); got != want {
		t.Errorf("WriteTSV = %q, want %q", got, want)
	}
}

func TestWriteAll(t *testing.T) {
	ft := sampleTree(t)
	dir := outdir.Dir{Path: filepath.Join(t.TempDir(), "sample.txt.out")}
	if err := dir.Recreate("cut-sets", "contributions"); err != nil {
		t.Fatalf("Recreate: %v", err)
	}
	if err := WriteAll(dir, ft, 4); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}

	for _, name := range []string{
		"events.tsv",
		"gates.tsv",
		filepath.Join("cut-sets", "unmitigated_leak.tsv"),
		filepath.Join("contributions", "unmitigated_leak.tsv"),
	} {
		if _, err := os.Stat(dir.Join(name)); err != nil {
			t.Errorf("missing artifact %s: %v", name, err)
		}
	}

	data, err := os.ReadFile(dir.Join("events.tsv"))
	if err != nil {
		t.Fatalf("read events.tsv: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("id\tis_used\t")) {
		t.Errorf("events.tsv starts with %q, want the header row", firstLine(data))
	}
}

func firstLine(data []byte) []byte {
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return data[:i]
	}
	return data
}

package figure

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"faultline/internal/tree"
)

func TestEscapeXML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"plain", "plain"},
		{"a < b > c", "a &lt; b &gt; c"},
		{"AB & C", "AB &amp; C"},
		{"&amp;", "&amp;"},
		{"&lt;kept&gt;", "&lt;kept&gt;"},
		{"&#123;", "&#123;"},
		{"&#x1F600;", "&#x1F600;"},
		{"&CounterClockwiseContourIntegral;", "&CounterClockwiseContourIntegral;"},
		{"&bogus", "&amp;bogus"},
		{"& loose;", "&amp; loose;"},
		{"&#12345678;", "&amp;#12345678;"},
		{"tail&", "tail&amp;"},
	}
	for _, tc := range tests {
		if got := EscapeXML(tc.in); got != tc.want {
			t.Errorf("EscapeXML(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"short line fits", "pump fails", 16, []string{"pump fails"}},
		{
			"greedy fill",
			"the quick brown fox jumps",
			10,
			[]string{"the quick", "brown fox", "jumps"},
		},
		{
			"long word broken",
			"supercalifragilistic",
			8,
			[]string{"supercal", "ifragili", "stic"},
		},
		{
			"whitespace collapsed",
			"  a   b  ",
			5,
			[]string{"a b"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, wrap(tc.text, tc.width)); diff != "" {
				t.Errorf("wrap mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

const figureSample = "" +
	"Event: A\n" +
	"- label: Motor seized\n" +
	"- probability: 0.5\n" +
	"\n" +
	"Event: B\n" +
	"- probability: 0.25\n" +
	"\n" +
	"Gate: Detail\n" +
	"- is_paged: True\n" +
	"- type: OR\n" +
	"- inputs: A, B\n" +
	"\n" +
	"Gate: Top\n" +
	"- type: AND\n" +
	"- inputs: A, Detail\n"

func figureTree(t *testing.T) *tree.FaultTree {
	t.Helper()
	ft, err := tree.Build(figureSample, tree.Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return ft
}

func TestFigures(t *testing.T) {
	figures := Figures(figureTree(t))
	for _, want := range []string{"Top", "Detail"} {
		if _, ok := figures[want]; !ok {
			t.Errorf("no figure for %s", want)
		}
	}
	if len(figures) != 2 {
		t.Errorf("figure count = %d, want 2", len(figures))
	}
}

func TestFigureOccurrences(t *testing.T) {
	figures := Figures(figureTree(t))
	want := map[string]bool{"A": true, "Detail": true}
	if diff := cmp.Diff(want, figures["Top"].OccurrenceIDs); diff != "" {
		t.Errorf("Top occurrences mismatch (-want +got):\n%s", diff)
	}
	// B hides behind the paged Detail gate in Top's figure.
	if figures["Top"].OccurrenceIDs["B"] {
		t.Error("B should not appear in Top's figure")
	}
	if !figures["Detail"].OccurrenceIDs["B"] {
		t.Error("B should appear in Detail's own figure")
	}
}

func TestFigureSVG(t *testing.T) {
	figures := Figures(figureTree(t))
	svg := figures["Top"].SVG()

	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`xmlns="http://www.w3.org/2000/svg"`,
		">Top</text>",
		">A</text>",
		">Detail</text>",
		">Motor seized</text>",
		"<circle",  // event symbol
		"<polygon", // collapsed paged gate
		"Q = 0.5",  // A absorbs A.B and A.Detail collapses to A
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG does not contain %q", want)
		}
	}
	if strings.Contains(svg, ">B</text>") {
		t.Error("SVG shows B despite the paged boundary")
	}

	// Two leaf cells side by side under the top cell.
	if !strings.Contains(svg, `viewBox="-10 -10 260 440"`) {
		t.Errorf("unexpected viewBox in %q", firstLine(svg))
	}
}

func TestFigureSVGBoundedQuantity(t *testing.T) {
	svg := Figures(figureTree(t))["Detail"].SVG()
	// Detail has two cut sets, so its quantity is a rare-event bound.
	if !strings.Contains(svg, "≤") {
		t.Error("multi cut set gate should show a bounded quantity")
	}
}

func TestIndexHTML(t *testing.T) {
	figures := Figures(figureTree(t))
	html := IndexHTML(figures, "sample.txt.out/figures")

	for _, want := range []string{
		"<title>Index of `sample.txt.out/figures/`</title>",
		`<a href="Top.svg"><code>Top.svg</code></a>`,
		`<a href="Detail.svg"><code>Detail.svg</code></a>`,
		"<code>A</code>",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("index does not contain %q", want)
		}
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// Package figure renders fault trees as standalone SVG drawings, one figure
// per top gate and per paged gate, plus an HTML index relating figures to
// the objects they contain.
package figure

import (
	"fmt"

	"faultline/internal/tree"
)

const maxSignificantFigures = 4

const figureMargin = 10

// Figure is the drawable tree hanging from one gate.
type Figure struct {
	topNode *node

	// OccurrenceIDs are the other objects appearing in this figure, not
	// counting the figure's own gate.
	OccurrenceIDs map[string]bool
}

// New builds the figure for the gate with the given id. Paged gates among
// the descendants are drawn as collapsed triangles; their own figures show
// the detail.
func New(ft *tree.FaultTree, id string) *Figure {
	topNode := newNode(ft, id, nil)
	topNode.position(topNode.width/2, nodeHeight/2)

	implicated := make(map[string]bool)
	topNode.implicatedIDs(implicated)
	delete(implicated, id)

	return &Figure{topNode: topNode, OccurrenceIDs: implicated}
}

// Figures builds one figure per top gate and per paged gate.
func Figures(ft *tree.FaultTree) map[string]*Figure {
	figures := make(map[string]*Figure)
	for _, gate := range ft.Gates {
		if gate.IsTop || gate.IsPaged {
			figures[gate.ID] = New(ft, gate.ID)
		}
	}
	return figures
}

// SVG renders the figure as a standalone SVG document.
func (f *Figure) SVG() string {
	left := -figureMargin
	top := -figureMargin
	width := f.topNode.width + 2*figureMargin
	height := f.topNode.height + 2*figureMargin

	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg viewBox="%d %d %d %d" xmlns="http://www.w3.org/2000/svg">
<style>
circle, path, polygon, rect {
  fill: lightyellow;
}
circle, path, polygon, polyline, rect {
  stroke: black;
  stroke-width: 1.3;
}
polyline {
  fill: none;
}
text {
  dominant-baseline: middle;
  font-family: Consolas, Cousine, "Courier New", monospace;
  font-size: %dpx;
  text-anchor: middle;
}
</style>
%s
</svg>
`, left, top, width, height, defaultFontSize, f.topNode.svgElements())
}

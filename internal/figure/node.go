package figure

// node.go — recursive layout and SVG emission for one box of a figure.
//
// Each node is a fixed-size cell: label box, id box, symbol, quantity box,
// stacked vertically. A node with inputs is as wide as the sum of its input
// subtrees, and the inputs hang from a connector bus below the symbol.

import (
	"fmt"
	"math"
	"strings"

	"faultline/internal/algebra"
	"faultline/internal/format"
	"faultline/internal/tree"
)

type symbolKind int

const (
	symbolNull symbolKind = iota
	symbolOR
	symbolAND
	symbolEvent
	symbolPaged
)

const (
	nodeWidth  = 120
	nodeHeight = 210

	defaultFontSize = 10
	lineSpacing     = 1.3

	labelBoxYOffset      = -65
	labelBoxWidth        = 108
	labelBoxHeight       = 70
	labelBoxTargetRatio  = 5.4 // line length divided by line count
	labelMinLineLength   = 16

	idBoxYOffset = -13
	idBoxWidth   = 108
	idBoxHeight  = 24

	symbolYOffset        = 45
	symbolSlotsHalfWidth = 30

	connectorBusYOffset    = 95
	connectorBusHalfHeight = 10

	orApexHeight = 38  // tip, above centre
	orNeckHeight = -10 // ears, above centre
	orBodyHeight = 36  // toes, below centre
	orSlantDrop  = 2   // control points, below apex
	orSlantRun   = 6   // control points, beside apex
	orSlingRise  = 35  // control points, above toes
	orGroinRise  = 30  // control point, between toes
	orHalfWidth  = 33

	andNeckHeight = 6  // ears, above centre
	andBodyHeight = 34 // toes, below centre
	andSlingRise  = 42 // control points, above toes
	andHalfWidth  = 32

	eventCircleRadius = 38

	pagedApexHeight = 36 // tip, above centre
	pagedBodyHeight = 32 // toes, below centre
	pagedHalfWidth  = 40

	quantityBoxYOffset = 45
	quantityBoxWidth   = 108
	quantityBoxHeight  = 24
)

// node is one cell of a figure, instantiated recursively over the inputs of
// its object.
type node struct {
	id    string
	label string

	kind     algebra.QuantityKind
	quantity float64
	bounded  bool // quantity is an upper bound, from multiple cut sets

	symbol symbolKind
	inputs []*node

	timeUnit string

	width  int
	height int
	x      int
	y      int
}

// newNode builds the subtree hanging from the object with the given id.
// Paged gates collapse to a leaf triangle everywhere except at the top of
// their own figure, marked by a nil parent.
func newNode(ft *tree.FaultTree, id string, parent *node) *node {
	n := &node{id: id, timeUnit: ft.TimeUnit}

	if event, ok := ft.EventByID[id]; ok {
		n.label = event.Label
		n.kind = event.Kind
		n.quantity = event.Value
		n.symbol = symbolEvent
	} else {
		gate := ft.GateByID[id]
		n.label = gate.Label
		n.kind = gate.Tome.Kind
		n.quantity = gate.Quantity
		n.bounded = len(gate.Tome.Writs) > 1

		var inputIDs []string
		switch {
		case gate.IsPaged && parent != nil:
			n.symbol = symbolPaged
		case len(gate.InputIDs) == 1:
			n.symbol = symbolNull
			inputIDs = gate.InputIDs
		case gate.Type == tree.GateOR:
			n.symbol = symbolOR
			inputIDs = gate.InputIDs
		default:
			n.symbol = symbolAND
			inputIDs = gate.InputIDs
		}
		for _, inputID := range inputIDs {
			n.inputs = append(n.inputs, newNode(ft, inputID, n))
		}
	}

	if len(n.inputs) > 0 {
		maxHeight := 0
		for _, input := range n.inputs {
			n.width += input.width
			if input.height > maxHeight {
				maxHeight = input.height
			}
		}
		n.height = nodeHeight + maxHeight
	} else {
		n.width = nodeWidth
		n.height = nodeHeight
	}
	return n
}

// position assigns coordinates top-down, centring each input subtree within
// the width allotted to it.
func (n *node) position(x, y int) {
	n.x = x
	n.y = y
	widthBefore := 0
	for _, input := range n.inputs {
		offset := -n.width/2 + widthBefore + input.width/2
		input.position(n.x+offset, n.y+nodeHeight)
		widthBefore += input.width
	}
}

// implicatedIDs collects every object id appearing in the subtree.
func (n *node) implicatedIDs(into map[string]bool) {
	into[n.id] = true
	for _, input := range n.inputs {
		input.implicatedIDs(into)
	}
}

func (n *node) svgElements() string {
	elements := []string{
		n.labelSymbolConnector(),
		n.symbolInputConnectors(),
		n.labelRectangle(),
		n.labelTexts(),
		n.idRectangle(),
		n.idText(),
		n.symbolElement(),
		n.quantityRectangle(),
		n.quantityText(),
	}
	for _, input := range n.inputs {
		elements = append(elements, input.svgElements())
	}
	return strings.Join(elements, "\n")
}

func (n *node) labelSymbolConnector() string {
	labelMiddle := n.y - labelBoxHeight/2 + labelBoxYOffset
	symbolMiddle := n.y + symbolYOffset
	return fmt.Sprintf(`<polyline points="%d,%d %d,%d"/>`,
		n.x, labelMiddle, n.x, symbolMiddle)
}

func (n *node) symbolInputConnectors() string {
	if len(n.inputs) == 0 {
		return ""
	}

	symbolMiddle := n.y + symbolYOffset
	busMiddle := n.y + connectorBusYOffset

	var leftNumbers, rightNumbers []int
	for i, input := range n.inputs {
		if input.x < n.x {
			leftNumbers = append(leftNumbers, i+1)
		} else if input.x > n.x {
			rightNumbers = append(rightNumbers, i+1)
		}
	}

	var polylines []string
	for i, input := range n.inputs {
		number := i + 1
		slotBias := 2*float64(number)/float64(1+len(n.inputs)) - 1
		slotX := int(math.Round(float64(n.x) + slotBias*symbolSlotsHalfWidth))

		busBias := 0.0
		if at := indexOf(leftNumbers, number); at >= 0 {
			busBias = 2*float64(at+1)/float64(1+len(leftNumbers)) - 1
		} else if at := indexOf(rightNumbers, number); at >= 0 {
			busBias = 1 - 2*float64(at+1)/float64(1+len(rightNumbers))
		}
		busY := int(math.Round(float64(busMiddle) + busBias*connectorBusHalfHeight))

		inputLabelMiddle := input.y + labelBoxYOffset
		polylines = append(polylines, fmt.Sprintf(
			`<polyline points="%d,%d %d,%d %d,%d %d,%d"/>`,
			slotX, symbolMiddle,
			slotX, busY,
			input.x, busY,
			input.x, inputLabelMiddle,
		))
	}
	return strings.Join(polylines, "\n")
}

func indexOf(numbers []int, number int) int {
	for i, n := range numbers {
		if n == number {
			return i
		}
	}
	return -1
}

func (n *node) labelRectangle() string {
	return fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d"/>`,
		n.x-labelBoxWidth/2, n.y-labelBoxHeight/2+labelBoxYOffset,
		labelBoxWidth, labelBoxHeight)
}

// labelTexts wraps the label into lines near the box's target aspect ratio,
// shrinking the font when the longest line still overflows.
func (n *node) labelTexts() string {
	if n.label == "" {
		return ""
	}
	middle := n.y + labelBoxYOffset

	targetLineLength := int(math.Round(math.Sqrt(labelBoxTargetRatio * float64(len(n.label)))))
	if targetLineLength < labelMinLineLength {
		targetLineLength = labelMinLineLength
	}
	lines := wrap(n.label, targetLineLength)

	maxLineLength := 0
	for _, line := range lines {
		if len(line) > maxLineLength {
			maxLineLength = len(line)
		}
	}
	scale := math.Min(1, labelMinLineLength/float64(maxLineLength))
	fontSize := scale * defaultFontSize
	style := fmt.Sprintf("font-size: %spx", format.Blunt(fontSize, 1))

	var texts []string
	for i, line := range lines {
		bias := float64(i+1) - float64(1+len(lines))/2
		lineMiddle := format.Blunt(float64(middle)+bias*fontSize*lineSpacing, 1)
		texts = append(texts, fmt.Sprintf(
			`<text x="%d" y="%s" style="%s">%s</text>`,
			n.x, lineMiddle, style, EscapeXML(line)))
	}
	return strings.Join(texts, "\n")
}

func (n *node) idRectangle() string {
	return fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d"/>`,
		n.x-idBoxWidth/2, n.y-idBoxHeight/2+idBoxYOffset,
		idBoxWidth, idBoxHeight)
}

func (n *node) idText() string {
	return fmt.Sprintf(`<text x="%d" y="%d">%s</text>`,
		n.x, n.y+idBoxYOffset, EscapeXML(n.id))
}

func (n *node) symbolElement() string {
	switch n.symbol {
	case symbolOR:
		return n.orSymbol()
	case symbolAND:
		return n.andSymbol()
	case symbolEvent:
		return n.eventSymbol()
	case symbolPaged:
		return n.pagedSymbol()
	}
	return ""
}

func (n *node) orSymbol() string {
	apexX := n.x
	apexY := n.y - orApexHeight + symbolYOffset

	leftX := n.x - orHalfWidth
	rightX := n.x + orHalfWidth

	earY := n.y - orNeckHeight + symbolYOffset
	toeY := n.y + orBodyHeight + symbolYOffset

	leftSlantX := apexX - orSlantRun
	rightSlantX := apexX + orSlantRun
	slantY := apexY + orSlantDrop

	slingY := earY - orSlingRise

	groinY := toeY - orGroinRise

	commands := fmt.Sprintf(
		"M%d,%d C%d,%d %d,%d %d,%d L%d,%d Q%d,%d %d,%d L%d,%d C%d,%d %d,%d %d,%d",
		apexX, apexY,
		leftSlantX, slantY, leftX, slingY, leftX, earY,
		leftX, toeY,
		n.x, groinY, rightX, toeY,
		rightX, earY,
		rightX, slingY, rightSlantX, slantY, apexX, apexY,
	)
	return fmt.Sprintf(`<path d="%s"/>`, commands)
}

func (n *node) andSymbol() string {
	leftX := n.x - andHalfWidth
	rightX := n.x + andHalfWidth

	earY := n.y - andNeckHeight + symbolYOffset
	toeY := n.y + andBodyHeight + symbolYOffset

	slingY := earY - andSlingRise

	commands := fmt.Sprintf(
		"M%d,%d L%d,%d L%d,%d C%d,%d %d,%d %d,%d L%d,%d",
		leftX, toeY,
		rightX, toeY,
		rightX, earY,
		rightX, slingY, leftX, slingY, leftX, earY,
		leftX, toeY,
	)
	return fmt.Sprintf(`<path d="%s"/>`, commands)
}

func (n *node) eventSymbol() string {
	return fmt.Sprintf(`<circle cx="%d" cy="%d" r="%d"/>`,
		n.x, n.y+symbolYOffset, eventCircleRadius)
}

func (n *node) pagedSymbol() string {
	apexY := n.y - pagedApexHeight + symbolYOffset
	toeY := n.y + pagedBodyHeight + symbolYOffset
	return fmt.Sprintf(`<polygon points="%d,%d %d,%d %d,%d"/>`,
		n.x, apexY, n.x-pagedHalfWidth, toeY, n.x+pagedHalfWidth, toeY)
}

func (n *node) quantityRectangle() string {
	return fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d"/>`,
		n.x-quantityBoxWidth/2, n.y-quantityBoxHeight/2+quantityBoxYOffset,
		quantityBoxWidth, quantityBoxHeight)
}

// quantityText renders "Q = 0.5" style content: Q for probabilities, w for
// rates, with ≤ instead of = when the quantity is a rare-event upper bound.
func (n *node) quantityText() string {
	lhs := "Q"
	if n.kind == algebra.Rate {
		lhs = "w"
	}
	relation := "="
	if n.bounded {
		relation = "≤"
	}

	unit := ""
	if n.kind == algebra.Rate {
		if n.timeUnit == "" {
			unit = "(unspecified)"
		} else {
			unit = "/" + n.timeUnit
		}
	}
	content := fmt.Sprintf("%s %s %s%s",
		lhs, relation, format.Dull(n.quantity, maxSignificantFigures), unit)
	return fmt.Sprintf(`<text x="%d" y="%d">%s</text>`,
		n.x, n.y+quantityBoxYOffset, EscapeXML(content))
}

// wrap splits text into greedy word-wrapped lines of at most width
// characters, breaking any single word longer than the whole line.
func wrap(text string, width int) []string {
	var lines []string
	line := ""
	for _, word := range strings.Fields(text) {
		for len(word) > width {
			if line != "" {
				lines = append(lines, line)
				line = ""
			}
			lines = append(lines, word[:width])
			word = word[width:]
		}
		if word == "" {
			continue
		}
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) <= width:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

package tree

// event.go — the Event declaration model.
//
// Events are assembled line by line by the parser through an eventDraft,
// which tracks the source line of every set property so that a re-set can
// point back at the original. The draft freezes into an Event at the
// blank-line boundary, once its required quantity is present.

import (
	"math"
	"strconv"

	"faultline/internal/algebra"
)

// Event is a frozen basic event: a leaf of the fault tree carrying either a
// probability or a rate.
type Event struct {
	ID    string
	Index int

	Label   string
	Comment string

	Kind  algebra.QuantityKind
	Value float64

	// IsUsed marks events some gate takes as an input.
	IsUsed bool

	// Tome is the trivial single-writ tome at Index, populated by Build.
	Tome algebra.Tome
}

const eventKeyExplainer = "recognised Event keys are label (optional), probability or rate (exactly one required), and comment (optional)"

// eventDraft accumulates property settings for an Event under construction.
type eventDraft struct {
	id    string
	index int

	label     string
	labelLine int

	kind         algebra.QuantityKind
	value        float64
	quantityLine int

	comment     string
	commentLine int
}

func newEventDraft(id string, index int) *eventDraft {
	return &eventDraft{id: id, index: index}
}

// set applies one property line to the draft.
func (d *eventDraft) set(key, value string, line int) *Error {
	switch key {
	case "label":
		if d.labelLine != 0 {
			return errf(KindProperty, line,
				"label already set for Event `%s` at line %d", d.id, d.labelLine)
		}
		d.label = value
		d.labelLine = line
	case "probability":
		if d.quantityLine != 0 {
			return errf(KindProperty, line,
				"probability or rate already set for Event `%s` at line %d", d.id, d.quantityLine)
		}
		p, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return errf(KindProperty, line,
				"unable to parse `%s` as a number for Event `%s`", value, d.id)
		}
		if math.IsNaN(p) {
			return errf(KindProperty, line,
				"probability `%s` is not a number for Event `%s`", value, d.id)
		}
		if p < 0 {
			return errf(KindProperty, line,
				"probability `%s` is negative for Event `%s`", value, d.id)
		}
		if p > 1 {
			return errf(KindProperty, line,
				"probability `%s` exceeds 1 for Event `%s`", value, d.id)
		}
		d.kind = algebra.Probability
		d.value = p
		d.quantityLine = line
	case "rate":
		if d.quantityLine != 0 {
			return errf(KindProperty, line,
				"probability or rate already set for Event `%s` at line %d", d.id, d.quantityLine)
		}
		r, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return errf(KindProperty, line,
				"unable to parse `%s` as a number for Event `%s`", value, d.id)
		}
		if r < 0 {
			return errf(KindProperty, line,
				"rate `%s` is negative for Event `%s`", value, d.id)
		}
		if math.IsInf(r, 0) || math.IsNaN(r) {
			return errf(KindProperty, line,
				"rate `%s` is not finite for Event `%s`", value, d.id)
		}
		d.kind = algebra.Rate
		d.value = r
		d.quantityLine = line
	case "comment":
		if d.commentLine != 0 {
			return errf(KindProperty, line,
				"comment already set for Event `%s` at line %d", d.id, d.commentLine)
		}
		d.comment = value
		d.commentLine = line
	default:
		return errf(KindProperty, line,
			"unrecognised key `%s` for Event `%s`; %s", key, d.id, eventKeyExplainer)
	}
	return nil
}

// freeze validates the draft at its closing blank line and produces the
// immutable Event.
func (d *eventDraft) freeze(line int) (*Event, *Error) {
	if d.quantityLine == 0 {
		return nil, errf(KindProperty, line,
			"probability or rate not set for Event `%s`", d.id)
	}
	return &Event{
		ID:      d.id,
		Index:   d.index,
		Label:   d.label,
		Comment: d.comment,
		Kind:    d.kind,
		Value:   d.value,
	}, nil
}

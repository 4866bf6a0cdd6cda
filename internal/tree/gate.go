package tree

// gate.go — the Gate declaration model.
//
// Gates follow the same draft/freeze shape as events. The draft records the
// line its inputs were declared at, because input resolution and algebra
// failures are only detectable after the whole document has been read and
// must still point back at the offending line.

import (
	"strings"

	"faultline/internal/algebra"
)

// GateType is the boolean connective a gate applies to its inputs.
type GateType int

const (
	GateAND GateType = iota
	GateOR
)

// String returns the upper-case connective name as written in documents.
func (t GateType) String() string {
	switch t {
	case GateAND:
		return "AND"
	case GateOR:
		return "OR"
	}
	return "?"
}

// CutSet is one minimal cut set of a gate: the sorted event indices of a
// surviving conjunction term, with its computed quantity.
type CutSet struct {
	Indices  []int
	Quantity float64
}

// Gate is a frozen gate declaration plus the results computed for it. The
// computed fields are zero until Build finishes.
type Gate struct {
	ID string

	Label   string
	Comment string
	Type    GateType
	IsPaged bool

	InputIDs   []string
	InputsLine int

	// IsTop marks gates that are not used as an input of any other gate.
	IsTop bool

	Tome          algebra.Tome
	Quantity      float64
	CutSets       []CutSet
	Contributions map[int]float64
	Importances   map[int]float64
}

const gateKeyExplainer = "recognised Gate keys are label (optional), is_paged (optional), type (required), inputs (required), and comment (optional)"

// gateDraft accumulates property settings for a Gate under construction.
type gateDraft struct {
	id string

	label     string
	labelLine int

	isPaged     bool
	isPagedLine int

	gateType GateType
	typeLine int

	inputIDs   []string
	inputsLine int

	comment     string
	commentLine int
}

func newGateDraft(id string) *gateDraft {
	return &gateDraft{id: id}
}

// set applies one property line to the draft.
func (d *gateDraft) set(key, value string, line int) *Error {
	switch key {
	case "label":
		if d.labelLine != 0 {
			return errf(KindProperty, line,
				"label already set for Gate `%s` at line %d", d.id, d.labelLine)
		}
		d.label = value
		d.labelLine = line
	case "is_paged":
		if d.isPagedLine != 0 {
			return errf(KindProperty, line,
				"is_paged already set for Gate `%s` at line %d", d.id, d.isPagedLine)
		}
		switch value {
		case "True":
			d.isPaged = true
		case "False":
			d.isPaged = false
		default:
			return errf(KindProperty, line,
				"is_paged for Gate `%s` must be `True` or `False`, not `%s`", d.id, value)
		}
		d.isPagedLine = line
	case "type":
		if d.typeLine != 0 {
			return errf(KindProperty, line,
				"type already set for Gate `%s` at line %d", d.id, d.typeLine)
		}
		switch value {
		case "AND":
			d.gateType = GateAND
		case "OR":
			d.gateType = GateOR
		default:
			return errf(KindProperty, line,
				"type for Gate `%s` must be `AND` or `OR`, not `%s`", d.id, value)
		}
		d.typeLine = line
	case "inputs":
		if d.inputsLine != 0 {
			return errf(KindProperty, line,
				"inputs already set for Gate `%s` at line %d", d.id, d.inputsLine)
		}
		ids := splitIDs(value)
		if len(ids) == 0 {
			return errf(KindProperty, line,
				"no ids supplied as inputs for Gate `%s`", d.id)
		}
		for _, id := range ids {
			if !validID(id) {
				return errf(KindIdentity, line,
					"invalid id `%s` among inputs for Gate `%s`; %s", id, d.id, idExplainer)
			}
		}
		d.inputIDs = ids
		d.inputsLine = line
	case "comment":
		if d.commentLine != 0 {
			return errf(KindProperty, line,
				"comment already set for Gate `%s` at line %d", d.id, d.commentLine)
		}
		d.comment = value
		d.commentLine = line
	default:
		return errf(KindProperty, line,
			"unrecognised key `%s` for Gate `%s`; %s", key, d.id, gateKeyExplainer)
	}
	return nil
}

// freeze validates the draft at its closing blank line and produces the
// immutable Gate.
func (d *gateDraft) freeze(line int) (*Gate, *Error) {
	if d.typeLine == 0 {
		return nil, errf(KindProperty, line, "type not set for Gate `%s`", d.id)
	}
	if d.inputsLine == 0 {
		return nil, errf(KindProperty, line, "inputs not set for Gate `%s`", d.id)
	}
	return &Gate{
		ID:         d.id,
		Label:      d.label,
		Comment:    d.comment,
		Type:       d.gateType,
		IsPaged:    d.isPaged,
		InputIDs:   d.inputIDs,
		InputsLine: d.inputsLine,
	}, nil
}

// splitIDs splits a comma-separated id list, trimming whitespace around the
// commas and discarding empty pieces.
func splitIDs(value string) []string {
	var ids []string
	for _, piece := range strings.Split(value, ",") {
		piece = strings.TrimSpace(piece)
		if piece != "" {
			ids = append(ids, piece)
		}
	}
	return ids
}

package tree

// tree.go — the assembled fault tree and its build pipeline.

import "faultline/internal/algebra"

// FaultTree holds every declared event and gate, in declaration order, plus
// the lookup maps and the optional time unit for rates.
type FaultTree struct {
	Events []*Event
	Gates  []*Gate

	EventByID map[string]*Event
	GateByID  map[string]*Gate

	TimeUnit string
}

// Options tunes the build. TermLimit caps the number of candidate terms a
// single AND may generate before minimization; zero means no cap.
type Options struct {
	TermLimit int
}

// Build parses the document text, validates the declaration graph, and
// computes cut sets, quantities, and contributions for every gate. Any
// returned error is a *Error carrying the violation kind and source line.
func Build(text string, opts Options) (*FaultTree, error) {
	ft, err := parse(text)
	if err != nil {
		return nil, err
	}
	if err := ft.validate(); err != nil {
		return nil, err
	}
	if err := ft.compute(opts); err != nil {
		return nil, err
	}
	return ft, nil
}

// TopGates returns the gates no other gate uses as an input, in declaration
// order.
func (ft *FaultTree) TopGates() []*Gate {
	var tops []*Gate
	for _, gate := range ft.Gates {
		if gate.IsTop {
			tops = append(tops, gate)
		}
	}
	return tops
}

// QuantityUnit returns the unit string for a quantity kind: "1" for
// probabilities, and "/<time_unit>" for rates, falling back to
// "(unspecified)" when the document never set a time unit.
func (ft *FaultTree) QuantityUnit(kind algebra.QuantityKind) string {
	if kind == algebra.Probability {
		return "1"
	}
	if ft.TimeUnit == "" {
		return "(unspecified)"
	}
	return "/" + ft.TimeUnit
}

// EventIDs maps event indices back to their declared ids.
func (ft *FaultTree) EventIDs(indices []int) []string {
	ids := make([]string, len(indices))
	for i, index := range indices {
		ids[i] = ft.Events[index].ID
	}
	return ids
}

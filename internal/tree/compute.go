package tree

// compute.go — cut sets, quantities, and contributions.
//
// Gate tomes are computed bottom-up with an explicit stack, so a chain of
// thousands of gates cannot blow the goroutine stack. Floating products and
// sums are taken in descending order of magnitude, which fixes one evaluation
// order for results that would otherwise depend on declaration order.

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"faultline/internal/algebra"
)

// compute fills in every tome, cut set, quantity, and contribution. The tree
// must already have passed validation.
func (ft *FaultTree) compute(opts Options) *Error {
	for _, event := range ft.Events {
		event.Tome = algebra.EventTome(event.Index, event.Kind)
	}

	done := make(map[string]bool, len(ft.Gates))
	for _, gate := range ft.Gates {
		if done[gate.ID] {
			continue
		}
		stack := []*Gate{gate}
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			if done[top.ID] {
				stack = stack[:len(stack)-1]
				continue
			}
			ready := true
			for _, id := range top.InputIDs {
				if input, ok := ft.GateByID[id]; ok && !done[id] {
					stack = append(stack, input)
					ready = false
				}
			}
			if !ready {
				continue
			}
			if err := ft.computeTome(top, opts); err != nil {
				return err
			}
			done[top.ID] = true
			stack = stack[:len(stack)-1]
		}
	}

	for _, gate := range ft.Gates {
		ft.computeQuantities(gate)
	}
	return nil
}

// computeTome combines a gate's input tomes, whose own tomes must already be
// in place, translating algebra failures into document errors at the gate's
// inputs line.
func (ft *FaultTree) computeTome(gate *Gate, opts Options) *Error {
	inputs := make([]algebra.Tome, len(gate.InputIDs))
	for i, id := range gate.InputIDs {
		if event, ok := ft.EventByID[id]; ok {
			inputs[i] = event.Tome
		} else {
			inputs[i] = ft.GateByID[id].Tome
		}
	}

	switch gate.Type {
	case GateAND:
		if opts.TermLimit > 0 {
			if count := algebra.TermCount(inputs...); count > opts.TermLimit {
				return errf(KindBudget, gate.InputsLine,
					"conjunction for Gate `%s` would generate %d terms, exceeding the limit of %d",
					gate.ID, count, opts.TermLimit)
			}
		}
		tome, err := algebra.And(inputs...)
		if err != nil {
			return ft.conjunctionError(gate, err)
		}
		gate.Tome = tome
	case GateOR:
		tome, err := algebra.Or(inputs...)
		if err != nil {
			return ft.disjunctionError(gate, inputs, err)
		}
		gate.Tome = tome
	}
	return nil
}

func (ft *FaultTree) conjunctionError(gate *Gate, err error) *Error {
	typeErr, ok := err.(*algebra.ConjunctionTypeError)
	if !ok {
		return errf(KindAlgebraic, gate.InputsLine, "for Gate `%s`: %v", gate.ID, err)
	}
	offenders := make([]string, len(typeErr.Positions))
	for i, p := range typeErr.Positions {
		offenders[i] = fmt.Sprintf("`%s` (#%d)", gate.InputIDs[p], p+1)
	}
	return errf(KindAlgebraic, gate.InputsLine,
		"rates among non-first inputs for AND Gate `%s`: %s; "+
			"a rate initiator may only be the first input, with probability enablers after it",
		gate.ID, strings.Join(offenders, ", "))
}

func (ft *FaultTree) disjunctionError(gate *Gate, inputs []algebra.Tome, err error) *Error {
	if _, ok := err.(*algebra.DisjunctionTypeError); !ok {
		return errf(KindAlgebraic, gate.InputsLine, "for Gate `%s`: %v", gate.ID, err)
	}
	parts := make([]string, len(inputs))
	for i, input := range inputs {
		parts[i] = fmt.Sprintf("`%s` (%s)", gate.InputIDs[i], input.Kind)
	}
	return errf(KindAlgebraic, gate.InputsLine,
		"inputs for OR Gate `%s` mix probabilities and rates: %s",
		gate.ID, strings.Join(parts, ", "))
}

// computeQuantities derives the cut sets, total quantity, and per-event
// contributions of a gate from its tome.
func (ft *FaultTree) computeQuantities(gate *Gate) {
	gate.CutSets = make([]CutSet, len(gate.Tome.Writs))
	for i, writ := range gate.Tome.Writs {
		indices := writ.EventIndices()
		values := make([]float64, len(indices))
		for j, index := range indices {
			values[j] = ft.Events[index].Value
		}
		gate.CutSets[i] = CutSet{Indices: indices, Quantity: descendingProduct(values)}
	}
	sort.Slice(gate.CutSets, func(i, j int) bool {
		a, b := gate.CutSets[i], gate.CutSets[j]
		if a.Quantity != b.Quantity {
			return a.Quantity > b.Quantity
		}
		if len(a.Indices) != len(b.Indices) {
			return len(a.Indices) < len(b.Indices)
		}
		return ft.CutSetID(a) < ft.CutSetID(b)
	})

	quantities := make([]float64, len(gate.CutSets))
	for i, cutSet := range gate.CutSets {
		quantities[i] = cutSet.Quantity
	}
	gate.Quantity = descendingSum(quantities)

	gate.Contributions = make(map[int]float64, len(ft.Events))
	gate.Importances = make(map[int]float64, len(ft.Events))
	for _, event := range ft.Events {
		var containing []float64
		for _, cutSet := range gate.CutSets {
			for _, index := range cutSet.Indices {
				if index == event.Index {
					containing = append(containing, cutSet.Quantity)
					break
				}
			}
		}
		contribution := descendingSum(containing)
		gate.Contributions[event.Index] = contribution
		if gate.Quantity == 0 {
			gate.Importances[event.Index] = math.NaN()
		} else {
			gate.Importances[event.Index] = contribution / gate.Quantity
		}
	}
}

// CutSetID renders a cut set as its event ids joined with dots, e.g. "A.B.C".
func (ft *FaultTree) CutSetID(cutSet CutSet) string {
	ids := make([]string, len(cutSet.Indices))
	for i, index := range cutSet.Indices {
		ids[i] = ft.Events[index].ID
	}
	return strings.Join(ids, ".")
}

// descendingProduct multiplies the values from largest to smallest. Floating
// multiplication is not associative, so a fixed order keeps results
// bit-identical across runs and declaration orders.
func descendingProduct(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
	product := 1.0
	for _, v := range sorted {
		product *= v
	}
	return product
}

// descendingSum adds the values from largest to smallest, for the same
// reason as descendingProduct.
func descendingSum(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	return sum
}

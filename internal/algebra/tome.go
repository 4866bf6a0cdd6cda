package algebra

// tome.go — typed collections of writs.
//
// A tome pairs a minimal set of writs with a quantity kind. AND distributes
// over the writ sets (Cartesian product of conjunctions, then minimization);
// OR unions them. Both enforce the kind compatibility rules: a rate is a
// hazard, not a dimensionless probability, so it may only ever appear as the
// first factor of a conjunction, and rates and probabilities never mix in a
// disjunction.

import (
	"fmt"
	"strings"
)

// QuantityKind distinguishes probabilities from rates.
type QuantityKind int

const (
	Probability QuantityKind = iota
	Rate
)

// String returns the lower-case kind name used in reports and messages.
func (k QuantityKind) String() string {
	switch k {
	case Probability:
		return "probability"
	case Rate:
		return "rate"
	}
	panic(fmt.Sprintf("algebra: unknown quantity kind %d", int(k)))
}

// Tome is a minimal set of writs tagged with a quantity kind. Writs are kept
// sorted so identical tomes compare equal structurally.
type Tome struct {
	Writs []Writ
	Kind  QuantityKind
}

// NewTome builds a tome from the given writs, minimizing them.
func NewTome(kind QuantityKind, writs ...Writ) Tome {
	return Tome{Writs: Minimize(writs), Kind: kind}
}

// EventTome returns the trivial tome for a single event.
func EventTome(index int, kind QuantityKind) Tome {
	return Tome{Writs: []Writ{EventWrit(index)}, Kind: kind}
}

// Equal reports whether two tomes have the same writ set and kind.
func (t Tome) Equal(other Tome) bool {
	if t.Kind != other.Kind || len(t.Writs) != len(other.Writs) {
		return false
	}
	for i := range t.Writs {
		if !t.Writs[i].Equal(other.Writs[i]) {
			return false
		}
	}
	return true
}

// TermCount returns the number of candidate conjunction terms And would
// generate for the given inputs, before minimization. Callers may use it to
// refuse pathologically large products up front.
func TermCount(tomes ...Tome) int {
	count := 1
	for _, t := range tomes {
		count *= len(t.Writs)
	}
	return count
}

// ConjunctionTypeError reports rate operands at non-first positions of an
// AND. Positions holds every offending zero-based operand index.
type ConjunctionTypeError struct {
	Positions []int
}

func (e *ConjunctionTypeError) Error() string {
	parts := make([]string, len(e.Positions))
	for i, p := range e.Positions {
		parts[i] = fmt.Sprintf("#%d", p+1)
	}
	return fmt.Sprintf("rate operands at non-first positions %s of conjunction", strings.Join(parts, ", "))
}

// DisjunctionTypeError reports mixed quantity kinds in an OR. Kinds holds
// the kind of every operand, in order.
type DisjunctionTypeError struct {
	Kinds []QuantityKind
}

func (e *DisjunctionTypeError) Error() string {
	parts := make([]string, len(e.Kinds))
	for i, k := range e.Kinds {
		parts[i] = k.String()
	}
	return fmt.Sprintf("mixed quantity kinds in disjunction: %s", strings.Join(parts, ", "))
}

// And returns the conjunction of the input tomes. Only the first input may
// be a rate (an initiator); every later input must be a probability (an
// enabler). The result has the kind of the first input. Requires at least
// one input.
func And(tomes ...Tome) (Tome, error) {
	var badPositions []int
	for i, t := range tomes {
		if i > 0 && t.Kind == Rate {
			badPositions = append(badPositions, i)
		}
	}
	if len(badPositions) > 0 {
		return Tome{}, &ConjunctionTypeError{Positions: badPositions}
	}

	// Distribute AND over OR: conjoin one writ from each tome, for every
	// combination, then minimize. An empty operand ("false") annihilates
	// the whole product.
	if TermCount(tomes...) == 0 {
		return Tome{Kind: tomes[0].Kind}, nil
	}
	terms := make([]Writ, 0, TermCount(tomes...))
	pick := make([]int, len(tomes))
	for {
		chosen := make([]Writ, len(tomes))
		for i, t := range tomes {
			chosen[i] = t.Writs[pick[i]]
		}
		terms = append(terms, Conjunction(chosen...))

		i := len(pick) - 1
		for i >= 0 {
			pick[i]++
			if pick[i] < len(tomes[i].Writs) {
				break
			}
			pick[i] = 0
			i--
		}
		if i < 0 {
			break
		}
	}

	return Tome{Writs: Minimize(terms), Kind: tomes[0].Kind}, nil
}

// Or returns the disjunction of the input tomes. Every input must have the
// same kind. Requires at least one input.
func Or(tomes ...Tome) (Tome, error) {
	kinds := make([]QuantityKind, len(tomes))
	mixed := false
	for i, t := range tomes {
		kinds[i] = t.Kind
		if t.Kind != tomes[0].Kind {
			mixed = true
		}
	}
	if mixed {
		return Tome{}, &DisjunctionTypeError{Kinds: kinds}
	}

	var writs []Writ
	for _, t := range tomes {
		writs = append(writs, t.Writs...)
	}
	return Tome{Writs: Minimize(writs), Kind: tomes[0].Kind}, nil
}

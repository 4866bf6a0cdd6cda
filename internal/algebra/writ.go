// Package algebra implements the boolean term algebra behind minimal cut set
// computation.
//
// A writ encodes a conjunction (AND) of events as a bitmask: bit i is set if
// and only if event index i is a factor. The writ with no bits set encodes
// the empty conjunction, which is true. A tome is a minimal set of writs
// (a disjunction of conjunctions) tagged with a quantity kind.
package algebra

import (
	"math/big"
	"sort"
)

// Writ is an unbounded-width bitmask over event indices. The zero value is
// the empty conjunction ("true").
type Writ struct {
	bits *big.Int
}

// True returns the writ for the empty conjunction.
func True() Writ {
	return Writ{bits: new(big.Int)}
}

// EventWrit returns the writ for the single event at the given index.
func EventWrit(index int) Writ {
	b := new(big.Int)
	b.SetBit(b, index, 1)
	return Writ{bits: b}
}

// n returns the underlying integer, treating the zero value as 0.
func (w Writ) n() *big.Int {
	if w.bits == nil {
		return new(big.Int)
	}
	return w.bits
}

// EventIndices returns the sorted event indices whose bits are set.
func (w Writ) EventIndices() []int {
	n := w.n()
	var indices []int
	for i := 0; i < n.BitLen(); i++ {
		if n.Bit(i) == 1 {
			indices = append(indices, i)
		}
	}
	return indices
}

// Conjunction returns the AND of the input writs. A factor is present in the
// conjunction if it is present in at least one input, so the result is the
// bitwise OR of the inputs. With no inputs the result is true.
func Conjunction(writs ...Writ) Writ {
	acc := new(big.Int)
	for _, w := range writs {
		acc.Or(acc, w.n())
	}
	return Writ{bits: acc}
}

// Implies reports whether w implies ref: every factor of ref is a factor of
// w, i.e. ref &^ w == 0. A writ implies itself. In a disjunction, a writ
// that implies another is redundant by the absorption law (X + XY = X).
func (w Writ) Implies(ref Writ) bool {
	return new(big.Int).AndNot(ref.n(), w.n()).Sign() == 0
}

// Equal reports whether two writs encode the same conjunction.
func (w Writ) Equal(other Writ) bool {
	return w.n().Cmp(other.n()) == 0
}

// Cmp compares two writs by their integer encoding, for stable ordering.
func (w Writ) Cmp(other Writ) int {
	return w.n().Cmp(other.n())
}

// Minimize returns the minimal disjunction of the input writs: every writ
// implied by another (duplicates included) is removed, and nothing else is.
// Each undecided writ is compared against all other remaining writs; writs
// surviving every comparison are kept. O(n²) in the number of inputs.
func Minimize(writs []Writ) []Writ {
	undecided := make([]Writ, len(writs))
	copy(undecided, writs)

	var kept []Writ
	for len(undecided) > 0 {
		w := undecided[len(undecided)-1]
		undecided = undecided[:len(undecided)-1]

		redundant := false
		for i := 0; i < len(undecided); {
			other := undecided[i]
			if w.Implies(other) {
				redundant = true
				break
			}
			if other.Implies(w) {
				undecided = append(undecided[:i], undecided[i+1:]...)
				continue
			}
			i++
		}
		if !redundant {
			kept = append(kept, w)
		}
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].Cmp(kept[j]) < 0 })
	return kept
}

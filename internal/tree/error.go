// Package tree parses fault tree text into events and gates, validates the
// declaration graph, and computes minimal cut sets, quantities, and
// contributions for every gate.
package tree

import "fmt"

// ErrorKind classifies a document violation.
type ErrorKind int

const (
	// KindSyntax covers unparseable lines, declarations opened while
	// another object is still open, and property lines outside any object.
	KindSyntax ErrorKind = iota
	// KindIdentity covers duplicate and malformed ids.
	KindIdentity
	// KindProperty covers re-set, unknown, malformed, or out-of-range
	// property values, and required properties missing at close.
	KindProperty
	// KindReference covers gate inputs that resolve to no declared id.
	KindReference
	// KindStructural covers cycles in the gate-to-gate subgraph.
	KindStructural
	// KindAlgebraic covers quantity-kind violations in gate conjunctions
	// and disjunctions.
	KindAlgebraic
	// KindBudget covers a cut-set term count exceeding the configured
	// ceiling.
	KindBudget
)

// Error is the single error taxonomy for document violations. Line is the
// 1-based source line the violation was detected at, or 0 for whole-document
// violations such as cycles.
type Error struct {
	Kind    ErrorKind
	Line    int
	Message string
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

func errf(kind ErrorKind, line int, format string, args ...any) *Error {
	return &Error{Kind: kind, Line: line, Message: fmt.Sprintf(format, args...)}
}

// Package ig implements the intermediate graph: a mutable, arena-owned
// NFA-with-epsilon representation built by the regular-operation
// combinators in internal/combinators (spec §3, §4.1).
package ig

import "fmt"

// IGError reports a structural violation of the intermediate graph, in the
// teacher's {Kind, Message} error idiom (internal/graph/errors.go).
type IGError struct {
	Kind    string
	Message string
}

func (e IGError) Error() string {
	return fmt.Sprintf("ig error (%v): %v", e.Kind, e.Message)
}

func errDanglingHandle(h NodeHandle) error {
	return IGError{
		Kind:    "DanglingHandle",
		Message: fmt.Sprintf("node handle %v does not identify a live node", h),
	}
}

// ErrKleeneNondeterminism reports spec §7's KleeneNondeterminism: a Kleene
// operator applied where epsilon is already present with nonzero
// weight/output, or a union merging two equal-weight epsilons with
// disagreeing outputs.
type ErrKleeneNondeterminism struct {
	Pos     V
	Epsilon P
}

func (e ErrKleeneNondeterminism) Error() string {
	return fmt.Sprintf("kleene nondeterminism at %v: epsilon already carries weight=%d output=%q",
		e.Pos, e.Epsilon.Weight, e.Epsilon.Output.String())
}

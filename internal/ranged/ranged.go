// Package ranged implements the ranged graph (RG): the dense, immutable
// dispatch table materialized from an intermediate graph by interval
// splitting (spec §4.2). Grounded on original_source's ranged_graph.rs for
// the State/Transitions/RangedGraph shape.
package ranged

import (
	"github.com/solomonoff-lang/solomonoff/internal/ig"
	"github.com/solomonoff-lang/solomonoff/internal/symbol"
)

// NoTarget marks a transition with no destination state (a dead/reject
// transition), standing in for the original's NonSink "sink" encoding.
const NoTarget = -1

// Transition is a partial edge paired with the dense index of the state it
// leads to, or NoTarget.
type Transition struct {
	Edge   ig.P
	Target int
}

// Range is one contiguous input interval ending at ToInclusive, carrying
// the snapshot of transitions active over that interval.
type Range struct {
	ToInclusive symbol.Symbol
	Edges       []Transition
}

// RG is the ranged graph: one ordered, sigma-covering slice of Range per
// state, plus each state's acceptance and source position. State 0 is
// always the initial state.
type RG struct {
	States    [][]Range
	Accepting []*ig.P
	Positions []ig.V
	Initial   int
}

// Len reports the number of states.
func (r *RG) Len() int { return len(r.States) }

// Transitions returns the ranges for a state.
func (r *RG) Transitions(state int) []Range { return r.States[state] }

// Accept returns the final partial edge for a state, or nil if the state
// does not accept.
func (r *RG) Accept(state int) *ig.P { return r.Accepting[state] }

// BinarySearch locates the Range governing an input symbol within a
// state's sigma-covering, strictly-increasing Range slice.
func BinarySearch(ranges []Range, input symbol.Symbol) []Transition {
	lo, hi := 0, len(ranges)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if ranges[mid].ToInclusive < input {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return ranges[lo].Edges
}

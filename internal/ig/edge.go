package ig

import (
	"fmt"

	"github.com/solomonoff-lang/solomonoff/internal/symbol"
)

// P is a partial edge: a weighted output fragment (spec §3). The monoid
// neutral element is P{Weight: 0, Output: symbol.Empty}; Mul sums weights
// and concatenates outputs. Mul is associative but not commutative.
type P struct {
	Weight int32
	Output symbol.IntSeq
}

// Neutral is the identity element of P's monoid.
var Neutral = P{Weight: 0, Output: symbol.Empty}

// Mul composes two partial edges: weights add, outputs concatenate in
// order (p then other).
func (p P) Mul(other P) (P, error) {
	out, err := p.Output.Concat(other.Output)
	if err != nil {
		return P{}, err
	}
	return P{Weight: p.Weight + other.Weight, Output: out}, nil
}

// IsNeutral reports whether p is the monoid identity.
func (p P) IsNeutral() bool {
	return p.Weight == 0 && p.Output.IsEmpty()
}

func (p P) String() string {
	return fmt.Sprintf("P(w=%d, out=%q)", p.Weight, symbol.Escape(p.Output))
}

// E is a full edge: an input interval (FromExclusive, ToInclusive] carrying
// a partial edge (spec §3). Edges are owned by exactly one node's outgoing
// list or one graph's incoming list; Go's own `==` never needs overriding
// for identity, since edges are always referenced through *E.
type E struct {
	FromExclusive symbol.Symbol
	ToInclusive   symbol.Symbol
	Partial       P
}

// NewEdge validates FromExclusive < ToInclusive before allocating.
func NewEdge(fromExclusive, toInclusive symbol.Symbol, partial P) (*E, error) {
	if !(fromExclusive < toInclusive) {
		return nil, IGError{
			Kind: "InvalidInterval",
			Message: fmt.Sprintf("edge interval (%d, %d] violates from < to",
				fromExclusive, toInclusive),
		}
	}
	return &E{FromExclusive: fromExclusive, ToInclusive: toInclusive, Partial: partial}, nil
}

// Singleton builds the single-codepoint edge (c-1, c] used when compiling
// an OSTIA transition back to IG (spec §4.5): one edge per alphabet symbol.
func Singleton(c symbol.Symbol, partial P) (*E, error) {
	return NewEdge(c-1, c, partial)
}

// Package combinators implements the regular-operation combinators over
// the intermediate graph: concatenation, union, Kleene star/plus/optional,
// and left/right scalar action of a partial edge on a graph (spec §4.1).
// Grounded on teacher internal/graph's ApplyCondition ("clone then mutate
// or fail, never mutate a half-checked graph") and original_source's
// regular_operations.rs for the exact epsilon-merge rules.
package combinators

import "github.com/solomonoff-lang/solomonoff/internal/ig"

// LeftAction prepends p to every incoming edge's partial and to epsilon
// (spec §4.1 "Left action of P on G"). Mutates g in place.
func LeftAction(g *ig.G, p ig.P) error {
	for i, stub := range g.Incoming {
		merged, err := p.Mul(stub.Edge.Partial)
		if err != nil {
			return err
		}
		newEdge, err := ig.NewEdge(stub.Edge.FromExclusive, stub.Edge.ToInclusive, merged)
		if err != nil {
			return err
		}
		g.Incoming[i] = ig.IncomingStub{Edge: newEdge, Target: stub.Target}
	}
	if g.Epsilon != nil {
		merged, err := p.Mul(*g.Epsilon)
		if err != nil {
			return err
		}
		g.Epsilon = &merged
	}
	return nil
}

// RightAction postpends p to every outgoing value and to epsilon (spec
// §4.1 "Right action of P on G"). Mutates g in place.
func RightAction(g *ig.G, p ig.P) error {
	for h, out := range g.Outgoing {
		merged, err := out.Mul(p)
		if err != nil {
			return err
		}
		g.Outgoing[h] = merged
	}
	if g.Epsilon != nil {
		merged, err := g.Epsilon.Mul(p)
		if err != nil {
			return err
		}
		g.Epsilon = &merged
	}
	return nil
}

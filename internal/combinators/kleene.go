package combinators

import "github.com/solomonoff-lang/solomonoff/internal/ig"

// loopStep wires the self-looping edges shared by Star and Plus: for each
// accepting (fin_v, fin_p) and each (init_e, init_v) in g's own incoming
// list, append outgoing edge left_action(fin_p, init_e) on fin_v targeting
// init_v (spec §4.1 "Kleene star").
func loopStep(g *ig.G) error {
	for finV, finP := range g.Outgoing {
		finNode, err := g.Node(finV)
		if err != nil {
			return err
		}
		for _, stub := range g.Incoming {
			merged, err := finP.Mul(stub.Edge.Partial)
			if err != nil {
				return err
			}
			newEdge, err := ig.NewEdge(stub.Edge.FromExclusive, stub.Edge.ToInclusive, merged)
			if err != nil {
				return err
			}
			finNode.AddOut(newEdge, stub.Target)
		}
	}
	return nil
}

// Star implements Kleene star (spec §4.1): wire the loop-back edges, then
// set epsilon to neutral, rejecting a pre-existing non-neutral epsilon as
// KleeneNondeterminism (an already-weighted or -outputting empty match
// would be silently discarded by the unconditional neutral epsilon).
func Star(pos ig.V, g *ig.G) (*ig.G, error) {
	if err := loopStep(g); err != nil {
		return nil, err
	}
	if g.Epsilon != nil && !g.Epsilon.IsNeutral() {
		return nil, ig.ErrKleeneNondeterminism{Pos: pos, Epsilon: *g.Epsilon}
	}
	neutral := ig.Neutral
	g.Epsilon = &neutral
	return g, nil
}

// Plus implements Kleene plus (spec §4.1): same loop-back wiring as Star,
// but epsilon is left untouched — unless it was already neutral, which
// would make plus indistinguishable from star and is rejected.
func Plus(pos ig.V, g *ig.G) (*ig.G, error) {
	if err := loopStep(g); err != nil {
		return nil, err
	}
	if g.Epsilon != nil && g.Epsilon.IsNeutral() {
		return nil, ig.ErrKleeneNondeterminism{Pos: pos, Epsilon: *g.Epsilon}
	}
	return g, nil
}

// Optional implements `?` (spec §4.1): set epsilon to neutral, subject to
// the same non-neutral-epsilon check as Star, without any loop-back
// wiring.
func Optional(pos ig.V, g *ig.G) (*ig.G, error) {
	if g.Epsilon != nil && !g.Epsilon.IsNeutral() {
		return nil, ig.ErrKleeneNondeterminism{Pos: pos, Epsilon: *g.Epsilon}
	}
	neutral := ig.Neutral
	g.Epsilon = &neutral
	return g, nil
}

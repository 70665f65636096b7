package combinators

import "github.com/solomonoff-lang/solomonoff/internal/ig"

// Concatenation implements L · R (spec §4.1). Both l and r are consumed:
// on success the combined graph is returned and the inputs must not be
// used again; on the empty short-circuit the other side is torn down.
func Concatenation(l, r *ig.G) (*ig.G, error) {
	if l.IsEmpty() {
		r.DeleteAll()
		l.DeleteAll()
		return ig.New(), nil
	}
	if r.IsEmpty() {
		l.DeleteAll()
		r.DeleteAll()
		return ig.New(), nil
	}

	remap := l.AbsorbForCombinator(r)
	rIncoming := ig.RemapIncoming(r.Incoming, remap)
	rOutgoing := ig.RemapOutgoing(r.Outgoing, remap)
	var rEpsilon *ig.P
	if r.Epsilon != nil {
		eps := *r.Epsilon
		rEpsilon = &eps
	}

	// For each accepting (fin_v, fin_p) in L.outgoing and each (init_e,
	// init_v) in R.incoming, append an outgoing edge on fin_v.
	for finV, finP := range l.Outgoing {
		finNode, err := l.Node(finV)
		if err != nil {
			return nil, err
		}
		for _, stub := range rIncoming {
			merged, err := finP.Mul(stub.Edge.Partial)
			if err != nil {
				return nil, err
			}
			newEdge, err := ig.NewEdge(stub.Edge.FromExclusive, stub.Edge.ToInclusive, merged)
			if err != nil {
				return nil, err
			}
			finNode.AddOut(newEdge, stub.Target)
		}
	}

	// If L.epsilon is present, extend L.incoming with left_action(le,
	// init_e) for each R.incoming.
	if l.Epsilon != nil {
		le := *l.Epsilon
		for _, stub := range rIncoming {
			merged, err := le.Mul(stub.Edge.Partial)
			if err != nil {
				return nil, err
			}
			newEdge, err := ig.NewEdge(stub.Edge.FromExclusive, stub.Edge.ToInclusive, merged)
			if err != nil {
				return nil, err
			}
			l.Incoming = append(l.Incoming, ig.IncomingStub{Edge: newEdge, Target: stub.Target})
		}
	}

	// If R.epsilon is present, every L.outgoing entry (v, p) becomes
	// (v, p · re); those updated entries fold into the final outgoing set
	// alongside R.outgoing.
	newOutgoing := rOutgoing
	if rEpsilon != nil {
		for v, p := range l.Outgoing {
			merged, err := p.Mul(*rEpsilon)
			if err != nil {
				return nil, err
			}
			newOutgoing[v] = merged
		}
	}

	var newEpsilon *ig.P
	if l.Epsilon != nil && rEpsilon != nil {
		merged, err := l.Epsilon.Mul(*rEpsilon)
		if err != nil {
			return nil, err
		}
		newEpsilon = &merged
	}

	l.Outgoing = newOutgoing
	l.Epsilon = newEpsilon
	r.Incoming = nil
	r.Outgoing = nil
	r.Epsilon = nil
	return l, nil
}

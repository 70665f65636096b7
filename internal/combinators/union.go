package combinators

import "github.com/solomonoff-lang/solomonoff/internal/ig"

// Union implements L ∪ R (spec §4.1): concatenate incoming lists, union
// outgoing maps, merge epsilons by epsilon_union. Both l and r are
// consumed; the combined graph is returned in l.
func Union(l, r *ig.G) (*ig.G, error) {
	remap := l.AbsorbForCombinator(r)
	rIncoming := ig.RemapIncoming(r.Incoming, remap)
	rOutgoing := ig.RemapOutgoing(r.Outgoing, remap)

	l.Incoming = append(l.Incoming, rIncoming...)
	for h, p := range rOutgoing {
		l.Outgoing[h] = p
	}

	merged, err := epsilonUnion(l.Epsilon, r.Epsilon)
	if err != nil {
		return nil, err
	}
	l.Epsilon = merged

	r.Incoming = nil
	r.Outgoing = nil
	r.Epsilon = nil
	return l, nil
}

// epsilonUnion implements spec §4.1's merge rule: both None → None; one
// None → the other; both Some → pick higher weight, and when weights tie
// the outputs must agree or the merge is a KleeneNondeterminism.
func epsilonUnion(a, b *ig.P) (*ig.P, error) {
	switch {
	case a == nil && b == nil:
		return nil, nil
	case a == nil:
		eps := *b
		return &eps, nil
	case b == nil:
		eps := *a
		return &eps, nil
	}

	switch {
	case a.Weight > b.Weight:
		eps := *a
		return &eps, nil
	case b.Weight > a.Weight:
		eps := *b
		return &eps, nil
	default:
		if a.Output.String() != b.Output.String() {
			return nil, ig.ErrKleeneNondeterminism{Pos: ig.Unknown, Epsilon: *a}
		}
		eps := *a
		return &eps, nil
	}
}

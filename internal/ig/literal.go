package ig

import "github.com/solomonoff-lang/solomonoff/internal/symbol"

// Char builds the smallest nonempty G matching a single input codepoint c
// and producing p's output, used by internal/dsl to compile a string
// literal one character at a time before concatenating (spec §6 `'abc'`).
func Char(pos V, c symbol.Symbol, p P) (*G, error) {
	return Range(pos, c-1, c, p)
}

// Range builds a G matching any single codepoint in (fromExclusive,
// toInclusive] and producing p's output, used by internal/dsl to compile
// `[a-z]` and `<97-99>` literals (spec §6).
func Range(pos V, fromExclusive, toInclusive symbol.Symbol, p P) (*G, error) {
	g := New()
	end := g.AddNode(pos)
	edge, err := NewEdge(fromExclusive, toInclusive, p)
	if err != nil {
		return nil, err
	}
	g.Incoming = []IncomingStub{{Edge: edge, Target: end}}
	g.Outgoing[end] = Neutral
	return g, nil
}

// EpsilonOutput builds a G accepting only the empty input and producing
// p's output, used to compile an output literal `:'abc'` (spec §6).
func EpsilonOutput(p P) *G {
	g := New()
	eps := p
	g.Epsilon = &eps
	return g
}

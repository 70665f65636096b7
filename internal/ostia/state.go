package ostia

import "github.com/solomonoff-lang/solomonoff/internal/symbol"

// Sample is one positive informant pair (x, y): on input x the learned
// transducer must produce output y (spec §4.5).
type Sample struct {
	Input  symbol.IntSeq
	Output symbol.IntSeq
}

// outputTag distinguishes a state that has never been landed on by an
// informant sample (Unknown), one landed on with an observed output
// (Accepting), and one explicitly known not to accept (Rejecting — never
// produced by PTT construction itself, but a stable target for the
// compression fold to compare against).
type outputTag int

const (
	outputUnknown outputTag = iota
	outputAccepting
	outputRejecting
)

// output is a PTT state's terminal verdict: Kind{Accepting(seq)|Rejecting|
// Unknown} translated from the Rust enum of the same shape.
type output struct {
	tag outputTag
	seq []symbol.Symbol
}

// edge is one PTT transition: the output fragment produced while crossing
// it, and the state it leads to. A nil *edge in a state's transitions slice
// means "no sample has ever taken this symbol from this state".
type edge struct {
	output []symbol.Symbol
	target *state
}

// state is one PTT/merged-automaton node. transitions is indexed by the
// alphabet's dense symbol index, one slot per distinct input symbol seen
// anywhere in the informant — sized once up front since BuildAlphabet scans
// the whole informant before construction begins.
type state struct {
	out         output
	transitions []*edge
}

func newState(alphabetSize int) *state {
	return &state{transitions: make([]*edge, alphabetSize)}
}

func cloneSymbols(s []symbol.Symbol) []symbol.Symbol {
	out := make([]symbol.Symbol, len(s))
	copy(out, s)
	return out
}

func symbolsEqual(a, b []symbol.Symbol) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// commonPrefixLen returns the length of the longest common prefix of a
// and b.
func commonPrefixLen(a, b []symbol.Symbol) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

// pushback prepends prefix to every one of s's outgoing edge outputs and to
// s's own Accepting output, maintaining the onward property after an edge's
// formerly-longer output is trimmed back to a shared prefix (spec §4.5,
// grounded on State::pushback in learn/ostia_compress.rs).
func (s *state) pushback(prefix []symbol.Symbol) {
	if len(prefix) == 0 {
		return
	}
	for _, e := range s.transitions {
		if e == nil {
			continue
		}
		e.output = append(cloneSymbols(prefix), e.output...)
	}
	if s.out.tag == outputAccepting {
		s.out.seq = append(cloneSymbols(prefix), s.out.seq...)
	}
}

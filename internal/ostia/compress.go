package ostia

// blueRef addresses one blue (candidate-for-merging) state as the (parent,
// slot) pair that reaches it, mirroring the Rust Blue(u8, NonNull<State>)
// pair — Go has no raw pointers to re-point, so a merge is applied by
// overwriting the parent's transition slot directly.
type blueRef struct {
	parent *state
	idx    int
}

func (b blueRef) state() *state { return b.parent.transitions[b.idx].target }

func (b blueRef) redirectTo(target *state) { b.parent.transitions[b.idx].target = target }

// addBlueStates enqueues every child of s as a new blue candidate (spec
// §4.5, grounded on State::add_blue_states).
func addBlueStates(s *state, blue *[]blueRef) {
	for i, e := range s.transitions {
		if e != nil {
			*blue = append(*blue, blueRef{parent: s, idx: i})
		}
	}
}

// compress runs OSTIA's red/blue state-merging worklist over the PTT
// rooted at root, in place: root itself becomes the first red state, and
// every state reachable from it is either folded into an existing red
// state (its parent edge is redirected there) or promoted to red itself
// (spec §4.5, grounded on State::ostia_compress).
func compress(root *state) {
	red := []*state{root}
	var blue []blueRef
	addBlueStates(root, &blue)

	for len(blue) > 0 {
		next := blue[0]
		blue = blue[1:]
		candidate := next.state()

		merged := false
		for _, r := range red {
			if fold(r, candidate) {
				next.redirectTo(r)
				merged = true
				break
			}
		}
		if !merged {
			red = append(red, candidate)
			addBlueStates(candidate, &blue)
		}
	}
}

// fold reports whether blue can be structurally identified with red: equal
// (normalized) terminal verdicts, and for every alphabet slot either both
// states lack a transition, or both have one with identical edge output
// whose targets recursively fold (spec §4.5, grounded on State::ostia_fold).
// Unknown verdicts are normalized to Rejecting for this comparison only —
// a state that has observed no sample of its own can fold with another
// equally-unvisited state, but never with one that has recorded real
// output.
func fold(red, blue *state) bool {
	if red == blue {
		return true
	}
	if !normalizedVerdictEqual(red.out, blue.out) {
		return false
	}
	for i := range blue.transitions {
		be := blue.transitions[i]
		re := red.transitions[i]
		switch {
		case be == nil && re == nil:
			continue
		case be == nil || re == nil:
			return false
		case !symbolsEqual(be.output, re.output):
			return false
		case !fold(re.target, be.target):
			return false
		}
	}
	return true
}

func normalizedVerdictEqual(a, b output) bool {
	at, bt := a.tag, b.tag
	if at == outputUnknown {
		at = outputRejecting
	}
	if bt == outputUnknown {
		bt = outputRejecting
	}
	if at != bt {
		return false
	}
	if at == outputAccepting {
		return symbolsEqual(a.seq, b.seq)
	}
	return true
}

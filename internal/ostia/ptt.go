package ostia

import "github.com/solomonoff-lang/solomonoff/internal/symbol"

// buildPTT constructs the onward prefix-tree transducer from every sample
// in the informant, in order (spec §4.5, grounded on State::build_ptt).
func buildPTT(samples []Sample, alphabet *Alphabet) (*state, error) {
	root := newState(alphabet.Len())
	for _, s := range samples {
		if err := root.insertPositive(s.Input, s.Output, alphabet); err != nil {
			return nil, err
		}
	}
	return root, nil
}

// insertPositive walks input through the tree, developing new edges or
// splitting existing ones on a longest-common-prefix mismatch, then records
// the remaining output suffix as this state's verdict — checking it against
// any previously recorded verdict for consistency (spec §4.5, grounded on
// State::insert_ptt_positive).
func (root *state) insertPositive(input, outputSeq symbol.IntSeq, alphabet *Alphabet) error {
	outRunes := outputSeq.Runes()
	offset := 0
	cur := root
	for _, c := range input.Runes() {
		idx, err := alphabet.IndexOf(c)
		if err != nil {
			return err
		}
		consumed, err := developTree(cur, idx, outRunes[offset:])
		if err != nil {
			return err
		}
		offset += consumed
		cur = cur.transitions[idx].target
	}

	rem := outRunes[offset:]
	switch cur.out.tag {
	case outputAccepting:
		if !symbolsEqual(cur.out.seq, rem) {
			return Error{Kind: "InconsistentInformant",
				Message: "sample disagrees with a previously recorded output for the same input"}
		}
	case outputRejecting:
		return Error{Kind: "InconsistentInformant",
			Message: "sample contradicts a state already marked rejecting"}
	case outputUnknown:
		cur.out = output{tag: outputAccepting, seq: cloneSymbols(rem)}
	}
	return nil
}

// developTree creates a fresh edge for idx if state has none yet, owning a
// new child whose whole output suffix is outputSuffix; otherwise it
// computes the longest common prefix between the existing edge's output
// and outputSuffix, pushing the excess back into the edge's target. It
// returns how many symbols of outputSuffix were consumed by this step
// (spec §4.5, grounded on develop_tree/lcp).
func developTree(s *state, idx int, outputSuffix []symbol.Symbol) (int, error) {
	e := s.transitions[idx]
	if e == nil {
		s.transitions[idx] = &edge{
			output: cloneSymbols(outputSuffix),
			target: newState(len(s.transitions)),
		}
		return len(outputSuffix), nil
	}
	n := commonPrefixLen(e.output, outputSuffix)
	tail := e.output[n:]
	e.target.pushback(tail)
	e.output = e.output[:n]
	return n, nil
}

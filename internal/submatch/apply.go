package submatch

import "github.com/solomonoff-lang/solomonoff/internal/symbol"

// Matcher receives a group's marker codepoint and its captured region and
// returns a replacement sequence, or ok=false to reject the whole match.
type Matcher func(marker symbol.Symbol, region symbol.IntSeq) (replacement symbol.IntSeq, ok bool)

// frame is one open group on the application stack: the marker that
// opened it (symbol.REFLECT for the implicit outermost group) and the
// literal/replacement symbols accumulated so far.
type frame struct {
	marker symbol.Symbol
	region []symbol.Symbol
}

// Apply recursively processes seq's output (spec §4.6): every close marker
// invokes matcher on the innermost captured region, and the matcher's
// replacement is spliced into the parent region in its place. The
// outermost group is itself passed to matcher with marker symbol.REFLECT.
// Apply assumes seq has already passed Validate. ok is false when a
// matcher rejects its region; a region that grows past IntSeq's byte
// budget is reported as a non-nil error instead.
func Apply(seq symbol.IntSeq, matcher Matcher) (out symbol.IntSeq, ok bool, err error) {
	stack := []frame{{marker: symbol.REFLECT}}

	for _, s := range seq.Runes() {
		top := &stack[len(stack)-1]
		switch {
		case s <= symbol.MID:
			top.region = append(top.region, s)
		case s == top.marker:
			closed := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			region, rerr := symbol.FromRunes(closed.region)
			if rerr != nil {
				return symbol.Empty, false, rerr
			}
			replacement, matched := matcher(closed.marker, region)
			if !matched {
				return symbol.Empty, false, nil
			}
			parent := &stack[len(stack)-1]
			parent.region = append(parent.region, replacement.Runes()...)
		default: // s > top.marker: opens a deeper group
			stack = append(stack, frame{marker: s})
		}
	}

	root := stack[0]
	region, rerr := symbol.FromRunes(root.region)
	if rerr != nil {
		return symbol.Empty, false, rerr
	}
	replacement, matched := matcher(symbol.REFLECT, region)
	if !matched {
		return symbol.Empty, false, nil
	}
	return replacement, true, nil
}

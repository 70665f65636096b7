package ig

import "fmt"

// V is the source-position provenance token carried by every node, used
// only to make error messages point somewhere useful (spec §4.1 "positional
// metadata V propagates into every newly created node").
type V struct {
	Line, Col int
}

// Unknown is the zero-value provenance for nodes synthesized internally
// (e.g. the ranged graph's fresh initial node) with no source position.
var Unknown = V{}

func (v V) String() string {
	if v == Unknown {
		return "<internal>"
	}
	return fmt.Sprintf("%d:%d", v.Line, v.Col)
}

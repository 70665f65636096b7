// Package submatch implements the capture-group marker protocol: a
// compiled transducer may emit codepoints above symbol.MID that bracket
// capture groups in its output, and a host-supplied matcher can be run
// over each captured region (spec §4.6). Grounded on original_source's
// submatch.rs for the bracket well-formedness rule and the (commented-out)
// reference application algorithm's explicit stack-of-frames shape.
package submatch

import (
	"fmt"

	"github.com/solomonoff-lang/solomonoff/internal/symbol"
)

// Error reports a submatch protocol violation.
type Error struct {
	Kind    string
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("submatch error (%v): %v", e.Kind, e.Message)
}

// Validate scans seq and confirms its marker codepoints (those above
// symbol.MID) form a well-nested bracket structure: each marker must
// either exceed the currently open group's marker (opening a deeper group)
// or equal it (closing the current group). A lower-but-nonzero marker is a
// protocol violation.
func Validate(seq symbol.IntSeq) error {
	var stack []symbol.Symbol
	for _, s := range seq.Runes() {
		if s <= symbol.MID {
			continue
		}
		if len(stack) == 0 {
			stack = append(stack, s)
			continue
		}
		top := stack[len(stack)-1]
		switch {
		case s == top:
			stack = stack[:len(stack)-1]
		case s > top:
			stack = append(stack, s)
		default:
			return Error{Kind: "ProtocolViolation",
				Message: fmt.Sprintf("marker %d is lower than open group %d but nonzero", s, top)}
		}
	}
	if len(stack) != 0 {
		return Error{Kind: "ProtocolViolation", Message: "unclosed submatch group at end of output"}
	}
	return nil
}

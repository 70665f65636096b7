// Package ostia implements the OSTIA inductive inference learner: prefix
// tree transducer (PTT) construction from a positive informant, red/blue
// state-merging compression, and compilation of the resulting automaton
// back into an intermediate graph (spec §4.5). Grounded on
// original_source's learn/ostia_compress.rs, translated from its
// NonNull/Link(Weak|Strong) pointer scheme to plain Go pointers — the
// weak/strong distinction existed only to keep Rust's ownership checker
// satisfied; Go's garbage collector makes every link equivalent.
package ostia

import (
	"fmt"

	"github.com/solomonoff-lang/solomonoff/internal/symbol"
)

// Error reports an OSTIA-stage failure: an inconsistent informant or an
// input symbol absent from the learned alphabet.
type Error struct {
	Kind    string
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("ostia error (%v): %v", e.Kind, e.Message)
}

// Alphabet maps the input symbols observed in an informant to dense
// indices, the PTT's transition-array slot assignment (spec §4.5 "embed
// each input character via the alphabet map").
type Alphabet struct {
	toIndex  map[symbol.Symbol]int
	toSymbol []symbol.Symbol
}

// BuildAlphabet infers the alphabet as the set of distinct input symbols
// across every sample, in first-seen order.
func BuildAlphabet(samples []Sample) *Alphabet {
	toIndex := make(map[symbol.Symbol]int)
	var toSymbol []symbol.Symbol
	for _, s := range samples {
		for _, c := range s.Input.Runes() {
			if _, ok := toIndex[c]; !ok {
				toIndex[c] = len(toSymbol)
				toSymbol = append(toSymbol, c)
			}
		}
	}
	return &Alphabet{toIndex: toIndex, toSymbol: toSymbol}
}

// Len reports the number of distinct symbols in the alphabet.
func (a *Alphabet) Len() int { return len(a.toSymbol) }

// IndexOf returns c's dense slot index.
func (a *Alphabet) IndexOf(c symbol.Symbol) (int, error) {
	idx, ok := a.toIndex[c]
	if !ok {
		return 0, Error{Kind: "UnknownSymbol", Message: fmt.Sprintf("symbol %d is outside the learned alphabet", c)}
	}
	return idx, nil
}

// Symbol decodes a dense slot index back to its input symbol.
func (a *Alphabet) Symbol(idx int) symbol.Symbol { return a.toSymbol[idx] }

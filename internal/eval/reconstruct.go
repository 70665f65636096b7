package eval

import (
	"github.com/solomonoff-lang/solomonoff/internal/ranged"
	"github.com/solomonoff-lang/solomonoff/internal/symbol"
)

// reconstruct walks back from the winning final-column entry through
// prevIndex, building the output buffer in reverse (spec §4.3 steps 1-3):
// the final accepting P's output is emitted in reverse with REFLECT
// filtered out (acceptance itself consumes no symbol), then each prior
// edge's output is emitted in reverse with REFLECT substituted by the
// input symbol that edge consumed, and the whole buffer is reversed once
// at the end.
func reconstruct(rg *ranged.RG, columns [][]columnEntry, finalIdx int) (symbol.IntSeq, error) {
	step := len(columns) - 1
	entry := columns[step][finalIdx]
	accept := rg.Accept(entry.state)

	var buf []symbol.Symbol
	appendFiltered(&buf, accept.Output)

	idx := finalIdx
	for step > 0 {
		e := columns[step][idx]
		appendSubstituted(&buf, e.edge.Output, e.consumed)
		idx = e.prevIndex
		step--
	}

	reverseInPlace(buf)
	return symbol.FromRunes(buf)
}

// appendFiltered emits seq's runes in reverse order, dropping REFLECT.
func appendFiltered(buf *[]symbol.Symbol, seq symbol.IntSeq) {
	runes := seq.Runes()
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == symbol.REFLECT {
			continue
		}
		*buf = append(*buf, runes[i])
	}
}

// appendSubstituted emits seq's runes in reverse order, replacing REFLECT
// with the symbol consumed by the edge that carried seq.
func appendSubstituted(buf *[]symbol.Symbol, seq symbol.IntSeq, consumed symbol.Symbol) {
	runes := seq.Runes()
	for i := len(runes) - 1; i >= 0; i-- {
		r := runes[i]
		if r == symbol.REFLECT {
			r = consumed
		}
		*buf = append(*buf, r)
	}
}

func reverseInPlace(s []symbol.Symbol) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

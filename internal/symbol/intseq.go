package symbol

import (
	"strings"
	"unicode/utf8"
)

// MaxIntSeqBytes bounds an IntSeq to the UTF-8 byte budget the original
// compiler enforces (a uint16 byte length).
const MaxIntSeqBytes = 1<<16 - 1

// IntSeq is an immutable, byte-backed Unicode string: the output fragment
// type threaded through every partial edge. Construction validates that the
// encoded form fits the byte budget; after that it never mutates.
type IntSeq struct {
	data string
}

// Empty is the neutral IntSeq (zero codepoints).
var Empty = IntSeq{}

// FromRunes builds an IntSeq from a codepoint slice.
func FromRunes(runes []Symbol) (IntSeq, error) {
	var b strings.Builder
	for _, r := range runes {
		b.WriteRune(r)
	}
	return FromString(b.String())
}

// FromString builds an IntSeq from an already-encoded UTF-8 string.
func FromString(s string) (IntSeq, error) {
	if len(s) > MaxIntSeqBytes {
		return IntSeq{}, SymbolError{
			Kind:    "IntSeqTooLong",
			Message: "encoded output exceeds the 65535-byte budget",
		}
	}
	return IntSeq{data: s}, nil
}

// MustFromRunes is FromRunes but panics on overflow; used for constants
// built from literal slices known to be short.
func MustFromRunes(runes ...Symbol) IntSeq {
	s, err := FromRunes(runes)
	if err != nil {
		panic(err)
	}
	return s
}

// Len reports the number of bytes backing the sequence (not codepoints).
func (s IntSeq) Len() int { return len(s.data) }

// IsEmpty reports whether the sequence has zero codepoints.
func (s IntSeq) IsEmpty() bool { return len(s.data) == 0 }

// String returns the raw UTF-8 encoding.
func (s IntSeq) String() string { return s.data }

// RuneCount returns the number of codepoints, an O(n) scan.
func (s IntSeq) RuneCount() int { return utf8.RuneCountInString(s.data) }

// Runes materializes the sequence as a codepoint slice.
func (s IntSeq) Runes() []Symbol { return []Symbol(s.data) }

// Concat returns a new sequence that is the receiver followed by other.
func (s IntSeq) Concat(other IntSeq) (IntSeq, error) {
	return FromString(s.data + other.data)
}

// Iter returns a forward CharIter over the sequence's codepoints.
func (s IntSeq) Iter() *CharIter {
	return &CharIter{data: s.data}
}

// ReverseRunes returns the sequence's codepoints in reverse order.
func (s IntSeq) ReverseRunes() []Symbol {
	runes := s.Runes()
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return runes
}

// CharIter iterates codepoints of an IntSeq forward, reporting exact
// remaining length like the original exact_size_chars.rs contract.
type CharIter struct {
	data string
	pos  int // byte offset of next forward rune
}

// Len reports the exact number of codepoints remaining to be yielded by
// Next.
func (c *CharIter) Len() int {
	return utf8.RuneCountInString(c.data[c.pos:])
}

// Next yields the next codepoint forward, or (0, false) at end of input.
func (c *CharIter) Next() (Symbol, bool) {
	if c.pos >= len(c.data) {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(c.data[c.pos:])
	c.pos += size
	return r, true
}

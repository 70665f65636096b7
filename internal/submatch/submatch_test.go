package submatch

import (
	"testing"

	"github.com/solomonoff-lang/solomonoff/internal/symbol"
)

func markers(runes ...symbol.Symbol) symbol.IntSeq {
	return symbol.MustFromRunes(runes...)
}

func TestValidateAcceptsWellNested(t *testing.T) {
	m1 := symbol.MID + 1
	m2 := symbol.MID + 2
	seq := markers('a', m1, 'b', m2, 'c', m2, 'd', m1, 'e')
	if err := Validate(seq); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidateRejectsLowerNonzeroMarker(t *testing.T) {
	m1 := symbol.MID + 5
	m2 := symbol.MID + 3 // lower than m1 but nonzero: must open, not close
	// Sequence: open m1, then m2 appears where it is neither == m1 (close)
	// nor > m1 (open deeper) -- it's a protocol violation.
	seq := markers(m1, m2)
	// since m2 < m1, this is the violation case directly (m2 after m1 as
	// the current top).
	if err := Validate(seq); err == nil {
		t.Error("expected protocol violation for lower-but-nonzero marker")
	}
}

func TestValidateRejectsUnclosedGroup(t *testing.T) {
	m1 := symbol.MID + 1
	seq := markers('a', m1, 'b')
	if err := Validate(seq); err == nil {
		t.Error("expected error for unclosed submatch group")
	}
}

func TestApplyReplacesInnerRegion(t *testing.T) {
	m1 := symbol.MID + 1
	seq := markers('x', m1, 'h', 'i', m1, 'y')

	upper := func(marker symbol.Symbol, region symbol.IntSeq) (symbol.IntSeq, bool) {
		if marker == symbol.REFLECT {
			return region, true
		}
		out := make([]symbol.Symbol, 0, region.RuneCount())
		for _, r := range region.Runes() {
			if r >= 'a' && r <= 'z' {
				r = r - 'a' + 'A'
			}
			out = append(out, r)
		}
		return symbol.MustFromRunes(out...), true
	}

	out, ok, err := Apply(seq, upper)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !ok {
		t.Fatal("Apply should succeed")
	}
	if out.String() != "xHIy" {
		t.Errorf("out = %q, want %q", out.String(), "xHIy")
	}
}

func TestApplyPropagatesRejection(t *testing.T) {
	m1 := symbol.MID + 1
	seq := markers(m1, 'a', m1)

	reject := func(marker symbol.Symbol, region symbol.IntSeq) (symbol.IntSeq, bool) {
		if marker == symbol.REFLECT {
			return symbol.Empty, true
		}
		return symbol.Empty, false
	}

	_, ok, err := Apply(seq, reject)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if ok {
		t.Error("Apply should fail when an inner matcher rejects")
	}
}

func TestApplyWithNoMarkersCallsOutermostOnly(t *testing.T) {
	seq, _ := symbol.FromString("plain")
	calls := 0
	passthrough := func(marker symbol.Symbol, region symbol.IntSeq) (symbol.IntSeq, bool) {
		calls++
		if marker != symbol.REFLECT {
			t.Errorf("expected REFLECT marker for the only call, got %d", marker)
		}
		return region, true
	}
	out, ok, err := Apply(seq, passthrough)
	if err != nil || !ok {
		t.Fatalf("Apply: ok=%v err=%v", ok, err)
	}
	if calls != 1 {
		t.Errorf("expected exactly 1 matcher call, got %d", calls)
	}
	if out.String() != "plain" {
		t.Errorf("out = %q, want %q", out.String(), "plain")
	}
}

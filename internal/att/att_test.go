package att_test

import (
	"strings"
	"testing"

	"github.com/solomonoff-lang/solomonoff/internal/att"
	"github.com/solomonoff-lang/solomonoff/internal/combinators"
	"github.com/solomonoff-lang/solomonoff/internal/eval"
	"github.com/solomonoff-lang/solomonoff/internal/ig"
	"github.com/solomonoff-lang/solomonoff/internal/ranged"
	"github.com/solomonoff-lang/solomonoff/internal/symbol"
)

func charGraph(t *testing.T, c symbol.Symbol, out string) *ig.G {
	t.Helper()
	outSeq, err := symbol.FromString(out)
	if err != nil {
		t.Fatalf("FromString: %v", err)
	}
	g, err := ig.Char(ig.Unknown, c, ig.P{Output: outSeq})
	if err != nil {
		t.Fatalf("ig.Char: %v", err)
	}
	return g
}

func buildAA(t *testing.T) *ranged.RG {
	t.Helper()
	l := charGraph(t, 'a', "")
	r := charGraph(t, 'a', "")
	combined, err := combinators.Concatenation(l, r)
	if err != nil {
		t.Fatalf("Concatenation: %v", err)
	}
	rg, err := ranged.Build(combined)
	if err != nil {
		t.Fatalf("ranged.Build: %v", err)
	}
	return rg
}

func TestWriteProducesTabSeparatedLines(t *testing.T) {
	rg := buildAA(t)
	out, err := att.WriteString(rg)
	if err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	if !strings.Contains(out, "\t") {
		t.Fatalf("expected tab-separated output, got %q", out)
	}
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		fields := strings.Split(line, "\t")
		if len(fields) != 3 && len(fields) != 5 {
			t.Errorf("line %q: expected 3 or 5 fields, got %d", line, len(fields))
		}
	}
}

func TestRoundTripPreservesEvaluation(t *testing.T) {
	rg := buildAA(t)
	serialized, err := att.WriteString(rg)
	if err != nil {
		t.Fatalf("WriteString: %v", err)
	}

	back, err := att.Read(strings.NewReader(serialized))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	scratch := make([]int, back.Len())
	out, ok, err := eval.Evaluate(back, []symbol.Symbol{'a', 'a'}, scratch)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !ok {
		t.Fatal("expected round-tripped RG to accept \"aa\"")
	}
	if out.String() != "" {
		t.Errorf("expected empty output, got %q", out.String())
	}

	scratch = make([]int, back.Len())
	_, ok, err = eval.Evaluate(back, []symbol.Symbol{'a'}, scratch)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if ok {
		t.Error("expected round-tripped RG to reject \"a\"")
	}
}

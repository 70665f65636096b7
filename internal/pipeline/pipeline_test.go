package pipeline

import (
	"errors"
	"testing"

	"github.com/solomonoff-lang/solomonoff/internal/combinators"
	"github.com/solomonoff-lang/solomonoff/internal/ig"
	"github.com/solomonoff-lang/solomonoff/internal/ranged"
	"github.com/solomonoff-lang/solomonoff/internal/symbol"
)

func literalRG(t *testing.T, s string) *ranged.RG {
	t.Helper()
	runes := []symbol.Symbol(s)
	g := ig.New()
	end := g.AddNode(ig.Unknown)
	edge, err := ig.Singleton(runes[0], ig.Neutral)
	if err != nil {
		t.Fatal(err)
	}
	g.Incoming = []ig.IncomingStub{{Edge: edge, Target: end}}
	g.Outgoing[end] = ig.Neutral

	for _, r := range runes[1:] {
		next := ig.New()
		nend := next.AddNode(ig.Unknown)
		e, err := ig.Singleton(r, ig.Neutral)
		if err != nil {
			t.Fatal(err)
		}
		next.Incoming = []ig.IncomingStub{{Edge: e, Target: nend}}
		next.Outgoing[nend] = ig.Neutral
		g, err = combinators.Concatenation(g, next)
		if err != nil {
			t.Fatal(err)
		}
	}
	rg, err := ranged.Build(g)
	if err != nil {
		t.Fatal(err)
	}
	return rg
}

func TestSingleRGStageAcceptsAndRejects(t *testing.T) {
	p := NewPipeline([]Stage{{RG: literalRG(t, "aa")}})

	out, ok, err := p.Run([]symbol.Symbol("aa"))
	if err != nil || !ok {
		t.Fatalf("Run(aa) = (%v, %v, %v), want accepted", out, ok, err)
	}
	_, ok, err = p.Run([]symbol.Symbol("ab"))
	if err != nil {
		t.Fatalf("Run(ab): %v", err)
	}
	if ok {
		t.Error("Run(ab) should be rejected")
	}
}

func TestAlternativeFallsBackToRight(t *testing.T) {
	left := NewPipeline([]Stage{{RG: literalRG(t, "aa")}})
	right := NewPipeline([]Stage{{RG: literalRG(t, "bb")}})
	p := NewPipeline([]Stage{{AltLeft: left, AltRight: right}})

	if _, ok, err := p.Run([]symbol.Symbol("aa")); err != nil || !ok {
		t.Errorf("expected left branch to accept \"aa\": ok=%v err=%v", ok, err)
	}
	if _, ok, err := p.Run([]symbol.Symbol("bb")); err != nil || !ok {
		t.Errorf("expected right branch to accept \"bb\": ok=%v err=%v", ok, err)
	}
	if _, ok, _ := p.Run([]symbol.Symbol("cc")); ok {
		t.Error("expected neither branch to accept \"cc\"")
	}
}

type stubExternal struct {
	out      []symbol.Symbol
	accepted bool
	err      error
}

func (s stubExternal) Run(in []symbol.Symbol) ([]symbol.Symbol, bool, error) {
	return s.out, s.accepted, s.err
}

func TestExternalStageErrorBecomesRejection(t *testing.T) {
	p := NewPipeline([]Stage{{Ext: stubExternal{err: errors.New("boom")}}})
	_, ok, err := p.Run([]symbol.Symbol("x"))
	if err != nil {
		t.Fatalf("external stage error should be swallowed into rejection, got err=%v", err)
	}
	if ok {
		t.Error("expected rejection when external stage errors")
	}
}

func TestExternalStagePropagatesOutput(t *testing.T) {
	p := NewPipeline([]Stage{{Ext: stubExternal{out: []symbol.Symbol("ok"), accepted: true}}})
	out, ok, err := p.Run([]symbol.Symbol("x"))
	if err != nil || !ok {
		t.Fatalf("Run: (%v, %v, %v)", out, ok, err)
	}
	if string(out) != "ok" {
		t.Errorf("out = %q, want %q", string(out), "ok")
	}
}

func TestSequentialStagesChainBuffers(t *testing.T) {
	stage1 := Stage{RG: literalRG(t, "ab")}
	stage2 := Stage{Ext: stubExternal{out: []symbol.Symbol("final"), accepted: true}}
	p := NewPipeline([]Stage{stage1, stage2})

	out, ok, err := p.Run([]symbol.Symbol("ab"))
	if err != nil || !ok {
		t.Fatalf("Run: (%v, %v, %v)", out, ok, err)
	}
	if string(out) != "final" {
		t.Errorf("out = %q, want %q", string(out), "final")
	}
}

package combinators

import (
	"testing"

	"github.com/solomonoff-lang/solomonoff/internal/ig"
	"github.com/solomonoff-lang/solomonoff/internal/symbol"
)

// singleCharGraph builds the smallest nonempty G: one edge from a fresh
// incoming stub to a fresh accepting node, matching the single codepoint c.
func singleCharGraph(t *testing.T, c symbol.Symbol) *ig.G {
	t.Helper()
	g := ig.New()
	end := g.AddNode(ig.Unknown)
	edge, err := ig.Singleton(c, ig.Neutral)
	if err != nil {
		t.Fatalf("Singleton: %v", err)
	}
	g.Incoming = []ig.IncomingStub{{Edge: edge, Target: end}}
	g.Outgoing[end] = ig.Neutral
	return g
}

func TestConcatenationOfTwoSingleCharGraphs(t *testing.T) {
	l := singleCharGraph(t, 'a')
	r := singleCharGraph(t, 'b')

	result, err := Concatenation(l, r)
	if err != nil {
		t.Fatalf("Concatenation: %v", err)
	}
	if len(result.Incoming) != 1 {
		t.Fatalf("expected 1 incoming stub, got %d", len(result.Incoming))
	}
	if len(result.Outgoing) != 1 {
		t.Fatalf("expected 1 outgoing state, got %d", len(result.Outgoing))
	}
	if result.Epsilon != nil {
		t.Error("concatenation of two non-epsilon graphs should have no epsilon")
	}
}

func TestConcatenationWithEmptyLeftReturnsEmpty(t *testing.T) {
	empty := ig.New()
	r := singleCharGraph(t, 'b')

	result, err := Concatenation(empty, r)
	if err != nil {
		t.Fatalf("Concatenation: %v", err)
	}
	if !result.IsEmpty() {
		t.Error("concatenation with an empty operand must be empty")
	}
}

func TestUnionCombinesIncomingAndOutgoing(t *testing.T) {
	l := singleCharGraph(t, 'a')
	r := singleCharGraph(t, 'b')

	result, err := Union(l, r)
	if err != nil {
		t.Fatalf("Union: %v", err)
	}
	if len(result.Incoming) != 2 {
		t.Fatalf("expected 2 incoming stubs after union, got %d", len(result.Incoming))
	}
	if len(result.Outgoing) != 2 {
		t.Fatalf("expected 2 outgoing states after union, got %d", len(result.Outgoing))
	}
}

func TestEpsilonUnionPicksHigherWeight(t *testing.T) {
	lo := ig.P{Weight: 1, Output: symbol.Empty}
	hi := ig.P{Weight: 5, Output: symbol.Empty}

	got, err := epsilonUnion(&lo, &hi)
	if err != nil {
		t.Fatalf("epsilonUnion: %v", err)
	}
	if got.Weight != 5 {
		t.Errorf("expected higher-weight epsilon to win, got weight %d", got.Weight)
	}
}

func TestEpsilonUnionTiedWeightDisagreeingOutputsErrors(t *testing.T) {
	outA, _ := symbol.FromString("a")
	outB, _ := symbol.FromString("b")
	pa := ig.P{Weight: 3, Output: outA}
	pb := ig.P{Weight: 3, Output: outB}

	_, err := epsilonUnion(&pa, &pb)
	if err == nil {
		t.Error("expected KleeneNondeterminism for tied-weight disagreeing epsilons")
	}
	if _, ok := err.(ig.ErrKleeneNondeterminism); !ok {
		t.Errorf("expected ErrKleeneNondeterminism, got %T", err)
	}
}

func TestStarSetsNeutralEpsilon(t *testing.T) {
	g := singleCharGraph(t, 'a')
	result, err := Star(ig.Unknown, g)
	if err != nil {
		t.Fatalf("Star: %v", err)
	}
	if result.Epsilon == nil || !result.Epsilon.IsNeutral() {
		t.Error("Star must leave a neutral epsilon")
	}
	// The single accepting state should now also have a self-loop back to
	// the single incoming target.
	end := result.Incoming[0].Target
	n, err := result.Node(end)
	if err != nil {
		t.Fatal(err)
	}
	if len(n.Out) != 1 {
		t.Errorf("expected loop-back edge wired onto the accepting state, got %d out-edges", len(n.Out))
	}
}

func TestStarRejectsNonNeutralEpsilon(t *testing.T) {
	g := singleCharGraph(t, 'a')
	weighted := ig.P{Weight: 2, Output: symbol.Empty}
	g.Epsilon = &weighted

	_, err := Star(ig.Unknown, g)
	if err == nil {
		t.Error("expected KleeneNondeterminism for Star over a non-neutral epsilon")
	}
}

func TestPlusRejectsAlreadyNeutralEpsilon(t *testing.T) {
	g := singleCharGraph(t, 'a')
	neutral := ig.Neutral
	g.Epsilon = &neutral

	_, err := Plus(ig.Unknown, g)
	if err == nil {
		t.Error("expected KleeneNondeterminism for Plus over an already-neutral epsilon")
	}
}

func TestOptionalSetsNeutralEpsilonWithoutLooping(t *testing.T) {
	g := singleCharGraph(t, 'a')
	result, err := Optional(ig.Unknown, g)
	if err != nil {
		t.Fatalf("Optional: %v", err)
	}
	if result.Epsilon == nil || !result.Epsilon.IsNeutral() {
		t.Error("Optional must leave a neutral epsilon")
	}
	end := result.Incoming[0].Target
	n, err := result.Node(end)
	if err != nil {
		t.Fatal(err)
	}
	if len(n.Out) != 0 {
		t.Error("Optional must not wire any loop-back edges")
	}
}

func TestLeftActionPrependsWeightAndOutput(t *testing.T) {
	g := singleCharGraph(t, 'a')
	out, _ := symbol.FromString("x")
	p := ig.P{Weight: 4, Output: out}

	if err := LeftAction(g, p); err != nil {
		t.Fatalf("LeftAction: %v", err)
	}
	if g.Incoming[0].Edge.Partial.Weight != 4 {
		t.Errorf("expected incoming partial weight 4, got %d", g.Incoming[0].Edge.Partial.Weight)
	}
}

func TestRightActionPostpendsToOutgoing(t *testing.T) {
	g := singleCharGraph(t, 'a')
	out, _ := symbol.FromString("y")
	p := ig.P{Weight: 2, Output: out}

	if err := RightAction(g, p); err != nil {
		t.Fatalf("RightAction: %v", err)
	}
	for _, outP := range g.Outgoing {
		if outP.Weight != 2 {
			t.Errorf("expected outgoing weight 2, got %d", outP.Weight)
		}
	}
}

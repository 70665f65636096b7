package ranged

import (
	"testing"

	"github.com/solomonoff-lang/solomonoff/internal/ig"
	"github.com/solomonoff-lang/solomonoff/internal/symbol"
)

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

func assertSigmaCovered(t *testing.T, ranges []Range) {
	t.Helper()
	if len(ranges) == 0 {
		t.Fatal("expected at least one range")
	}
	if ranges[0].ToInclusive <= symbol.REFLECT {
		t.Errorf("first range must end above REFLECT, got %d", ranges[0].ToInclusive)
	}
	for i := 1; i < len(ranges); i++ {
		if ranges[i].ToInclusive <= ranges[i-1].ToInclusive {
			t.Errorf("ranges must strictly increase: range %d ends at %d, range %d ends at %d",
				i-1, ranges[i-1].ToInclusive, i, ranges[i].ToInclusive)
		}
	}
	if ranges[len(ranges)-1].ToInclusive != symbol.MaxSymbol {
		t.Errorf("last range must end at MaxSymbol, got %d", ranges[len(ranges)-1].ToInclusive)
	}
}

func TestBuildSingleCharGraphCoversSigma(t *testing.T) {
	g := singleCharGraph(t, 'a')
	rg, err := Build(g)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if rg.Len() != 2 {
		t.Fatalf("expected 2 states (virtual init + 1 real), got %d", rg.Len())
	}
	assertSigmaCovered(t, rg.Transitions(0))

	// Exactly one range should carry a transition: the one ending at 'a'.
	matches := 0
	for _, r := range rg.Transitions(0) {
		if len(r.Edges) > 0 {
			matches++
			if r.ToInclusive != 'a' {
				t.Errorf("active range should end at %q, ended at %d", 'a', r.ToInclusive)
			}
		}
	}
	if matches != 1 {
		t.Errorf("expected exactly 1 non-empty range, got %d", matches)
	}
}

func TestBuildOverlappingEdgesProduceCorrectSnapshots(t *testing.T) {
	g := ig.New()
	end1 := g.AddNode(ig.Unknown)
	end2 := g.AddNode(ig.Unknown)

	e0, err := ig.NewEdge(0, 2, ig.Neutral) // (0,2]
	if err != nil {
		t.Fatal(err)
	}
	e1, err := ig.NewEdge(1, 3, ig.Neutral) // (1,3]
	if err != nil {
		t.Fatal(err)
	}
	g.Incoming = []ig.IncomingStub{
		{Edge: e0, Target: end1},
		{Edge: e1, Target: end2},
	}
	g.Outgoing[end1] = ig.Neutral
	g.Outgoing[end2] = ig.Neutral

	rg, err := Build(g)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	ranges := rg.Transitions(0)
	assertSigmaCovered(t, ranges)

	byBoundary := make(map[symbol.Symbol]int)
	for _, r := range ranges {
		byBoundary[r.ToInclusive] = len(r.Edges)
	}
	if byBoundary[1] != 1 {
		t.Errorf("symbol 1 should have exactly 1 active edge (only e0), got %d", byBoundary[1])
	}
	if byBoundary[2] != 2 {
		t.Errorf("symbol 2 should have exactly 2 active edges (e0 closing, e1 still open), got %d", byBoundary[2])
	}
	if byBoundary[3] != 1 {
		t.Errorf("symbol 3 should have exactly 1 active edge (only e1), got %d", byBoundary[3])
	}
}

func TestBuildEmptyOutgoingProducesSingleDeadRange(t *testing.T) {
	g := ig.New()
	ranges, err := sweep(nil)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if len(ranges) != 1 || ranges[0].ToInclusive != symbol.MaxSymbol || len(ranges[0].Edges) != 0 {
		t.Errorf("expected a single dead range ending at MaxSymbol, got %+v", ranges)
	}
	_ = g
}

func TestBuildAcceptingStateCarriesOutgoingWeight(t *testing.T) {
	g := singleCharGraph(t, 'a')

	rg, err := Build(g)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if rg.Accept(1) == nil {
		t.Error("state 1 should be accepting")
	}
	if rg.Accept(0) != nil {
		t.Error("virtual initial state should not accept without an epsilon")
	}
}

func TestBinarySearchLocatesCorrectRange(t *testing.T) {
	g := singleCharGraph(t, 'm')
	rg, err := Build(g)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	edges := BinarySearch(rg.Transitions(0), 'm')
	if len(edges) != 1 {
		t.Fatalf("expected 1 transition at 'm', got %d", len(edges))
	}
	edges = BinarySearch(rg.Transitions(0), 'z')
	if len(edges) != 0 {
		t.Errorf("expected no transition at 'z', got %d", len(edges))
	}
}

package ig

import (
	"testing"

	"github.com/solomonoff-lang/solomonoff/internal/symbol"
)

func buildTwoStateChain(t *testing.T) (*G, NodeHandle, NodeHandle) {
	t.Helper()
	g := New()
	start := g.AddNode(Unknown)
	end := g.AddNode(Unknown)

	edge, err := NewEdge('a'-1, 'a', Neutral)
	if err != nil {
		t.Fatalf("NewEdge: %v", err)
	}
	n, _ := g.Node(start)
	n.AddOut(edge, end)

	g.Incoming = []IncomingStub{{Edge: mustEdge(t, 0, 1), Target: start}}
	g.Outgoing[end] = Neutral

	return g, start, end
}

func mustEdge(t *testing.T, from, to symbol.Symbol) *E {
	t.Helper()
	e, err := NewEdge(from, to, Neutral)
	if err != nil {
		t.Fatalf("NewEdge: %v", err)
	}
	return e
}

func TestPMulSumsWeightsAndConcatenatesOutputs(t *testing.T) {
	out1, _ := symbol.FromString("ab")
	out2, _ := symbol.FromString("cd")
	p1 := P{Weight: 2, Output: out1}
	p2 := P{Weight: 3, Output: out2}

	got, err := p1.Mul(p2)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	if got.Weight != 5 {
		t.Errorf("Weight = %d, want 5", got.Weight)
	}
	if got.Output.String() != "abcd" {
		t.Errorf("Output = %q, want %q", got.Output.String(), "abcd")
	}
}

func TestNeutralIsMulIdentity(t *testing.T) {
	out, _ := symbol.FromString("x")
	p := P{Weight: 7, Output: out}

	left, err := Neutral.Mul(p)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	right, err := p.Mul(Neutral)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	if left != p || right != p {
		t.Errorf("Neutral is not a two-sided identity: left=%v right=%v p=%v", left, right, p)
	}
}

func TestNewEdgeRejectsBackwardsInterval(t *testing.T) {
	_, err := NewEdge('z', 'a', Neutral)
	if err == nil {
		t.Error("expected error for from >= to")
	}
}

func TestGraphEmptiness(t *testing.T) {
	g := New()
	if !g.IsEmpty() {
		t.Error("fresh graph should be empty")
	}

	h := g.AddNode(Unknown)
	g.Outgoing[h] = Neutral
	if !g.IsEmpty() {
		t.Error("graph with an accepting outgoing state plus no incoming should still count empty (incoming empty)")
	}

	g.Incoming = []IncomingStub{{Edge: mustEdge(t, 0, 1), Target: h}}
	if g.IsEmpty() {
		t.Error("graph with both incoming and outgoing should not be empty")
	}
}

func TestCloneIsDisjointFromOriginal(t *testing.T) {
	g, start, end := buildTwoStateChain(t)
	clone := g.Clone()

	if clone.NodeCount() != g.NodeCount() {
		t.Fatalf("clone node count = %d, want %d", clone.NodeCount(), g.NodeCount())
	}

	// Mutate the original: add a new outgoing edge on `start`.
	n, err := g.Node(start)
	if err != nil {
		t.Fatal(err)
	}
	extra, _ := NewEdge('b'-1, 'b', Neutral)
	n.AddOut(extra, end)

	cloneStart, err := clone.Node(remapToClone(t, g, clone, start))
	if err != nil {
		t.Fatal(err)
	}
	if len(cloneStart.Out) != 1 {
		t.Errorf("clone should be unaffected by mutation of original: got %d outgoing edges, want 1",
			len(cloneStart.Out))
	}
}

// remapToClone finds the clone's handle for a node at the same DFS
// position as h in the original, since Clone() does not expose the remap.
func remapToClone(t *testing.T, orig, clone *G, h NodeHandle) NodeHandle {
	t.Helper()
	origOrder := orig.CollectDFS(orig.RootsFromIncoming())
	cloneOrder := clone.CollectDFS(clone.RootsFromIncoming())
	for i, oh := range origOrder {
		if oh == h {
			return cloneOrder[i]
		}
	}
	t.Fatalf("handle %v not reachable from incoming", h)
	return -1
}

func TestCollectDFSVisitsEachNodeOnce(t *testing.T) {
	g := New()
	a := g.AddNode(Unknown)
	b := g.AddNode(Unknown)
	c := g.AddNode(Unknown)

	an, _ := g.Node(a)
	e1, _ := NewEdge('a'-1, 'a', Neutral)
	an.AddOut(e1, b)
	e2, _ := NewEdge('b'-1, 'b', Neutral)
	an.AddOut(e2, c)

	bn, _ := g.Node(b)
	e3, _ := NewEdge('c'-1, 'c', Neutral)
	bn.AddOut(e3, c) // converges back to c, must not be double-visited

	order := g.CollectDFS([]NodeHandle{a})
	if len(order) != 3 {
		t.Fatalf("expected 3 distinct nodes, got %d: %v", len(order), order)
	}
}

func TestDeleteAllEmptiesGraph(t *testing.T) {
	g, _, _ := buildTwoStateChain(t)
	g.DeleteAll()
	if g.NodeCount() != 0 {
		t.Errorf("NodeCount after DeleteAll = %d, want 0", g.NodeCount())
	}
	if !g.IsEmpty() {
		t.Error("graph should be empty after DeleteAll")
	}
}

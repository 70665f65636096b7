package ig

import "sync/atomic"

var instanceCounter uint64

func nextInstanceID() uint64 { return atomic.AddUint64(&instanceCounter, 1) }

// IncomingStub is a dangling (edge, target) pair: an edge template plus the
// node it should land on, waiting for a predecessor to be attached by a
// combinator (spec §3's `incoming: Sequence<(E, N*)>`).
type IncomingStub struct {
	Edge   *E
	Target NodeHandle
}

// G is the intermediate graph: owned nodes, incoming stubs, accepting
// states with final weight, and an optional epsilon acceptance (spec §3).
// Modeled on teacher internal/graph/probabilistic_adjacency_list_graph.go's
// owned-map-of-owned-map shape, with node identity replaced by arena
// handles (spec §9).
type G struct {
	instanceID uint64
	nodes      map[NodeHandle]*N
	nextHandle NodeHandle

	Incoming []IncomingStub
	Outgoing map[NodeHandle]P
	Epsilon  *P
}

// New returns an empty intermediate graph.
func New() *G {
	return &G{
		instanceID: nextInstanceID(),
		nodes:      make(map[NodeHandle]*N),
		Outgoing:   make(map[NodeHandle]P),
	}
}

// IsEmpty reports spec §3's emptiness condition: no epsilon and (no
// incoming or no outgoing).
func (g *G) IsEmpty() bool {
	return g.Epsilon == nil && (len(g.Incoming) == 0 || len(g.Outgoing) == 0)
}

// AddNode allocates a fresh owned node with the given provenance.
func (g *G) AddNode(pos V) NodeHandle {
	h := g.nextHandle
	g.nextHandle++
	g.nodes[h] = &N{Pos: pos, handle: h, ownerID: g.instanceID}
	return h
}

// Node resolves a handle to its node, failing if g holds no node under that
// handle. A handle taken from a different graph is not detected: it resolves
// to whatever node g holds under the same number, if any.
func (g *G) Node(h NodeHandle) (*N, error) {
	n, ok := g.nodes[h]
	if !ok {
		return nil, errDanglingHandle(h)
	}
	return n, nil
}

// NodeCount reports the number of live nodes.
func (g *G) NodeCount() int { return len(g.nodes) }

// Handles returns every live node handle, in unspecified order; callers
// that need determinism sort the result (most callers DFS from Incoming
// instead, which is naturally deterministic).
func (g *G) Handles() []NodeHandle {
	hs := make([]NodeHandle, 0, len(g.nodes))
	for h := range g.nodes {
		hs = append(hs, h)
	}
	return hs
}

// DeleteAll tears down every node, for use during combinator error paths
// and parser-state destruction (spec §5). After DeleteAll, g is empty and
// any ghost pool tracking it should observe zero live allocations.
func (g *G) DeleteAll() {
	g.nodes = make(map[NodeHandle]*N)
	g.Incoming = nil
	g.Outgoing = make(map[NodeHandle]P)
	g.Epsilon = nil
}

// AbsorbForCombinator relabels every node of other onto g's handle space
// (continuing from g.nextHandle) and returns the handle remap. It does not
// touch g.Incoming/Outgoing/Epsilon or other's — callers (internal/
// combinators) combine those separately using the returned remap. other is
// left with no usable nodes of its own after this call (ownership
// transferred).
func (g *G) AbsorbForCombinator(other *G) map[NodeHandle]NodeHandle {
	remap := make(map[NodeHandle]NodeHandle, len(other.nodes))
	for h := range other.nodes {
		remap[h] = g.nextHandle
		g.nextHandle++
	}
	for oldH, n := range other.nodes {
		newH := remap[oldH]
		n.handle = newH
		n.ownerID = g.instanceID
		for i, oe := range n.Out {
			n.Out[i] = OutEdge{Edge: oe.Edge, Target: remap[oe.Target]}
		}
		g.nodes[newH] = n
	}
	other.nodes = make(map[NodeHandle]*N)
	return remap
}

// RemapIncoming translates a set of incoming stubs through a handle remap
// produced by AbsorbForCombinator.
func RemapIncoming(stubs []IncomingStub, remap map[NodeHandle]NodeHandle) []IncomingStub {
	out := make([]IncomingStub, len(stubs))
	for i, s := range stubs {
		out[i] = IncomingStub{Edge: s.Edge, Target: remap[s.Target]}
	}
	return out
}

// RemapOutgoing translates an outgoing map through a handle remap produced
// by AbsorbForCombinator.
func RemapOutgoing(outgoing map[NodeHandle]P, remap map[NodeHandle]NodeHandle) map[NodeHandle]P {
	out := make(map[NodeHandle]P, len(outgoing))
	for h, p := range outgoing {
		out[remap[h]] = p
	}
	return out
}

package ranged

import (
	"sort"

	"github.com/solomonoff-lang/solomonoff/internal/ig"
	"github.com/solomonoff-lang/solomonoff/internal/symbol"
)

// outEdge is a (partial edge, target) pair in the coordinate space used by
// the interval-splitting sweep, abstracting over the fact that the virtual
// initial state's out-edges come from G's incoming stubs while every other
// state's come from a real node's owned Out slice (spec §4.2 step 1).
type outEdge struct {
	from, to symbol.Symbol
	partial  ig.P
	target   int
}

// Build materializes the ranged graph from an intermediate graph (spec
// §4.2): a fresh virtual initial state is seeded from g's incoming stubs,
// every reachable node is given a dense index by DFS, and each state's
// transitions are computed by sweeping its outgoing edges' interval
// endpoints left to right.
func Build(g *ig.G) (*RG, error) {
	order := g.CollectDFS(g.RootsFromIncoming())
	indexOf := make(map[ig.NodeHandle]int, len(order))
	for i, h := range order {
		indexOf[h] = i + 1 // state 0 is reserved for the virtual initial state
	}

	n := len(order) + 1
	states := make([][]Range, n)
	accepting := make([]*ig.P, n)
	positions := make([]ig.V, n)

	initEdges := make([]outEdge, len(g.Incoming))
	for i, stub := range g.Incoming {
		initEdges[i] = outEdge{
			from:    stub.Edge.FromExclusive,
			to:      stub.Edge.ToInclusive,
			partial: stub.Edge.Partial,
			target:  targetIndex(indexOf, stub.Target),
		}
	}
	ranges, err := sweep(initEdges)
	if err != nil {
		return nil, err
	}
	states[0] = ranges
	if g.Epsilon != nil {
		eps := *g.Epsilon
		accepting[0] = &eps
	}

	for i, h := range order {
		node, err := g.Node(h)
		if err != nil {
			return nil, err
		}
		positions[i+1] = node.Pos

		edges := make([]outEdge, len(node.Out))
		for j, oe := range node.Out {
			edges[j] = outEdge{
				from:    oe.Edge.FromExclusive,
				to:      oe.Edge.ToInclusive,
				partial: oe.Edge.Partial,
				target:  targetIndex(indexOf, oe.Target),
			}
		}
		ranges, err := sweep(edges)
		if err != nil {
			return nil, err
		}
		states[i+1] = ranges

		if p, ok := g.Outgoing[h]; ok {
			pc := p
			accepting[i+1] = &pc
		}
	}

	return &RG{States: states, Accepting: accepting, Positions: positions, Initial: 0}, nil
}

func targetIndex(indexOf map[ig.NodeHandle]int, h ig.NodeHandle) int {
	if idx, ok := indexOf[h]; ok {
		return idx
	}
	return NoTarget
}

type sweepEvent struct {
	pos    symbol.Symbol
	isOpen bool
	idx    int
}

// sweep computes the interval-split Range slice for a single state's
// outgoing edges (spec §4.2 step 3): build open/close events for every
// edge's (from_exclusive, to_inclusive], sweep them in ascending symbol
// order, and emit one Range per distinct symbol greater than REFLECT using
// the active set as it stood immediately before that symbol's own events
// are applied — so an edge opening exactly at a symbol does not yet cover
// it, while an edge closing exactly at a symbol still does.
func sweep(edges []outEdge) ([]Range, error) {
	if len(edges) == 0 {
		return []Range{{ToInclusive: symbol.MaxSymbol}}, nil
	}

	events := make([]sweepEvent, 0, len(edges)*2)
	for i, e := range edges {
		events = append(events, sweepEvent{pos: e.from, isOpen: true, idx: i})
		events = append(events, sweepEvent{pos: e.to, isOpen: false, idx: i})
	}
	sort.SliceStable(events, func(a, b int) bool { return events[a].pos < events[b].pos })

	var ranges []Range
	var active []int // ordered by insertion, the edge indices currently spanning the swept position

	i := 0
	for i < len(events) {
		pos := events[i].pos
		if pos > symbol.REFLECT {
			ranges = append(ranges, Range{ToInclusive: pos, Edges: snapshot(edges, active)})
		}
		for i < len(events) && events[i].pos == pos {
			ev := events[i]
			if ev.isOpen {
				active = append(active, ev.idx)
			} else {
				active = removeEdge(active, ev.idx)
			}
			i++
		}
	}

	if len(ranges) == 0 || ranges[len(ranges)-1].ToInclusive != symbol.MaxSymbol {
		ranges = append(ranges, Range{ToInclusive: symbol.MaxSymbol, Edges: snapshot(edges, active)})
	}

	if len(active) != 0 {
		return nil, ig.IGError{Kind: "IntervalSweepImbalance",
			Message: "active edge set nonempty after sweep; an edge's interval was malformed"}
	}
	return ranges, nil
}

func snapshot(edges []outEdge, active []int) []Transition {
	if len(active) == 0 {
		return nil
	}
	out := make([]Transition, len(active))
	for i, idx := range active {
		out[i] = Transition{Edge: edges[idx].partial, Target: edges[idx].target}
	}
	return out
}

func removeEdge(active []int, idx int) []int {
	for i, v := range active {
		if v == idx {
			return append(active[:i], active[i+1:]...)
		}
	}
	return active
}

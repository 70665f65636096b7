package ig

// Clone produces a fully disjoint graph preserving topology (spec §5, §9
// DESIGN NOTE): a DFS pass allocates shallow copies into an old-to-new
// handle map, then a second pass translates outgoing edges through that
// map. Grounded on teacher internal/graph/probabilistic_adjacency_list_graph.go's
// Clone() (copy every node and edge, then relink via the copied objects)
// and exercised the same way teacher's clone_test.go exercises its Clone:
// mutate the original after cloning and assert the clone is unaffected.
func (g *G) Clone() *G {
	clone := New()

	remap := make(map[NodeHandle]NodeHandle, len(g.nodes))

	// Pass 1: allocate shallow copies (provenance only) for every reachable
	// node, discovered via DFS from Incoming so cyclic graphs terminate.
	visited := make(map[NodeHandle]bool)
	var stack []NodeHandle
	for _, stub := range g.Incoming {
		stack = append(stack, stub.Target)
	}
	for h := range g.Outgoing {
		stack = append(stack, h)
	}
	for len(stack) > 0 {
		h := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[h] {
			continue
		}
		visited[h] = true
		remap[h] = clone.AddNode(g.nodes[h].Pos)
		for _, oe := range g.nodes[h].Out {
			stack = append(stack, oe.Target)
		}
	}

	// Pass 2: translate outgoing edges through remap. Edge values
	// themselves are copied (new *E) so the clone never aliases the
	// original's owned edges.
	for oldH, newH := range remap {
		orig := g.nodes[oldH]
		clonedNode := clone.nodes[newH]
		for _, oe := range orig.Out {
			edgeCopy := *oe.Edge
			clonedNode.AddOut(&edgeCopy, remap[oe.Target])
		}
	}

	clone.Incoming = make([]IncomingStub, len(g.Incoming))
	for i, stub := range g.Incoming {
		edgeCopy := *stub.Edge
		clone.Incoming[i] = IncomingStub{Edge: &edgeCopy, Target: remap[stub.Target]}
	}

	clone.Outgoing = make(map[NodeHandle]P, len(g.Outgoing))
	for h, p := range g.Outgoing {
		clone.Outgoing[remap[h]] = p
	}

	if g.Epsilon != nil {
		eps := *g.Epsilon
		clone.Epsilon = &eps
	}

	return clone
}

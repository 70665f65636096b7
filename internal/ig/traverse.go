package ig

// Traversal utilities grounded on teacher internal/inference/graph_traversals.go:
// dfsProbabilisticReachability's recursion+visited-set becomes CollectDFS,
// and bfsDeterministicReachability's queue-based BFS becomes CollectBFS —
// repurposed from reachability probability to dense-index assignment for
// ranged-graph construction (spec §4.2 step 2).

// CollectDFS returns every node handle reachable from roots, in DFS
// preorder, each handle appearing exactly once.
func (g *G) CollectDFS(roots []NodeHandle) []NodeHandle {
	visited := make(map[NodeHandle]bool)
	var order []NodeHandle

	var visit func(h NodeHandle)
	visit = func(h NodeHandle) {
		if visited[h] {
			return
		}
		visited[h] = true
		order = append(order, h)
		n, err := g.Node(h)
		if err != nil {
			return
		}
		for _, oe := range n.Out {
			visit(oe.Target)
		}
	}
	for _, r := range roots {
		visit(r)
	}
	return order
}

// CollectBFS returns every node handle reachable from roots, in BFS order.
func (g *G) CollectBFS(roots []NodeHandle) []NodeHandle {
	visited := make(map[NodeHandle]bool)
	var order []NodeHandle
	queue := append([]NodeHandle{}, roots...)
	for _, r := range roots {
		visited[r] = true
	}
	for len(queue) > 0 {
		h := queue[0]
		queue = queue[1:]
		order = append(order, h)
		n, err := g.Node(h)
		if err != nil {
			continue
		}
		for _, oe := range n.Out {
			if !visited[oe.Target] {
				visited[oe.Target] = true
				queue = append(queue, oe.Target)
			}
		}
	}
	return order
}

// RootsFromIncoming extracts the distinct target handles named by the
// graph's incoming stubs, the natural DFS/BFS root set before a predecessor
// has been attached.
func (g *G) RootsFromIncoming() []NodeHandle {
	seen := make(map[NodeHandle]bool)
	var roots []NodeHandle
	for _, stub := range g.Incoming {
		if !seen[stub.Target] {
			seen[stub.Target] = true
			roots = append(roots, stub.Target)
		}
	}
	return roots
}

package ig

// NodeHandle is the arena-stable reference to a node, replacing the
// original's raw pointer identity per spec §9 DESIGN NOTE ("an arena with
// stable integer indices ... enables Copy state references, avoids
// lifetime noise, naturally supports cloning by index remap").
type NodeHandle int

// OutEdge pairs an owned edge with the handle of the node it targets.
type OutEdge struct {
	Edge   *E
	Target NodeHandle
}

// N is a node: provenance plus an owned list of outgoing (E, N) pairs
// (spec §3).
type N struct {
	Pos     V
	Out     []OutEdge
	handle  NodeHandle
	ownerID uint64 // the owning G's instance tag; no lookup checks it
}

// Handle returns the node's stable arena handle.
func (n *N) Handle() NodeHandle { return n.handle }

// AddOut appends an outgoing (edge, target) pair to the node.
func (n *N) AddOut(edge *E, target NodeHandle) {
	n.Out = append(n.Out, OutEdge{Edge: edge, Target: target})
}

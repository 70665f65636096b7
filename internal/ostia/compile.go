package ostia

import (
	"github.com/solomonoff-lang/solomonoff/internal/ig"
	"github.com/solomonoff-lang/solomonoff/internal/symbol"
)

// compile walks the compressed automaton rooted at root and builds an
// intermediate graph from it: one IG node per distinct state reachable
// through a real (non-merge-redirected-away) transition, root's own
// transitions seeding g.Incoming, every accepting state's verdict seeding
// g.Outgoing, and root's own verdict (if any) seeding g.Epsilon (spec
// §4.5, grounded on State::compile).
//
// root is allocated its own IG node only if some other state's transition
// targets it directly (a merge folded a descendant back onto the root,
// producing a cycle through it); otherwise root is represented purely by
// g.Incoming and never gets a node of its own, since nothing in the graph
// could ever reach it as an edge target.
func compile(root *state, alphabet *Alphabet, pos ig.V) (*ig.G, error) {
	rootTargeted := false
	visited := map[*state]bool{}
	var scan func(s *state)
	scan = func(s *state) {
		if visited[s] {
			return
		}
		visited[s] = true
		for _, e := range s.transitions {
			if e == nil {
				continue
			}
			if e.target == root {
				rootTargeted = true
			}
			scan(e.target)
		}
	}
	scan(root)

	g := ig.New()
	handles := map[*state]ig.NodeHandle{}
	visited = map[*state]bool{}
	var allocate func(s *state)
	allocate = func(s *state) {
		if visited[s] {
			return
		}
		visited[s] = true
		if s == root && !rootTargeted {
			return
		}
		handles[s] = g.AddNode(pos)
		for _, e := range s.transitions {
			if e != nil {
				allocate(e.target)
			}
		}
	}
	allocate(root)

	visited = map[*state]bool{}
	var wire func(s *state) error
	wire = func(s *state) error {
		if visited[s] {
			return nil
		}
		visited[s] = true
		h, hasNode := handles[s]
		var node *ig.N
		if hasNode {
			n, err := g.Node(h)
			if err != nil {
				return err
			}
			node = n
		}
		for idx, e := range s.transitions {
			if e == nil {
				continue
			}
			out, err := symbol.FromRunes(e.output)
			if err != nil {
				return err
			}
			transitionEdge, err := ig.Singleton(alphabet.Symbol(idx), ig.P{Output: out})
			if err != nil {
				return err
			}
			if hasNode {
				node.AddOut(transitionEdge, handles[e.target])
			}
			if err := wire(e.target); err != nil {
				return err
			}
		}
		return nil
	}
	if err := wire(root); err != nil {
		return nil, err
	}

	for idx, e := range root.transitions {
		if e == nil {
			continue
		}
		out, err := symbol.FromRunes(e.output)
		if err != nil {
			return nil, err
		}
		stubEdge, err := ig.Singleton(alphabet.Symbol(idx), ig.P{Output: out})
		if err != nil {
			return nil, err
		}
		g.Incoming = append(g.Incoming, ig.IncomingStub{Edge: stubEdge, Target: handles[e.target]})
	}

	if root.out.tag == outputAccepting {
		out, err := symbol.FromRunes(root.out.seq)
		if err != nil {
			return nil, err
		}
		eps := ig.P{Output: out}
		g.Epsilon = &eps
	}

	for s, h := range handles {
		if s.out.tag == outputAccepting {
			out, err := symbol.FromRunes(s.out.seq)
			if err != nil {
				return nil, err
			}
			g.Outgoing[h] = ig.P{Output: out}
		}
	}

	return g, nil
}

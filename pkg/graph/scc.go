package graph

import (
	"slices"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/hungdaqq/mappymatch/pkg/errors"
)

// StronglyConnectedComponents returns the strongly connected components of
// the graph as node id sets. Within each component every node reaches every
// other via directed paths. Component order is not guaranteed; node ids
// within a component are sorted ascending.
func StronglyConnectedComponents(g *Graph) [][]int64 {
	dg := simple.NewDirectedGraph()
	for _, id := range g.Nodes() {
		dg.AddNode(simple.Node(id))
	}
	for _, e := range g.Edges() {
		// Self-loops cannot change component membership and simple graphs
		// reject them.
		if e.From == e.To {
			continue
		}
		if !dg.HasEdgeFromTo(e.From, e.To) {
			dg.SetEdge(dg.NewEdge(simple.Node(e.From), simple.Node(e.To)))
		}
	}

	var out [][]int64
	for _, comp := range topo.TarjanSCC(dg) {
		ids := make([]int64, len(comp))
		for i, n := range comp {
			ids[i] = n.ID()
		}
		slices.Sort(ids)
		out = append(out, ids)
	}
	return out
}

// Reduce returns the induced subgraph on the largest strongly connected
// component, discarding all nodes and edges outside it. Ties on component
// size break deterministically toward the component containing the smallest
// node id. Fails with a NOT_ROUTABLE error if the graph has no edges: an
// isolated-node-only graph is not routable.
func Reduce(g *Graph) (*Graph, error) {
	if g.EdgeCount() == 0 {
		return nil, errors.New(errors.ErrCodeNotRoutable,
			"road network has no strongly connected components and is not routable; check polygon boundaries")
	}

	components := StronglyConnectedComponents(g)

	var winner []int64
	for _, comp := range components {
		switch {
		case winner == nil:
			winner = comp
		case len(comp) > len(winner):
			winner = comp
		case len(comp) == len(winner) && comp[0] < winner[0]:
			winner = comp
		}
	}

	return g.Subgraph(winner), nil
}

package pipeline

import (
	"github.com/hungdaqq/mappymatch/pkg/graph"
	"github.com/hungdaqq/mappymatch/pkg/roadnet"
)

// BuildGraph expands canonical records into directed edges and assembles the
// multigraph. Two-way records contribute one edge per direction; the
// reversed edge carries its own key so parallel roads between the same
// junctions stay distinct.
//
// The returned count is the number of edges that overwrote an existing edge
// with the same (from, to, key) address. Collisions indicate duplicate road
// identifiers in the input and are surfaced in [Stats.KeyCollisions].
func BuildGraph(records []roadnet.Record, crs string) (*graph.Graph, int) {
	g := graph.New()
	g.SetMetadata(graph.DefaultMetadata(crs))

	collisions := 0
	for _, rec := range records {
		for _, e := range roadnet.Expand(rec) {
			if g.AddEdge(e) {
				collisions++
			}
		}
	}
	return g, collisions
}

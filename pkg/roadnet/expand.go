package roadnet

import (
	"github.com/paulmach/orb"

	"github.com/hungdaqq/mappymatch/pkg/graph"
)

// Expand yields the directed edges implied by a canonical record's travel
// direction: one edge for Forward or Backward, two for Both. The backward
// edge runs to-node → from-node with the geometry coordinate order reversed
// and is keyed by the reversed form of the road id, so it can never collide
// with the forward edge or with a distinct road sharing the id.
//
// Expansion is pure: it depends on no other record and never mutates its
// input.
func Expand(rec Record) []graph.Edge {
	switch rec.Direction {
	case DirectionForward:
		return []graph.Edge{forwardEdge(rec)}
	case DirectionBackward:
		return []graph.Edge{backwardEdge(rec)}
	case DirectionBoth:
		return []graph.Edge{forwardEdge(rec), backwardEdge(rec)}
	}
	return nil
}

func forwardEdge(rec Record) graph.Edge {
	return graph.Edge{
		From:       rec.FromNode,
		To:         rec.ToNode,
		Key:        graph.EdgeKey{RoadID: rec.RoadID},
		Kilometers: rec.Kilometers,
		Minutes:    rec.ForwardMinutes,
		Geometry:   rec.Geometry,
		RoadID:     rec.RoadID,
	}
}

func backwardEdge(rec Record) graph.Edge {
	return graph.Edge{
		From:       rec.ToNode,
		To:         rec.FromNode,
		Key:        graph.EdgeKey{RoadID: rec.RoadID, Reversed: true},
		Kilometers: rec.Kilometers,
		Minutes:    rec.BackwardMinutes,
		Geometry:   reverse(rec.Geometry),
		RoadID:     rec.RoadID,
	}
}

// reverse returns a new LineString with the coordinate order flipped.
func reverse(ls orb.LineString) orb.LineString {
	out := make(orb.LineString, len(ls))
	for i, p := range ls {
		out[len(ls)-1-i] = p
	}
	return out
}

package graph

import (
	"slices"
	"testing"

	"github.com/paulmach/orb"
)

func TestAddEdge(t *testing.T) {
	g := New()

	replaced := g.AddEdge(Edge{From: 1, To: 2, Key: EdgeKey{RoadID: 10}, Minutes: 3})
	if replaced {
		t.Error("first AddEdge should not report replacement")
	}

	if g.NodeCount() != 2 {
		t.Errorf("NodeCount = %d, want 2", g.NodeCount())
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount = %d, want 1", g.EdgeCount())
	}

	e, ok := g.Edge(1, 2, EdgeKey{RoadID: 10})
	if !ok {
		t.Fatal("edge (1,2,10) not found")
	}
	if e.Minutes != 3 {
		t.Errorf("Minutes = %v, want 3", e.Minutes)
	}
}

func TestAddEdgeParallel(t *testing.T) {
	g := New()

	// Two physical roads between the same junction pair.
	g.AddEdge(Edge{From: 1, To: 2, Key: EdgeKey{RoadID: 10}, Minutes: 3})
	g.AddEdge(Edge{From: 1, To: 2, Key: EdgeKey{RoadID: 11}, Minutes: 5})

	if g.EdgeCount() != 2 {
		t.Fatalf("EdgeCount = %d, want 2", g.EdgeCount())
	}
	if g.OutDegree(1) != 2 {
		t.Errorf("OutDegree(1) = %d, want 2", g.OutDegree(1))
	}

	// Forward and reversed copies of the same road never collide.
	g.AddEdge(Edge{From: 2, To: 1, Key: EdgeKey{RoadID: 10, Reversed: true}, Minutes: 4})
	if g.EdgeCount() != 3 {
		t.Errorf("EdgeCount = %d, want 3", g.EdgeCount())
	}
}

func TestAddEdgeCollision(t *testing.T) {
	g := New()

	g.AddEdge(Edge{From: 1, To: 2, Key: EdgeKey{RoadID: 10}, Minutes: 3})
	replaced := g.AddEdge(Edge{From: 1, To: 2, Key: EdgeKey{RoadID: 10}, Minutes: 7})

	if !replaced {
		t.Error("collision on (from, to, key) should report replacement")
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount = %d, want 1 (overwrite, not append)", g.EdgeCount())
	}

	e, _ := g.Edge(1, 2, EdgeKey{RoadID: 10})
	if e.Minutes != 7 {
		t.Errorf("Minutes = %v, want 7 (last write wins)", e.Minutes)
	}
}

func TestNodes(t *testing.T) {
	g := New()
	g.AddEdge(Edge{From: 3, To: 1, Key: EdgeKey{RoadID: 1}})
	g.AddEdge(Edge{From: 2, To: 3, Key: EdgeKey{RoadID: 2}})
	g.AddNode(9)

	want := []int64{1, 2, 3, 9}
	if got := g.Nodes(); !slices.Equal(got, want) {
		t.Errorf("Nodes() = %v, want %v", got, want)
	}
}

func TestSubgraph(t *testing.T) {
	g := New()
	g.AddEdge(Edge{From: 1, To: 2, Key: EdgeKey{RoadID: 10}})
	g.AddEdge(Edge{From: 2, To: 1, Key: EdgeKey{RoadID: 10, Reversed: true}})
	g.AddEdge(Edge{From: 2, To: 3, Key: EdgeKey{RoadID: 20}})
	g.SetMetadata(DefaultMetadata(CRSXY))

	sub := g.Subgraph([]int64{1, 2})

	if got := sub.Nodes(); !slices.Equal(got, []int64{1, 2}) {
		t.Errorf("Nodes() = %v, want [1 2]", got)
	}
	if sub.EdgeCount() != 2 {
		t.Errorf("EdgeCount = %d, want 2 (edge to dropped node 3 removed)", sub.EdgeCount())
	}
	if sub.Metadata().CRS != CRSXY {
		t.Error("Subgraph should carry metadata over")
	}

	// Original graph untouched.
	if g.EdgeCount() != 3 {
		t.Errorf("original EdgeCount = %d, want 3", g.EdgeCount())
	}
}

func TestClone(t *testing.T) {
	g := New()
	g.AddEdge(Edge{
		From:     1,
		To:       2,
		Key:      EdgeKey{RoadID: 10},
		Geometry: orb.LineString{{0, 0}, {1, 1}},
	})

	c := g.Clone()
	c.AddEdge(Edge{From: 2, To: 3, Key: EdgeKey{RoadID: 20}})

	if g.EdgeCount() != 1 {
		t.Errorf("clone mutation leaked: original EdgeCount = %d, want 1", g.EdgeCount())
	}

	// Geometry is deep-copied.
	ce, _ := c.Edge(1, 2, EdgeKey{RoadID: 10})
	ce.Geometry[0] = orb.Point{9, 9}
	ge, _ := g.Edge(1, 2, EdgeKey{RoadID: 10})
	if ge.Geometry[0] != (orb.Point{0, 0}) {
		t.Error("clone geometry mutation leaked into original")
	}
}

func TestAccessorGeometryIsolation(t *testing.T) {
	g := New()
	g.AddEdge(Edge{
		From:     1,
		To:       2,
		Key:      EdgeKey{RoadID: 10},
		Geometry: orb.LineString{{0, 0}, {1, 1}},
	})

	// Writing through an Edge result must not reach the graph.
	e, _ := g.Edge(1, 2, EdgeKey{RoadID: 10})
	e.Geometry[0] = orb.Point{9, 9}
	again, _ := g.Edge(1, 2, EdgeKey{RoadID: 10})
	if again.Geometry[0] != (orb.Point{0, 0}) {
		t.Error("Edge geometry mutation leaked into graph")
	}

	// Same for Edges.
	g.Edges()[0].Geometry[1] = orb.Point{9, 9}
	again, _ = g.Edge(1, 2, EdgeKey{RoadID: 10})
	if again.Geometry[1] != (orb.Point{1, 1}) {
		t.Error("Edges geometry mutation leaked into graph")
	}
}

func TestDefaultMetadata(t *testing.T) {
	m := DefaultMetadata(CRSLatLon)

	if m.CRS != CRSLatLon {
		t.Errorf("CRS = %q, want %q", m.CRS, CRSLatLon)
	}
	if m.DistanceKey != AttrKilometers || m.TimeKey != AttrMinutes ||
		m.GeometryKey != AttrGeometry || m.RoadIDKey != AttrRoadID {
		t.Errorf("unexpected attribute keys: %+v", m)
	}
}

package roadnet

import (
	"testing"

	"github.com/paulmach/orb"

	"github.com/hungdaqq/mappymatch/pkg/graph"
)

func testRecord(dir Direction) Record {
	return Record{
		FromNode:        1,
		ToNode:          2,
		RoadID:          10,
		Geometry:        orb.LineString{{0, 0}, {1, 0}, {2, 1}},
		Kilometers:      1.5,
		ForwardMinutes:  3,
		BackwardMinutes: 4,
		Direction:       dir,
	}
}

func TestExpandForward(t *testing.T) {
	edges := Expand(testRecord(DirectionForward))

	if len(edges) != 1 {
		t.Fatalf("len(edges) = %d, want 1", len(edges))
	}
	e := edges[0]
	if e.From != 1 || e.To != 2 {
		t.Errorf("edge = %d→%d, want 1→2", e.From, e.To)
	}
	if e.Minutes != 3 {
		t.Errorf("Minutes = %v, want forward minutes 3", e.Minutes)
	}
	if e.Key != (graph.EdgeKey{RoadID: 10}) {
		t.Errorf("Key = %+v, want forward key for road 10", e.Key)
	}
	if e.Geometry[0] != (orb.Point{0, 0}) {
		t.Errorf("geometry should keep canonical order, got %v", e.Geometry)
	}
}

func TestExpandBackward(t *testing.T) {
	edges := Expand(testRecord(DirectionBackward))

	if len(edges) != 1 {
		t.Fatalf("len(edges) = %d, want 1", len(edges))
	}
	e := edges[0]
	if e.From != 2 || e.To != 1 {
		t.Errorf("edge = %d→%d, want 2→1", e.From, e.To)
	}
	if e.Minutes != 4 {
		t.Errorf("Minutes = %v, want backward minutes 4", e.Minutes)
	}
	if e.Key != (graph.EdgeKey{RoadID: 10, Reversed: true}) {
		t.Errorf("Key = %+v, want reversed key for road 10", e.Key)
	}

	want := orb.LineString{{2, 1}, {1, 0}, {0, 0}}
	if len(e.Geometry) != len(want) {
		t.Fatalf("geometry length = %d, want %d", len(e.Geometry), len(want))
	}
	for i := range want {
		if e.Geometry[i] != want[i] {
			t.Errorf("geometry[%d] = %v, want %v (exact reverse)", i, e.Geometry[i], want[i])
		}
	}
}

func TestExpandBoth(t *testing.T) {
	edges := Expand(testRecord(DirectionBoth))

	if len(edges) != 2 {
		t.Fatalf("len(edges) = %d, want 2", len(edges))
	}

	fwd, bwd := edges[0], edges[1]
	if fwd.From != bwd.To || fwd.To != bwd.From {
		t.Errorf("edges %d→%d and %d→%d are not mutual reverses",
			fwd.From, fwd.To, bwd.From, bwd.To)
	}
	if fwd.Key == bwd.Key {
		t.Error("forward and backward keys must differ")
	}
	if fwd.Minutes != 3 || bwd.Minutes != 4 {
		t.Errorf("minutes = %v/%v, want 3/4", fwd.Minutes, bwd.Minutes)
	}
}

func TestExpandPure(t *testing.T) {
	rec := testRecord(DirectionBoth)
	Expand(rec)

	// The input geometry must be untouched by backward expansion.
	if rec.Geometry[0] != (orb.Point{0, 0}) || rec.Geometry[2] != (orb.Point{2, 1}) {
		t.Errorf("Expand mutated its input geometry: %v", rec.Geometry)
	}
}

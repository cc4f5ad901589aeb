package graph

import (
	"slices"
	"testing"

	"github.com/hungdaqq/mappymatch/pkg/errors"
)

// cycle adds a bidirectional edge pair between a and b.
func cycle(g *Graph, a, b, roadID int64) {
	g.AddEdge(Edge{From: a, To: b, Key: EdgeKey{RoadID: roadID}})
	g.AddEdge(Edge{From: b, To: a, Key: EdgeKey{RoadID: roadID, Reversed: true}})
}

func TestStronglyConnectedComponents(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Graph
		want  [][]int64
	}{
		{
			name: "SingleCycle",
			build: func() *Graph {
				g := New()
				cycle(g, 1, 2, 10)
				return g
			},
			want: [][]int64{{1, 2}},
		},
		{
			name: "CycleWithDeadEnd",
			build: func() *Graph {
				g := New()
				cycle(g, 1, 2, 10)
				g.AddEdge(Edge{From: 2, To: 3, Key: EdgeKey{RoadID: 20}})
				return g
			},
			want: [][]int64{{1, 2}, {3}},
		},
		{
			name: "TwoCycles",
			build: func() *Graph {
				g := New()
				cycle(g, 1, 2, 10)
				cycle(g, 3, 4, 20)
				return g
			},
			want: [][]int64{{1, 2}, {3, 4}},
		},
		{
			name: "SelfLoopOnly",
			build: func() *Graph {
				g := New()
				g.AddEdge(Edge{From: 1, To: 1, Key: EdgeKey{RoadID: 10}})
				return g
			},
			want: [][]int64{{1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StronglyConnectedComponents(tt.build())
			slices.SortFunc(got, func(a, b []int64) int {
				return int(a[0] - b[0])
			})
			if len(got) != len(tt.want) {
				t.Fatalf("components = %v, want %v", got, tt.want)
			}
			for i := range got {
				if !slices.Equal(got[i], tt.want[i]) {
					t.Errorf("component %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestReduce(t *testing.T) {
	g := New()
	cycle(g, 1, 2, 10)
	g.AddEdge(Edge{From: 2, To: 3, Key: EdgeKey{RoadID: 20}, Minutes: 5})

	reduced, err := Reduce(g)
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}

	if got := reduced.Nodes(); !slices.Equal(got, []int64{1, 2}) {
		t.Errorf("Nodes() = %v, want [1 2]", got)
	}
	if reduced.EdgeCount() != 2 {
		t.Errorf("EdgeCount = %d, want 2", reduced.EdgeCount())
	}
	if _, ok := reduced.Edge(2, 3, EdgeKey{RoadID: 20}); ok {
		t.Error("edge to dropped node 3 should be gone")
	}
}

func TestReduceStrongConnectivity(t *testing.T) {
	// After Reduce, every node must reach every other node.
	g := New()
	cycle(g, 1, 2, 10)
	cycle(g, 2, 3, 20)
	g.AddEdge(Edge{From: 3, To: 4, Key: EdgeKey{RoadID: 30}})
	g.AddEdge(Edge{From: 5, To: 1, Key: EdgeKey{RoadID: 40}})

	reduced, err := Reduce(g)
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}

	nodes := reduced.Nodes()
	for _, start := range nodes {
		seen := map[int64]bool{start: true}
		queue := []int64{start}
		for len(queue) > 0 {
			n := queue[0]
			queue = queue[1:]
			for _, next := range reduced.Successors(n) {
				if !seen[next] {
					seen[next] = true
					queue = append(queue, next)
				}
			}
		}
		for _, end := range nodes {
			if !seen[end] {
				t.Fatalf("no path from %d to %d in reduced graph", start, end)
			}
		}
	}
}

func TestReduceIdempotent(t *testing.T) {
	g := New()
	cycle(g, 1, 2, 10)
	cycle(g, 2, 3, 20)
	g.SetMetadata(DefaultMetadata(CRSXY))

	once, err := Reduce(g)
	if err != nil {
		t.Fatalf("first Reduce: %v", err)
	}
	twice, err := Reduce(once)
	if err != nil {
		t.Fatalf("second Reduce: %v", err)
	}

	a, _ := MarshalGraph(once)
	b, _ := MarshalGraph(twice)
	if string(a) != string(b) {
		t.Error("Reduce of an already-maximal-SCC graph should be a fixed point")
	}
}

func TestReduceTieBreak(t *testing.T) {
	// Two disjoint 2-node components; the one containing the smallest
	// node id must win regardless of insertion order.
	for name, order := range map[string][][3]int64{
		"LowFirst":  {{1, 2, 10}, {7, 8, 20}},
		"HighFirst": {{7, 8, 20}, {1, 2, 10}},
	} {
		t.Run(name, func(t *testing.T) {
			g := New()
			for _, c := range order {
				cycle(g, c[0], c[1], c[2])
			}
			reduced, err := Reduce(g)
			if err != nil {
				t.Fatalf("Reduce: %v", err)
			}
			if got := reduced.Nodes(); !slices.Equal(got, []int64{1, 2}) {
				t.Errorf("Nodes() = %v, want [1 2]", got)
			}
		})
	}
}

func TestReduceNotRoutable(t *testing.T) {
	g := New()
	g.AddNode(1)
	g.AddNode(2)

	_, err := Reduce(g)
	if err == nil {
		t.Fatal("Reduce on an edgeless graph should fail")
	}
	if !errors.Is(err, errors.ErrCodeNotRoutable) {
		t.Errorf("error code = %v, want NOT_ROUTABLE", errors.GetCode(err))
	}
}

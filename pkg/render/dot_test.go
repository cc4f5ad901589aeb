package render

import (
	"strings"
	"testing"

	"github.com/hungdaqq/mappymatch/pkg/graph"
)

func sample() *graph.Graph {
	g := graph.New()
	g.AddEdge(graph.Edge{From: 1, To: 2, Key: graph.EdgeKey{RoadID: 100}, RoadID: 100, Kilometers: 1, Minutes: 3})
	g.AddEdge(graph.Edge{From: 2, To: 1, Key: graph.EdgeKey{RoadID: 100, Reversed: true}, RoadID: 100, Kilometers: 1, Minutes: 4})
	return g
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sample(), Options{})

	if !strings.HasPrefix(dot, "digraph roadnet {") {
		t.Errorf("DOT should open a digraph: %q", dot[:40])
	}
	for _, want := range []string{"  1;\n", "  2;\n", `1 -> 2 [label="100"];`, `2 -> 1 [label="100", style=dashed];`} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(sample(), Options{Detailed: true})

	if !strings.Contains(dot, "3.00 min") {
		t.Errorf("detailed DOT should include travel time:\n%s", dot)
	}
	if !strings.Contains(dot, "1.00 km") {
		t.Errorf("detailed DOT should include distance:\n%s", dot)
	}
}

func TestSVG(t *testing.T) {
	svg, err := SVG(ToDOT(sample(), Options{}))
	if err != nil {
		t.Fatalf("SVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("output should contain an svg tag")
	}
	if !strings.Contains(string(svg), `viewBox="0 0 `) {
		t.Error("viewBox should be normalized to origin")
	}
}

func TestSVGInvalidDOT(t *testing.T) {
	if _, err := SVG("not dot {{{"); err == nil {
		t.Error("invalid DOT should fail")
	}
}

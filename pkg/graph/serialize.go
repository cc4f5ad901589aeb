package graph

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/paulmach/orb"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph converts a Graph to JSON bytes.
// Nodes and edges are sorted for deterministic output.
func MarshalGraph(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeGraphTo(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalGraph decodes JSON bytes produced by MarshalGraph.
func UnmarshalGraph(data []byte) (*Graph, error) {
	return readGraphFrom(bytes.NewReader(data))
}

// WriteGraphFile writes a Graph to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeGraphTo(g, f)
}

// WriteGraph writes a Graph as JSON to an io.Writer.
// Use MarshalGraph for in-memory serialization or WriteGraphFile for files.
func WriteGraph(g *Graph, w io.Writer) error {
	return writeGraphTo(g, w)
}

// ReadGraphFile reads a JSON file and returns the decoded Graph.
func ReadGraphFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readGraphFrom(f)
}

// ReadGraph decodes a JSON graph from an io.Reader.
// Use ReadGraphFile for files or pass bytes.NewReader for in-memory data.
func ReadGraph(r io.Reader) (*Graph, error) {
	return readGraphFrom(r)
}

// =============================================================================
// Wire Format
// =============================================================================

// graphJSON is the canonical serialization format for road graphs.
// The format is human-readable and designed for round-trip fidelity:
// build → export → re-import produces identical results.
type graphJSON struct {
	Metadata Metadata   `json:"metadata"`
	Nodes    []nodeJSON `json:"nodes"`
	Edges    []edgeJSON `json:"edges"`
}

type nodeJSON struct {
	ID int64 `json:"id"`
}

type edgeJSON struct {
	From       int64          `json:"from"`
	To         int64          `json:"to"`
	RoadID     int64          `json:"road_id"`
	Reversed   bool           `json:"reversed,omitempty"`
	Kilometers float64        `json:"kilometers"`
	Minutes    float64        `json:"minutes"`
	Geometry   orb.LineString `json:"geom"`
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeGraphTo(g *Graph, w io.Writer) error {
	out := graphJSON{Metadata: g.Metadata()}

	for _, id := range g.Nodes() {
		out.Nodes = append(out.Nodes, nodeJSON{ID: id})
	}

	edges := g.Edges()
	slices.SortFunc(edges, func(a, b Edge) int {
		if c := cmp.Compare(a.From, b.From); c != 0 {
			return c
		}
		if c := cmp.Compare(a.To, b.To); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Key.RoadID, b.Key.RoadID); c != 0 {
			return c
		}
		if a.Key.Reversed == b.Key.Reversed {
			return 0
		}
		if a.Key.Reversed {
			return 1
		}
		return -1
	})
	for _, e := range edges {
		out.Edges = append(out.Edges, edgeJSON{
			From:       e.From,
			To:         e.To,
			RoadID:     e.Key.RoadID,
			Reversed:   e.Key.Reversed,
			Kilometers: e.Kilometers,
			Minutes:    e.Minutes,
			Geometry:   e.Geometry,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readGraphFrom(r io.Reader) (*Graph, error) {
	var data graphJSON
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	g := New()
	g.SetMetadata(data.Metadata)
	for _, n := range data.Nodes {
		g.AddNode(n.ID)
	}
	for _, e := range data.Edges {
		g.AddEdge(Edge{
			From:       e.From,
			To:         e.To,
			Key:        EdgeKey{RoadID: e.RoadID, Reversed: e.Reversed},
			Kilometers: e.Kilometers,
			Minutes:    e.Minutes,
			Geometry:   e.Geometry,
			RoadID:     e.RoadID,
		})
	}
	return g, nil
}

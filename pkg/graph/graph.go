package graph

import (
	"maps"
	"slices"

	"github.com/paulmach/orb"
)

// Attribute keys used for edge weights and geometry. These are the values
// carried in graph-level Metadata so downstream consumers can read weights
// without knowing the concrete schema.
const (
	AttrKilometers = "kilometers"
	AttrMinutes    = "minutes"
	AttrGeometry   = "geom"
	AttrRoadID     = "road_id"
)

// Coordinate reference descriptors. The graph core never reprojects; it only
// labels which system the stored coordinates are in.
const (
	CRSLatLon = "EPSG:4326"
	CRSXY     = "EPSG:3857"
)

// EdgeKey identifies one directed edge among the parallel edges between an
// ordered node pair. A synthesized reverse edge carries the same RoadID as
// its forward twin with Reversed set, so the two can never collide with a
// genuinely distinct road sharing the id.
type EdgeKey struct {
	RoadID   int64
	Reversed bool
}

// Edge is one direction of travel along a road segment.
// Geometry point order matches the edge direction: reversed edges carry the
// canonical geometry in reverse coordinate order.
type Edge struct {
	From       int64
	To         int64
	Key        EdgeKey
	Kilometers float64
	Minutes    float64
	Geometry   orb.LineString

	// RoadID mirrors Key.RoadID as the edge attribute named by
	// Metadata.RoadIDKey, so consumers can read it without touching keys.
	RoadID int64
}

// Metadata holds graph-level descriptors: the coordinate reference and the
// attribute key names for distance, time, geometry, and road id. It is a
// fixed struct rather than a free-form map so consumers get schema-checked
// access.
type Metadata struct {
	CRS         string `json:"crs"`
	DistanceKey string `json:"distance_key"`
	TimeKey     string `json:"time_key"`
	GeometryKey string `json:"geometry_key"`
	RoadIDKey   string `json:"road_id_key"`
}

// DefaultMetadata returns the canonical attribute key names for the given
// coordinate reference descriptor.
func DefaultMetadata(crs string) Metadata {
	return Metadata{
		CRS:         crs,
		DistanceKey: AttrKilometers,
		TimeKey:     AttrMinutes,
		GeometryKey: AttrGeometry,
		RoadIDKey:   AttrRoadID,
	}
}

// edgeRef addresses one edge by (from, to, key).
type edgeRef struct {
	from int64
	to   int64
	key  EdgeKey
}

// Graph is a directed multigraph over integer junction ids. Parallel edges
// between the same ordered node pair are permitted provided their keys
// differ. Nodes exist only by appearing in an edge or via AddNode.
//
// The zero value is not usable - use New to create a valid Graph instance.
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	nodes    map[int64]struct{}
	edges    map[edgeRef]*Edge
	order    []edgeRef          // insertion order for deterministic iteration
	outgoing map[int64][]int64  // nodeID -> successor IDs (repeats for parallel edges)
	incoming map[int64][]int64  // nodeID -> predecessor IDs
	meta     Metadata
}

// New creates an empty multigraph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[int64]struct{}),
		edges:    make(map[edgeRef]*Edge),
		outgoing: make(map[int64][]int64),
		incoming: make(map[int64][]int64),
	}
}

// Metadata returns the graph-level metadata.
func (g *Graph) Metadata() Metadata { return g.meta }

// SetMetadata attaches graph-level metadata. This is pure decoration and
// performs no structural change.
func (g *Graph) SetMetadata(m Metadata) { g.meta = m }

// AddNode ensures the node exists in the graph. Adding an existing node is a
// no-op; nodes referenced by AddEdge are inserted automatically.
func (g *Graph) AddNode(id int64) {
	g.nodes[id] = struct{}{}
}

// AddEdge inserts an edge keyed by (From, To, Key), inserting both endpoint
// nodes if absent. A collision on the full address overwrites the existing
// edge and is reported via the return value so callers can surface it; the
// structured key scheme makes unintended collisions a data defect rather
// than an expected event.
func (g *Graph) AddEdge(e Edge) (replaced bool) {
	ref := edgeRef{from: e.From, to: e.To, key: e.Key}
	g.AddNode(e.From)
	g.AddNode(e.To)

	if _, exists := g.edges[ref]; exists {
		g.edges[ref] = &e
		return true
	}

	g.edges[ref] = &e
	g.order = append(g.order, ref)
	g.outgoing[e.From] = append(g.outgoing[e.From], e.To)
	g.incoming[e.To] = append(g.incoming[e.To], e.From)
	return false
}

// Edge returns the edge addressed by (from, to, key) and true, or a zero
// Edge and false if not found. The geometry is copied so mutating the
// returned value never changes the graph.
func (g *Graph) Edge(from, to int64, key EdgeKey) (Edge, bool) {
	e, ok := g.edges[edgeRef{from: from, to: to, key: key}]
	if !ok {
		return Edge{}, false
	}
	out := *e
	out.Geometry = slices.Clone(out.Geometry)
	return out, true
}

// HasNode reports whether the node exists in the graph.
func (g *Graph) HasNode(id int64) bool {
	_, ok := g.nodes[id]
	return ok
}

// Nodes returns all node ids in ascending order.
func (g *Graph) Nodes() []int64 {
	return slices.Sorted(maps.Keys(g.nodes))
}

// Edges returns a copy of all edges in insertion order. Geometries are
// copied too, so modifications to the returned edges do not affect the
// graph.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.order))
	for i, ref := range g.order {
		out[i] = *g.edges[ref]
		out[i].Geometry = slices.Clone(out[i].Geometry)
	}
	return out
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.order) }

// Successors returns the target ids of all outgoing edges from the node.
// Parallel edges contribute one entry each. The returned slice should not
// be modified - use it as a read-only view.
func (g *Graph) Successors(id int64) []int64 { return g.outgoing[id] }

// Predecessors returns the source ids of all incoming edges to the node.
// The returned slice should not be modified - use it as a read-only view.
func (g *Graph) Predecessors(id int64) []int64 { return g.incoming[id] }

// OutDegree returns the number of outgoing edges from the node.
// Returns 0 if the node doesn't exist.
func (g *Graph) OutDegree(id int64) int { return len(g.outgoing[id]) }

// InDegree returns the number of incoming edges to the node.
// Returns 0 if the node doesn't exist.
func (g *Graph) InDegree(id int64) int { return len(g.incoming[id]) }

// Clone returns a deep copy of the graph. Edge geometries are copied so
// mutations of one graph never leak into the other.
func (g *Graph) Clone() *Graph {
	out := New()
	out.meta = g.meta
	for id := range g.nodes {
		out.AddNode(id)
	}
	for _, ref := range g.order {
		e := *g.edges[ref]
		e.Geometry = slices.Clone(e.Geometry)
		out.AddEdge(e)
	}
	return out
}

// Subgraph returns the induced subgraph on the given node set: the nodes
// themselves plus every edge whose endpoints are both in the set. Metadata
// is carried over.
func (g *Graph) Subgraph(nodes []int64) *Graph {
	keep := make(map[int64]struct{}, len(nodes))
	for _, id := range nodes {
		keep[id] = struct{}{}
	}

	out := New()
	out.meta = g.meta
	for id := range keep {
		if g.HasNode(id) {
			out.AddNode(id)
		}
	}
	for _, ref := range g.order {
		_, okF := keep[ref.from]
		_, okT := keep[ref.to]
		if okF && okT {
			e := *g.edges[ref]
			e.Geometry = slices.Clone(e.Geometry)
			out.AddEdge(e)
		}
	}
	return out
}

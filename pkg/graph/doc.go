// Package graph provides the directed multigraph used as the routable road
// network artifact.
//
// # Overview
//
// A road network is modeled as a directed multigraph over integer junction
// ids. Each directed edge represents one direction of travel along a road
// segment and carries its own distance and time weights plus an oriented
// geometry. Parallel edges between the same ordered node pair are permitted
// as long as their [EdgeKey]s differ, modeling multiple physical roads
// between two junctions.
//
// # Basic Usage
//
// Create a graph with [New] and add edges with [Graph.AddEdge]; endpoint
// nodes are inserted automatically:
//
//	g := graph.New()
//	g.AddEdge(graph.Edge{From: 1, To: 2, Key: graph.EdgeKey{RoadID: 10}, Minutes: 3})
//	g.AddEdge(graph.Edge{From: 2, To: 1, Key: graph.EdgeKey{RoadID: 10, Reversed: true}, Minutes: 4})
//
// Edges are addressable by (from, to, key) via [Graph.Edge].
//
// # Connectivity
//
// Path-finding requires any-to-any reachability, which only holds on a
// strongly connected graph. [Reduce] computes the strongly connected
// components and returns the induced subgraph on the largest one, discarding
// dead ends. [StronglyConnectedComponents] exposes the partition directly.
//
// # Serialization
//
// [MarshalGraph], [WriteGraphFile] and their Read counterparts provide a
// deterministic JSON representation including graph-level [Metadata], which
// names the edge attribute keys downstream consumers should read weights
// from.
package graph

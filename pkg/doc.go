// Package pkg provides the core libraries for mappymatch graph construction.
//
// # Overview
//
// mappymatch turns vendor road network extracts into routable directed
// graphs: every road segment becomes one edge per open travel direction,
// annotated with distance and travel time. The pkg directory is organized
// into five main areas:
//
//  1. [roadnet] - Schema adapters (TomTom, OSM) and edge expansion
//  2. [graph] - The directed multigraph, connectivity reduction, serialization
//  3. [pipeline] - Orchestration (normalize → build → reduce) with caching
//  4. [cache] - Pluggable cache backends (file, redis, null)
//  5. [render] - Node-link diagrams via Graphviz
//
// # Architecture
//
// The typical data flow through mappymatch:
//
//	GeoJSON road network extract
//	         ↓
//	    [roadnet] package (normalize vendor schema, expand directions)
//	         ↓
//	    [graph] package (multigraph + largest-component reduction)
//	         ↓
//	    [render] package (DOT/SVG/PNG output)
//
// # Quick Start
//
// Build a routable graph from a TomTom extract:
//
//	import (
//	    "context"
//	    "github.com/hungdaqq/mappymatch/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    Input:   "denver.geojson",
//	    Vintage: "tomtom-2021",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	g := result.Graph // strongly connected, ready for routing
//
// [roadnet]: github.com/hungdaqq/mappymatch/pkg/roadnet
// [graph]: github.com/hungdaqq/mappymatch/pkg/graph
// [pipeline]: github.com/hungdaqq/mappymatch/pkg/pipeline
// [cache]: github.com/hungdaqq/mappymatch/pkg/cache
// [render]: github.com/hungdaqq/mappymatch/pkg/render
package pkg

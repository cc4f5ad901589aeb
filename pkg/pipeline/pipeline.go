// Package pipeline provides the core graph construction pipeline.
//
// This package implements the complete normalize → build → reduce pipeline
// that can be used by CLI and API components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Normalize: Adapt vendor records into schema-independent road records
//  2. Build: Expand records into directed edges and assemble the multigraph
//  3. Reduce: Restrict the graph to its largest strongly connected component
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:   "denver.geojson",
//	    Vintage: "tomtom-2021",
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	g := result.Graph
//
// Run individual stages:
//
//	// Normalize only
//	res, err := runner.Normalize(ctx, features, opts)
//
//	// Build with existing records
//	g, collisions, err := runner.Build(ctx, res.Records, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hungdaqq/mappymatch/pkg/cache"
	"github.com/hungdaqq/mappymatch/pkg/errors"
	"github.com/hungdaqq/mappymatch/pkg/graph"
	"github.com/hungdaqq/mappymatch/pkg/roadnet"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// DefaultCRS is the coordinate reference system assumed when none is given.
// Vendor extracts ship in geodetic coordinates.
const DefaultCRS = graph.CRSLatLon

// ValidCRS is the set of supported coordinate reference systems.
var ValidCRS = map[string]bool{
	graph.CRSLatLon: true,
	graph.CRSXY:     true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the graph construction pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input is the path to a GeoJSON file of road links. API callers that
	// upload the file directly leave it empty and use ExecuteFeatures.
	Input   string `json:"input,omitempty"`
	Vintage string `json:"vintage"`
	CRS     string `json:"crs,omitempty"`

	// SkipReduce keeps the full graph instead of restricting it to the
	// largest strongly connected component (default: false = reduce).
	SkipReduce bool `json:"skip_reduce,omitempty"`

	// Refresh bypasses the cache and rebuilds from scratch.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this pipeline execution in logs and API responses.
	RunID string

	// Graph is the constructed road network.
	Graph *graph.Graph

	// GraphHash is the content hash of the serialized graph.
	GraphHash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the build hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RecordCount     int           `json:"record_count"`
	Filtered        int           `json:"filtered"`
	DefaultedSpeeds int           `json:"defaulted_speeds"`
	KeyCollisions   int           `json:"key_collisions"`
	NodeCount       int           `json:"node_count"`
	EdgeCount       int           `json:"edge_count"`
	NormalizeTime   time.Duration `json:"normalize_time_ns"`
	BuildTime       time.Duration `json:"build_time_ns"`
	ReduceTime      time.Duration `json:"reduce_time_ns"`
}

// CacheInfo tracks cache hits for the pipeline.
type CacheInfo struct {
	BuildHit bool // Whether the built graph came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateVintage checks that a vintage has a registered adapter.
func ValidateVintage(vintage string) error {
	if _, err := roadnet.ByVintage(vintage); err != nil {
		return err
	}
	return nil
}

// ValidateCRS checks that a coordinate reference system is supported.
func ValidateCRS(crs string) error {
	if !ValidCRS[crs] {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid crs: %q (must be one of: %s, %s)", crs, graph.CRSLatLon, graph.CRSXY)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForBuild checks required fields for graph construction.
func (o *Options) ValidateForBuild() error {
	if o.Vintage == "" {
		return errors.New(errors.ErrCodeInvalidInput, "vintage is required")
	}
	if err := ValidateVintage(o.Vintage); err != nil {
		return err
	}

	// Build defaults
	if o.CRS == "" {
		o.CRS = DefaultCRS
	}
	if err := ValidateCRS(o.CRS); err != nil {
		return err
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// ShouldReduce returns whether the connectivity reduction should run.
func (o *Options) ShouldReduce() bool {
	return !o.SkipReduce
}

// BuildKeyOpts returns cache key options for the built graph.
func (o *Options) BuildKeyOpts() cache.BuildKeyOpts {
	return cache.BuildKeyOpts{
		Vintage: o.Vintage,
		CRS:     o.CRS,
		Reduce:  o.ShouldReduce(),
	}
}

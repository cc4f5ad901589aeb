// Package cache provides pluggable caching for graph builds and rendered
// artifacts. Backends share a small byte-oriented interface so the pipeline
// can run against a local directory, a Redis instance, or nothing at all.
package cache

import (
	"context"
	"time"
)

// Default TTLs per content class. Built graphs are derived purely from the
// input file, so they can live long; rendered artifacts are cheaper to
// recompute and churn with style options.
const (
	GraphTTL    = 7 * 24 * time.Hour
	ArtifactTTL = 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// found; an expired or corrupt entry is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// BuildKeyOpts are the options that change a built graph for the same input
// bytes. Anything here must be part of the cache key.
type BuildKeyOpts struct {
	Vintage string `json:"vintage"`
	CRS     string `json:"crs"`
	Reduce  bool   `json:"reduce"`
}

// ArtifactKeyOpts are the options that change a rendered artifact for the
// same graph.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Layout string `json:"layout"`
}

// Keyer generates cache keys. Implementations must be deterministic: the
// same inputs always produce the same key.
type Keyer interface {
	// BuildKey generates a key for a built graph from the content hash of
	// the input file and the build options.
	BuildKey(inputHash string, opts BuildKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact from the content
	// hash of the serialized graph and the render options.
	ArtifactKey(graphHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// BuildKey generates a key for a built graph.
func (k *DefaultKeyer) BuildKey(inputHash string, opts BuildKeyOpts) string {
	return hashKey("build", inputHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", graphHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)

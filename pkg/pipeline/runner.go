package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"

	"github.com/hungdaqq/mappymatch/pkg/cache"
	"github.com/hungdaqq/mappymatch/pkg/errors"
	"github.com/hungdaqq/mappymatch/pkg/graph"
	"github.com/hungdaqq/mappymatch/pkg/observability"
	"github.com/hungdaqq/mappymatch/pkg/roadnet"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete normalize → build → reduce pipeline on the
// input file named in opts, with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if opts.Input == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "input is required")
	}

	features, inputHash, err := ReadInput(opts.Input)
	if err != nil {
		return nil, err
	}
	return r.execute(ctx, features, inputHash, opts)
}

// ExecuteFeatures runs the pipeline on raw GeoJSON bytes, for callers that
// receive the input over the wire instead of from disk.
func (r *Runner) ExecuteFeatures(ctx context.Context, data []byte, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	features, err := ParseFeatures(data)
	if err != nil {
		return nil, err
	}
	return r.execute(ctx, features, cache.Hash(data), opts)
}

func (r *Runner) execute(ctx context.Context, features []*geojson.Feature, inputHash string, opts Options) (*Result, error) {
	result := &Result{RunID: uuid.NewString()}
	logger := opts.Logger
	cacheKey := r.Keyer.BuildKey(inputHash, opts.BuildKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			g, err := graph.UnmarshalGraph(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "build")
				result.Graph = g
				result.GraphHash = cache.Hash(data)
				result.Stats.NodeCount = g.NodeCount()
				result.Stats.EdgeCount = g.EdgeCount()
				result.CacheInfo.BuildHit = true
				logger.Info("loaded graph from cache",
					"run_id", result.RunID,
					"nodes", g.NodeCount(),
					"edges", g.EdgeCount())
				return result, nil
			}
			// Corrupt entry - fall through to rebuild
		}
		observability.Cache().OnCacheMiss(ctx, "build")
	}

	// Stage 1: Normalize
	normalizeStart := time.Now()
	observability.Pipeline().OnNormalizeStart(ctx, opts.Vintage, len(features))
	res, err := roadnet.Normalize(features, opts.Vintage)
	result.Stats.NormalizeTime = time.Since(normalizeStart)
	observability.Pipeline().OnNormalizeComplete(ctx, opts.Vintage, resultRecordCount(res), result.Stats.NormalizeTime, err)
	if err != nil {
		return nil, err
	}
	result.Stats.RecordCount = len(res.Records)
	result.Stats.Filtered = res.Filtered
	result.Stats.DefaultedSpeeds = res.DefaultedSpeeds

	logger.Info("normalized records",
		"run_id", result.RunID,
		"vintage", opts.Vintage,
		"records", len(res.Records),
		"filtered", res.Filtered,
		"defaulted_speeds", res.DefaultedSpeeds,
		"duration", result.Stats.NormalizeTime)

	// Stage 2: Build
	buildStart := time.Now()
	observability.Pipeline().OnBuildStart(ctx, len(res.Records))
	g, collisions := BuildGraph(res.Records, opts.CRS)
	result.Stats.BuildTime = time.Since(buildStart)
	observability.Pipeline().OnBuildComplete(ctx, g.NodeCount(), g.EdgeCount(), result.Stats.BuildTime, nil)
	result.Stats.KeyCollisions = collisions
	if collisions > 0 {
		logger.Warn("duplicate edge keys overwritten",
			"run_id", result.RunID,
			"collisions", collisions)
	}

	logger.Info("built graph",
		"run_id", result.RunID,
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", result.Stats.BuildTime)

	// Stage 3: Reduce
	if opts.ShouldReduce() {
		reduceStart := time.Now()
		observability.Pipeline().OnReduceStart(ctx, g.NodeCount())
		reduced, err := graph.Reduce(g)
		result.Stats.ReduceTime = time.Since(reduceStart)
		keptNodes := 0
		if reduced != nil {
			keptNodes = reduced.NodeCount()
		}
		observability.Pipeline().OnReduceComplete(ctx, keptNodes, result.Stats.ReduceTime, err)
		if err != nil {
			return nil, err
		}

		logger.Info("reduced to largest component",
			"run_id", result.RunID,
			"kept_nodes", reduced.NodeCount(),
			"dropped_nodes", g.NodeCount()-reduced.NodeCount(),
			"duration", result.Stats.ReduceTime)
		g = reduced
	}

	result.Graph = g
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()

	// Compute graph hash for cache keys and API responses
	data, err := graph.MarshalGraph(g)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "serialize graph")
	}
	result.GraphHash = cache.Hash(data)

	// Cache the result
	if err := r.Cache.Set(ctx, cacheKey, data, cache.GraphTTL); err == nil {
		observability.Cache().OnCacheSet(ctx, "build", len(data))
	}

	return result, nil
}

// Normalize runs only the normalization stage.
func (r *Runner) Normalize(ctx context.Context, features []*geojson.Feature, opts Options) (*roadnet.Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return roadnet.Normalize(features, opts.Vintage)
}

// Build runs the build stage on already-normalized records and returns the
// graph plus the key collision count.
func (r *Runner) Build(ctx context.Context, records []roadnet.Record, opts Options) (*graph.Graph, int, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, 0, err
	}
	g, collisions := BuildGraph(records, opts.CRS)
	return g, collisions, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func resultRecordCount(res *roadnet.Result) int {
	if res == nil {
		return 0
	}
	return len(res.Records)
}

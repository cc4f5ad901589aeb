package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hungdaqq/mappymatch/pkg/graph"
	"github.com/hungdaqq/mappymatch/pkg/pipeline"
	"github.com/hungdaqq/mappymatch/pkg/roadnet"
)

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	vintage  string // schema vintage of the input extract
	crs      string // coordinate reference system label
	noReduce bool   // keep the full graph instead of the largest component
	refresh  bool   // bypass the build cache
	noCache  bool   // disable caching entirely
	output   string // output file path (stdout if empty)
}

// newBuildCmd creates the build command, which runs the full
// normalize → build → reduce pipeline on a GeoJSON extract.
func newBuildCmd(configPath *string) *cobra.Command {
	opts := buildOpts{}

	cmd := &cobra.Command{
		Use:   "build <input.geojson>",
		Short: "Build a routable graph from a road network extract",
		Long: `Build a routable directed graph from a GeoJSON road network extract.

The input schema vintage selects how raw fields are interpreted. Two-way
roads become one edge per direction, and the graph is restricted to its
largest strongly connected component so every kept junction can reach every
other.

Examples:
  mappymatch build denver.geojson --vintage tomtom-2021
  mappymatch build denver.geojson --vintage osm -o denver_graph.json
  mappymatch build denver.geojson --vintage tomtom-2017 --no-reduce`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runBuild(c, &opts, *configPath, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.vintage, "vintage", "", fmt.Sprintf("schema vintage (%s)", strings.Join(roadnet.Vintages(), ", ")))
	cmd.Flags().StringVar(&opts.crs, "crs", "", "coordinate reference system label (default EPSG:4326)")
	cmd.Flags().BoolVar(&opts.noReduce, "no-reduce", false, "keep the full graph instead of the largest strongly connected component")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

func runBuild(c *cobra.Command, opts *buildOpts, configPath, input string) error {
	ctx := c.Context()
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	popts := pipeline.Options{
		Input:      input,
		Vintage:    opts.vintage,
		CRS:        opts.crs,
		SkipReduce: opts.noReduce,
		Refresh:    opts.refresh,
		Logger:     logger,
	}
	cfg.ApplyDefaults(&popts)

	cacheBackend, err := openCache(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(cacheBackend, cfg.Cache.Keyer(), logger)
	defer runner.Close()

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, popts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Built graph with %d junctions and %d road segments",
		result.Stats.NodeCount, result.Stats.EdgeCount))

	if result.Stats.DefaultedSpeeds > 0 {
		printWarning("%d records used the %.0f km/h default speed", result.Stats.DefaultedSpeeds, roadnet.DefaultSpeedKPH)
	}
	if result.Stats.KeyCollisions > 0 {
		printWarning("%d duplicate edge keys were overwritten", result.Stats.KeyCollisions)
	}
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.BuildHit)

	return writeGraph(result.Graph, opts.output, logger)
}

// writeGraph serializes g as JSON to the specified path (or stdout if empty).
// The logger is notified on success with the output path.
func writeGraph(g *graph.Graph, path string, logger interface{ Infof(string, ...any) }) error {
	if path == "" {
		return graph.WriteGraph(g, os.Stdout)
	}
	if err := graph.WriteGraphFile(g, path); err != nil {
		return err
	}
	logger.Infof("Wrote graph to %s", path)
	printFile(path)
	printNextStep("Render it", fmt.Sprintf("mappymatch render %s --format svg", path))
	return nil
}

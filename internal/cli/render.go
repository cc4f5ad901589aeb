package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hungdaqq/mappymatch/pkg/cache"
	"github.com/hungdaqq/mappymatch/pkg/graph"
	"github.com/hungdaqq/mappymatch/pkg/observability"
	"github.com/hungdaqq/mappymatch/pkg/render"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPNG = "png"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	format   string // output format: dot, svg, png
	output   string // output file path (derived from input if empty)
	detailed bool   // include distance and travel time in edge labels
	noCache  bool   // disable artifact caching
}

// newRenderCmd creates the render command, which draws a built graph as a
// node-link diagram.
func newRenderCmd(configPath *string) *cobra.Command {
	opts := renderOpts{format: formatSVG}

	cmd := &cobra.Command{
		Use:   "render <graph.json>",
		Short: "Render a built graph as a node-link diagram",
		Long: `Render a built graph as a Graphviz node-link diagram.

Reversed edges (the backward orientation of a two-way road) are drawn
dashed. Rendered artifacts are cached by graph content, so re-rendering an
unchanged graph is instant.

Examples:
  mappymatch render denver_graph.json
  mappymatch render denver_graph.json --format png -o denver.png
  mappymatch render denver_graph.json --format dot --detailed`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runRender(c, &opts, *configPath, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format (dot, svg, png)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (derived from input if empty)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include distance and travel time in edge labels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable artifact caching")

	return cmd
}

func runRender(c *cobra.Command, opts *renderOpts, configPath, input string) error {
	ctx := c.Context()
	logger := loggerFromContext(ctx)

	switch opts.format {
	case formatDOT, formatSVG, formatPNG:
	default:
		return fmt.Errorf("invalid format: %q (must be one of: dot, svg, png)", opts.format)
	}

	raw, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	g, err := graph.UnmarshalGraph(raw)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	cacheBackend, err := openCache(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer cacheBackend.Close()
	keyer := cfg.Cache.Keyer()

	key := keyer.ArtifactKey(cache.Hash(raw), cache.ArtifactKeyOpts{
		Format: opts.format,
		Layout: layoutTag(opts.detailed),
	})

	var artifact []byte
	if data, hit, err := cacheBackend.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "artifact")
		logger.Debug("artifact cache hit", "format", opts.format)
		artifact = data
	} else {
		observability.Cache().OnCacheMiss(ctx, "artifact")
		spin := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", opts.format))
		spin.Start()
		start := time.Now()
		observability.Pipeline().OnRenderStart(ctx, opts.format)
		artifact, err = renderArtifact(g, opts)
		observability.Pipeline().OnRenderComplete(ctx, opts.format, time.Since(start), err)
		if err != nil {
			spin.StopWithError(fmt.Sprintf("Rendering %s failed", opts.format))
			return err
		}
		spin.StopWithSuccess(fmt.Sprintf("Rendered %s (%d junctions)", opts.format, g.NodeCount()))
		if err := cacheBackend.Set(ctx, key, artifact, cache.ArtifactTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(artifact))
		}
	}

	out := opts.output
	if out == "" {
		out = strings.TrimSuffix(input, filepath.Ext(input)) + "." + opts.format
	}
	if err := os.WriteFile(out, artifact, 0644); err != nil {
		return err
	}

	printSuccess("Wrote %s", opts.format)
	printFile(out)
	return nil
}

func renderArtifact(g *graph.Graph, opts *renderOpts) ([]byte, error) {
	dot := render.ToDOT(g, render.Options{Detailed: opts.detailed})
	switch opts.format {
	case formatDOT:
		return []byte(dot), nil
	case formatSVG:
		return render.SVG(dot)
	default:
		return render.PNG(dot)
	}
}

// layoutTag distinguishes cached artifacts by label detail.
func layoutTag(detailed bool) string {
	if detailed {
		return "detailed"
	}
	return "plain"
}

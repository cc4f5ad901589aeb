package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/hungdaqq/mappymatch/pkg/graph"
	"github.com/hungdaqq/mappymatch/pkg/observability"
)

// renderHookRecorder records render events; everything else stays no-op.
type renderHookRecorder struct {
	observability.NoopPipelineHooks
	starts    []string
	completes []string
}

func (r *renderHookRecorder) OnRenderStart(_ context.Context, format string) {
	r.starts = append(r.starts, format)
}

func (r *renderHookRecorder) OnRenderComplete(_ context.Context, format string, _ time.Duration, _ error) {
	r.completes = append(r.completes, format)
}

func testRenderCmd() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetContext(withLogger(context.Background(), charmlog.NewWithOptions(io.Discard, charmlog.Options{})))
	return cmd
}

func writeTestGraph(t *testing.T, dir string) string {
	t.Helper()
	g := graph.New()
	g.SetMetadata(graph.DefaultMetadata(graph.CRSLatLon))
	g.AddEdge(graph.Edge{From: 1, To: 2, Key: graph.EdgeKey{RoadID: 10}, Kilometers: 1, Minutes: 3, RoadID: 10})
	path := filepath.Join(dir, "graph.json")
	if err := graph.WriteGraphFile(g, path); err != nil {
		t.Fatalf("write graph: %v", err)
	}
	return path
}

func TestRenderFiresHooks(t *testing.T) {
	dir := t.TempDir()
	input := writeTestGraph(t, dir)

	rec := &renderHookRecorder{}
	observability.SetPipelineHooks(rec)
	defer observability.Reset()

	opts := &renderOpts{
		format:  formatDOT,
		output:  filepath.Join(dir, "graph.dot"),
		noCache: true,
	}
	if err := runRender(testRenderCmd(), opts, filepath.Join(dir, "config.toml"), input); err != nil {
		t.Fatalf("runRender: %v", err)
	}

	if len(rec.starts) != 1 || rec.starts[0] != formatDOT {
		t.Errorf("render start events = %v, want one %q", rec.starts, formatDOT)
	}
	if len(rec.completes) != 1 || rec.completes[0] != formatDOT {
		t.Errorf("render complete events = %v, want one %q", rec.completes, formatDOT)
	}

	data, err := os.ReadFile(opts.output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "digraph roadnet") {
		t.Error("output is not the DOT artifact")
	}
}

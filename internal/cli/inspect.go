package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/hungdaqq/mappymatch/pkg/graph"
	"github.com/hungdaqq/mappymatch/pkg/roadnet"
)

// newInspectCmd creates the inspect command, which summarizes a built graph
// or opens an interactive junction browser.
func newInspectCmd() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "inspect <graph.json>",
		Short: "Summarize or browse a built graph",
		Long: `Summarize a built graph: size, metadata, and travel time totals.

With --interactive, opens a terminal browser listing junctions and the road
segments leaving each one.

Examples:
  mappymatch inspect denver_graph.json
  mappymatch inspect denver_graph.json --interactive`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			g, err := graph.ReadGraphFile(args[0])
			if err != nil {
				return err
			}
			if interactive {
				return browseGraph(g)
			}
			printSummary(g)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse junctions interactively")

	return cmd
}

// printSummary prints graph size, metadata, and aggregate edge attributes.
func printSummary(g *graph.Graph) {
	meta := g.Metadata()

	printInfo("Road network graph")
	printKeyValue("junctions", fmt.Sprintf("%d", g.NodeCount()))
	printKeyValue("segments", fmt.Sprintf("%d", g.EdgeCount()))
	printKeyValue("crs", meta.CRS)

	printNewline()

	var km, minutes float64
	reversed := 0
	for _, e := range g.Edges() {
		km += e.Kilometers
		minutes += e.Minutes
		if e.Key.Reversed {
			reversed++
		}
	}
	printKeyValue(meta.DistanceKey, fmt.Sprintf("%.2f", km))
	printKeyValue(meta.TimeKey, fmt.Sprintf("%.2f", minutes))
	printDetail("%d of %d segments are reversed orientations of two-way roads", reversed, g.EdgeCount())
}

// browseGraph opens the bubbletea junction browser.
func browseGraph(g *graph.Graph) error {
	model := NewJunctionListModel(g)
	_, err := tea.NewProgram(model).Run()
	return err
}

// newVintagesCmd creates the vintages command listing supported schema
// vintages.
func newVintagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vintages",
		Short: "List supported schema vintages",
		RunE: func(c *cobra.Command, args []string) error {
			fmt.Println(strings.Join(roadnet.Vintages(), "\n"))
			return nil
		},
	}
}

package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/hungdaqq/mappymatch/pkg/graph"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// JunctionListModel - Interactive junction browser
// =============================================================================

// JunctionListModel is the bubbletea model for browsing the junctions of a
// built graph. The left pane scrolls through junctions; selecting one shows
// the road segments leaving it.
type JunctionListModel struct {
	graph    *graph.Graph
	nodes    []int64
	Cursor   int
	Height   int
	Offset   int
	expanded bool
}

// NewJunctionListModel creates a junction browser over g.
func NewJunctionListModel(g *graph.Graph) JunctionListModel {
	return JunctionListModel{
		graph:  g,
		nodes:  g.Nodes(),
		Height: 15,
	}
}

func (m JunctionListModel) Init() tea.Cmd {
	return nil
}

func (m JunctionListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.nodes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ":
			m.expanded = !m.expanded
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m JunctionListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Browse Junctions"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ toggle segments  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.nodes) {
		end = len(m.nodes)
	}

	for i := m.Offset; i < end; i++ {
		id := m.nodes[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%s%-14d out %-3d in %-3d", cursor, id, m.graph.OutDegree(id), m.graph.InDegree(id))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if m.expanded && len(m.nodes) > 0 {
		b.WriteString("\n")
		b.WriteString(m.segmentTable(m.nodes[m.Cursor]))
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.nodes))))

	return b.String()
}

// segmentTable renders the outgoing segments of a junction.
func (m JunctionListModel) segmentTable(id int64) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := [][]string{}
	for _, e := range m.graph.Edges() {
		if e.From != id {
			continue
		}
		orientation := "forward"
		if e.Key.Reversed {
			orientation = "reversed"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", e.To),
			fmt.Sprintf("%d", e.RoadID),
			orientation,
			fmt.Sprintf("%.2f", e.Kilometers),
			fmt.Sprintf("%.2f", e.Minutes),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("To", "Road", "Orientation", "km", "min").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	return t.Render()
}

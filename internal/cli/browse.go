package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
	recordStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
)

func (c *CLI) browseCommand() *cobra.Command {
	var overrides string

	cmd := &cobra.Command{
		Use:   "browse <graph>",
		Short: "Browse a graph's nodes and their export records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(cmd.Context(), args[0], overrides)
			if err != nil {
				return err
			}
			rows, err := browseRows(p)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(newNodeBrowser(rows), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&overrides, "overrides", "", "override file (TOML, YAML or JSON)")
	return cmd
}

// browseRow is one node as shown in the browser.
type browseRow struct {
	ID     string
	Op     string // "" for a null export
	Links  int
	Record string // indented JSON
}

// browseRows exports every node of p once, in file order.
func browseRows(p *project) ([]browseRow, error) {
	var rows []browseRow
	for _, id := range p.graph.IDs() {
		e, err := p.record(id)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", id, err)
		}
		data, err := json.MarshalIndent(p.document(e), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", id, err)
		}
		row := browseRow{ID: id, Record: string(data)}
		if e != nil {
			row.Op, row.Links = e.Op, len(e.Links)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// NodeBrowser is the bubbletea model listing nodes; enter toggles the
// selected node's record.
type NodeBrowser struct {
	Rows    []browseRow
	Cursor  int
	Offset  int
	Height  int
	Showing bool
}

func newNodeBrowser(rows []browseRow) NodeBrowser {
	return NodeBrowser{Rows: rows, Height: 12}
}

func (m NodeBrowser) Init() tea.Cmd {
	return nil
}

func (m NodeBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if !m.Showing {
				return m, tea.Quit
			}
			m.Showing = false
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Rows) > 0 {
				m.Showing = !m.Showing
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height/2-4, 5)
	}
	return m, nil
}

func (m NodeBrowser) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Nodes"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ record  q quit"))
	b.WriteString("\n\n")

	if len(m.Rows) == 0 {
		b.WriteString(listDimStyle.Render("  graph has no nodes"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Rows))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		op := r.Op
		if op == "" {
			op = "null"
		}
		rows = append(rows, []string{cursor, r.ID, op, fmt.Sprint(r.Links)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Id", "Op", "Links").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			idx := m.Offset + row
			if idx >= len(m.Rows) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if m.Rows[idx].Op == "" {
				base = base.Foreground(colorDim)
			} else if col == 2 {
				base = base.Foreground(colorCyan)
			}
			if idx == m.Cursor {
				return base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))
	b.WriteString("\n")

	if m.Showing {
		b.WriteString("\n")
		b.WriteString(recordStyle.Render(m.Rows[m.Cursor].Record))
		b.WriteString("\n")
	}
	return b.String()
}

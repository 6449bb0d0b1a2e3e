package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/nodeport/pkg/export"
	"github.com/matzehuels/nodeport/pkg/node"
)

func (c *CLI) sharedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shared",
		Short: "List the shared node names recognized by the serializer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printShared(cmd.OutOrStdout(), export.DefaultRegistry())
		},
	}
}

// printShared renders the registry as a table of name, node type and
// category.
func printShared(w io.Writer, r *export.Registry) error {
	exports := node.Exports()

	rows := make([][]string, 0, r.Len())
	for _, name := range r.Names() {
		n, _ := exports[name].(node.Node)
		typ, category := node.TypeOf(n), node.CategoryGeneric
		if c, ok := n.(node.Categorized); ok {
			category = c.Category()
		}
		rows = append(rows, []string{name, typ, category.String()})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Name", "Type", "Category").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/nodeport/pkg/errors"
	"github.com/matzehuels/nodeport/pkg/observability"
)

// exportOpts holds the flags of the export command.
type exportOpts struct {
	nodes     []string // node ids to export; all when empty
	overrides string   // override file path
	output    string   // output file; stdout when empty
}

func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export <graph>",
		Short: "Export nodes of a graph file as JSON records",
		Long: `Export serializes each selected node one level deep and writes an
object mapping node id to its record. Links name children by node id.
Nodes without a resolvable type are written as null.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if opts.output != "" {
				f, err := os.Create(opts.output)
				if err != nil {
					return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", opts.output)
				}
				defer f.Close()
				out = f
			}
			if err := runExport(cmd.Context(), out, cmd.ErrOrStderr(), args[0], opts); err != nil {
				return err
			}
			if opts.output != "" {
				printFile(cmd.ErrOrStderr(), opts.output)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&opts.nodes, "node", "n", nil, "node id to export (repeatable, default all)")
	cmd.Flags().StringVar(&opts.overrides, "overrides", "", "override file (TOML, YAML or JSON)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")

	return cmd
}

// runExport writes {id: record} for the selected nodes to w and reports
// null records on status.
func runExport(ctx context.Context, w, status io.Writer, path string, opts exportOpts) (err error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	var exported, nulls int
	defer func() {
		observability.Export().OnExport(ctx, exported, nulls, time.Since(prog.start), err)
	}()

	p, err := openProject(ctx, path, opts.overrides)
	if err != nil {
		return err
	}

	ids := opts.nodes
	if len(ids) == 0 {
		ids = p.graph.IDs()
	}

	out := make(map[string]any, len(ids))
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}
		e, err := p.record(id)
		if err != nil {
			return err
		}
		exported++
		if e == nil {
			nulls++
			printWarning(status, "node %s has no resolvable type, exported as null", id)
		}
		out[id] = p.document(e)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode export")
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return err
	}
	prog.done("Exported " + plural(len(ids), "node"))
	return nil
}

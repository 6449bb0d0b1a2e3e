package cli

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/nodeport/pkg/cache"
	"github.com/matzehuels/nodeport/pkg/errors"
	"github.com/matzehuels/nodeport/pkg/observability"
	"github.com/matzehuels/nodeport/pkg/render/nodelink"
)

// Diagram output formats.
const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPNG = "png"
)

// diagramOpts holds the flags of the diagram command.
type diagramOpts struct {
	node      string // node id to draw
	format    string // dot, svg or png
	overrides string // override file path
	output    string // output file; stdout when empty
	detailed  bool   // include args in the root label
	noCache   bool   // skip the render cache
}

func (c *CLI) diagramCommand() *cobra.Command {
	opts := diagramOpts{format: formatSVG}

	cmd := &cobra.Command{
		Use:   "diagram <graph>",
		Short: "Draw one node's export record as a node-link diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateDiagramFormat(opts.format); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.output != "" {
				f, err := os.Create(opts.output)
				if err != nil {
					return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", opts.output)
				}
				defer f.Close()
				out = f
			}
			rc := newRenderCache(cmd.Context(), opts.noCache)
			defer rc.Close()
			if err := runDiagram(cmd.Context(), out, args[0], opts, rc); err != nil {
				return err
			}
			if opts.output != "" {
				printFile(cmd.ErrOrStderr(), opts.output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.node, "node", "n", "", "node id to draw (required)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), dot, png")
	cmd.Flags().StringVar(&opts.overrides, "overrides", "", "override file (TOML, YAML or JSON)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show export args in the node label")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "always re-render instead of reading the render cache")
	_ = cmd.MarkFlagRequired("node")

	return cmd
}

func validateDiagramFormat(f string) error {
	switch f {
	case formatDOT, formatSVG, formatPNG:
		return nil
	}
	return errors.New(errors.ErrCodeUnsupported, "unsupported diagram format: %q (want dot, svg or png)", f)
}

func runDiagram(ctx context.Context, w io.Writer, path string, opts diagramOpts, rc cache.Cache) error {
	p, err := openProject(ctx, path, opts.overrides)
	if err != nil {
		return err
	}
	e, err := p.record(opts.node)
	if err != nil {
		return err
	}
	if e == nil {
		return errors.New(errors.ErrCodeInvalidType, "node %s has no resolvable type", opts.node)
	}

	dot := nodelink.ToDOT(opts.node, e, p.namer(), nodelink.Options{Detailed: opts.detailed})
	if opts.format == formatDOT {
		_, err := io.WriteString(w, dot)
		return err
	}

	data, err := renderCached(ctx, rc, opts.format, dot)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// renderCached lays out dot in format, reading and filling rc.
func renderCached(ctx context.Context, rc cache.Cache, format, dot string) (data []byte, err error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)
	key := cache.RenderKey(format, dot)

	var cached bool
	defer func() {
		observability.Render().OnRender(ctx, format, len(data), cached, time.Since(prog.start), err)
	}()

	if data, cached, err = rc.Get(ctx, key); err != nil {
		logger.Warn("render cache read failed", "err", err)
	} else if cached {
		logger.Debug("render cache hit", "format", format)
		return data, nil
	}

	switch format {
	case formatSVG:
		data, err = nodelink.RenderSVG(ctx, dot)
	case formatPNG:
		data, err = nodelink.RenderPNG(ctx, dot)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
	}

	if err := rc.Set(ctx, key, data, renderTTL); err != nil {
		logger.Warn("render cache write failed", "err", err)
	}
	prog.done("Rendered " + strings.ToUpper(format))
	return data, nil
}

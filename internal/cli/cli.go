// Package cli implements the nodeport command-line interface.
//
// Commands load a graph definition file (see package graphfile), build the
// live nodes it describes and export them one level at a time with package
// export.
//
// # Commands
//
//   - export: write the export records of some or all nodes as JSON
//   - diagram: draw one node's export record as DOT, SVG or PNG
//   - shared: list the shared node names the serializer recognizes
//   - browse: page through a graph's nodes and their records
//   - preview: check a preview host document
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// surfaces the serializer's fallthrough and shape-conflict messages. The
// logger travels through context.Context.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/nodeport/pkg/buildinfo"
	"github.com/matzehuels/nodeport/pkg/cache"
	"github.com/matzehuels/nodeport/pkg/errors"
	"github.com/matzehuels/nodeport/pkg/export"
	"github.com/matzehuels/nodeport/pkg/graphfile"
	"github.com/matzehuels/nodeport/pkg/node"
)

// appName names the cache directory.
const appName = "nodeport"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "nodeport",
		Short:        "nodeport exports shader node graphs as JSON records",
		Long:         `nodeport turns node graph definitions into portable export records: one op code, its arguments and links to child nodes per node.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.exportCommand())
	root.AddCommand(c.diagramCommand())
	root.AddCommand(c.sharedCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// project is a loaded graph with the serializer used to export it.
type project struct {
	graph *graphfile.Graph
	ser   *export.Serializer
}

// openProject loads the graph at path and, when overridesPath is set, the
// override table applied while exporting it.
func openProject(ctx context.Context, path, overridesPath string) (*project, error) {
	logger := loggerFromContext(ctx)

	g, err := graphfile.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded graph", "path", path, "nodes", g.Len())

	opts := []export.Option{export.WithLogger(logger)}
	if overridesPath != "" {
		o, err := graphfile.LoadOverrides(overridesPath)
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded overrides", "path", overridesPath, "types", len(o))
		opts = append(opts, export.WithOverrides(o))
	}
	return &project{graph: g, ser: export.New(opts...)}, nil
}

// namer names children by graph id, falling back to the op code for nodes
// the file does not list.
func (p *project) namer() export.RefNamer {
	return func(n node.Node) string {
		if id := p.graph.IDOf(n); id != "" {
			return id
		}
		op, _ := p.ser.Op(n)
		return op
	}
}

// record serializes the node called id. A nil export with a nil error
// means the node has no resolvable type.
func (p *project) record(id string) (*export.Export, error) {
	n, ok := p.graph.Node(id)
	if !ok {
		return nil, errors.New(errors.ErrCodeNodeNotFound, "no node with id %q", id)
	}
	return p.ser.Serialize(n)
}

// document returns the JSON form of e, or nil for a null export.
func (p *project) document(e *export.Export) any {
	if e == nil {
		return nil
	}
	return e.Document(p.namer())
}

// renderTTL bounds how long a cached diagram is reused.
const renderTTL = 7 * 24 * time.Hour

// newRenderCache opens the file cache under the user cache directory, or a
// null cache when disabled or unavailable.
func newRenderCache(ctx context.Context, disabled bool) cache.Cache {
	if disabled {
		return cache.NullCache{}
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NullCache{}
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		loggerFromContext(ctx).Debug("render cache unavailable", "dir", dir, "err", err)
		return cache.NullCache{}
	}
	return fc
}

// cacheDir follows XDG: $XDG_CACHE_HOME/nodeport or ~/.cache/nodeport.
func cacheDir() (string, error) {
	if home := os.Getenv("XDG_CACHE_HOME"); home != "" {
		return filepath.Join(home, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

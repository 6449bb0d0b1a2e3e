package graphfile

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/nodeport/pkg/errors"
	"github.com/matzehuels/nodeport/pkg/node"
)

// Supported file formats.
const (
	FormatTOML = "toml"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

type file struct {
	Nodes []entry `toml:"node" json:"node" yaml:"node"`
}

type entry struct {
	ID     string `toml:"id" json:"id" yaml:"id"`
	Kind   string `toml:"kind" json:"kind" yaml:"kind"`
	Type   string `toml:"type" json:"type" yaml:"type"`
	Shared string `toml:"shared" json:"shared" yaml:"shared"`

	Value     any    `toml:"value" json:"value" yaml:"value"`
	ValueType string `toml:"value_type" json:"value_type" yaml:"value_type"`
	NodeType  string `toml:"node_type" json:"node_type" yaml:"node_type"`
	Precision string `toml:"precision" json:"precision" yaml:"precision"`
	Name      string `toml:"name" json:"name" yaml:"name"`
	Group     string `toml:"group" json:"group" yaml:"group"`

	Attribute string `toml:"attribute" json:"attribute" yaml:"attribute"`

	Method string   `toml:"method" json:"method" yaml:"method"`
	Inputs []string `toml:"inputs" json:"inputs" yaml:"inputs"`

	Op string `toml:"op" json:"op" yaml:"op"`
	A  string `toml:"a" json:"a" yaml:"a"`
	B  string `toml:"b" json:"b" yaml:"b"`

	Fields   map[string]any `toml:"fields" json:"fields" yaml:"fields"`
	Children []childEntry   `toml:"child" json:"child" yaml:"child"`
}

type childEntry struct {
	Property string  `toml:"property" json:"property" yaml:"property"`
	Ref      string  `toml:"ref" json:"ref" yaml:"ref"`
	Index    *int    `toml:"index" json:"index" yaml:"index"`
	Key      *string `toml:"key" json:"key" yaml:"key"`
}

// Graph is a set of live nodes addressed by file id.
type Graph struct {
	ids   []string
	nodes map[string]node.Node
	byRef map[node.Node]string
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (node.Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// IDs returns node ids in file order.
func (g *Graph) IDs() []string { return slices.Clone(g.ids) }

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.ids) }

// IDOf returns the id of n, or "" if n was not loaded from this graph. A
// shared singleton listed under several ids reports the first.
func (g *Graph) IDOf(n node.Node) string { return g.byRef[n] }

// FormatFor returns the format implied by a file extension.
func FormatFor(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported graph file extension: %q", filepath.Ext(path))
	}
}

// Load reads a graph file, choosing the format from its extension.
func Load(path string) (*Graph, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return Read(f, format)
}

// Read decodes a graph in the given format from r and builds its nodes.
// Read does not close r.
func Read(r io.Reader, format string) (*Graph, error) {
	var data file
	if err := decode(r, format, &data); err != nil {
		return nil, err
	}
	return build(data.Nodes)
}

func decode(r io.Reader, format string, v any) error {
	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(v); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.UseNumber()
		if err := dec.Decode(v); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
		}
	case FormatYAML:
		// An empty YAML stream is an empty graph, as it is for TOML.
		if err := yaml.NewDecoder(r).Decode(v); err != nil && err != io.EOF {
			return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml")
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %q", format)
	}
	return nil
}

package graphfile

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/nodeport/pkg/errors"
	"github.com/matzehuels/nodeport/pkg/export"
	"github.com/matzehuels/nodeport/pkg/node"
)

const sampleTOML = `
[[node]]
id = "sum"
kind = "math"
method = "add"
inputs = ["albedo", "", "tint"]

[[node]]
id = "albedo"
kind = "attribute"
attribute = "color"
node_type = "vec3"

[[node]]
id = "tint"
kind = "uniform"
name = "tint"
value = [1.0, 0.8, 0.6]
value_type = "vec3"
group = "object"

[[node]]
id = "scaled"
kind = "operator"
op = "*"
a = "sum"
b = "clock"

[[node]]
id = "clock"
shared = "time"

[[node]]
id = "blend"
kind = "generic"
type = "BlendNode"
fields = { mode = "screen", alpha = 0.5 }

  [[node.child]]
  property = "layers"
  key = "base"
  ref = "albedo"

  [[node.child]]
  property = "stops"
  index = 1
  ref = "tint"

[[node]]
id = "helper"
kind = "anonymous"
`

func TestReadTOML(t *testing.T) {
	g, err := Read(strings.NewReader(sampleTOML), FormatTOML)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	wantIDs := []string{"sum", "albedo", "tint", "scaled", "clock", "blend", "helper"}
	if !reflect.DeepEqual(g.IDs(), wantIDs) {
		t.Errorf("IDs() = %v, want %v", g.IDs(), wantIDs)
	}

	sum, _ := g.Node("sum")
	m, ok := sum.(*node.MathNode)
	if !ok {
		t.Fatalf("sum is %T, want *node.MathNode", sum)
	}
	albedo, _ := g.Node("albedo")
	tint, _ := g.Node("tint")
	if len(m.Inputs) != 3 || m.Inputs[0] != albedo || m.Inputs[1] != nil || m.Inputs[2] != tint {
		t.Errorf("Inputs = %v, want [albedo <nil> tint]", m.Inputs)
	}

	clock, _ := g.Node("clock")
	if clock != node.Time {
		t.Error("shared entry should resolve to the library singleton")
	}
	if g.IDOf(node.Time) != "clock" {
		t.Errorf("IDOf(node.Time) = %q, want clock", g.IDOf(node.Time))
	}

	u := tint.(*node.UniformNode)
	if u.Group != "object" || u.ValueType != "vec3" {
		t.Errorf("uniform = %+v", u)
	}
}

func TestLoadedGraphExports(t *testing.T) {
	g, err := Read(strings.NewReader(sampleTOML), FormatTOML)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	s := export.New()

	blend, _ := g.Node("blend")
	e, err := s.Serialize(blend)
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	if e.Op != "BlendNode" {
		t.Errorf("Op = %q, want BlendNode", e.Op)
	}
	if !reflect.DeepEqual(e.Args, export.Args{"mode": "screen", "alpha": 0.5}) {
		t.Errorf("Args = %v", e.Args)
	}
	if e.Links["layers"].Shape() != export.ShapeKeyed {
		t.Errorf("layers shape = %v, want keyed", e.Links["layers"].Shape())
	}
	if items := e.Links["stops"].Items(); len(items) != 2 || items[0] != nil {
		t.Errorf("stops = %v, want [<hole> tint]", items)
	}

	scaled, _ := g.Node("scaled")
	e, err = s.Serialize(scaled)
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	ref, _ := e.Links["bNode"].Ref()
	if op, _ := s.Op(ref.Node); op != "time" {
		t.Errorf("bNode op = %q, want time", op)
	}

	helper, _ := g.Node("helper")
	if e, _ := s.Serialize(helper); e != nil {
		t.Errorf("anonymous node exported as %+v, want nil", e)
	}
}

func TestReadJSON(t *testing.T) {
	const doc = `{"node": [
		{"id": "one", "kind": "const", "value": 1, "value_type": "float", "type": "ScalarNode"},
		{"id": "neg", "kind": "operator", "op": "-", "a": "one"}
	]}`

	g, err := Read(strings.NewReader(doc), FormatJSON)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	one, _ := g.Node("one")
	e, err := export.New().Serialize(one)
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	if e.Op != "ScalarNode" {
		t.Errorf("Op = %q, want explicit type tag ScalarNode", e.Op)
	}
	if _, ok := e.Args["value"]; !ok {
		t.Errorf("Args = %v, want value", e.Args)
	}

	neg, _ := g.Node("neg")
	if o := neg.(*node.OperatorNode); o.A != one || o.B != nil {
		t.Errorf("operator operands = %v, %v", o.A, o.B)
	}
}

func TestReadYAML(t *testing.T) {
	const doc = `
node:
  - id: layered
    kind: generic
    type: LayerNode
    fields: {count: 2}
    child:
      - {property: layers, index: 0, ref: base}
      - {property: layers, index: 1, ref: clock}
  - id: base
    kind: const
    value: 0.25
    value_type: float
  - id: clock
    shared: time
`

	g, err := Read(strings.NewReader(doc), FormatYAML)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	layered, _ := g.Node("layered")
	e, err := export.New().Serialize(layered)
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	if e.Op != "LayerNode" || !reflect.DeepEqual(e.Args, export.Args{"count": 2}) {
		t.Errorf("export = %+v", e)
	}
	nodes := e.Links["layers"].Nodes()
	base, _ := g.Node("base")
	if len(nodes) != 2 || nodes[0] != base || nodes[1] != node.Time {
		t.Errorf("layers = %v", nodes)
	}

	empty, err := Read(strings.NewReader(""), FormatYAML)
	if err != nil || empty.Len() != 0 {
		t.Errorf("Read(empty yaml) = %v, %v; want empty graph", empty, err)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code errors.Code
	}{
		{"bad toml", `[[node]`, errors.ErrCodeInvalidFormat},
		{"empty id", "[[node]]\nkind = \"const\"", errors.ErrCodeInvalidNodeID},
		{"duplicate id", "[[node]]\nid = \"a\"\nkind = \"const\"\n[[node]]\nid = \"a\"\nkind = \"const\"", errors.ErrCodeInvalidGraph},
		{"unknown kind", "[[node]]\nid = \"a\"\nkind = \"texture\"", errors.ErrCodeInvalidKind},
		{"missing kind", "[[node]]\nid = \"a\"", errors.ErrCodeInvalidKind},
		{"unknown ref", "[[node]]\nid = \"a\"\nkind = \"math\"\ninputs = [\"b\"]", errors.ErrCodeNodeNotFound},
		{"unknown shared", "[[node]]\nid = \"a\"\nshared = \"nope\"", errors.ErrCodeSharedNotFound},
		{"shared helper", "[[node]]\nid = \"a\"\nshared = \"mix\"", errors.ErrCodeSharedNotFound},
		{"bad type", "[[node]]\nid = \"a\"\nkind = \"const\"\ntype = \"Bad Type\"", errors.ErrCodeInvalidType},
		{
			"index and key",
			"[[node]]\nid = \"a\"\nkind = \"const\"\n[[node]]\nid = \"g\"\nkind = \"generic\"\ntype = \"G\"\n[[node.child]]\nproperty = \"p\"\nindex = 0\nkey = \"k\"\nref = \"a\"",
			errors.ErrCodeInvalidGraph,
		},
		{
			"index past limit",
			"[[node]]\nid = \"a\"\nkind = \"const\"\n[[node]]\nid = \"g\"\nkind = \"generic\"\ntype = \"G\"\n[[node.child]]\nproperty = \"p\"\nindex = 9223372036854775807\nref = \"a\"",
			errors.ErrCodeInvalidGraph,
		},
		{
			"negative index",
			"[[node]]\nid = \"a\"\nkind = \"const\"\n[[node]]\nid = \"g\"\nkind = \"generic\"\ntype = \"G\"\n[[node.child]]\nproperty = \"p\"\nindex = -1\nref = \"a\"",
			errors.ErrCodeInvalidGraph,
		},
		{
			"children on math",
			"[[node]]\nid = \"m\"\nkind = \"math\"\n[[node.child]]\nproperty = \"p\"\nref = \"m\"",
			errors.ErrCodeInvalidGraph,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.doc), FormatTOML)
			if err == nil {
				t.Fatal("Read() error = nil, want error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Read() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.toml")
	if err := os.WriteFile(path, []byte(sampleTOML), 0644); err != nil {
		t.Fatal(err)
	}

	g, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if g.Len() != 7 {
		t.Errorf("Len() = %d, want 7", g.Len())
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want FILE_NOT_FOUND", err)
	}
	if _, err := Load(filepath.Join(dir, "graph.xml")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Load(xml) error = %v, want INVALID_FORMAT", err)
	}
}

func TestReadOverrides(t *testing.T) {
	const doc = `
[override.MathNode]
args = { method = "custom" }

[override.ConstNode]
fields = ["valueType"]
`
	o, err := ReadOverrides(strings.NewReader(doc), FormatTOML)
	if err != nil {
		t.Fatalf("ReadOverrides() error = %v", err)
	}
	s := export.New(export.WithOverrides(o))

	e, err := s.Serialize(node.NewMath("sin", node.NewConst(1.0, "float")))
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	if !reflect.DeepEqual(e, &export.Export{Op: "MathNode", Args: export.Args{"method": "custom"}}) {
		t.Errorf("static override export = %+v", e)
	}

	e, err = s.Serialize(node.NewConst(1.0, "float"))
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	if !reflect.DeepEqual(e.Args, export.Args{"valueType": "float"}) {
		t.Errorf("dynamic override args = %v", e.Args)
	}

	// No picked field present: falls through to the built-in rule.
	e, err = s.Serialize(node.NewConst(3.0, ""))
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	if !reflect.DeepEqual(e.Args, export.Args{"value": 3.0}) {
		t.Errorf("fallthrough args = %v", e.Args)
	}
}

func TestReadOverridesErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code errors.Code
	}{
		{"both", "[override.A]\nargs = { x = 1 }\nfields = [\"x\"]", errors.ErrCodeInvalidOverride},
		{"neither", "[override.A]", errors.ErrCodeInvalidOverride},
		{"bad name", "[override.\"Not Valid\"]\nargs = { x = 1 }", errors.ErrCodeInvalidType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadOverrides(strings.NewReader(tt.doc), FormatTOML)
			if !errors.Is(err, tt.code) {
				t.Errorf("ReadOverrides() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

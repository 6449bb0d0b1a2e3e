package nodelink

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/nodeport/pkg/export"
	"github.com/matzehuels/nodeport/pkg/node"
)

func namerOf(names map[node.Node]string) export.RefNamer {
	return func(n node.Node) string { return names[n] }
}

func TestToDOT_Links(t *testing.T) {
	a := node.NewConst(1.0, "float")
	b := node.NewConst(2.0, "float")
	e := &export.Export{
		Op: "MathNode",
		Links: export.Links{
			"inputNodes": export.Ordered(a, nil, b),
			"layers":     export.Keyed(map[string]node.Node{"base": a}),
			"colorNode":  export.Single(b),
		},
	}

	dot := ToDOT("sum", e, namerOf(map[node.Node]string{a: "a", b: "b"}), Options{})

	for _, want := range []string{
		"digraph G",
		`"sum" [label="sum\nMathNode"`,
		`"a" [label="a"`,
		`"sum" -> "a" [label="inputNodes[0]"]`,
		`"sum" -> "b" [label="inputNodes[2]"]`,
		`"sum" -> "a" [label="layers.base"]`,
		`"sum" -> "b" [label="colorNode"]`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %s\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "inputNodes[1]") {
		t.Error("ToDOT() drew an edge for a hole")
	}
	if n := strings.Count(dot, "\n  \"a\" [label="); n != 1 {
		t.Errorf("child a declared %d times, want 1", n)
	}
}

func TestToDOT_EdgeOrder(t *testing.T) {
	a := node.NewConst(1.0, "float")
	e := &export.Export{
		Op: "OperatorNode",
		Links: export.Links{
			"bNode": export.Single(a),
			"aNode": export.Single(a),
		},
	}

	dot := ToDOT("op", e, namerOf(map[node.Node]string{a: "a"}), Options{})

	if strings.Index(dot, `label="aNode"`) > strings.Index(dot, `label="bNode"`) {
		t.Error("edges not sorted by property")
	}
}

func TestToDOT_UnnamedChild(t *testing.T) {
	e := &export.Export{
		Op:    "OperatorNode",
		Links: export.Links{"aNode": export.Single(&node.Anonymous{})},
	}

	dot := ToDOT("op", e, namerOf(nil), Options{})

	if !strings.Contains(dot, `"op" -> "?"`) {
		t.Errorf("ToDOT() missing placeholder edge\n%s", dot)
	}
}

func TestFmtLabel(t *testing.T) {
	e := &export.Export{Op: "ConstNode", Args: export.Args{"value": 1.5, "precision": "high"}}

	if got := fmtLabel("one", e, false); got != "one\nConstNode" {
		t.Errorf("fmtLabel() simple = %q", got)
	}
	want := "one\nConstNode\nprecision: high\nvalue: 1.5"
	if got := fmtLabel("one", e, true); got != want {
		t.Errorf("fmtLabel() detailed = %q, want %q", got, want)
	}
	if got := fmtLabel("one", &export.Export{Op: "X"}, true); got != "one\nX" {
		t.Errorf("fmtLabel() detailed without args = %q", got)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.50 200.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := normalizeViewBox(in)

	if !bytes.Contains(out, []byte(`viewBox="0 0 100.50 200.00" width="100" height="200"`)) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if !bytes.Contains(out, []byte("<g/>")) {
		t.Error("normalizeViewBox() dropped content")
	}

	plain := []byte("<svg><g/></svg>")
	if got := normalizeViewBox(plain); !bytes.Equal(got, plain) {
		t.Errorf("normalizeViewBox() without viewBox = %s", got)
	}
}

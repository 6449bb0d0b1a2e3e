package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/nodeport/pkg/export"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes the export args in the root label.
	// When false, only the id and op code are shown.
	Detailed bool
}

// edge is one link slot pointing at a named child.
type edge struct {
	label string
	to    string
}

// ToDOT converts the export record of the node called id to Graphviz DOT.
// Children are named with namer; a child namer cannot name is drawn as "?".
func ToDOT(id string, e *export.Export, namer export.RefNamer, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=16];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "  %q [label=%q, penwidth=2];\n", id, fmtLabel(id, e, opts.Detailed))

	edges := collectEdges(e, namer)
	seen := map[string]bool{id: true}
	for _, ed := range edges {
		if seen[ed.to] {
			continue
		}
		seen[ed.to] = true
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=lightgrey];\n", ed.to, ed.to)
	}

	buf.WriteString("\n")
	for _, ed := range edges {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", id, ed.to, ed.label)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(id string, e *export.Export, detailed bool) string {
	head := id + "\n" + e.Op
	if !detailed || len(e.Args) == 0 {
		return head
	}

	parts := make([]string, 0, len(e.Args))
	for _, k := range slices.Sorted(maps.Keys(e.Args)) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, e.Args[k]))
	}
	return head + "\n" + strings.Join(parts, "\n")
}

// collectEdges lists link slots sorted by property, then slot.
func collectEdges(e *export.Export, namer export.RefNamer) []edge {
	name := func(r export.Ref) string {
		if s := namer(r.Node); s != "" {
			return s
		}
		return "?"
	}

	var edges []edge
	for _, prop := range slices.Sorted(maps.Keys(e.Links)) {
		l := e.Links[prop]
		switch l.Shape() {
		case export.ShapeSingle:
			r, _ := l.Ref()
			edges = append(edges, edge{label: prop, to: name(r)})
		case export.ShapeOrdered:
			for i, r := range l.Items() {
				if r == nil {
					continue
				}
				edges = append(edges, edge{label: prop + "[" + strconv.Itoa(i) + "]", to: name(*r)})
			}
		case export.ShapeKeyed:
			keys := l.Keys()
			for _, k := range slices.Sorted(maps.Keys(keys)) {
				edges = append(edges, edge{label: prop + "." + k, to: name(keys[k])})
			}
		}
	}
	return edges
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root svg tag to a zero-origin viewBox with
// matching pixel size.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// Package nodelink renders one exported node record as a node-link diagram.
//
// The root box is the exported node, labelled with its op code and, in
// detailed mode, its args. Each link slot becomes an edge to the child it
// references, labelled with the property and the slot position:
//
//	colorNode          single link
//	inputNodes[1]      ordered link, slot 1
//	layers.base        keyed link, key "base"
//
// Holes in ordered links produce no edge. Children are named by the
// caller-supplied [export.RefNamer], so the same naming scheme used for JSON
// output applies to diagrams.
//
// [ToDOT] produces Graphviz DOT text; [RenderSVG] and [RenderPNG] lay it out
// with the embedded Graphviz from github.com/goccy/go-graphviz.
package nodelink

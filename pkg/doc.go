// Package pkg holds the nodeport libraries.
//
// # Overview
//
// nodeport exports shader node graphs one node at a time. Each export is a
// small record: the node's op code, its JSON-safe arguments and links to the
// child nodes it references. The libraries are:
//
//  1. [node] - the node model: capabilities, built-in kinds, shared singletons
//  2. [export] - the serializer: shared-name registry, argument collection,
//     link assembly, per-type overrides and built-in rules
//  3. [graphfile] - TOML/JSON graph definitions and override tables
//  4. [render/nodelink] - DOT, SVG and PNG diagrams of one export record
//  5. [preview] - the document accepted by a preview host
//  6. [cache], [observability], [errors], [buildinfo] - supporting pieces
//
// # Data Flow
//
//	graph file (TOML/JSON)
//	        ↓
//	    [graphfile] (build live nodes)
//	        ↓
//	    [export] (node → {op, args, links})
//	        ↓
//	    JSON document or [render/nodelink] diagram
//
// # Quick Start
//
//	g, err := graphfile.Load("material.toml")
//	if err != nil {
//	    return err
//	}
//	n, _ := g.Node("sum")
//	e, err := export.Serialize(n)
//	if err != nil {
//	    return err
//	}
//	data, err := e.MarshalWith(func(c node.Node) string { return g.IDOf(c) })
package pkg

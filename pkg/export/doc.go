// Package export converts live shading-graph nodes into portable export
// records.
//
// # Overview
//
// [Serializer.Serialize] produces one [Export] per call:
//
//	{op: "MathNode", args: {method: "add"}, links: {inputNodes: [{node: a}, {node: b}]}}
//
// The op code is always present. Args hold JSON-safe scalar and structured
// values and are omitted when empty. Links hold the live child nodes, not
// their exports: the export covers exactly one level of the graph, and
// recursive expansion, cycle detection and deduplication belong to the
// caller.
//
// # Op Resolution
//
// A node resolves to its op code in this order:
//
//  1. its name in the shared [Registry], when it is one of the library's
//     ready-made singletons (the export is then just {op: name})
//  2. its explicit type tag
//  3. its class type, then its class name
//
// When none applies, Serialize returns a nil export and a nil error.
//
// # Extraction Rules
//
// An [Override] registered for the op code runs first. A [Static] override
// always wins. A [Dynamic] override wins when it returns a record and defers
// to the built-in rule when it returns nil. Its errors are returned as-is.
//
// Built-in rules are selected by [node.Category]:
//
//   - constant: value, valueType, nodeType, precision
//   - attribute: attributeName (public field or internal alias), nodeType
//   - math: method, op, plus links over the node's children
//   - generic: every native field except meta and inputNodes, plus links
//
// Every rule filters its args through [CollectArgs].
//
// # Link Shapes
//
// [Links.Add] stores children without an index as a single reference,
// positional children as an ordered sequence with holes, and keyed children
// as a mapping. A property must use one index family per node; mixing them
// replaces the earlier shape with the later one.
//
// # Concurrency
//
// The registry is built once and never modified. Every call allocates its
// own records, so one [Serializer] can serve concurrent calls.
package export

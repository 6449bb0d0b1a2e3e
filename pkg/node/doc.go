// Package node defines the live shading-graph nodes that nodeport exports.
//
// # Overview
//
// A shading expression is a directed acyclic graph of typed nodes: constants,
// uniforms, attribute reads, math and operator compositions, and arbitrary
// library-defined kinds. This package models such nodes as a small set of
// optional capabilities rather than a fixed struct, so that any value can take
// part in an export as long as it carries the [Node] marker.
//
// # Capabilities
//
// Every node implements [Node]. The remaining interfaces are optional and are
// discovered with type assertions:
//
//   - [Typed]: an explicit type tag that takes precedence over class metadata
//   - [Classed]: constructor-level {Type, Name} metadata
//   - [FieldExtractor]: returns the node's named fields as a [Fields] record
//   - [ChildLister]: enumerates child references as [Child] descriptors
//   - [Categorized]: selects the built-in extraction rule for the node
//   - [Handled]: lets a shared-node registry stamp the node with a [Handle]
//
// The concrete kinds in this package ([ConstNode], [UniformNode],
// [AttributeNode], [MathNode], [OperatorNode], [Generic]) embed [Base] and
// implement all capabilities. [Anonymous] carries the marker and nothing else.
//
// # Child Indices
//
// A [Child] names the property it hangs off and an optional [Index]:
//
//	node.Child{Property: "aNode", Node: a}                 // single slot
//	node.Child{Property: "inputNodes", Index: node.At(1), Node: b} // positional
//	node.Child{Property: "layers", Index: node.Key("base"), Node: c} // keyed
//
// All children of one node that share a property must use the same index
// family. Mixing positional and keyed indices for one property is a caller
// error and is not detected here.
//
// # Library Singletons
//
// [Exports] enumerates the public bindings of the node library, the way a
// script host would see them: some are ready-made node instances such as
// [PositionLocal] or [Time], others are helper functions and plain numbers.
// The export package scans this surface once to recognize shared nodes by
// identity.
//
// # Concurrency
//
// Node values are immutable after construction as far as this package is
// concerned. Extraction methods allocate fresh records on every call, so
// concurrent exports of the same node are safe.
package node

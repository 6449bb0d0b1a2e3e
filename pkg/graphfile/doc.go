// Package graphfile builds live shading-graph nodes from definition files.
//
// # Overview
//
// A graph file lists nodes by id and wires them together by reference. It is
// the authoring input of the nodeport CLI: the loaded [Graph] hands out live
// [node.Node] values that the export package then serializes.
//
// # TOML Format
//
//	[[node]]
//	id = "sum"
//	kind = "math"
//	method = "add"
//	inputs = ["albedo", "tint"]
//
//	[[node]]
//	id = "albedo"
//	kind = "attribute"
//	attribute = "color"
//	node_type = "vec3"
//
//	[[node]]
//	id = "tint"
//	kind = "uniform"
//	name = "tint"
//	value = [1.0, 0.8, 0.6]
//	value_type = "vec3"
//
//	[[node]]
//	id = "clock"
//	shared = "time"
//
// JSON and YAML files (.json, .yaml, .yml) use the same field names under a
// top-level "node" list.
//
// # Kinds
//
//   - const, uniform: value, value_type, node_type, precision (uniform: name, group)
//   - attribute: attribute, node_type
//   - math: method, inputs (ids; "" leaves a hole)
//   - operator: op, a, b
//   - generic: type, fields, and [[node.child]] tables with property, ref and
//     an optional index (integer) or key (string)
//   - anonymous: no type metadata at all
//
// An entry with shared = "<name>" resolves to the library singleton of that
// name instead of creating a node. Any kind accepts type = "..." as an
// explicit type tag.
//
// # Overrides
//
// [LoadOverrides] reads per-type export overrides:
//
//	[override.MathNode]
//	args = { method = "custom" }   # static record
//
//	[override.TextureNode]
//	fields = ["uvIndex", "sampler"] # pick native fields per node
//
// # Validation
//
// Ids must pass [errors.ValidateNodeID] and be unique; references must name
// ids in the same file. Nodes are created first and linked second, so the
// order of entries does not matter. The loader does not reject reference
// cycles: graphs are exported one level at a time.
//
// [errors.ValidateNodeID]: github.com/matzehuels/nodeport/pkg/errors.ValidateNodeID
package graphfile

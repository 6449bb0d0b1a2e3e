package export

import (
	"encoding/json"

	"github.com/matzehuels/nodeport/pkg/node"
)

// RefNamer names a child node inside a JSON document. The caller owns the
// naming scheme (ids, paths, document indices) since it owns the traversal.
type RefNamer func(n node.Node) string

// Document returns the JSON-ready form of e:
//
//	{"op": "MathNode", "args": {...}, "links": {"inputNodes": [{"node": "a"}, null]}}
//
// Single links become {"node": name}, ordered links arrays with null holes,
// keyed links objects of {"node": name}.
func (e *Export) Document(namer RefNamer) map[string]any {
	doc := map[string]any{"op": e.Op}
	if len(e.Args) > 0 {
		doc["args"] = map[string]any(e.Args)
	}
	if len(e.Links) > 0 {
		links := make(map[string]any, len(e.Links))
		for prop, l := range e.Links {
			links[prop] = l.document(namer)
		}
		doc["links"] = links
	}
	return doc
}

func (l *Link) document(namer RefNamer) any {
	ref := func(r Ref) map[string]any { return map[string]any{"node": namer(r.Node)} }

	switch l.shape {
	case ShapeOrdered:
		out := make([]any, len(l.ordered))
		for i, r := range l.ordered {
			if r != nil {
				out[i] = ref(*r)
			}
		}
		return out
	case ShapeKeyed:
		out := make(map[string]any, len(l.keyed))
		for k, r := range l.keyed {
			out[k] = ref(r)
		}
		return out
	default:
		return ref(l.single)
	}
}

// MarshalWith encodes e as JSON, naming children with namer.
func (e *Export) MarshalWith(namer RefNamer) ([]byte, error) {
	return json.Marshal(e.Document(namer))
}

// MarshalJSON encodes e naming each child by the op code it would export
// under with the default serializer.
func (e *Export) MarshalJSON() ([]byte, error) {
	return e.MarshalWith(OpNamer(New()))
}

// OpNamer names children by their op code under s, or "" when unresolved.
func OpNamer(s *Serializer) RefNamer {
	return func(n node.Node) string {
		op, _ := s.Op(n)
		return op
	}
}

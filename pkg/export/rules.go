package export

import (
	"maps"

	"github.com/matzehuels/nodeport/pkg/node"
)

// categoryByType assigns built-in rules to library kinds that reach the
// serializer without a [node.Categorized] implementation, e.g. generic nodes
// loaded from a file.
var categoryByType = map[string]node.Category{
	"ConstNode":     node.CategoryConstant,
	"UniformNode":   node.CategoryConstant,
	"AttributeNode": node.CategoryAttribute,
	"MathNode":      node.CategoryMath,
	"OperatorNode":  node.CategoryMath,
}

// Fields the generic rule never exports: "meta" is scratch state of the
// native extraction and "inputNodes" duplicates what links carry.
var excludedFields = []string{"meta", "inputNodes"}

func categoryOf(op string, n node.Node) node.Category {
	if c, ok := n.(node.Categorized); ok {
		return c.Category()
	}
	return categoryByType[op]
}

// extract applies the built-in rule for n's category.
func (s *Serializer) extract(op string, n node.Node) Record {
	fields := nativeFields(n)

	switch categoryOf(op, n) {
	case node.CategoryConstant:
		args, _ := CollectArgs(pick(fields, "value", "valueType", "nodeType", "precision"))
		return Record{Args: args}

	case node.CategoryAttribute:
		name, ok := fields["attributeName"]
		if !ok || node.IsUndefined(name) {
			name, ok = fields["_attributeName"]
		}
		picked := pick(fields, "nodeType")
		if ok {
			picked["attributeName"] = name
		}
		args, _ := CollectArgs(picked)
		return Record{Args: args}

	case node.CategoryMath:
		args, _ := CollectArgs(pick(fields, "method", "op"))
		return Record{Args: args, Links: s.links(op, n)}

	default:
		kept := maps.Clone(fields)
		for _, k := range excludedFields {
			delete(kept, k)
		}
		args, _ := CollectArgs(kept)
		return Record{Args: args, Links: s.links(op, n)}
	}
}

// nativeFields returns n's own field record, or nil without the capability.
func nativeFields(n node.Node) node.Fields {
	fe, ok := n.(node.FieldExtractor)
	if !ok {
		return nil
	}
	return fe.ExtractFields()
}

// links assembles n's declared children.
func (s *Serializer) links(op string, n node.Node) Links {
	cl, ok := n.(node.ChildLister)
	if !ok {
		return nil
	}
	kids := cl.Children()
	if len(kids) == 0 {
		return nil
	}

	out := make(Links, len(kids))
	for _, k := range kids {
		if isNil(k.Node) {
			continue
		}
		if out.Add(k.Property, k.Index, k.Node) {
			s.logger.Debug("mixed index shapes for one property", "op", op, "property", k.Property)
		}
	}
	return out
}

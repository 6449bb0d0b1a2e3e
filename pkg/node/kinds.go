package node

import (
	"maps"
	"sync/atomic"
)

// Base carries the state shared by the concrete node kinds. The kinds are
// always used by pointer so a registry handle stays with one instance.
type Base struct {
	Type   string // explicit type tag, overrides Meta when set
	Meta   Class
	handle atomic.Uint64
}

func (b *Base) IsNode() bool         { return true }
func (b *Base) NodeType() string     { return b.Type }
func (b *Base) Class() Class         { return b.Meta }
func (b *Base) SharedHandle() Handle { return Handle(b.handle.Load()) }

func (b *Base) ClaimHandle(h Handle) Handle {
	if b.handle.CompareAndSwap(0, uint64(h)) {
		return h
	}
	return Handle(b.handle.Load())
}

// optional reports empty strings as not provided.
func optional(s string) any {
	if s == "" {
		return Undefined
	}
	return s
}

// ConstNode is a literal value baked into the expression.
type ConstNode struct {
	Base
	Value      any
	ValueType  string // e.g. "float", "vec3", "color"
	OutputType string // exported as "nodeType"
	Precision  string // "low", "medium", "high" or empty
}

// NewConst returns a constant of the given value type.
func NewConst(value any, valueType string) *ConstNode {
	return &ConstNode{
		Base:      Base{Meta: Class{Type: "ConstNode", Name: "ConstNode"}},
		Value:     value,
		ValueType: valueType,
	}
}

func (n *ConstNode) Category() Category { return CategoryConstant }

func (n *ConstNode) ExtractFields() Fields {
	return Fields{
		"value":     n.Value,
		"valueType": optional(n.ValueType),
		"nodeType":  optional(n.OutputType),
		"precision": optional(n.Precision),
	}
}

// UniformNode is a value fed from the host at draw time.
type UniformNode struct {
	Base
	Name       string
	Value      any
	ValueType  string
	OutputType string
	Precision  string
	Group      string // update group, e.g. "frame" or "object"
}

// NewUniform returns a named uniform holding an initial value.
func NewUniform(name string, value any, valueType string) *UniformNode {
	return &UniformNode{
		Base:      Base{Meta: Class{Type: "UniformNode", Name: "UniformNode"}},
		Name:      name,
		Value:     value,
		ValueType: valueType,
	}
}

func (n *UniformNode) Category() Category { return CategoryConstant }

func (n *UniformNode) ExtractFields() Fields {
	return Fields{
		"name":      optional(n.Name),
		"value":     n.Value,
		"valueType": optional(n.ValueType),
		"nodeType":  optional(n.OutputType),
		"precision": optional(n.Precision),
		"groupNode": optional(n.Group),
	}
}

// AttributeNode reads a named geometry attribute.
type AttributeNode struct {
	Base
	AttributeName string
	OutputType    string
}

// NewAttribute returns a read of the named attribute.
func NewAttribute(name, outputType string) *AttributeNode {
	return &AttributeNode{
		Base:          Base{Meta: Class{Type: "AttributeNode", Name: "AttributeNode"}},
		AttributeName: name,
		OutputType:    outputType,
	}
}

func (n *AttributeNode) Category() Category { return CategoryAttribute }

// ExtractFields stores the attribute name under its internal alias; only
// setters publish it as "attributeName".
func (n *AttributeNode) ExtractFields() Fields {
	return Fields{
		"_attributeName": optional(n.AttributeName),
		"nodeType":       optional(n.OutputType),
	}
}

// MathNode applies a named math method to its inputs.
type MathNode struct {
	Base
	Method string
	Inputs []Node
}

// NewMath returns a math node applying method to inputs in order.
func NewMath(method string, inputs ...Node) *MathNode {
	return &MathNode{
		Base:   Base{Meta: Class{Type: "MathNode", Name: "MathNode"}},
		Method: method,
		Inputs: inputs,
	}
}

func (n *MathNode) Category() Category { return CategoryMath }

func (n *MathNode) ExtractFields() Fields {
	inputs := make([]any, len(n.Inputs))
	for i, in := range n.Inputs {
		inputs[i] = in
	}
	return Fields{
		"method":     optional(n.Method),
		"inputNodes": inputs,
	}
}

func (n *MathNode) Children() []Child {
	out := make([]Child, 0, len(n.Inputs))
	for i, in := range n.Inputs {
		if in == nil {
			continue
		}
		out = append(out, Child{Property: "inputNodes", Index: At(i), Node: in})
	}
	return out
}

// OperatorNode is a binary operator such as "+" or "*".
type OperatorNode struct {
	Base
	Op   string
	A, B Node
}

// NewOperator returns the binary operation a op b.
func NewOperator(op string, a, b Node) *OperatorNode {
	return &OperatorNode{
		Base: Base{Meta: Class{Type: "OperatorNode", Name: "OperatorNode"}},
		Op:   op,
		A:    a,
		B:    b,
	}
}

func (n *OperatorNode) Category() Category { return CategoryMath }

func (n *OperatorNode) ExtractFields() Fields {
	return Fields{"op": optional(n.Op)}
}

func (n *OperatorNode) Children() []Child {
	var out []Child
	if n.A != nil {
		out = append(out, Child{Property: "aNode", Node: n.A})
	}
	if n.B != nil {
		out = append(out, Child{Property: "bNode", Node: n.B})
	}
	return out
}

// Generic is a node of any library kind described by explicit fields and
// children. It uses the generic extraction rule unless its type names a kind
// with a dedicated rule.
type Generic struct {
	Base
	Fields Fields
	Kids   []Child
}

// NewGeneric returns a node of the given class type.
func NewGeneric(typ string, fields Fields, kids ...Child) *Generic {
	return &Generic{
		Base:   Base{Meta: Class{Type: typ, Name: typ}},
		Fields: fields,
		Kids:   kids,
	}
}

func (n *Generic) ExtractFields() Fields { return maps.Clone(n.Fields) }

func (n *Generic) Children() []Child {
	out := make([]Child, len(n.Kids))
	copy(out, n.Kids)
	return out
}

// Anonymous is an internal helper node with no type metadata and no
// capabilities.
type Anonymous struct {
	Label string
}

func (a *Anonymous) IsNode() bool { return true }

package graphfile

import (
	"fmt"

	"github.com/matzehuels/nodeport/pkg/errors"
	"github.com/matzehuels/nodeport/pkg/node"
)

// Node kinds accepted in graph files.
const (
	KindConst     = "const"
	KindUniform   = "uniform"
	KindAttribute = "attribute"
	KindMath      = "math"
	KindOperator  = "operator"
	KindGeneric   = "generic"
	KindAnonymous = "anonymous"
)

func build(entries []entry) (*Graph, error) {
	g := &Graph{
		nodes: make(map[string]node.Node, len(entries)),
		byRef: make(map[node.Node]string, len(entries)),
	}

	for _, e := range entries {
		if err := errors.ValidateNodeID(e.ID); err != nil {
			return nil, err
		}
		if _, dup := g.nodes[e.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "duplicate node id: %q", e.ID)
		}
		n, err := create(e)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", e.ID, err)
		}
		g.ids = append(g.ids, e.ID)
		g.nodes[e.ID] = n
		if _, seen := g.byRef[n]; !seen {
			g.byRef[n] = e.ID
		}
	}

	for _, e := range entries {
		if err := g.link(e); err != nil {
			return nil, fmt.Errorf("node %s: %w", e.ID, err)
		}
	}
	return g, nil
}

// create makes the unlinked node for e.
func create(e entry) (node.Node, error) {
	if e.Shared != "" {
		if e.Kind != "" || e.Type != "" {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "shared entries cannot set kind or type")
		}
		n, ok := node.Exports()[e.Shared].(node.Node)
		if !ok {
			return nil, errors.New(errors.ErrCodeSharedNotFound, "no shared node named %q", e.Shared)
		}
		return n, nil
	}

	if len(e.Children) > 0 && e.Kind != KindGeneric {
		return nil, errors.New(errors.ErrCodeInvalidGraph, "child tables are only valid on generic nodes")
	}
	if e.Type != "" {
		if err := errors.ValidateTypeName(e.Type); err != nil {
			return nil, err
		}
	}

	var (
		n    node.Node
		base *node.Base
	)
	switch e.Kind {
	case KindConst:
		c := node.NewConst(e.Value, e.ValueType)
		c.OutputType, c.Precision = e.NodeType, e.Precision
		n, base = c, &c.Base
	case KindUniform:
		u := node.NewUniform(e.Name, e.Value, e.ValueType)
		u.OutputType, u.Precision, u.Group = e.NodeType, e.Precision, e.Group
		n, base = u, &u.Base
	case KindAttribute:
		a := node.NewAttribute(e.Attribute, e.NodeType)
		n, base = a, &a.Base
	case KindMath:
		m := node.NewMath(e.Method)
		n, base = m, &m.Base
	case KindOperator:
		o := node.NewOperator(e.Op, nil, nil)
		n, base = o, &o.Base
	case KindGeneric:
		// For generic nodes the type names the class itself.
		return node.NewGeneric(e.Type, node.Fields(e.Fields)), nil
	case KindAnonymous:
		if e.Type != "" {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "anonymous nodes cannot set type")
		}
		return &node.Anonymous{Label: e.ID}, nil
	case "":
		return nil, errors.New(errors.ErrCodeInvalidKind, "missing kind")
	default:
		return nil, errors.New(errors.ErrCodeInvalidKind, "unknown kind: %q", e.Kind)
	}

	base.Type = e.Type
	return n, nil
}

// link resolves e's references against g.
func (g *Graph) link(e entry) error {
	if e.Shared != "" {
		return nil
	}

	switch n := g.nodes[e.ID].(type) {
	case *node.MathNode:
		for _, ref := range e.Inputs {
			if ref == "" {
				n.Inputs = append(n.Inputs, nil)
				continue
			}
			in, err := g.resolve(ref)
			if err != nil {
				return err
			}
			n.Inputs = append(n.Inputs, in)
		}

	case *node.OperatorNode:
		var err error
		if n.A, err = g.resolveOptional(e.A); err != nil {
			return err
		}
		if n.B, err = g.resolveOptional(e.B); err != nil {
			return err
		}

	case *node.Generic:
		for _, c := range e.Children {
			child, err := g.childOf(c)
			if err != nil {
				return err
			}
			n.Kids = append(n.Kids, child)
		}
	}
	return nil
}

func (g *Graph) childOf(c childEntry) (node.Child, error) {
	if c.Property == "" {
		return node.Child{}, errors.New(errors.ErrCodeInvalidGraph, "child without property")
	}
	if c.Index != nil && c.Key != nil {
		return node.Child{}, errors.New(errors.ErrCodeInvalidGraph, "child %s sets both index and key", c.Property)
	}
	if c.Index != nil && (*c.Index < 0 || *c.Index > node.MaxPosition) {
		return node.Child{}, errors.New(errors.ErrCodeInvalidGraph, "child %s index %d outside [0, %d]", c.Property, *c.Index, node.MaxPosition)
	}
	target, err := g.resolve(c.Ref)
	if err != nil {
		return node.Child{}, err
	}

	child := node.Child{Property: c.Property, Node: target}
	switch {
	case c.Index != nil:
		child.Index = node.At(*c.Index)
	case c.Key != nil:
		child.Index = node.Key(*c.Key)
	}
	return child, nil
}

func (g *Graph) resolve(ref string) (node.Node, error) {
	n, ok := g.nodes[ref]
	if !ok {
		return nil, errors.New(errors.ErrCodeNodeNotFound, "unknown node reference: %q", ref)
	}
	return n, nil
}

func (g *Graph) resolveOptional(ref string) (node.Node, error) {
	if ref == "" {
		return nil, nil
	}
	return g.resolve(ref)
}

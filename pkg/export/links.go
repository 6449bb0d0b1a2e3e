package export

import (
	"maps"
	"slices"

	"github.com/matzehuels/nodeport/pkg/node"
)

// Ref is a link to a child node. It holds the live node, not its export:
// expanding children is the caller's job.
type Ref struct {
	Node node.Node
}

// Shape is the structure of a [Link].
type Shape uint8

const (
	ShapeSingle Shape = iota
	ShapeOrdered
	ShapeKeyed
)

func (s Shape) String() string {
	switch s {
	case ShapeOrdered:
		return "ordered"
	case ShapeKeyed:
		return "keyed"
	default:
		return "single"
	}
}

// Link holds the children of one property in exactly one shape.
type Link struct {
	shape   Shape
	single  Ref
	ordered []*Ref
	keyed   map[string]Ref
}

// Single returns a single-reference link.
func Single(n node.Node) *Link {
	return &Link{shape: ShapeSingle, single: Ref{Node: n}}
}

// Ordered returns an ordered link; nil entries are holes.
func Ordered(nodes ...node.Node) *Link {
	l := &Link{shape: ShapeOrdered, ordered: make([]*Ref, len(nodes))}
	for i, n := range nodes {
		if n != nil {
			l.ordered[i] = &Ref{Node: n}
		}
	}
	return l
}

// Keyed returns a keyed link.
func Keyed(nodes map[string]node.Node) *Link {
	l := &Link{shape: ShapeKeyed, keyed: make(map[string]Ref, len(nodes))}
	for k, n := range nodes {
		l.keyed[k] = Ref{Node: n}
	}
	return l
}

func (l *Link) Shape() Shape { return l.shape }

// Ref returns the reference of a single link.
func (l *Link) Ref() (Ref, bool) { return l.single, l.shape == ShapeSingle }

// Items returns the sequence of an ordered link. Holes are nil.
func (l *Link) Items() []*Ref {
	if l.shape != ShapeOrdered {
		return nil
	}
	return slices.Clone(l.ordered)
}

// Keys returns the mapping of a keyed link.
func (l *Link) Keys() map[string]Ref {
	if l.shape != ShapeKeyed {
		return nil
	}
	return maps.Clone(l.keyed)
}

// Nodes returns every referenced node: the single ref, the ordered items
// without holes, or the keyed refs sorted by key.
func (l *Link) Nodes() []node.Node {
	switch l.shape {
	case ShapeOrdered:
		var out []node.Node
		for _, r := range l.ordered {
			if r != nil {
				out = append(out, r.Node)
			}
		}
		return out
	case ShapeKeyed:
		out := make([]node.Node, 0, len(l.keyed))
		for _, k := range slices.Sorted(maps.Keys(l.keyed)) {
			out = append(out, l.keyed[k].Node)
		}
		return out
	default:
		return []node.Node{l.single.Node}
	}
}

func (l *Link) clone() *Link {
	return &Link{
		shape:   l.shape,
		single:  l.single,
		ordered: slices.Clone(l.ordered),
		keyed:   maps.Clone(l.keyed),
	}
}

// Links maps a property name to the children stored under it.
type Links map[string]*Link

// Add records child under property at idx:
//
//   - no index stores a single reference; a later call replaces it
//   - a positional index grows an ordered sequence, leaving holes; [node.At]
//     keeps positions within [node.MaxPosition]
//   - a keyed index stores the child under the key's string form
//
// One property must receive a single index family per node. When it does
// not, the incoming shape replaces the stored link and Add reports true;
// nothing is coerced between families.
func (ls Links) Add(property string, idx node.Index, child node.Node) (conflict bool) {
	cur := ls[property]

	switch idx.Kind() {
	case node.IndexPositional:
		if cur == nil || cur.shape != ShapeOrdered {
			conflict = cur != nil && cur.shape == ShapeKeyed
			cur = &Link{shape: ShapeOrdered}
			ls[property] = cur
		}
		pos := idx.Pos()
		if pos >= len(cur.ordered) {
			cur.ordered = append(cur.ordered, make([]*Ref, pos+1-len(cur.ordered))...)
		}
		cur.ordered[pos] = &Ref{Node: child}

	case node.IndexKeyed:
		if cur == nil || cur.shape != ShapeKeyed {
			conflict = cur != nil && cur.shape == ShapeOrdered
			cur = &Link{shape: ShapeKeyed, keyed: make(map[string]Ref)}
			ls[property] = cur
		}
		cur.keyed[idx.String()] = Ref{Node: child}

	default:
		conflict = cur != nil && cur.shape != ShapeSingle
		ls[property] = Single(child)
	}
	return conflict
}

// Clone returns a copy whose links can be modified independently.
func (ls Links) Clone() Links {
	if ls == nil {
		return nil
	}
	out := make(Links, len(ls))
	for k, l := range ls {
		out[k] = l.clone()
	}
	return out
}

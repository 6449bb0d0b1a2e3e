package node

import "strconv"

// Node is the marker every graph node carries. Values that do not implement
// Node are plain data and never appear as links or shared nodes.
type Node interface {
	IsNode() bool
}

// Typed is implemented by nodes with an explicit type tag. An empty tag means
// the node has none and resolution falls back to [Classed].
type Typed interface {
	NodeType() string
}

// Class is the constructor-level metadata of a node kind.
type Class struct {
	Type string // static type identifier, e.g. "MathNode"
	Name string // constructor name, used when Type is empty
}

// Classed is implemented by nodes that expose constructor metadata.
type Classed interface {
	Class() Class
}

// Fields is a node's named field record. Values are JSON-safe data or
// references to other nodes.
type Fields map[string]any

// undefined marks a field that is declared but not provided.
type undefined struct{}

// Undefined is the "not provided" field value. It is distinct from nil, which
// exports as JSON null.
var Undefined any = undefined{}

// IsUndefined reports whether v is the [Undefined] sentinel.
func IsUndefined(v any) bool {
	_, ok := v.(undefined)
	return ok
}

// FieldExtractor is implemented by nodes that can describe themselves as a
// field record. Each call returns a fresh map.
type FieldExtractor interface {
	ExtractFields() Fields
}

// IndexKind is the shape family of a child [Index].
type IndexKind uint8

const (
	// IndexNone means the child occupies the property alone.
	IndexNone IndexKind = iota
	// IndexPositional places the child at an integer position.
	IndexPositional
	// IndexKeyed places the child under a string key.
	IndexKeyed
)

// Index locates a child within its property. The zero value is [IndexNone].
type Index struct {
	kind IndexKind
	pos  int
	key  string
}

// MaxPosition is the largest position an ordered link can hold.
const MaxPosition = 1<<16 - 1

// At returns a positional index. Positions outside [0, MaxPosition] cannot
// address a sequence, so they become keyed indices named after the number.
func At(i int) Index {
	if i < 0 || i > MaxPosition {
		return Key(strconv.Itoa(i))
	}
	return Index{kind: IndexPositional, pos: i}
}

// Key returns a keyed index.
func Key(k string) Index {
	return Index{kind: IndexKeyed, key: k}
}

// Kind returns the index's shape family.
func (i Index) Kind() IndexKind { return i.kind }

// Pos returns the position of a positional index, or -1.
func (i Index) Pos() int {
	if i.kind != IndexPositional {
		return -1
	}
	return i.pos
}

// String returns the key of a keyed index, the decimal position of a
// positional index, or "" for no index.
func (i Index) String() string {
	switch i.kind {
	case IndexPositional:
		return strconv.Itoa(i.pos)
	case IndexKeyed:
		return i.key
	default:
		return ""
	}
}

// Child describes one structural reference from a node to a child node.
type Child struct {
	Property string
	Index    Index
	Node     Node
}

// ChildLister is implemented by nodes that reference other nodes.
type ChildLister interface {
	Children() []Child
}

// Category selects the built-in extraction rule applied to a node.
type Category uint8

const (
	CategoryGeneric Category = iota
	CategoryConstant
	CategoryAttribute
	CategoryMath
)

func (c Category) String() string {
	switch c {
	case CategoryConstant:
		return "constant"
	case CategoryAttribute:
		return "attribute"
	case CategoryMath:
		return "math"
	default:
		return "generic"
	}
}

// Categorized is implemented by node kinds with a dedicated extraction rule.
type Categorized interface {
	Category() Category
}

// Handle is a process-wide tag identifying a node registered as shared.
// The zero Handle is unassigned.
type Handle uint64

// IsZero reports whether h is unassigned.
func (h Handle) IsZero() bool { return h == 0 }

// Handled is implemented by nodes a shared-node registry can tag. A node
// keeps the first handle it is given: ClaimHandle stores h only when the node
// has none and returns the handle the node carries afterwards.
type Handled interface {
	SharedHandle() Handle
	ClaimHandle(h Handle) Handle
}

// TypeOf resolves a node's type identifier: the explicit type tag first, then
// the class type, then the class name. It returns "" when none is available.
func TypeOf(n Node) string {
	if t, ok := n.(Typed); ok {
		if s := t.NodeType(); s != "" {
			return s
		}
	}
	if c, ok := n.(Classed); ok {
		cls := c.Class()
		if cls.Type != "" {
			return cls.Type
		}
		return cls.Name
	}
	return ""
}

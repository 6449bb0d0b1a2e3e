package export

import (
	"reflect"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/matzehuels/nodeport/pkg/node"
)

// handles allocates process-wide node handles. Zero is never issued.
var handles atomic.Uint64

// Registry names the shared singleton nodes of the node library. Nodes are
// tagged with a handle at construction and looked up through a handle table,
// so resolution does not depend on hashing node values. A Registry is
// read-only once built and safe for concurrent lookups.
type Registry struct {
	slots map[node.Handle]int
	names []string    // slot -> exported name
	nodes []node.Node // slot -> registered instance
}

// NewRegistry scans bindings for node values and tags each with a handle.
// Non-node bindings (helper functions, numbers) are skipped, as are nodes that
// cannot carry a handle. Names are visited in sorted order; when one instance
// is bound under several names, the first name wins.
func NewRegistry(bindings map[string]any) *Registry {
	r := &Registry{slots: make(map[node.Handle]int)}

	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		n, h, ok := handled(bindings[name])
		if !ok {
			continue
		}
		hd := h.SharedHandle()
		if hd.IsZero() {
			hd = h.ClaimHandle(node.Handle(handles.Add(1)))
		}
		if _, dup := r.slots[hd]; dup {
			continue
		}
		r.slots[hd] = len(r.names)
		r.names = append(r.names, name)
		r.nodes = append(r.nodes, n)
	}
	return r
}

// handled returns v as a taggable node. Only non-nil pointers qualify.
func handled(v any) (node.Node, node.Handled, bool) {
	n, ok := v.(node.Node)
	if !ok {
		return nil, nil, false
	}
	if reflect.ValueOf(v).Kind() != reflect.Pointer || isNil(n) || !n.IsNode() {
		return nil, nil, false
	}
	h, ok := v.(node.Handled)
	return n, h, ok
}

// isNil reports whether n is nil or a typed nil such as (*node.ConstNode)(nil).
func isNil(n node.Node) bool {
	if n == nil {
		return true
	}
	switch rv := reflect.ValueOf(n); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// Lookup returns the exported name of n if n is one of the registered
// instances. A copy of a registered node carries the same handle but is a
// different instance and does not match.
func (r *Registry) Lookup(n node.Node) (string, bool) {
	if r == nil || isNil(n) {
		return "", false
	}
	h, ok := n.(node.Handled)
	if !ok {
		return "", false
	}
	hd := h.SharedHandle()
	if hd.IsZero() {
		return "", false
	}
	slot, ok := r.slots[hd]
	if !ok || reflect.ValueOf(n).Kind() != reflect.Pointer || r.nodes[slot] != n {
		return "", false
	}
	return r.names[slot], true
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	return slices.Clone(r.names)
}

// Len returns the number of registered nodes.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.names)
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the registry over [node.Exports], built on first
// use.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry(node.Exports())
	})
	return defaultRegistry
}

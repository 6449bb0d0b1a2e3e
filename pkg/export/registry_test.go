package export

import (
	"slices"
	"testing"

	"github.com/matzehuels/nodeport/pkg/node"
)

func TestRegistrySkipsNonNodes(t *testing.T) {
	shared := node.NewConst(1.0, "float")
	r := NewRegistry(map[string]any{
		"one":    shared,
		"PI":     3.14159,
		"helper": func() {},
		"label":  "text",
		"nilptr": (*node.ConstNode)(nil),
	})

	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}
	if name, ok := r.Lookup(shared); !ok || name != "one" {
		t.Errorf("Lookup() = %q, %v, want one, true", name, ok)
	}
}

func TestRegistryIdentityNotStructure(t *testing.T) {
	shared := node.NewAttribute("uv", "vec2")
	twin := node.NewAttribute("uv", "vec2")
	r := NewRegistry(map[string]any{"uv": shared})

	if _, ok := r.Lookup(twin); ok {
		t.Error("structurally identical instance must not resolve to the shared name")
	}
	if name, ok := r.Lookup(shared); !ok || name != "uv" {
		t.Errorf("Lookup(shared) = %q, %v", name, ok)
	}
}

func TestRegistryAliasesKeepFirstName(t *testing.T) {
	n := node.NewUniform("t", 0.0, "float")
	r := NewRegistry(map[string]any{"timer": n, "elapsed": n})

	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}
	if name, _ := r.Lookup(n); name != "elapsed" {
		t.Errorf("Lookup() = %q, want elapsed (first in sorted order)", name)
	}
}

func TestRegistriesAreIndependent(t *testing.T) {
	n := node.NewConst(0.0, "float")
	a := NewRegistry(map[string]any{"zero": n})
	b := NewRegistry(map[string]any{"origin": n})
	empty := NewRegistry(nil)

	if name, _ := a.Lookup(n); name != "zero" {
		t.Errorf("a.Lookup() = %q, want zero", name)
	}
	if name, _ := b.Lookup(n); name != "origin" {
		t.Errorf("b.Lookup() = %q, want origin", name)
	}
	if _, ok := empty.Lookup(n); ok {
		t.Error("empty registry should not resolve a node tagged by another registry")
	}
}

func TestRegistryNilSafe(t *testing.T) {
	var r *Registry
	if _, ok := r.Lookup(node.Time); ok {
		t.Error("nil registry Lookup should miss")
	}
	if r.Len() != 0 || r.Names() != nil {
		t.Error("nil registry should be empty")
	}
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	if r != DefaultRegistry() {
		t.Error("DefaultRegistry should be built once")
	}

	names := r.Names()
	if !slices.IsSorted(names) {
		t.Errorf("Names() not sorted: %v", names)
	}
	for _, want := range []string{"time", "uv", "positionLocal", "cameraPosition"} {
		if !slices.Contains(names, want) {
			t.Errorf("Names() missing %q", want)
		}
	}
	for _, notNode := range []string{"PI", "mix", "float"} {
		if slices.Contains(names, notNode) {
			t.Errorf("Names() should not contain non-node binding %q", notNode)
		}
	}
}

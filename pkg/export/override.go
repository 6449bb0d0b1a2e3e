package export

import "github.com/matzehuels/nodeport/pkg/node"

// Record is the args and links part of an export, as produced by a rule or
// an override.
type Record struct {
	Args  Args
	Links Links
}

// DynamicFunc computes a record for a node. Returning a nil record defers to
// the built-in rule; a returned error is passed to the caller unchanged.
type DynamicFunc func(n node.Node) (*Record, error)

// Override customizes extraction for one node type. It is either a fixed
// record ([Static]) or a function ([Dynamic]).
type Override interface {
	resolve(n node.Node) (*Record, error)
}

type staticOverride struct{ rec Record }

type dynamicOverride struct{ fn DynamicFunc }

// Static returns an override that always yields rec.
func Static(rec Record) Override { return staticOverride{rec: rec} }

// Dynamic returns an override computed per node by fn.
func Dynamic(fn DynamicFunc) Override { return dynamicOverride{fn: fn} }

func (o staticOverride) resolve(node.Node) (*Record, error) {
	rec := Record{Args: cloneArgs(o.rec.Args), Links: o.rec.Links.Clone()}
	return &rec, nil
}

func (o dynamicOverride) resolve(n node.Node) (*Record, error) {
	if o.fn == nil {
		return nil, nil
	}
	return o.fn(n)
}

// Overrides maps a node type identifier to its override.
type Overrides map[string]Override

func cloneArgs(a Args) Args {
	if len(a) == 0 {
		return nil
	}
	out := make(Args, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

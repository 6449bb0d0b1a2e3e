package graphfile

import (
	"io"
	"maps"
	"os"
	"slices"

	"github.com/matzehuels/nodeport/pkg/errors"
	"github.com/matzehuels/nodeport/pkg/export"
	"github.com/matzehuels/nodeport/pkg/node"
)

type overridesFile struct {
	Override map[string]overrideEntry `toml:"override" json:"override" yaml:"override"`
}

type overrideEntry struct {
	Args   map[string]any `toml:"args" json:"args" yaml:"args"`
	Fields []string       `toml:"fields" json:"fields" yaml:"fields"`
}

// LoadOverrides reads an override file, choosing the format from its
// extension.
func LoadOverrides(path string) (export.Overrides, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadOverrides(f, format)
}

// ReadOverrides decodes per-type overrides. An entry with args becomes a
// static override; an entry with fields becomes a dynamic override that
// exports those native fields and defers to the built-in rule when the node
// has none of them.
func ReadOverrides(r io.Reader, format string) (export.Overrides, error) {
	var data overridesFile
	if err := decode(r, format, &data); err != nil {
		return nil, err
	}

	out := make(export.Overrides, len(data.Override))
	for _, typ := range slices.Sorted(maps.Keys(data.Override)) {
		if err := errors.ValidateTypeName(typ); err != nil {
			return nil, err
		}
		o := data.Override[typ]
		switch {
		case o.Args != nil && o.Fields != nil:
			return nil, errors.New(errors.ErrCodeInvalidOverride, "override %s sets both args and fields", typ)
		case o.Args != nil:
			out[typ] = export.Static(export.Record{Args: export.Args(o.Args)})
		case len(o.Fields) > 0:
			out[typ] = export.Dynamic(pickFields(o.Fields))
		default:
			return nil, errors.New(errors.ErrCodeInvalidOverride, "override %s sets neither args nor fields", typ)
		}
	}
	return out, nil
}

func pickFields(keys []string) export.DynamicFunc {
	return func(n node.Node) (*export.Record, error) {
		fe, ok := n.(node.FieldExtractor)
		if !ok {
			return nil, nil
		}
		fields := fe.ExtractFields()
		picked := make(node.Fields, len(keys))
		for _, k := range keys {
			if v, ok := fields[k]; ok {
				picked[k] = v
			}
		}
		args, ok := export.CollectArgs(picked)
		if !ok {
			return nil, nil
		}
		return &export.Record{Args: args}, nil
	}
}

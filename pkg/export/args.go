package export

import (
	"encoding/json"
	"math"
	"reflect"

	"github.com/matzehuels/nodeport/pkg/node"
)

// Args are the scalar and structured arguments of an exported node.
type Args map[string]any

// CollectArgs keeps the fields whose values are JSON-safe and provided.
// It returns false when nothing qualifies, in which case callers omit args
// entirely. Only the top level is checked: the contents of arrays and nested
// objects are taken as produced.
func CollectArgs(fields node.Fields) (Args, bool) {
	var out Args
	for k, v := range fields {
		if !jsonSafe(v) {
			continue
		}
		if out == nil {
			out = make(Args, len(fields))
		}
		out[k] = v
	}
	return out, out != nil
}

// pick restricts fields to keys, leaving absent keys absent.
func pick(fields node.Fields, keys ...string) node.Fields {
	out := make(node.Fields, len(keys))
	for _, k := range keys {
		if v, ok := fields[k]; ok {
			out[k] = v
		}
	}
	return out
}

func jsonSafe(v any) bool {
	if v == nil {
		return true
	}
	if node.IsUndefined(v) {
		return false
	}
	if _, ok := v.(node.Node); ok {
		return false
	}
	if _, ok := v.(json.Number); ok {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	case reflect.Slice, reflect.Array:
		return true
	case reflect.Map:
		return rv.Type().Key().Kind() == reflect.String
	default:
		return false
	}
}

package node

import "math"

// Ready-made node instances published by the library. Scripts use them
// directly instead of constructing nodes, so exports must recognize them by
// identity.
var (
	PositionLocal  = NewGeneric("PositionNode", Fields{"scope": "local"})
	PositionWorld  = NewGeneric("PositionNode", Fields{"scope": "world"})
	NormalLocal    = NewGeneric("NormalNode", Fields{"scope": "local"})
	NormalWorld    = NewGeneric("NormalNode", Fields{"scope": "world"})
	UV             = NewAttribute("uv", "vec2")
	Time           = NewUniform("time", 0.0, "float")
	CameraPosition = NewUniform("cameraPosition", []any{0.0, 0.0, 0.0}, "vec3")
	ScreenUV       = NewGeneric("ScreenNode", Fields{"scope": "uv"})
)

func init() {
	Time.Group = "frame"
	CameraPosition.Group = "render"
}

// Exports returns the library's public bindings keyed by exported name.
// The map mixes node instances with helper functions and numeric constants,
// as a script host would see them; callers must filter for [Node] values.
// Every call returns a fresh map over the same singletons.
func Exports() map[string]any {
	return map[string]any{
		"positionLocal":  PositionLocal,
		"positionWorld":  PositionWorld,
		"normalLocal":    NormalLocal,
		"normalWorld":    NormalWorld,
		"uv":             UV,
		"time":           Time,
		"cameraPosition": CameraPosition,
		"screenUV":       ScreenUV,

		"PI":        math.Pi,
		"EPSILON":   1e-6,
		"float":     func(v float64) Node { return NewConst(v, "float") },
		"attribute": NewAttribute,
		"mix": func(a, b, t Node) Node {
			return NewMath("mix", a, b, t)
		},
		"add": func(a, b Node) Node {
			return NewOperator("+", a, b)
		},
	}
}

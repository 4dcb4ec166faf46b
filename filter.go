package desmostrace

import "math"

// Unbounded is the maximum length that accepts any chord.
var Unbounded = math.Inf(1)

// LengthFilter keeps curves whose chord lies in [Min, Max].
type LengthFilter struct {
	Min, Max float64
}

// Accept reports whether c passes the filter.
func (f LengthFilter) Accept(c Curve) bool {
	l := c.Chord()
	return f.Min <= l && l <= f.Max
}

// Apply returns the accepted curves in their original order. Paths broken
// by a rejected segment are left open.
func (f LengthFilter) Apply(curves []Curve) []Curve {
	var out []Curve
	for _, c := range curves {
		if f.Accept(c) {
			out = append(out, c)
		}
	}
	return out
}

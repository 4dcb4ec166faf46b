package desmostrace

import (
	"math"
)

// EstimateScale returns the factor mapping tracer units to pixels for an
// image of w×h pixels: the mean of max(x)/w and max(y)/h over every point
// of the trace.
//
// The result is always positive. It is 1 when the image has no area, the
// trace is empty or the extents collapse to zero.
func EstimateScale(tr TraceResult, w, h int) float64 {
	if w <= 0 || h <= 0 {
		return 1
	}
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	n := 0
	for p := range tr.Points() {
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
		n++
	}
	if n == 0 {
		return 1
	}
	s := (maxX/float64(w) + maxY/float64(h)) / 2
	if !(s > 0) || math.IsInf(s, 0) {
		return 1
	}
	return s
}

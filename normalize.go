package desmostrace

import (
	"math"

	"seehuhn.de/go/geom/path"
)

// Frame maps raw tracer points into the normalized space: pixels, centered
// on (CX, CY), y up.
type Frame struct {
	Scale  float64
	CX, CY float64
}

// NewFrame returns the frame for a w×h image traced at the given scale.
func NewFrame(scale float64, w, h int) Frame {
	return Frame{Scale: scale, CX: float64(w) / 2, CY: float64(h) / 2}
}

// Normalize maps a raw point.
func (f Frame) Normalize(p Point) Point {
	return Point{
		X: p.X/f.Scale - f.CX,
		Y: f.CY - p.Y/f.Scale,
	}
}

// Curve is a cubic Bézier with control points P0..P3.
type Curve [4]Point

// Start returns P0.
func (c Curve) Start() Point { return c[0] }

// End returns P3.
func (c Curve) End() Point { return c[3] }

// Chord is the distance between the end points, not the arc length.
func (c Curve) Chord() float64 {
	return math.Hypot(c[3].X-c[0].X, c[3].Y-c[0].Y)
}

// At evaluates the curve in the cubic Bernstein basis.
func (c Curve) At(t float64) Point {
	s := 1 - t
	b0 := s * s * s
	b1 := 3 * s * s * t
	b2 := 3 * s * t * t
	b3 := t * t * t
	return Point{
		X: b0*c[0].X + b1*c[1].X + b2*c[2].X + b3*c[3].X,
		Y: b0*c[0].Y + b1*c[1].Y + b2*c[2].Y + b3*c[3].Y,
	}
}

// Build converts the segment starting at start into a normalized cubic.
//
// A corner becomes the single cubic (start, start, corner, end). It does
// not reproduce the two straight edges exactly; it bends towards the
// corner and passes near it.
func (f Frame) Build(start Point, s Segment) Curve {
	var c Curve
	if s.IsCorner() {
		c = Curve{start, start, s.Corner, s.End}
	} else {
		c = Curve{start, s.C1, s.C2, s.End}
	}
	for i := range c {
		c[i] = f.Normalize(c[i])
	}
	return c
}

// BuildCurves converts every segment of the trace, in order.
func BuildCurves(tr TraceResult, f Frame) []Curve {
	out := make([]Curve, 0, tr.Segments())
	for _, p := range tr {
		start := p.Start
		for _, s := range p.Segments {
			out = append(out, f.Build(start, s))
			start = s.End
		}
	}
	return out
}

// PathData returns the curves as one path with a subpath per curve.
// Neighbouring curves are not joined since filtering may have dropped the
// segments between them.
func PathData(curves []Curve) *path.Data {
	p := &path.Data{}
	for _, c := range curves {
		p = p.MoveTo(c[0]).CubeTo(c[1], c[2], c[3])
	}
	return p
}

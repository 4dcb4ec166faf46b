// Package potrace traces a two-color bitmap into closed outlines made of
// corner and Bézier segments, following the potrace algorithm.
// More info at http://potrace.sourceforge.net/potracelib.pdf
package potrace

import (
	"seehuhn.de/go/geom/vec"
)

const (
	// Bezier is a cubic Bézier segment: Pnt holds both control points and the end point.
	Bezier = SegmentKind(1)
	// Corner is a pair of straight edges: Pnt[1] is the corner vertex, Pnt[2] the end point.
	Corner = SegmentKind(2)
)

// SegmentKind is the kind of a path segment.
type SegmentKind int

func (k SegmentKind) String() string {
	switch k {
	case Bezier:
		return "bezier"
	case Corner:
		return "corner"
	}
	return "unknown"
}

// Supported turn policies.
const (
	TurnBlack    = TurnPolicy(0)
	TurnWhite    = TurnPolicy(1)
	TurnLeft     = TurnPolicy(2)
	TurnRight    = TurnPolicy(3)
	TurnMinority = TurnPolicy(4)
	TurnMajority = TurnPolicy(5)
	TurnRandom   = TurnPolicy(6)
)

// TurnPolicy decides how ambiguous pixel configurations are resolved while
// walking the outline of a component.
type TurnPolicy int

// Segment is a single segment of a closed curve. It starts where the
// previous segment ends.
//
// For Bezier segments Pnt is {c1, c2, end}; for Corner segments Pnt[0] is
// unused, Pnt[1] is the corner vertex and Pnt[2] the end point.
type Segment struct {
	Kind SegmentKind
	Pnt  [3]vec.Vec2
}

// End returns the end point of the segment.
func (s Segment) End() vec.Vec2 { return s.Pnt[2] }

// Path is a traced closed curve. Positive paths (Sign > 0) are outer
// boundaries, negative ones are holes. Children holds paths nested
// directly inside this one.
type Path struct {
	Area     int
	Sign     int
	Curve    []Segment
	Children []Path

	priv *privPath
}

// Start returns the point where the curve starts, which is the end of its
// last segment.
func (p Path) Start() vec.Vec2 {
	if len(p.Curve) == 0 {
		return vec.Vec2{}
	}
	return p.Curve[len(p.Curve)-1].End()
}

// Params is a set of tracing parameters.
type Params struct {
	TurdSize     int        // components with area not above this are dropped
	TurnPolicy   TurnPolicy // ambiguity resolution
	AlphaMax     float64    // corner threshold
	OptiCurve    bool       // join adjacent Bézier segments where possible
	OptTolerance float64    // tolerance for OptiCurve
}

// Defaults are the default tracing parameters.
var Defaults = Params{
	TurdSize:     2,
	TurnPolicy:   TurnMinority,
	AlphaMax:     1.0,
	OptiCurve:    true,
	OptTolerance: 0.2,
}

// Trace the bitmap using specified parameters for the algorithm.
// If parameters is nil, defaults will be used.
//
// The result is a forest: top-level outer boundaries with their holes (and
// the islands inside those holes) as children. Use Flatten to get the
// paths in emission order.
func Trace(bm *Bitmap, param *Params) ([]Path, error) {
	if param == nil {
		param = &Defaults
	}
	return bm.toPathList(param)
}

// Flatten lists every path of the forest in potrace emission order: each
// outer path is immediately followed by its holes, and islands nested in
// those holes come after the whole current level.
func Flatten(paths []Path) []Path {
	var out []Path
	level := paths
	for len(level) > 0 {
		var next []Path
		for _, p := range level {
			out = append(out, p)
			for _, c := range p.Children {
				out = append(out, c)
				next = append(next, c.Children...)
			}
		}
		level = next
	}
	return out
}

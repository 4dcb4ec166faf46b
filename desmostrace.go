// Package desmostrace turns the traced outline of a raster image into cubic
// Bézier curves expressed in Desmos parametric syntax.
//
// A Tracer converts a foreground mask into closed paths. Convert then
// estimates the tracer's unit scale, moves every control point into a frame
// centered on the image with y pointing up, drops segments whose chord falls
// outside the requested length range and renders the rest as expressions
// and preview polylines.
package desmostrace

import (
	"iter"

	"seehuhn.de/go/geom/vec"
)

// Point is a 2D point. Raw tracer points have their origin in the top left
// corner of the image with y growing downwards; normalized points are
// centered on the image with y growing upwards.
type Point = vec.Vec2

const (
	// Corner is a pair of straight edges meeting at Segment.Corner.
	Corner = SegmentKind(1)
	// Smooth is a Bézier segment with control points Segment.C1 and Segment.C2.
	Smooth = SegmentKind(2)
)

// SegmentKind is the variant of a Segment.
type SegmentKind int

func (k SegmentKind) String() string {
	switch k {
	case Corner:
		return "corner"
	case Smooth:
		return "smooth"
	}
	return "unknown"
}

// Segment is one piece of a closed path. It starts at the end of the
// previous segment, or at Path.Start for the first one.
type Segment struct {
	Kind   SegmentKind
	Corner Point // Corner only
	C1, C2 Point // Smooth only
	End    Point
}

// CornerSegment returns a corner segment through corner ending at end.
func CornerSegment(corner, end Point) Segment {
	return Segment{Kind: Corner, Corner: corner, End: end}
}

// SmoothSegment returns a Bézier segment with control points c1, c2.
func SmoothSegment(c1, c2, end Point) Segment {
	return Segment{Kind: Smooth, C1: c1, C2: c2, End: end}
}

// IsCorner reports whether s is a corner segment.
func (s Segment) IsCorner() bool { return s.Kind == Corner }

// Path is a closed loop of segments.
type Path struct {
	Start    Point
	Segments []Segment
}

// TraceResult is every path found in an image, in the order the tracer
// emitted them.
type TraceResult []Path

// Segments returns the total number of segments.
func (tr TraceResult) Segments() int {
	n := 0
	for _, p := range tr {
		n += len(p.Segments)
	}
	return n
}

// Points yields every raw point the trace touches: path starts, corner
// points, control points and end points.
func (tr TraceResult) Points() iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for _, p := range tr {
			if len(p.Segments) == 0 {
				continue
			}
			if !yield(p.Start) {
				return
			}
			for _, s := range p.Segments {
				if s.IsCorner() {
					if !yield(s.Corner) {
						return
					}
				} else {
					if !yield(s.C1) || !yield(s.C2) {
						return
					}
				}
				if !yield(s.End) {
					return
				}
			}
		}
	}
}

// Tracer converts a foreground mask into closed paths. Implementations
// must be deterministic for the pipeline output to be.
type Tracer interface {
	Trace(m *Mask) (TraceResult, error)
}

// TracerFunc adapts a function to the Tracer interface.
type TracerFunc func(m *Mask) (TraceResult, error)

// Trace calls f(m).
func (f TracerFunc) Trace(m *Mask) (TraceResult, error) { return f(m) }

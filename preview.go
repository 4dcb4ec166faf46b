package desmostrace

// PreviewSamples is the number of points per preview polyline.
const PreviewSamples = 50

// Polyline is a curve sampled at increasing t.
type Polyline []Point

// Sample evaluates c at n values of t spread evenly over [0,1], both ends
// included.
func Sample(c Curve, n int) Polyline {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return Polyline{c.At(0)}
	}
	out := make(Polyline, n)
	for i := range out {
		out[i] = c.At(float64(i) / float64(n-1))
	}
	return out
}

// SamplePreview samples every curve with PreviewSamples points.
func SamplePreview(curves []Curve) []Polyline {
	out := make([]Polyline, len(curves))
	for i, c := range curves {
		out[i] = Sample(c, PreviewSamples)
	}
	return out
}

// Bounds returns the bounding box of all polylines. ok is false if there
// are no points.
func Bounds(lines []Polyline) (lo, hi Point, ok bool) {
	for _, l := range lines {
		for _, p := range l {
			if !ok {
				lo, hi, ok = p, p, true
				continue
			}
			lo.X, lo.Y = min(lo.X, p.X), min(lo.Y, p.Y)
			hi.X, hi.Y = max(hi.X, p.X), max(hi.Y, p.Y)
		}
	}
	return lo, hi, ok
}

package potrace

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// cos179 is the cosine of 179 degrees.
const cos179 = -0.999847695156

type segment struct {
	Segment

	vertex vec.Vec2
	alpha  float64 // cropped
	alpha0 float64 // before cropping
	beta   float64
}

type privCurve struct {
	segm []segment
}

func newPrivCurve(n int) privCurve {
	return privCurve{segm: make([]segment, n)}
}

func (c *privCurve) segments() []Segment {
	out := make([]Segment, len(c.segm))
	for i, s := range c.segm {
		out[i] = s.Segment
	}
	return out
}

// reverse flips the orientation of the polygon.
func (c *privCurve) reverse() {
	m := len(c.segm)
	for i, j := 0, m-1; i < j; i, j = i+1, j-1 {
		c.segm[i].vertex, c.segm[j].vertex = c.segm[j].vertex, c.segm[i].vertex
	}
}

// Stage 4: smoothing and corner analysis (Sec. 2.3.3).
//
// Every polygon vertex becomes one segment running from the midpoint of
// its incoming edge to the midpoint of its outgoing edge. Sharp vertices
// (alpha >= alphaMax) become corners, the rest Bézier curves.
func (c *privCurve) smooth(alphaMax float64) {
	m := len(c.segm)
	for i := 0; i < m; i++ {
		j := mod(i+1, m)
		k := mod(i+2, m)
		vi, vj, vk := c.segm[i].vertex, c.segm[j].vertex, c.segm[k].vertex
		p4 := interval(1/2.0, vk, vj)

		alpha := 4 / 3.0
		if denom := ddenom(vi, vk); denom != 0 {
			dd := math.Abs(dpara(vi, vj, vk) / denom)
			alpha = 0
			if dd > 1 {
				alpha = 1 - 1.0/dd
			}
			alpha /= 0.75
		}
		s := &c.segm[j]
		s.alpha0 = alpha

		if alpha >= alphaMax {
			s.Kind = Corner
			s.Pnt[1] = vj
			s.Pnt[2] = p4
		} else {
			alpha = min(max(alpha, 0.55), 1)
			s.Kind = Bezier
			s.Pnt[0] = interval(.5+.5*alpha, vi, vj)
			s.Pnt[1] = interval(.5+.5*alpha, vk, vj)
			s.Pnt[2] = p4
		}
		s.alpha = alpha
		s.beta = 0.5
	}
}

// Stage 5: curve optimization (Sec. 2.4).

type opti struct {
	pen   float64     // penalty
	c     [2]vec.Vec2 // control points
	t, s  float64     // curve parameters
	alpha float64     // curve parameter
}

// optiPenalty fits a single Bézier from i+.5 to j+.5 (cyclically i < j)
// and reports its penalty. ok is false if no acceptable fit exists.
func (pp *privPath) optiPenalty(i, j int, tolerance float64, convc []int, areac []float64) (res opti, ok bool) {
	segm := pp.curve.segm
	m := len(segm)

	// a full loop can never be an opticurve
	if i == j {
		return res, false
	}

	// convexity, no corners, maximum bend < 179 degrees
	i1 := mod(i+1, m)
	conv := convc[i1]
	if conv == 0 {
		return res, false
	}
	d := ddist(segm[i].vertex, segm[i1].vertex)
	for k := i1; k != j; {
		k1 := mod(k+1, m)
		k2 := mod(k+2, m)
		if convc[k1] != conv {
			return res, false
		}
		if int(signf(cprod(segm[i].vertex, segm[i1].vertex, segm[k1].vertex, segm[k2].vertex))) != conv {
			return res, false
		}
		if iprod1(segm[i].vertex, segm[i1].vertex, segm[k1].vertex, segm[k2].vertex) < d*ddist(segm[k1].vertex, segm[k2].vertex)*cos179 {
			return res, false
		}
		k = k1
	}

	p0 := segm[mod(i, m)].Pnt[2]
	p1 := segm[mod(i+1, m)].vertex
	p2 := segm[mod(j, m)].vertex
	p3 := segm[mod(j, m)].Pnt[2]

	area := areac[j] - areac[i]
	area -= dpara(segm[0].vertex, segm[i].Pnt[2], segm[j].Pnt[2]) / 2
	if i >= j {
		area += areac[m]
	}

	// Intersect p0p1 with p2p3 at o = interval(t,p0,p1) = interval(s,p3,p2);
	// A is the area of the triangle (p0,o,p3).
	A1 := dpara(p0, p1, p2)
	A2 := dpara(p0, p1, p3)
	A3 := dpara(p0, p2, p3)
	A4 := A1 + A3 - A2

	if A2 == A1 {
		return res, false
	}

	t := A3 / (A3 - A4)
	s := A2 / (A2 - A1)
	A := A2 * t / 2.0
	if A == 0 {
		return res, false
	}

	R := area / A                   // relative area
	alpha := 2 - math.Sqrt(4-R/0.3) // overall alpha for p0-o-p3 curve

	res.c[0] = interval(t*alpha, p0, p1)
	res.c[1] = interval(s*alpha, p3, p2)
	res.alpha = alpha
	res.t = t
	res.s = s

	p1, p2 = res.c[0], res.c[1]

	// tangency with the polygon edges
	for k := mod(i+1, m); k != j; {
		k1 := mod(k+1, m)
		t := tangent(p0, p1, p2, p3, segm[k].vertex, segm[k1].vertex)
		if t < -0.5 {
			return res, false
		}
		pt := bezier(t, p0, p1, p2, p3)
		d := ddist(segm[k].vertex, segm[k1].vertex)
		if d == 0 {
			return res, false
		}
		d1 := dpara(segm[k].vertex, segm[k1].vertex, pt) / d
		if math.Abs(d1) > tolerance {
			return res, false
		}
		if iprod(segm[k].vertex, segm[k1].vertex, pt) < 0 || iprod(segm[k1].vertex, segm[k].vertex, pt) < 0 {
			return res, false
		}
		res.pen += d1 * d1
		k = k1
	}

	// corners of the smoothed curve
	for k := i; k != j; {
		k1 := mod(k+1, m)
		t := tangent(p0, p1, p2, p3, segm[k].Pnt[2], segm[k1].Pnt[2])
		if t < -0.5 {
			return res, false
		}
		pt := bezier(t, p0, p1, p2, p3)
		d := ddist(segm[k].Pnt[2], segm[k1].Pnt[2])
		if d == 0 {
			return res, false
		}
		d1 := dpara(segm[k].Pnt[2], segm[k1].Pnt[2], pt) / d
		d2 := dpara(segm[k].Pnt[2], segm[k1].Pnt[2], segm[k1].vertex) / d
		d2 *= 0.75 * segm[k1].alpha
		if d2 < 0 {
			d1, d2 = -d1, -d2
		}
		if d1 < d2-tolerance {
			return res, false
		}
		if d1 < d2 {
			res.pen += (d1 - d2) * (d1 - d2)
		}
		k = k1
	}
	return res, true
}

// opticurve joins runs of Bézier segments into as few segments as
// possible, breaking ties by penalty, and stores the result in ocurve.
func (pp *privPath) opticurve(tolerance float64) {
	segm := pp.curve.segm
	m := len(segm)

	var (
		pt    = make([]int, m+1)     // best predecessor
		pen   = make([]float64, m+1) // accumulated penalty
		leng  = make([]int, m+1)     // segments so far
		opt   = make([]opti, m+1)
		convc = make([]int, m)       // convexity per vertex, 0 for corners
		areac = make([]float64, m+1) // prefix areas
	)

	for i := 0; i < m; i++ {
		if segm[i].Kind == Bezier {
			convc[i] = int(signf(dpara(segm[mod(i-1, m)].vertex, segm[i].vertex, segm[mod(i+1, m)].vertex)))
		}
	}

	area := 0.0
	p0 := segm[0].vertex
	for i := 0; i < m; i++ {
		i1 := mod(i+1, m)
		if segm[i1].Kind == Bezier {
			alpha := segm[i1].alpha
			area += 0.3 * alpha * (4 - alpha) * dpara(segm[i].Pnt[2], segm[i1].vertex, segm[i1].Pnt[2]) / 2
			area += dpara(p0, segm[i].Pnt[2], segm[i1].Pnt[2]) / 2
		}
		areac[i+1] = area
	}

	pt[0] = -1
	for j := 1; j <= m; j++ {
		pt[j] = j - 1
		pen[j] = pen[j-1]
		leng[j] = leng[j-1] + 1

		for i := j - 2; i >= 0; i-- {
			o, ok := pp.optiPenalty(i, mod(j, m), tolerance, convc, areac)
			if !ok {
				break
			}
			if leng[j] > leng[i]+1 || (leng[j] == leng[i]+1 && pen[j] > pen[i]+o.pen) {
				pt[j] = i
				pen[j] = pen[i] + o.pen
				leng[j] = leng[i] + 1
				opt[j] = o
			}
		}
	}

	om := leng[m]
	pp.ocurve = newPrivCurve(om)
	s := make([]float64, om)
	t := make([]float64, om)

	j := m
	for i := om - 1; i >= 0; i-- {
		last := segm[mod(j, m)]
		if pt[j] == j-1 {
			pp.ocurve.segm[i] = last
			s[i], t[i] = 1.0, 1.0
		} else {
			pp.ocurve.segm[i] = segment{
				Segment: Segment{
					Kind: Bezier,
					Pnt:  [3]vec.Vec2{opt[j].c[0], opt[j].c[1], last.Pnt[2]},
				},
				vertex: interval(opt[j].s, last.Pnt[2], last.vertex),
				alpha:  opt[j].alpha,
				alpha0: opt[j].alpha,
			}
			s[i], t[i] = opt[j].s, opt[j].t
		}
		j = pt[j]
	}

	for i := 0; i < om; i++ {
		i1 := mod(i+1, om)
		pp.ocurve.segm[i].beta = s[i] / (s[i] + t[i1])
	}
}

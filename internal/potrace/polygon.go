package potrace

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// infty only has to exceed the length of any path.
const infty = 10000000

type sums struct {
	x, y       int
	x2, xy, y2 int
}

// privPath carries one outline through the tracing stages.
type privPath struct {
	pt   []ipoint // outline as walked on the bitmap
	lon  []int    // (i, lon[i]) is the longest straight subpath from i
	orig ipoint   // origin for sums
	sums []sums   // prefix sums, len(pt)+1
	po   []int    // optimal polygon, as indices into pt

	curve  privCurve  // smoothed polygon
	ocurve privCurve  // after curve optimization
	final  *privCurve // curve or ocurve

	children []*Path
}

// process runs every stage after decomposition on one path.
func (pp *privPath) process(sign int, param *Params) error {
	if len(pp.pt) == 0 {
		return errPathLimit
	}
	pp.calcSums()
	pp.calcLon()
	pp.bestPolygon()
	pp.adjustVertices()
	if sign < 0 {
		pp.curve.reverse()
	}
	pp.curve.smooth(param.AlphaMax)
	pp.final = &pp.curve
	if param.OptiCurve {
		pp.opticurve(param.OptTolerance)
		pp.final = &pp.ocurve
	}
	return nil
}

func (pp *privPath) calcSums() {
	pp.sums = make([]sums, len(pp.pt)+1)
	pp.orig = pp.pt[0]
	for i, p := range pp.pt {
		x := p.x - pp.orig.x
		y := p.y - pp.orig.y
		pp.sums[i+1] = sums{
			x:  pp.sums[i].x + x,
			y:  pp.sums[i].y + y,
			x2: pp.sums[i].x2 + x*x,
			xy: pp.sums[i].xy + x*y,
			y2: pp.sums[i].y2 + y*y,
		}
	}
}

// Stage 1: straight subpaths (Sec. 2.2.1).
//
// Straightness is a triplewise property, so it is enough to keep two
// constraint vectors per start point and test them at direction changes
// ("corners" of the pixel outline).
func (pp *privPath) calcLon() {
	pt := pp.pt
	n := len(pt)

	// nc[i] is the furthest point reachable from i by a horizontal or
	// vertical run. Point 0 always starts a new direction.
	nc := make([]int, n)
	k := 0
	for i := n - 1; i >= 0; i-- {
		if pt[i].x != pt[k].x && pt[i].y != pt[k].y {
			k = i + 1
		}
		nc[i] = k
	}

	pivk := make([]int, n)
	for i := n - 1; i >= 0; i-- {
		pivk[i] = pp.pivot(i, nc)
	}

	// lon[i] is the largest k such that i' < k <= pivk[i'] for all i <= i' < k
	pp.lon = make([]int, n)
	j := pivk[n-1]
	pp.lon[n-1] = j
	for i := n - 2; i >= 0; i-- {
		if cyclic(i+1, pivk[i], j) {
			j = pivk[i]
		}
		pp.lon[i] = j
	}
	for i := n - 1; cyclic(mod(i+1, n), j, pp.lon[i]); i-- {
		pp.lon[i] = j
	}
}

// pivot returns the furthest k such that every point strictly between i
// and k lies on a line from i to k.
func (pp *privPath) pivot(i int, nc []int) int {
	pt := pp.pt
	n := len(pt)

	var (
		ct         [4]int // directions seen so far
		constraint [2]ipoint
		cur, off   ipoint
	)
	next := pt[mod(i+1, n)]
	ct[(3+3*(next.x-pt[i].x)+(next.y-pt[i].y))/2]++

	k, k1 := nc[i], i
	for {
		ct[(3+3*sign(pt[k].x-pt[k1].x)+sign(pt[k].y-pt[k1].y))/2]++
		if ct[0] != 0 && ct[1] != 0 && ct[2] != 0 && ct[3] != 0 {
			return k1
		}

		cur = ipoint{pt[k].x - pt[i].x, pt[k].y - pt[i].y}
		if xprod(constraint[0], cur) < 0 || xprod(constraint[1], cur) > 0 {
			break
		}

		if abs(cur.x) > 1 || abs(cur.y) > 1 {
			if cur.y >= 0 && (cur.y > 0 || cur.x < 0) {
				off.x = cur.x + 1
			} else {
				off.x = cur.x - 1
			}
			if cur.x <= 0 && (cur.x < 0 || cur.y < 0) {
				off.y = cur.y + 1
			} else {
				off.y = cur.y - 1
			}
			if xprod(constraint[0], off) >= 0 {
				constraint[0] = off
			}
			if cur.y <= 0 && (cur.y < 0 || cur.x < 0) {
				off.x = cur.x + 1
			} else {
				off.x = cur.x - 1
			}
			if cur.x >= 0 && (cur.x > 0 || cur.y < 0) {
				off.y = cur.y + 1
			} else {
				off.y = cur.y - 1
			}
			if xprod(constraint[1], off) <= 0 {
				constraint[1] = off
			}
		}
		k1 = k
		k = nc[k1]
		if !cyclic(k, i, k1) {
			break
		}
	}

	// k1 is the last corner that satisfied the constraints and k the first
	// that did not; find the last point on k1..k that still does, i.e. the
	// largest j with a+j*b >= 0 and c+j*d <= 0.
	dk := ipoint{sign(pt[k].x - pt[k1].x), sign(pt[k].y - pt[k1].y)}
	cur = ipoint{pt[k1].x - pt[i].x, pt[k1].y - pt[i].y}
	a := xprod(constraint[0], cur)
	b := xprod(constraint[0], dk)
	c := xprod(constraint[1], cur)
	d := xprod(constraint[1], dk)

	j := infty
	if b < 0 {
		j = floordiv(a, -b)
	}
	if d > 0 {
		j = min(j, floordiv(-c, d))
	}
	return mod(k1+j, n)
}

// pointSlope fits a line through points i..j (i < j) and returns its
// center and unit direction.
func (pp *privPath) pointSlope(i, j int) (ctr, dir vec.Vec2) {
	n := len(pp.pt)
	s := pp.sums
	r := 0 // rotations from i to j

	for j >= n {
		j -= n
		r++
	}
	for i >= n {
		i -= n
		r--
	}
	for j < 0 {
		j += n
		r--
	}
	for i < 0 {
		i += n
		r++
	}

	x := float64(s[j+1].x - s[i].x + r*s[n].x)
	y := float64(s[j+1].y - s[i].y + r*s[n].y)
	x2 := float64(s[j+1].x2 - s[i].x2 + r*s[n].x2)
	xy := float64(s[j+1].xy - s[i].xy + r*s[n].xy)
	y2 := float64(s[j+1].y2 - s[i].y2 + r*s[n].y2)
	k := float64(j + 1 - i + r*n)

	ctr = vec.Vec2{X: x / k, Y: y / k}

	a := (x2 - x*x/k) / k
	b := (xy - x*y/k) / k
	c := (y2 - y*y/k) / k

	lambda2 := (a + c + math.Sqrt((a-c)*(a-c)+4*b*b)) / 2 // larger eigenvalue

	// eigenvector for lambda2
	a -= lambda2
	c -= lambda2

	if math.Abs(a) >= math.Abs(c) {
		if l := math.Hypot(a, b); l != 0 {
			dir = vec.Vec2{X: -b / l, Y: a / l}
		}
	} else {
		if l := math.Hypot(c, b); l != 0 {
			dir = vec.Vec2{X: -c / l, Y: b / l}
		}
	}
	// dir stays zero when both eigenvalues coincide, which happens for k=4
	return ctr, dir
}

// Stage 2: optimal polygon (Sec. 2.2.2-2.2.4).

// penalty3 is the penalty of an edge from i to j.
func (pp *privPath) penalty3(i, j int) float64 {
	s, pt := pp.sums, pp.pt
	n := len(pt)

	r := 0
	if j >= n {
		j -= n
		r = 1
	}

	x := float64(s[j+1].x - s[i].x + r*s[n].x)
	y := float64(s[j+1].y - s[i].y + r*s[n].y)
	x2 := float64(s[j+1].x2 - s[i].x2 + r*s[n].x2)
	xy := float64(s[j+1].xy - s[i].xy + r*s[n].xy)
	y2 := float64(s[j+1].y2 - s[i].y2 + r*s[n].y2)
	k := float64(j + 1 - i + r*n)

	px := float64(pt[i].x+pt[j].x)/2.0 - float64(pt[0].x)
	py := float64(pt[i].y+pt[j].y)/2.0 - float64(pt[0].y)
	ey := float64(pt[j].x - pt[i].x)
	ex := -float64(pt[j].y - pt[i].y)

	a := (x2-2*x*px)/k + px*px
	b := (xy-x*py-y*px)/k + px*py
	c := (y2-2*y*py)/k + py*py

	return math.Sqrt(ex*ex*a + 2*ex*ey*b + ey*ey*c)
}

// bestPolygon fills in po. It assumes point 0 is a polygon vertex.
func (pp *privPath) bestPolygon() {
	n := len(pp.pt)
	var (
		pen   = make([]float64, n+1) // penalty vector
		prev  = make([]int, n+1)     // best path pointer vector
		clip0 = make([]int, n)       // longest segment pointer, non-cyclic
		clip1 = make([]int, n+1)     // backwards segment pointer, non-cyclic
		seg0  = make([]int, n+1)     // forward segment bounds, m<=n
		seg1  = make([]int, n+1)     // backward segment bounds, m<=n
	)

	for i := 0; i < n; i++ {
		c := mod(pp.lon[mod(i-1, n)]-1, n)
		if c == i {
			c = mod(i+1, n)
		}
		if c < i {
			clip0[i] = n
		} else {
			clip0[i] = c
		}
	}

	// j <= clip0[i] iff clip1[j] <= i
	j := 1
	for i := 0; i < n; i++ {
		for j <= clip0[i] {
			clip1[j] = i
			j++
		}
	}

	// seg0[j] is the furthest point reachable from 0 with j segments
	i := 0
	for j = 0; i < n; j++ {
		seg0[j] = i
		i = clip0[i]
	}
	seg0[j] = n
	m := j

	// seg1[j] is the furthest point back from n with m-j segments
	i = n
	for j = m; j > 0; j-- {
		seg1[j] = i
		i = clip1[i]
	}
	seg1[0] = 0

	// shortest path with m segments; close to linear in practice
	pen[0] = 0
	for j = 1; j <= m; j++ {
		for i = seg1[j]; i <= seg0[j]; i++ {
			best := -1.0
			for k := seg0[j-1]; k >= clip1[i]; k-- {
				p := pp.penalty3(k, i) + pen[k]
				if best < 0 || p < best {
					prev[i] = k
					best = p
				}
			}
			pen[i] = best
		}
	}

	pp.po = make([]int, m)
	for i, j = n, m-1; i > 0; j-- {
		i = prev[i]
		pp.po[j] = i
	}
}

// Stage 3: vertex adjustment (Sec. 2.3.1).

// adjustVertices places every polygon vertex at the point of its unit
// square that is closest to both adjacent fitted lines.
func (pp *privPath) adjustVertices() {
	po := pp.po
	m := len(po)
	pt := pp.pt
	n := len(pt)
	x0, y0 := float64(pp.orig.x), float64(pp.orig.y)

	ctr := make([]vec.Vec2, m)
	dir := make([]vec.Vec2, m)
	q := make([]quadForm, m)

	pp.curve = newPrivCurve(m)

	for i := 0; i < m; i++ {
		j := po[mod(i+1, m)]
		j = mod(j-po[i], n) + po[i]
		ctr[i], dir[i] = pp.pointSlope(po[i], j)
	}

	// the squared distance from line i is (x,y,1) q[i] (x,y,1)ᵀ
	for i := 0; i < m; i++ {
		d := dir[i].X*dir[i].X + dir[i].Y*dir[i].Y
		if d == 0 {
			continue
		}
		v := [3]float64{dir[i].Y, -dir[i].X, 0}
		v[2] = -v[1]*ctr[i].Y - v[0]*ctr[i].X
		for l := 0; l < 3; l++ {
			for k := 0; k < 3; k++ {
				q[i][l][k] = v[l] * v[k] / d
			}
		}
	}

	for i := 0; i < m; i++ {
		// vertex relative to the sums origin
		s := vec.Vec2{X: float64(pt[po[i]].x) - x0, Y: float64(pt[po[i]].y) - y0}

		var Q quadForm
		j := mod(i-1, m)
		for l := 0; l < 3; l++ {
			for k := 0; k < 3; k++ {
				Q[l][k] = q[j][l][k] + q[i][l][k]
			}
		}

		var w vec.Vec2
		for {
			det := Q[0][0]*Q[1][1] - Q[0][1]*Q[1][0]
			if det != 0 {
				w.X = (-Q[0][2]*Q[1][1] + Q[1][2]*Q[0][1]) / det
				w.Y = (Q[0][2]*Q[1][0] - Q[1][2]*Q[0][0]) / det
				break
			}

			// parallel lines: add an orthogonal axis through the vertex
			var v [3]float64
			switch {
			case Q[0][0] > Q[1][1]:
				v[0], v[1] = -Q[0][1], Q[0][0]
			case Q[1][1] != 0:
				v[0], v[1] = -Q[1][1], Q[1][0]
			default:
				v[0], v[1] = 1, 0
			}
			d := v[0]*v[0] + v[1]*v[1]
			v[2] = -v[1]*s.Y - v[0]*s.X
			for l := 0; l < 3; l++ {
				for k := 0; k < 3; k++ {
					Q[l][k] += v[l] * v[k] / d
				}
			}
		}

		if math.Abs(w.X-s.X) <= .5 && math.Abs(w.Y-s.Y) <= .5 {
			pp.curve.segm[i].vertex = vec.Vec2{X: w.X + x0, Y: w.Y + y0}
			continue
		}

		// the minimum is outside the unit square: search its boundary
		best := Q.at(s)
		bestPt := s

		if Q[0][0] != 0 {
			for z := 0; z < 2; z++ { // y on the top and bottom edges
				w.Y = s.Y - 0.5 + float64(z)
				w.X = -(Q[0][1]*w.Y + Q[0][2]) / Q[0][0]
				if cand := Q.at(w); math.Abs(w.X-s.X) <= .5 && cand < best {
					best, bestPt = cand, w
				}
			}
		}
		if Q[1][1] != 0 {
			for z := 0; z < 2; z++ { // x on the left and right edges
				w.X = s.X - 0.5 + float64(z)
				w.Y = -(Q[1][0]*w.X + Q[1][2]) / Q[1][1]
				if cand := Q.at(w); math.Abs(w.Y-s.Y) <= .5 && cand < best {
					best, bestPt = cand, w
				}
			}
		}
		for l := 0; l < 2; l++ {
			for k := 0; k < 2; k++ {
				w = vec.Vec2{X: s.X - 0.5 + float64(l), Y: s.Y - 0.5 + float64(k)}
				if cand := Q.at(w); cand < best {
					best, bestPt = cand, w
				}
			}
		}

		pp.curve.segm[i].vertex = vec.Vec2{X: bestPt.X + x0, Y: bestPt.Y + y0}
	}
}

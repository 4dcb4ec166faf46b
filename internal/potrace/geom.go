package potrace

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// ipoint is a pixel corner.
type ipoint struct {
	x, y int
}

func signf(v float64) float64 {
	switch {
	case v > 0:
		return +1
	case v < 0:
		return -1
	}
	return 0
}

func sign(v int) int {
	switch {
	case v > 0:
		return +1
	case v < 0:
		return -1
	}
	return 0
}

func abs(v int) int {
	if v >= 0 {
		return v
	}
	return -v
}

// mod is the non-negative remainder of a modulo n.
func mod(a, n int) int {
	if a >= n {
		return a % n
	} else if a >= 0 {
		return a
	}
	return n - 1 - (-1-a)%n
}

// floordiv rounds a/n towards negative infinity.
func floordiv(a, n int) int {
	if a >= 0 {
		return a / n
	}
	return -1 - (-1-a)/n
}

// cyclic reports whether a <= b < c in a cyclic sense.
func cyclic(a, b, c int) bool {
	if a <= c {
		return a <= b && b < c
	}
	return a <= b || b < c
}

// interval is the point a + lambda*(b-a).
func interval(lambda float64, a, b vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: a.X + lambda*(b.X-a.X),
		Y: a.Y + lambda*(b.Y-a.Y),
	}
}

// dorthInfty is the direction 90 degrees counterclockwise from p2-p0,
// snapped to one of the eight compass directions.
func dorthInfty(p0, p2 vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: signf(p2.X - p0.X), Y: -signf(p2.Y - p0.Y)}
}

// dpara is (p1-p0)x(p2-p0), the signed area of the parallelogram.
func dpara(p0, p1, p2 vec.Vec2) float64 {
	x1 := p1.X - p0.X
	y1 := p1.Y - p0.Y
	x2 := p2.X - p0.X
	y2 := p2.Y - p0.Y
	return x1*y2 - x2*y1
}

// ddenom is chosen so that the unit square centered at p1 meets the line
// p0p2 iff |dpara(p0,p1,p2)| <= ddenom(p0,p2).
func ddenom(p0, p2 vec.Vec2) float64 {
	r := dorthInfty(p0, p2)
	return r.Y*(p2.X-p0.X) - r.X*(p2.Y-p0.Y)
}

// xprod is p1 x p2.
func xprod(p1, p2 ipoint) int {
	return p1.x*p2.y - p1.y*p2.x
}

// cprod is (p1-p0)x(p3-p2).
func cprod(p0, p1, p2, p3 vec.Vec2) float64 {
	x1 := p1.X - p0.X
	y1 := p1.Y - p0.Y
	x2 := p3.X - p2.X
	y2 := p3.Y - p2.Y
	return x1*y2 - x2*y1
}

// iprod is (p1-p0)·(p2-p0).
func iprod(p0, p1, p2 vec.Vec2) float64 {
	return iprod1(p0, p1, p0, p2)
}

// iprod1 is (p1-p0)·(p3-p2).
func iprod1(p0, p1, p2, p3 vec.Vec2) float64 {
	x1 := p1.X - p0.X
	y1 := p1.Y - p0.Y
	x2 := p3.X - p2.X
	y2 := p3.Y - p2.Y
	return x1*x2 + y1*y2
}

func ddist(p, q vec.Vec2) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// bezier evaluates the cubic (p0,p1,p2,p3) at t.
func bezier(t float64, p0, p1, p2, p3 vec.Vec2) vec.Vec2 {
	s := 1 - t
	return vec.Vec2{
		X: s*s*s*p0.X + 3*(s*s*t)*p1.X + 3*(t*t*s)*p2.X + t*t*t*p3.X,
		Y: s*s*s*p0.Y + 3*(s*s*t)*p1.Y + 3*(t*t*s)*p2.Y + t*t*t*p3.Y,
	}
}

// tangent finds t in [0,1] where the convex cubic (p0,p1,p2,p3) is
// parallel to q1-q0. It returns -1 if there is none.
func tangent(p0, p1, p2, p3, q0, q1 vec.Vec2) float64 {
	A := cprod(p0, p1, q0, q1)
	B := cprod(p1, p2, q0, q1)
	C := cprod(p2, p3, q0, q1)

	a := A - 2*B + C
	b := -2*A + 2*B
	c := A

	d := b*b - 4*a*c
	if a == 0 || d < 0 {
		return -1
	}
	s := math.Sqrt(d)

	r1 := (-b + s) / (2 * a)
	r2 := (-b - s) / (2 * a)
	switch {
	case r1 >= 0 && r1 <= 1:
		return r1
	case r2 >= 0 && r2 <= 1:
		return r2
	}
	return -1
}

// quadForm is an affine quadratic form as a symmetric 3x3 matrix; its value
// at (x,y) is vᵀQv with v = (x,y,1).
type quadForm [3][3]float64

func (q *quadForm) at(w vec.Vec2) (sum float64) {
	v := [3]float64{w.X, w.Y, 1}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sum += v[i] * q[i][j] * v[j]
		}
	}
	return sum
}

package potrace

import (
	"errors"
	"fmt"
)

// pathLimit bounds the length of a single outline walk.
const pathLimit = 1 << 24

var (
	errEndlessLoop = errors.New("potrace: endless loop in path decomposition")
	errPathLimit   = errors.New("potrace: path length limit reached")
)

// non-linear sequence: constant term of inverse in GF(8), mod x^8+x^4+x^3+x+1
var detrandTable = [256]byte{
	0, 1, 1, 0, 1, 0, 1, 1, 0, 1, 1, 0, 0, 1, 1, 1, 0, 0, 0, 1, 1, 1, 0, 1,
	0, 1, 1, 0, 1, 0, 0, 0, 0, 0, 0, 1, 1, 1, 0, 1, 1, 0, 0, 1, 0, 0, 0, 0,
	0, 1, 0, 0, 1, 1, 0, 0, 0, 1, 0, 1, 1, 1, 1, 1, 1, 0, 1, 1, 1, 1, 1, 1,
	1, 0, 1, 1, 0, 1, 1, 1, 1, 0, 1, 0, 0, 0, 1, 1, 0, 0, 0, 0, 1, 0, 1, 1,
	0, 0, 1, 1, 1, 0, 0, 1, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 1, 0, 0,
	0, 0, 0, 0, 1, 0, 1, 0, 1, 0, 1, 0, 0, 1, 0, 0, 1, 0, 1, 1, 1, 0, 1, 0,
	0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 1, 0, 1, 0, 1, 0, 1, 0, 0, 1, 1, 0, 1, 0,
	0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 1, 1, 1, 0, 1, 1, 0, 0, 1, 1, 0, 0, 1,
	1, 0, 1, 1, 0, 0, 0, 1, 1, 1, 1, 0, 1, 0, 0, 0, 0, 1, 0, 1, 1, 1, 0, 0,
	0, 1, 0, 1, 1, 0, 0, 1, 1, 1, 0, 1, 0, 0, 1, 1, 0, 0, 1, 1, 1, 0, 0, 1,
	1, 1, 0, 0, 0, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0,
}

// detrand hashes (x,y) into a pseudo-random but deterministic bit.
func detrand(x, y int) bool {
	t := detrandTable[:]
	z := ((0x04b3e375 * x) ^ y) * 0x05a8ef93
	z = int(t[z&0xff]) ^ int(t[(z>>8)&0xff]) ^ int(t[(z>>16)&0xff]) ^ int(t[(z>>24)&0xff])
	return z != 0
}

// majority returns the dominant color around the intersection (x,y),
// looking at growing square rings until one color wins.
func (bm *Bitmap) majority(x, y int) bool {
	for i := 2; i < 5; i++ {
		ct := 0
		for a := -i + 1; a <= i-1; a++ {
			for _, v := range [4]bool{
				bm.Get(x+a, y+i-1),
				bm.Get(x+i-1, y+a-1),
				bm.Get(x+a-1, y-i),
				bm.Get(x-i, y+a),
			} {
				if v {
					ct++
				} else {
					ct--
				}
			}
		}
		if ct > 0 {
			return true
		} else if ct < 0 {
			return false
		}
	}
	return false
}

// xorToRef inverts bits [x,∞) and [xa,∞) of row y. xa must be a multiple
// of wordBits.
func (bm *Bitmap) xorToRef(x, y, xa int) {
	xhi := x & -int(wordBits)
	xlo := x & int(wordBits-1)

	lo, hi := xa, xhi
	if xhi < xa {
		lo, hi = xhi, xa
	}
	for i := lo; i < hi; i += int(wordBits) {
		*bm.index(i, y) ^= allBits
	}
	// shifting by wordBits is not a no-op on every platform
	if xlo != 0 {
		*bm.index(xhi, y) ^= allBits << (wordBits - word(xlo))
	}
}

// xorPath inverts the interior of the path. Path points sit on pixel
// corners; the path must fit in the bitmap.
func (bm *Bitmap) xorPath(pp *privPath) {
	if len(pp.pt) == 0 {
		return
	}
	y1 := pp.pt[len(pp.pt)-1].y
	xa := pp.pt[0].x & -int(wordBits)
	for _, p := range pp.pt {
		if p.y != y1 {
			bm.xorToRef(p.x, min(p.y, y1), xa)
			y1 = p.y
		}
	}
}

// findPath walks the boundary separating foreground from background,
// starting at the upper left corner (x0,y0) of a component. sign tells
// whether the component is foreground (+1) or a hole (-1), which matters
// for the turn policies.
func (bm *Bitmap) findPath(x0, y0 int, sign int, policy TurnPolicy) (*Path, error) {
	var (
		x, y       = x0, y0
		dirx, diry = 0, -1
		area       int
		pt         []ipoint
	)
	for i := 0; ; i++ {
		if i >= pathLimit {
			return nil, errPathLimit
		}
		pt = append(pt, ipoint{x, y})

		x += dirx
		y += diry
		area += x * diry

		if x == x0 && y == y0 {
			break
		}

		c := bm.Get(x+(dirx+diry-1)/2, y+(diry-dirx-1)/2)
		d := bm.Get(x+(dirx-diry-1)/2, y+(diry+dirx-1)/2)

		switch {
		case c && !d: // ambiguous
			if policy == TurnRight ||
				(policy == TurnBlack && sign == +1) ||
				(policy == TurnWhite && sign == -1) ||
				(policy == TurnRandom && detrand(x, y)) ||
				(policy == TurnMajority && bm.majority(x, y)) ||
				(policy == TurnMinority && !bm.majority(x, y)) {
				dirx, diry = diry, -dirx
			} else {
				dirx, diry = -diry, dirx
			}
		case c:
			dirx, diry = diry, -dirx
		case !d:
			dirx, diry = -diry, dirx
		}
	}
	return &Path{
		Area: area,
		Sign: sign,
		priv: &privPath{pt: pt},
	}, nil
}

// findNext finds the next set pixel at or before (x,y) in scan order:
// rows from y downwards, left to right within a row. It relies on
// clearExcess having been called.
func (bm *Bitmap) findNext(x, y int) (int, int, bool) {
	x0 := x & ^int(wordBits-1)
	for ; y >= 0; y-- {
		for x := x0; x < bm.W; x += int(wordBits) {
			if *bm.index(x, y) != 0 {
				for !bm.Get(x, y) {
					x++
				}
				return x, y, true
			}
		}
		x0 = 0
	}
	return 0, 0, false
}

// toPathList decomposes the bitmap into traced paths and arranges them
// into a tree by insideness.
func (bm *Bitmap) toPathList(param *Params) ([]Path, error) {
	work := bm.Clone()
	work.clearExcess()

	var (
		list  []*Path
		visit = make(map[ipoint]int)
	)
	x, y, ok := work.findNext(0, work.H-1)
	for ; ok; x, y, ok = work.findNext(x, y) {
		sign := -1
		if bm.Get(x, y) {
			sign = +1
		}
		at := ipoint{x, y}
		if visit[at] > 5 {
			return nil, errEndlessLoop
		}
		visit[at]++

		p, err := work.findPath(x, y+1, sign, param.TurnPolicy)
		if err != nil {
			return nil, err
		}
		work.xorPath(p.priv)
		if p.Area <= param.TurdSize {
			continue
		}
		if err := p.priv.process(p.Sign, param); err != nil {
			return nil, fmt.Errorf("potrace: path at (%d,%d): %w", x, y, err)
		}
		p.Curve = p.priv.final.segments()
		list = append(list, p)
	}

	work.Clear(false)
	roots := work.tree(list)
	return detach(roots), nil
}

type bbox struct {
	x0, x1, y0, y1 int
}

func (pp *privPath) bbox() bbox {
	b := bbox{x0: pp.pt[0].x, y0: pp.pt[0].y}
	for _, p := range pp.pt {
		b.x0 = min(b.x0, p.x)
		b.x1 = max(b.x1, p.x)
		b.y0 = min(b.y0, p.y)
		b.y1 = max(b.y1, p.y)
	}
	return b
}

// clearBBox zeroes the words covering b.
func (bm *Bitmap) clearBBox(b bbox) {
	imin := b.x0 / int(wordBits)
	imax := (b.x1 + int(wordBits) - 1) / int(wordBits)
	for y := b.y0; y < b.y1; y++ {
		row := bm.row(y)
		for i := imin; i < imax; i++ {
			row[i] = 0
		}
	}
}

// tree nests paths by insideness. The list must be ordered outer before
// inner, with point 0 of every path on an upper left corner, as produced by
// the decomposition. bm is scratch space and must start empty.
func (bm *Bitmap) tree(list []*Path) []*Path {
	var roots []*Path
	for len(list) > 0 {
		head, rest := list[0], list[1:]

		bm.xorPath(head.priv)
		b := head.priv.bbox()

		var inside, outside []*Path
		for i, p := range rest {
			start := p.priv.pt[0]
			if start.y <= b.y0 {
				// everything from here on lies above head
				outside = append(outside, rest[i:]...)
				break
			}
			if bm.Get(start.x, start.y-1) {
				inside = append(inside, p)
			} else {
				outside = append(outside, p)
			}
		}
		bm.clearBBox(b)

		head.priv.children = bm.tree(inside)
		roots = append(roots, head)
		list = outside
	}
	return roots
}

// detach copies the tree into exported values and drops the intermediate
// tracing state.
func detach(nodes []*Path) []Path {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]Path, len(nodes))
	for i, n := range nodes {
		out[i] = Path{
			Area:     n.Area,
			Sign:     n.Sign,
			Curve:    n.Curve,
			Children: detach(n.priv.children),
		}
	}
	return out
}

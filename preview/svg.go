package preview

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"seehuhn.de/go/geom/path"

	"github.com/dennwc/desmostrace"
)

// SvgPath converts a path to an SVG path string.
func SvgPath(p *path.Data) string {
	var b strings.Builder
	i := 0
	for _, cmd := range p.Cmds {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		switch cmd {
		case path.CmdMoveTo:
			pt := p.Coords[i]
			fmt.Fprintf(&b, "M%s,%s", num(pt.X), num(pt.Y))
			i++
		case path.CmdLineTo:
			pt := p.Coords[i]
			fmt.Fprintf(&b, "L%s,%s", num(pt.X), num(pt.Y))
			i++
		case path.CmdQuadTo:
			c, pt := p.Coords[i], p.Coords[i+1]
			fmt.Fprintf(&b, "Q%s,%s %s,%s", num(c.X), num(c.Y), num(pt.X), num(pt.Y))
			i += 2
		case path.CmdCubeTo:
			c1, c2, pt := p.Coords[i], p.Coords[i+1], p.Coords[i+2]
			fmt.Fprintf(&b, "C%s,%s %s,%s %s,%s",
				num(c1.X), num(c1.Y), num(c2.X), num(c2.Y), num(pt.X), num(pt.Y))
			i += 3
		case path.CmdClose:
			b.WriteByte('Z')
		}
	}
	return b.String()
}

func num(v float64) string {
	return desmostrace.FormatNumber(v)
}

// WriteSvg writes the curves of res as an SVG image with the dimensions of
// the source. The view box is centered on the origin and flipped, so the
// normalized coordinates are used as is.
func WriteSvg(w io.Writer, res *desmostrace.Result, color string) error {
	if color == "" {
		color = "#000000"
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<?xml version="1.0" standalone="no"?>
<svg version="1.1" xmlns="http://www.w3.org/2000/svg" width="%dpt" height="%dpt" viewBox="%s %s %d %d" preserveAspectRatio="xMidYMid meet">
<g transform="scale(1,-1)" fill="none" stroke="%s" stroke-width="1">%s`,
		res.Width, res.Height, num(-float64(res.Width)/2), num(-float64(res.Height)/2),
		res.Width, res.Height, color, "\n")
	if len(res.Curves) > 0 {
		fmt.Fprintf(bw, "<path d=\"%s\"/>\n", SvgPath(desmostrace.PathData(res.Curves)))
	}
	fmt.Fprintln(bw, `</g></svg>`)
	return bw.Flush()
}

// Package preview draws converted curves so they can be compared with the
// source image.
package preview

import (
	"errors"
	"image"
	"io"

	"github.com/gogpu/gg"

	"github.com/dennwc/desmostrace"
)

// ErrNothingRendered is returned when the renderer holds no image.
var ErrNothingRendered = errors.New("preview: nothing rendered")

// Style controls how polylines are drawn.
type Style struct {
	Background gg.RGBA
	Stroke     gg.RGBA
	LineWidth  float64
}

// DefaultStyle draws black hairlines on white.
var DefaultStyle = Style{
	Background: gg.White,
	Stroke:     gg.Black,
	LineWidth:  1,
}

// Renderer owns the drawing surface of the last preview. Every Render
// releases the previous surface before acquiring a new one, so repeated
// previews do not accumulate contexts. The zero value is ready to use.
type Renderer struct {
	Style *Style // nil means DefaultStyle

	dc  *gg.Context
	img image.Image
}

// NewRenderer returns a renderer with the given style.
func NewRenderer(s Style) *Renderer {
	return &Renderer{Style: &s}
}

func (r *Renderer) style() Style {
	if r.Style == nil {
		return DefaultStyle
	}
	return *r.Style
}

// Render draws the preview of res on a surface of the original image size.
func (r *Renderer) Render(res *desmostrace.Result) error {
	return r.RenderLines(res.Preview, res.Width, res.Height)
}

// RenderLines draws normalized polylines on a w×h surface. The origin is
// placed at the surface center and y points up, which puts the lines over
// the pixels they were traced from.
func (r *Renderer) RenderLines(lines []desmostrace.Polyline, w, h int) (gerr error) {
	if err := r.release(); err != nil {
		return err
	}
	if w <= 0 || h <= 0 {
		return ErrNothingRendered
	}
	dc := gg.NewContext(w, h)
	defer func() {
		if gerr != nil {
			_ = dc.Close()
		}
	}()

	st := r.style()
	dc.ClearWithColor(st.Background)
	dc.SetColor(st.Stroke.Color())
	dc.SetLineWidth(st.LineWidth)

	cx, cy := float64(w)/2, float64(h)/2
	for _, l := range lines {
		if len(l) < 2 {
			continue
		}
		dc.MoveTo(cx+l[0].X, cy-l[0].Y)
		for _, p := range l[1:] {
			dc.LineTo(cx+p.X, cy-p.Y)
		}
	}
	if err := dc.Stroke(); err != nil {
		return err
	}
	r.dc = dc
	r.img = dc.Image()
	desmostrace.Logger().Debug("preview rendered", "width", w, "height", h, "lines", len(lines))
	return nil
}

// Image returns the last rendered preview, or nil.
func (r *Renderer) Image() image.Image {
	return r.img
}

// EncodePNG writes the last preview as PNG.
func (r *Renderer) EncodePNG(w io.Writer) error {
	if r.dc == nil {
		return ErrNothingRendered
	}
	return r.dc.EncodePNG(w)
}

// Close releases the current surface. It is safe to call more than once.
func (r *Renderer) Close() error {
	return r.release()
}

func (r *Renderer) release() error {
	if r.dc == nil {
		return nil
	}
	err := r.dc.Close()
	if err != nil {
		desmostrace.Logger().Warn("preview: release surface", "err", err)
	}
	r.dc, r.img = nil, nil
	return err
}

package preview

import (
	"bytes"
	"errors"
	"image/png"
	"strings"
	"testing"

	"github.com/dennwc/desmostrace"
)

func hline() []desmostrace.Polyline {
	c := desmostrace.Curve{{X: -10, Y: 0}, {X: -5, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0}}
	return []desmostrace.Polyline{desmostrace.Sample(c, desmostrace.PreviewSamples)}
}

func TestRenderLines(t *testing.T) {
	r := NewRenderer(Style{Background: DefaultStyle.Background, Stroke: DefaultStyle.Stroke, LineWidth: 2})
	defer r.Close()

	if err := r.RenderLines(hline(), 40, 40); err != nil {
		t.Fatal(err)
	}
	img := r.Image()
	if img == nil {
		t.Fatal("no image")
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 40 {
		t.Fatal("wrong size:", b)
	}
	if v, _, _, _ := img.At(20, 20).RGBA(); v > 0x8000 {
		t.Errorf("line pixel is not dark: %#x", v)
	}
	if v, _, _, _ := img.At(5, 5).RGBA(); v < 0xf000 {
		t.Errorf("background pixel is not white: %#x", v)
	}

	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); err != nil {
		t.Fatal(err)
	}
	dec, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if dec.Bounds().Dx() != 40 {
		t.Fatal("wrong encoded size:", dec.Bounds())
	}
}

func TestRenderReplaces(t *testing.T) {
	var r Renderer
	if err := r.RenderLines(hline(), 40, 40); err != nil {
		t.Fatal(err)
	}
	first := r.dc
	if err := r.RenderLines(nil, 20, 10); err != nil {
		t.Fatal(err)
	}
	if r.dc == first {
		t.Fatal("surface was reused")
	}
	if b := r.Image().Bounds(); b.Dx() != 20 || b.Dy() != 10 {
		t.Fatal("wrong size:", b)
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Fatal("second close:", err)
	}
	if r.Image() != nil {
		t.Fatal("image kept after close")
	}
	if err := r.EncodePNG(&bytes.Buffer{}); !errors.Is(err, ErrNothingRendered) {
		t.Fatal("expected ErrNothingRendered, got", err)
	}
}

func TestRenderEmpty(t *testing.T) {
	var r Renderer
	if err := r.RenderLines(hline(), 40, 40); err != nil {
		t.Fatal(err)
	}
	if err := r.RenderLines(hline(), 0, 10); !errors.Is(err, ErrNothingRendered) {
		t.Fatal("expected ErrNothingRendered, got", err)
	}
	if r.dc != nil || r.Image() != nil {
		t.Fatal("previous surface not released")
	}
}

func TestRenderResult(t *testing.T) {
	res := &desmostrace.Result{Width: 30, Height: 20, Preview: hline()}
	var r Renderer
	defer r.Close()
	if err := r.Render(res); err != nil {
		t.Fatal(err)
	}
	if b := r.Image().Bounds(); b.Dx() != 30 || b.Dy() != 20 {
		t.Fatal("wrong size:", b)
	}
}

func TestSvgPath(t *testing.T) {
	curves := []desmostrace.Curve{
		{{X: 0, Y: 0}, {X: 1, Y: 2}, {X: 3, Y: 2}, {X: 4, Y: -0.5}},
		{{X: 4, Y: -0.5}, {X: 4, Y: -0.5}, {X: 5, Y: 1}, {X: 6, Y: 0}},
	}
	got := SvgPath(desmostrace.PathData(curves))
	want := "M0,0 C1,2 3,2 4,-0.5 M4,-0.5 C4,-0.5 5,1 6,0"
	if got != want {
		t.Fatalf("got  %q\nwant %q", got, want)
	}
}

func TestWriteSvg(t *testing.T) {
	res := &desmostrace.Result{
		Width: 40, Height: 30,
		Curves: []desmostrace.Curve{{{X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 0}}},
	}
	var buf bytes.Buffer
	if err := WriteSvg(&buf, res, ""); err != nil {
		t.Fatal(err)
	}
	s := buf.String()
	for _, sub := range []string{
		`viewBox="-20 -15 40 30"`,
		`stroke="#000000"`,
		`<path d="M-1,0 C0,1 0,1 1,0"/>`,
		`</g></svg>`,
	} {
		if !strings.Contains(s, sub) {
			t.Errorf("missing %q in:\n%s", sub, s)
		}
	}

	buf.Reset()
	if err := WriteSvg(&buf, &desmostrace.Result{Width: 2, Height: 2}, "red"); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "<path") {
		t.Fatal("empty result wrote a path")
	}
}

package desmostrace

import (
	"image"
	"io"
	"os"

	_ "image/gif"  // register GIF
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG

	_ "golang.org/x/image/bmp"  // register BMP
	_ "golang.org/x/image/tiff" // register TIFF
	_ "golang.org/x/image/webp" // register WebP

	"golang.org/x/image/draw"
)

// Mask is a two-color image: true pixels are foreground.
type Mask struct {
	W, H int
	pix  []bool
}

// NewMask creates a w×h mask with every pixel set to background.
func NewMask(w, h int) *Mask {
	return &Mask{W: w, H: h, pix: make([]bool, w*h)}
}

// Get reports whether (x,y) is foreground. Pixels outside the mask are
// background.
func (m *Mask) Get(x, y int) bool {
	if x < 0 || x >= m.W || y < 0 || y >= m.H {
		return false
	}
	return m.pix[y*m.W+x]
}

// Set marks (x,y) as foreground or background.
func (m *Mask) Set(x, y int, v bool) {
	if x < 0 || x >= m.W || y < 0 || y >= m.H {
		return
	}
	m.pix[y*m.W+x] = v
}

// Count returns the number of foreground pixels.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.pix {
		if v {
			n++
		}
	}
	return n
}

// ThresholdMask marks every pixel darker than threshold as foreground.
func ThresholdMask(img *image.Gray, threshold int) *Mask {
	b := img.Bounds()
	m := NewMask(b.Dx(), b.Dy())
	for y := 0; y < m.H; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+m.W]
		for x, v := range row {
			m.pix[y*m.W+x] = int(v) < threshold
		}
	}
	return m
}

// ToGray converts img to 8-bit luma, composited over white so that
// transparent areas count as background. The result has its origin at (0,0).
func ToGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok && g.Bounds().Min == (image.Point{}) {
		return g
	}
	b := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}

// DecodeGray decodes an image in any registered format and converts it to
// grayscale.
func DecodeGray(r io.Reader) (*image.Gray, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, &ImageLoadError{Err: err}
	}
	return ToGray(img), nil
}

// LoadGray reads and decodes the image file at path. Errors are
// *ImageLoadError.
func LoadGray(path string) (*image.Gray, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ImageLoadError{Path: path, Err: err}
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &ImageLoadError{Path: path, Err: err}
	}
	return ToGray(img), nil
}

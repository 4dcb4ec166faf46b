package potrace

import (
	"unsafe"
)

var (
	wordSize = word(unsafe.Sizeof(word(0)))
	wordBits = wordSize * 8
	hiBit    = word(1) << (wordBits - 1)
	allBits  = ^word(0)
)

// word packs multiple bits of a bitmap.
type word uint

// NewBitmap creates a new bitmap with given dimensions. All pixels are
// background.
func NewBitmap(w, h int) *Bitmap {
	dy := 0
	if w != 0 {
		dy = (w-1)/int(wordBits) + 1
	}
	return &Bitmap{
		W: w, H: h,
		dy:  dy,
		raw: make([]word, dy*h),
	}
}

// Bitmap is a packed two-color image. Row y starts at raw[y*dy], and the
// leftmost pixel of a row is the most significant bit of its first word.
type Bitmap struct {
	W, H int // width and height, in pixels

	dy  int    // words per row
	raw []word // dy*H words
}

func (bm *Bitmap) row(y int) []word   { return bm.raw[y*bm.dy : (y+1)*bm.dy] }
func (bm *Bitmap) index(x, y int) *word { return &bm.raw[word(y*bm.dy)+word(x)/wordBits] }
func (bm *Bitmap) mask(x int) word      { return hiBit >> (word(x) & (wordBits - 1)) }

// Get reports whether the pixel at (x, y) is foreground. Pixels outside
// the bitmap are background.
func (bm *Bitmap) Get(x, y int) bool {
	if x >= 0 && x < bm.W && y >= 0 && y < bm.H {
		return (*bm.index(x, y) & bm.mask(x)) != 0
	}
	return false
}

// Set a bitmap value at given coordinates. Out of range writes are ignored.
func (bm *Bitmap) Set(x, y int, v bool) {
	if x >= 0 && x < bm.W && y >= 0 && y < bm.H {
		if v {
			*bm.index(x, y) |= bm.mask(x)
		} else {
			*bm.index(x, y) &^= bm.mask(x)
		}
	}
}

// Count returns the number of foreground pixels.
func (bm *Bitmap) Count() int {
	n := 0
	for y := 0; y < bm.H; y++ {
		for x := 0; x < bm.W; x++ {
			if bm.Get(x, y) {
				n++
			}
		}
	}
	return n
}

// Clear sets every pixel to c.
func (bm *Bitmap) Clear(c bool) {
	var v word
	if c {
		v = allBits
	}
	for i := range bm.raw {
		bm.raw[i] = v
	}
	if c {
		bm.clearExcess()
	}
}

// Clone duplicates the given bitmap.
func (bm *Bitmap) Clone() *Bitmap {
	b2 := NewBitmap(bm.W, bm.H)
	copy(b2.raw, bm.raw)
	return b2
}

// clearExcess zeroes the padding bits right of the last column; the word
// scan in findNext relies on them being unset.
func (bm *Bitmap) clearExcess() {
	if word(bm.W)%wordBits != 0 {
		mask := allBits << (wordBits - (word(bm.W) % wordBits))
		for y := 0; y < bm.H; y++ {
			*bm.index(bm.W, y) &= mask
		}
	}
}

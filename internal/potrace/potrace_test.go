package potrace

import (
	"math"
	"math/rand"
	"testing"
)

// genTriangle is a 12x12 staircase triangle of 78 pixels.
func genTriangle() *Bitmap {
	bm := NewBitmap(12, 12)
	for y := 0; y < 12; y++ {
		for x := 0; x < 12; x++ {
			bm.Set(x, y, x >= 11-y)
		}
	}
	return bm
}

func genRect(w, h int, x0, y0, x1, y1 int) *Bitmap {
	bm := NewBitmap(w, h)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			bm.Set(x, y, true)
		}
	}
	return bm
}

func TestBitmap(t *testing.T) {
	bm := NewBitmap(1543, 1234)
	i := 0
	check := make([]bool, bm.W*bm.H)
	for y := 0; y < bm.H; y++ {
		for x := 0; x < bm.W; x++ {
			v := rand.Intn(10) > 4
			check[i] = v
			bm.Set(x, y, v)
			i++
		}
	}
	i = 0
	for y := 0; y < bm.H; y++ {
		for x := 0; x < bm.W; x++ {
			if check[i] != bm.Get(x, y) {
				t.Fatal("failed")
			}
			i++
		}
	}
}

func TestBitmapClear(t *testing.T) {
	bm := NewBitmap(70, 3)
	bm.Clear(true)
	if n := bm.Count(); n != 70*3 {
		t.Fatal("wrong count after set:", n)
	}
	if bm.Get(70, 0) || bm.Get(-1, 0) {
		t.Fatal("out of range pixel reported as set")
	}
	c := bm.Clone()
	bm.Clear(false)
	if n := bm.Count(); n != 0 {
		t.Fatal("wrong count after clear:", n)
	}
	if n := c.Count(); n != 70*3 {
		t.Fatal("clone shares storage:", n)
	}
}

func TestTrace(t *testing.T) {
	paths, err := Trace(genTriangle(), nil)
	if err != nil {
		t.Fatal(err)
	} else if len(paths) != 1 {
		t.Fatal("wrong paths count:", len(paths))
	} else if paths[0].Sign != +1 {
		t.Fatal("wrong sign in path:", paths[0].Sign)
	} else if paths[0].Area != 78 {
		t.Fatal("wrong area of path:", paths[0].Area)
	}
}

func TestTraceEmpty(t *testing.T) {
	paths, err := Trace(NewBitmap(10, 10), nil)
	if err != nil {
		t.Fatal(err)
	} else if len(paths) != 0 {
		t.Fatal("expected no paths, got", len(paths))
	}
	paths, err = Trace(NewBitmap(0, 0), nil)
	if err != nil {
		t.Fatal(err)
	} else if len(paths) != 0 {
		t.Fatal("expected no paths, got", len(paths))
	}
}

func TestTraceSquare(t *testing.T) {
	paths, err := Trace(genRect(40, 40, 10, 10, 30, 30), nil)
	if err != nil {
		t.Fatal(err)
	} else if len(paths) != 1 {
		t.Fatal("wrong paths count:", len(paths))
	}
	p := paths[0]
	if p.Area != 400 {
		t.Fatal("wrong area:", p.Area)
	}
	if len(p.Curve) != 4 {
		t.Fatal("wrong segment count:", len(p.Curve))
	}
	for i, s := range p.Curve {
		if s.Kind != Corner {
			t.Fatalf("segment %d: expected corner, got %v", i, s.Kind)
		}
		v := s.Pnt[1]
		if math.Abs(v.X-10) > 0.5 && math.Abs(v.X-30) > 0.5 {
			t.Errorf("segment %d: corner x off the square: %v", i, v)
		}
		if math.Abs(v.Y-10) > 0.5 && math.Abs(v.Y-30) > 0.5 {
			t.Errorf("segment %d: corner y off the square: %v", i, v)
		}
	}
	if p.Start() != p.Curve[3].End() {
		t.Fatal("start does not close the curve")
	}
}

func TestTraceTurd(t *testing.T) {
	// a 1x2 speck has area 2, which the default turd size drops
	paths, err := Trace(genRect(8, 8, 3, 3, 4, 5), nil)
	if err != nil {
		t.Fatal(err)
	} else if len(paths) != 0 {
		t.Fatal("speck was not removed:", len(paths))
	}
	p := Defaults
	p.TurdSize = 0
	paths, err = Trace(genRect(8, 8, 3, 3, 4, 5), &p)
	if err != nil {
		t.Fatal(err)
	} else if len(paths) != 1 {
		t.Fatal("speck missing with turd size 0:", len(paths))
	}
}

func TestTraceHole(t *testing.T) {
	bm := genRect(40, 40, 5, 5, 35, 35)
	for y := 15; y < 25; y++ {
		for x := 15; x < 25; x++ {
			bm.Set(x, y, false)
		}
	}
	paths, err := Trace(bm, nil)
	if err != nil {
		t.Fatal(err)
	} else if len(paths) != 1 {
		t.Fatal("wrong root count:", len(paths))
	}
	if len(paths[0].Children) != 1 {
		t.Fatal("wrong hole count:", len(paths[0].Children))
	}
	if s := paths[0].Children[0].Sign; s != -1 {
		t.Fatal("wrong hole sign:", s)
	}
	flat := Flatten(paths)
	if len(flat) != 2 || flat[0].Sign != +1 || flat[1].Sign != -1 {
		t.Fatal("wrong flattened order")
	}
}

func TestFlattenOrder(t *testing.T) {
	forest := []Path{
		{Area: 1, Children: []Path{
			{Area: 2, Children: []Path{{Area: 5}}},
			{Area: 3},
		}},
		{Area: 4},
	}
	flat := Flatten(forest)
	want := []int{1, 2, 3, 4, 5}
	if len(flat) != len(want) {
		t.Fatal("wrong length:", len(flat))
	}
	for i, p := range flat {
		if p.Area != want[i] {
			t.Fatalf("position %d: got area %d, want %d", i, p.Area, want[i])
		}
	}
}

func TestTraceDeterministic(t *testing.T) {
	bm := NewBitmap(64, 64)
	r := rand.New(rand.NewSource(1))
	for y := 0; y < bm.H; y++ {
		for x := 0; x < bm.W; x++ {
			bm.Set(x, y, r.Intn(3) == 0)
		}
	}
	a, err := Trace(bm, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Trace(bm, nil)
	if err != nil {
		t.Fatal(err)
	}
	fa, fb := Flatten(a), Flatten(b)
	if len(fa) != len(fb) {
		t.Fatal("path count differs:", len(fa), len(fb))
	}
	for i := range fa {
		if len(fa[i].Curve) != len(fb[i].Curve) {
			t.Fatal("segment count differs in path", i)
		}
		for j := range fa[i].Curve {
			if fa[i].Curve[j] != fb[i].Curve[j] {
				t.Fatalf("segment %d of path %d differs", j, i)
			}
		}
	}
}

func BenchmarkBitmap(b *testing.B) {
	bm := NewBitmap(1543, 1234)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x, y, v := i%bm.W, i%bm.H, i%2 == 0
		for j := 0; j < 1000; j++ {
			bm.Set(x, y, v)
			bm.Get(x, y)
		}
	}
}

func BenchmarkTrace(b *testing.B) {
	bm := genRect(256, 256, 20, 40, 200, 220)
	for i := 0; i < b.N; i++ {
		if _, err := Trace(bm, nil); err != nil {
			b.Fatal(err)
		}
	}
}

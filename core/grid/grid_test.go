package grid

import "testing"

func mk(t *testing.T, vals []float32, rows, cols int) *Grid {
	t.Helper()
	g, err := New(vals, rows, cols)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func TestNewShapeMismatch(t *testing.T) {
	if _, err := New(make([]float32, 5), 2, 3); err == nil {
		t.Fatalf("expected shape error")
	}
	if _, err := New(nil, 0, 3); err == nil {
		t.Fatalf("expected non-positive shape error")
	}
}

func TestStride(t *testing.T) {
	// 4x4 raster 0..15
	vals := make([]float32, 16)
	for i := range vals {
		vals[i] = float32(i)
	}
	g := mk(t, vals, 4, 4)

	s := g.Stride(2, 2)
	if s.Rows != 2 || s.Cols != 2 {
		t.Fatalf("stride shape %dx%d, want 2x2", s.Rows, s.Cols)
	}
	want := []float64{0, 2, 8, 10}
	for i, w := range want {
		if got := s.At(i/2, i%2); got != w {
			t.Fatalf("stride[%d] = %v, want %v", i, got, w)
		}
	}

	// ceil semantics: 3 rows with step 2 keeps rows 0 and 2
	g3 := mk(t, []float32{1, 2, 3}, 3, 1)
	if s := g3.Stride(2, 1); s.Rows != 2 || s.At(1, 0) != 3 {
		t.Fatalf("stride of odd dim wrong: %+v", s)
	}
}

func TestFlipRows(t *testing.T) {
	g := mk(t, []float32{1, 2, 3, 4, 5, 6}, 3, 2)
	f := g.FlipRows()
	if f.At(0, 0) != 5 || f.At(0, 1) != 6 || f.At(2, 1) != 2 {
		t.Fatalf("flip wrong: %v %v %v", f.At(0, 0), f.At(0, 1), f.At(2, 1))
	}
	// original untouched
	if g.At(0, 0) != 1 {
		t.Fatalf("flip mutated receiver")
	}
}

func TestBilinear(t *testing.T) {
	// plane z = row + col
	g := mk(t, []float32{0, 1, 1, 2}, 2, 2)

	z, err := g.Bilinear(0.5, 0.5)
	if err != nil {
		t.Fatalf("bilinear: %v", err)
	}
	if z != 1.0 {
		t.Fatalf("center = %v, want 1", z)
	}
	if z, _ := g.Bilinear(0, 0); z != 0 {
		t.Fatalf("corner = %v, want 0", z)
	}
	if _, err := g.Bilinear(1.0, 0); err == nil {
		t.Fatalf("row at last index must be out of range")
	}
	if _, err := g.Bilinear(-0.1, 0); err == nil {
		t.Fatalf("negative row must be out of range")
	}
}

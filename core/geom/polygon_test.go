package geom

import "testing"

func square(side float64) Polygon {
	return Polygon{{0, 0}, {side, 0}, {side, side}, {0, side}}
}

func TestPolygonArea(t *testing.T) {
	if a := square(2).Area(); a != 4 {
		t.Fatalf("square area = %v, want 4", a)
	}
	// reversed winding must not go negative
	rev := Polygon{{0, 2}, {2, 2}, {2, 0}, {0, 0}}
	if a := rev.Area(); a != 4 {
		t.Fatalf("reversed area = %v, want 4", a)
	}
	if a := (Polygon{{0, 0}, {1, 1}}).Area(); a != 0 {
		t.Fatalf("degenerate area = %v, want 0", a)
	}
}

func TestPolygonBounds(t *testing.T) {
	min, max := (Polygon{{3, -1}, {0, 5}, {2, 2}}).Bounds()
	if min.X != 0 || min.Y != -1 || max.X != 3 || max.Y != 5 {
		t.Fatalf("bounds = %v %v", min, max)
	}
}

func TestPolygonContains(t *testing.T) {
	p := square(10)
	cases := []struct {
		pt   Vec2
		want bool
	}{
		{Vec2{5, 5}, true},
		{Vec2{-1, 5}, false},
		{Vec2{11, 5}, false},
		{Vec2{5, 11}, false},
		{Vec2{0.001, 0.001}, true},
	}
	for _, c := range cases {
		if got := p.Contains(c.pt); got != c.want {
			t.Fatalf("Contains(%v) = %v, want %v", c.pt, got, c.want)
		}
	}

	// concave ring: notch cut out of the square
	notched := Polygon{{0, 0}, {10, 0}, {10, 10}, {6, 10}, {6, 4}, {4, 4}, {4, 10}, {0, 10}}
	if notched.Contains(Vec2{5, 8}) {
		t.Fatalf("point in notch should be outside")
	}
	if !notched.Contains(Vec2{2, 8}) {
		t.Fatalf("point in left arm should be inside")
	}
}

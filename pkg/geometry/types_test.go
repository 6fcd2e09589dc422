package geometry

import (
	"math"
	"testing"
)

func TestRectContains(t *testing.T) {
	r := NewRect(10, 20, 100, 50)

	tests := []struct {
		name string
		p    Point2D
		want bool
	}{
		{"inside", Point2D{X: 50, Y: 40}, true},
		{"top-left corner", Point2D{X: 10, Y: 20}, true},
		{"bottom-right corner", Point2D{X: 110, Y: 70}, true},
		{"left of rect", Point2D{X: 9, Y: 40}, false},
		{"below rect", Point2D{X: 50, Y: 71}, false},
	}

	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("%s: Contains(%v) = %v, want %v", tt.name, tt.p, got, tt.want)
		}
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 7, 30, 40)
	if r.Right() != 35 {
		t.Errorf("Right() = %v, want 35", r.Right())
	}
	if r.Bottom() != 47 {
		t.Errorf("Bottom() = %v, want 47", r.Bottom())
	}
	c := r.Center()
	if c.X != 20 || c.Y != 27 {
		t.Errorf("Center() = %v, want (20, 27)", c)
	}
}

func TestRectUnion(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(5, 5, 20, 20)
	u := a.Union(b)
	if u.X != 0 || u.Y != 0 || u.Width != 25 || u.Height != 25 {
		t.Errorf("Union = %+v, want {0 0 25 25}", u)
	}
}

func TestRectIntersects(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	if !a.Intersects(NewRect(5, 5, 10, 10)) {
		t.Error("overlapping rects should intersect")
	}
	if a.Intersects(NewRect(20, 20, 5, 5)) {
		t.Error("disjoint rects should not intersect")
	}
}

func TestRectTranslate(t *testing.T) {
	r := NewRect(1, 2, 3, 4).Translate(10, -2)
	if r.X != 11 || r.Y != 0 || r.Width != 3 || r.Height != 4 {
		t.Errorf("Translate = %+v, want {11 0 3 4}", r)
	}
}

func TestPointDistance(t *testing.T) {
	d := Point2D{X: 0, Y: 0}.Distance(Point2D{X: 3, Y: 4})
	if math.Abs(d-5) > 1e-9 {
		t.Errorf("Distance = %v, want 5", d)
	}
}

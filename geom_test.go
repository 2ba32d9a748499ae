package loom

import "testing"

func TestRectOps(t *testing.T) {
	r := RectFromOriginSize(Point{X: 10, Y: 20}, Size{Width: 30, Height: 40})

	t.Run("origin and size round-trip", func(t *testing.T) {
		if r.Origin() != (Point{X: 10, Y: 20}) {
			t.Errorf("expected (10, 20), got %v", r.Origin())
		}
		if r.RectSize() != (Size{Width: 30, Height: 40}) {
			t.Errorf("expected 30x40, got %v", r.RectSize())
		}
	})

	t.Run("contains is half-open", func(t *testing.T) {
		if !r.Contains(Point{X: 10, Y: 20}) {
			t.Error("expected the top-left corner inside")
		}
		if r.Contains(Point{X: 40, Y: 30}) {
			t.Error("expected the right edge outside")
		}
	})

	t.Run("union and intersect", func(t *testing.T) {
		other := Rect{0, 0, 15, 25}
		if got := r.Union(other); got != (Rect{0, 0, 40, 60}) {
			t.Errorf("expected the bounding rect, got %v", got)
		}
		if got := r.Intersect(other); got != (Rect{10, 20, 15, 25}) {
			t.Errorf("expected the overlap, got %v", got)
		}
		far := Rect{100, 100, 110, 110}
		if got := r.Intersect(far).RectSize(); got != (Size{}) {
			t.Errorf("expected an empty overlap, got %v", got)
		}
	})
}

func TestAxisPacking(t *testing.T) {
	size := Size{Width: 30, Height: 40}

	if Horizontal.Major(size) != 30 || Horizontal.Minor(size) != 40 {
		t.Error("expected width major on the horizontal axis")
	}
	if Vertical.Major(size) != 40 || Vertical.Minor(size) != 30 {
		t.Error("expected height major on the vertical axis")
	}
	if got := Vertical.Pack(5, 7); got != (Point{X: 7, Y: 5}) {
		t.Errorf("expected (7, 5), got %v", got)
	}
	if got := Horizontal.PackSize(5, 7); got != (Size{Width: 5, Height: 7}) {
		t.Errorf("expected 5x7, got %v", got)
	}
	if Horizontal.Cross() != Vertical || Vertical.Cross() != Horizontal {
		t.Error("expected the axes to cross each other")
	}
}

func TestBoxConstraints(t *testing.T) {
	bc := BoxConstraints{Min: Size{Width: 10, Height: 10}, Max: Size{Width: 100, Height: 50}}

	t.Run("constrain clamps both ways", func(t *testing.T) {
		if got := bc.Constrain(Size{Width: 5, Height: 200}); got != (Size{Width: 10, Height: 50}) {
			t.Errorf("expected 10x50, got %v", got)
		}
	})

	t.Run("loosen drops the minimum", func(t *testing.T) {
		if got := bc.Loosen(); got.Min != (Size{}) || got.Max != bc.Max {
			t.Errorf("expected only the maximum kept, got %v", got)
		}
	})

	t.Run("shrink floors the maximum at the minimum", func(t *testing.T) {
		if got := bc.ShrinkMax(20, 5).Max; got != (Size{Width: 80, Height: 45}) {
			t.Errorf("expected 80x45, got %v", got)
		}
		if got := bc.ShrinkMax(95, 5).Max; got != (Size{Width: 10, Height: 45}) {
			t.Errorf("expected the width floored at the minimum, got %v", got)
		}
	})

	t.Run("boundedness tracks the unbounded marker", func(t *testing.T) {
		open := BoxConstraints{Max: Size{Width: Unbounded, Height: 50}}
		if open.IsBoundedOn(Horizontal) {
			t.Error("expected the width unbounded")
		}
		if !open.IsBoundedOn(Vertical) {
			t.Error("expected the height bounded")
		}
	})

	t.Run("affine translation applies to points", func(t *testing.T) {
		p := Translate(Vec2{X: 3, Y: -2}).Apply(Point{X: 1, Y: 1})
		if p != (Point{X: 4, Y: -1}) {
			t.Errorf("expected (4, -1), got %v", p)
		}
	})
}

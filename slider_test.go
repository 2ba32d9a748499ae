package loom

import "testing"

func TestSliderDrag(t *testing.T) {
	w := NewWindow[F64](NewSlider(), F64(0), NewEnv())
	w.Connect(Size{Width: 100, Height: 30})

	w.DispatchEvent(pointerDown(25, 5))
	if w.Data() != 0.25 {
		t.Errorf("expected 0.25 after a press, got %v", w.Data())
	}

	w.DispatchEvent(pointerMove(60, 5))
	if w.Data() != 0.6 {
		t.Errorf("expected 0.6 mid-drag, got %v", w.Data())
	}

	// The grab keeps the drag alive past the right edge, clamped to
	// the range.
	w.DispatchEvent(pointerMove(130, 5))
	if w.Data() != 1 {
		t.Errorf("expected the value clamped to 1, got %v", w.Data())
	}

	w.DispatchEvent(pointerUp(80, 5))
	if w.Data() != 0.8 {
		t.Errorf("expected 0.8 on release, got %v", w.Data())
	}

	// Released: moves no longer edit.
	w.DispatchEvent(pointerMove(10, 5))
	if w.Data() != 0.8 {
		t.Errorf("expected the value untouched after release, got %v", w.Data())
	}
}

func TestSliderRange(t *testing.T) {
	w := NewWindow[F64](NewSlider().WithRange(0, 200), F64(0), NewEnv())
	w.Connect(Size{Width: 100, Height: 30})

	w.DispatchEvent(pointerDown(50, 5))
	if w.Data() != 100 {
		t.Errorf("expected the midpoint of the range, got %v", w.Data())
	}
	w.DispatchEvent(pointerUp(50, 5))
}

func TestSliderThroughLens(t *testing.T) {
	volume := Field(func(p *person) *F64 { return &p.Age })
	w := NewWindow[person](WithLens(volume, NewSlider().WithRange(0, 10)), person{Name: "ada"}, NewEnv())
	w.Connect(Size{Width: 100, Height: 30})

	w.DispatchEvent(pointerDown(30, 5))
	if w.Data().Age != 3 {
		t.Errorf("expected the lensed field edited, got %v", w.Data().Age)
	}
	if w.Data().Name != "ada" {
		t.Errorf("expected the rest of the record untouched, got %v", w.Data().Name)
	}
}

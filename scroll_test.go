package loom

import (
	"math"
	"testing"
)

func wheelAt(x, y, dx, dy float64) Wheel {
	return Wheel{Pointer: PointerState{Pos: Point{X: x, Y: y}}, Delta: Vec2{X: dx, Y: dy}}
}

// tallBox is an inert fixed-size widget for viewport tests.
type tallBox struct {
	size Size
}

func (b tallBox) Event(ctx *EventCtx, ev Event, data *person, env Env)            {}
func (b tallBox) Lifecycle(ctx *LifecycleCtx, lc Lifecycle, data person, env Env) {}
func (b tallBox) Update(ctx *UpdateCtx, oldData, data person, env Env)            {}
func (b tallBox) Paint(ctx *PaintCtx, data person, env Env)                       {}

func (b tallBox) Layout(ctx *LayoutCtx, bc BoxConstraints, data person, env Env) Size {
	return bc.Constrain(b.size)
}

func TestScrollWheel(t *testing.T) {
	leaf := newTestLeaf("a", nil)
	leaf.size = Size{Width: 100, Height: 400}
	scroll := NewScroll[Str](leaf).WithDirection(ScrollVertical)
	pod := NewPod[Str](scroll)
	initPod(t, pod, Rect{0, 0, 100, 100})

	deliver := func(ev Event) bool {
		state, sink := newTestRound()
		ctx := testEventCtx(state, sink)
		pod.Event(ctx, ev, ptr(Str("x")), NewEnv())
		return ctx.IsHandled()
	}

	t.Run("wheel moves the offset and handles the event", func(t *testing.T) {
		if !deliver(wheelAt(10, 10, 0, 50)) {
			t.Error("expected the wheel event handled")
		}
		if scroll.Offset().Y != 50 {
			t.Errorf("expected offset 50, got %v", scroll.Offset().Y)
		}
	})

	t.Run("offset clamps to the scrollable range", func(t *testing.T) {
		deliver(wheelAt(10, 10, 0, 1e6))
		if scroll.Offset().Y != 300 {
			t.Errorf("expected offset clamped to 300, got %v", scroll.Offset().Y)
		}
		deliver(wheelAt(10, 10, 0, -1e6))
		if scroll.Offset().Y != 0 {
			t.Errorf("expected offset clamped to 0, got %v", scroll.Offset().Y)
		}
	})

	t.Run("a wheel that cannot move is not handled", func(t *testing.T) {
		if deliver(wheelAt(10, 10, 0, -10)) {
			t.Error("expected the event to pass through unhandled")
		}
	})

	t.Run("the restricted axis does not move", func(t *testing.T) {
		deliver(wheelAt(10, 10, 30, 0))
		if scroll.Offset().X != 0 {
			t.Errorf("expected horizontal offset pinned at 0, got %v", scroll.Offset().X)
		}
	})
}

func TestScrollPointerTranslation(t *testing.T) {
	var positions []Point
	leaf := newTestLeaf("a", nil)
	leaf.size = Size{Width: 100, Height: 400}
	leaf.onEvent = func(ctx *EventCtx, ev Event, data *Str) {
		if pos, ok := pointerPos(ev); ok {
			positions = append(positions, pos)
		}
	}
	scroll := NewScroll[Str](leaf).WithDirection(ScrollVertical)
	pod := NewPod[Str](scroll)
	initPod(t, pod, Rect{0, 0, 100, 100})

	state, sink := newTestRound()
	pod.Event(testEventCtx(state, sink), wheelAt(10, 10, 0, 60), ptr(Str("x")), NewEnv())

	state, sink = newTestRound()
	pod.Event(testEventCtx(state, sink), pointerDown(10, 20), ptr(Str("x")), NewEnv())
	if len(positions) != 1 || positions[0] != (Point{X: 10, Y: 80}) {
		t.Errorf("expected the pointer shifted into content space, got %v", positions)
	}
}

func TestScrollClampAfterShrink(t *testing.T) {
	leaf := newTestLeaf("a", nil)
	leaf.size = Size{Width: 100, Height: 400}
	scroll := NewScroll[Str](leaf).WithDirection(ScrollVertical)
	pod := NewPod[Str](scroll)
	initPod(t, pod, Rect{0, 0, 100, 100})

	state, sink := newTestRound()
	pod.Event(testEventCtx(state, sink), wheelAt(10, 10, 0, 1e6), ptr(Str("x")), NewEnv())
	if scroll.Offset().Y != 300 {
		t.Fatalf("expected offset 300, got %v", scroll.Offset().Y)
	}

	// A taller viewport shrinks the scrollable range; the stale offset
	// pulls back to the new end.
	ctx := testLayoutCtx(state, sink)
	pod.Layout(ctx, TightConstraints(Size{Width: 100, Height: 350}), Str("x"), NewEnv())
	pod.SetLayoutRect(ctx, Str("x"), NewEnv(), Rect{0, 0, 100, 350})
	if scroll.Offset().Y != 50 {
		t.Errorf("expected offset clamped to 50, got %v", scroll.Offset().Y)
	}
}

func TestTransformScroll(t *testing.T) {
	viewport := Rect{0, 0, 100, 100}
	offset := Vec2{Y: 60}

	t.Run("in-viewport pointer is shifted", func(t *testing.T) {
		ev, ok := TransformScroll(pointerMove(10, 20), offset, viewport, false)
		if !ok {
			t.Fatal("expected the event kept")
		}
		if pos, _ := pointerPos(ev); pos != (Point{X: 10, Y: 80}) {
			t.Errorf("expected (10, 80), got %v", pos)
		}
	})

	t.Run("out-of-viewport pointer is dropped", func(t *testing.T) {
		if _, ok := TransformScroll(pointerMove(10, 150), offset, viewport, false); ok {
			t.Error("expected the event dropped")
		}
	})

	t.Run("force keeps an out-of-viewport pointer", func(t *testing.T) {
		ev, ok := TransformScroll(pointerMove(10, 150), offset, viewport, true)
		if !ok {
			t.Fatal("expected the event kept for an engaged child")
		}
		if pos, _ := pointerPos(ev); pos != (Point{X: 10, Y: 210}) {
			t.Errorf("expected (10, 210), got %v", pos)
		}
	})

	t.Run("non-pointer events pass through unchanged", func(t *testing.T) {
		ev, ok := TransformScroll(KeyDown{Key: Key{Name: "a"}}, offset, viewport, false)
		if !ok {
			t.Fatal("expected the event kept")
		}
		if kd, isKey := ev.(KeyDown); !isKey || kd.Key.Name != "a" {
			t.Errorf("expected the key event untouched, got %v", ev)
		}
	})
}

func TestScrollPaintTranslation(t *testing.T) {
	column := NewFlex[Str](Vertical).
		WithChild(NewLabel[Str]("l0")).
		WithChild(NewLabel[Str]("l1")).
		WithChild(NewLabel[Str]("l2"))
	w := NewWindow[Str](NewScroll[Str](column).WithDirection(ScrollVertical), Str("x"), NewEnv())
	w.Connect(Size{Width: 100, Height: 30})

	surface := NewRecordingSurface()
	w.Paint(surface)
	before := surface.TextOps()
	if len(before) != 3 {
		t.Fatalf("expected 3 labels painted, got %d", len(before))
	}

	w.DispatchEvent(wheelAt(10, 10, 0, 10))

	surface = NewRecordingSurface()
	w.Paint(surface)
	after := surface.TextOps()
	if len(after) != 3 {
		t.Fatalf("expected 3 labels painted, got %d", len(after))
	}
	for i := range after {
		shift := before[i].At.Y - after[i].At.Y
		if math.Abs(shift-10) > 1e-9 {
			t.Errorf("label %d: expected a 10 unit upward shift, got %v", i, shift)
		}
	}
}

func TestScrollToProperty(t *testing.T) {
	leaf := newTestLeaf("a", nil)
	leaf.size = Size{Width: 100, Height: 400}
	scroll := NewScroll[Str](leaf).WithDirection(ScrollVertical)
	pod := NewPod[Str](scroll)
	initPod(t, pod, Rect{0, 0, 100, 100})

	prop := ScrollToProperty[Str]{Axis: Vertical}
	state, sink := newTestRound()
	ctx := testUpdateCtx(state, sink)

	prop.Write(scroll, F64(30), ctx, NewEnv())
	if got := prop.Read(scroll, NewEnv()); got != 30 {
		t.Errorf("expected offset 30, got %v", got)
	}
	prop.Write(scroll, F64(1e6), ctx, NewEnv())
	if got := prop.Read(scroll, NewEnv()); got != 300 {
		t.Errorf("expected the write clamped to 300, got %v", got)
	}
}

func TestScrollOffsetBinding(t *testing.T) {
	scroll := NewScroll[person](tallBox{size: Size{Width: 100, Height: 400}}).
		WithDirection(ScrollVertical)
	ageLens := Field(func(p *person) *F64 { return &p.Age })
	host := NewBindingHost[person, Scroll[person]](
		scroll, scroll, Bind(ageLens, ScrollToProperty[person]{Axis: Vertical}))

	w := NewWindow[person](host, person{Name: "ada"}, NewEnv())
	w.Connect(Size{Width: 100, Height: 100})

	t.Run("data drives the offset", func(t *testing.T) {
		w.UpdateData(func(p *person) { p.Age = 120 })
		if scroll.Offset().Y != 120 {
			t.Errorf("expected offset 120, got %v", scroll.Offset().Y)
		}
	})

	t.Run("scrolling writes back to the data", func(t *testing.T) {
		w.DispatchEvent(wheelAt(10, 10, 0, 40))
		if w.Data().Age != 160 {
			t.Errorf("expected age to follow the offset to 160, got %v", w.Data().Age)
		}
	})
}

package loom

import (
	"strings"
	"testing"
)

func TestPodInitialization(t *testing.T) {
	t.Run("widget added is delivered first", func(t *testing.T) {
		var trace []string
		leaf := newTestLeaf("a", &trace)
		pod := NewPod[Str](leaf)
		state, sink := newTestRound()

		pod.Event(testEventCtx(state, sink), pointerDown(1, 1), ptr(Str("x")), NewEnv())
		if len(trace) != 0 {
			t.Fatalf("expected event before WidgetAdded to be dropped, got %v", trace)
		}

		pod.Lifecycle(testLifecycleCtx(state, sink), WidgetAdded{}, Str("x"), NewEnv())
		if len(trace) != 1 || !strings.Contains(trace[0], "WidgetAdded") {
			t.Errorf("expected WidgetAdded first, got %v", trace)
		}
	})

	t.Run("widget added is delivered once", func(t *testing.T) {
		var trace []string
		pod := NewPod[Str](newTestLeaf("a", &trace))
		state, sink := newTestRound()

		pod.Lifecycle(testLifecycleCtx(state, sink), WidgetAdded{}, Str("x"), NewEnv())
		pod.Lifecycle(testLifecycleCtx(state, sink), WidgetAdded{}, Str("x"), NewEnv())
		if len(trace) != 1 {
			t.Errorf("expected exactly one WidgetAdded, got %v", trace)
		}
	})

	t.Run("route converts only for fresh pods", func(t *testing.T) {
		var trace []string
		pod := NewPod[Str](newTestLeaf("a", &trace))
		state, sink := newTestRound()

		pod.Lifecycle(testLifecycleCtx(state, sink), RouteWidgetAdded{}, Str("x"), NewEnv())
		if len(trace) != 1 || !strings.Contains(trace[0], "loom.WidgetAdded") {
			t.Fatalf("expected route to convert into WidgetAdded, got %v", trace)
		}

		pod.Lifecycle(testLifecycleCtx(state, sink), RouteWidgetAdded{}, Str("x"), NewEnv())
		if len(trace) != 2 || !strings.Contains(trace[1], "RouteWidgetAdded") {
			t.Errorf("expected route to pass through once initialized, got %v", trace)
		}
	})

	t.Run("identity is stable", func(t *testing.T) {
		pod := NewPod[Str](newTestLeaf("a", nil))
		id := pod.ID()
		state, sink := newTestRound()
		pod.Lifecycle(testLifecycleCtx(state, sink), WidgetAdded{}, Str("x"), NewEnv())
		pod.Layout(testLayoutCtx(state, sink), LooseConstraints(Size{Width: 50, Height: 50}), Str("x"), NewEnv())
		if pod.ID() != id {
			t.Errorf("expected id %d to survive dispatch, got %d", id, pod.ID())
		}
		other := NewPod[Str](newTestLeaf("b", nil))
		if other.ID() == id {
			t.Errorf("expected distinct ids, both got %d", id)
		}
	})
}

func initPod(t *testing.T, pod *Pod[Str], r Rect) {
	t.Helper()
	state, sink := newTestRound()
	pod.Lifecycle(testLifecycleCtx(state, sink), WidgetAdded{}, Str("x"), NewEnv())
	ctx := testLayoutCtx(state, sink)
	pod.Layout(ctx, LooseConstraints(r.RectSize()), Str("x"), NewEnv())
	pod.SetLayoutRect(ctx, Str("x"), NewEnv(), r)
}

func TestPodPointerRouting(t *testing.T) {
	t.Run("outside pointer events are skipped", func(t *testing.T) {
		var trace []string
		pod := NewPod[Str](newTestLeaf("a", &trace))
		initPod(t, pod, Rect{X0: 10, Y0: 10, X1: 20, Y1: 20})
		trace = trace[:0]

		state, sink := newTestRound()
		pod.Event(testEventCtx(state, sink), pointerDown(5, 5), ptr(Str("x")), NewEnv())
		if len(trace) != 0 {
			t.Errorf("expected no dispatch outside bounds, got %v", trace)
		}
	})

	t.Run("positions are translated into child space", func(t *testing.T) {
		var got Point
		leaf := newTestLeaf("a", nil)
		leaf.onEvent = func(ctx *EventCtx, ev Event, data *Str) {
			got, _ = pointerPos(ev)
		}
		pod := NewPod[Str](leaf)
		initPod(t, pod, Rect{X0: 10, Y0: 10, X1: 20, Y1: 20})

		state, sink := newTestRound()
		pod.Event(testEventCtx(state, sink), pointerDown(12, 15), ptr(Str("x")), NewEnv())
		want := Point{X: 2, Y: 5}
		if got != want {
			t.Errorf("expected child-local position %v, got %v", want, got)
		}
	})

	t.Run("active pods keep receiving during drag", func(t *testing.T) {
		var trace []string
		leaf := newTestLeaf("a", &trace)
		leaf.onEvent = func(ctx *EventCtx, ev Event, data *Str) {
			if _, ok := ev.(PointerDown); ok {
				ctx.SetActive(true)
			}
		}
		pod := NewPod[Str](leaf)
		initPod(t, pod, Rect{X0: 0, Y0: 0, X1: 10, Y1: 10})
		trace = trace[:0]

		state, sink := newTestRound()
		pod.Event(testEventCtx(state, sink), pointerDown(5, 5), ptr(Str("x")), NewEnv())
		state, sink = newTestRound()
		pod.Event(testEventCtx(state, sink), pointerMove(50, 50), ptr(Str("x")), NewEnv())
		if len(trace) != 2 {
			t.Errorf("expected the off-widget move to reach the active pod, got %v", trace)
		}
	})

	t.Run("hot flips fire HotChanged", func(t *testing.T) {
		var trace []string
		pod := NewPod[Str](newTestLeaf("a", &trace))
		initPod(t, pod, Rect{X0: 0, Y0: 0, X1: 10, Y1: 10})
		trace = trace[:0]

		state, sink := newTestRound()
		pod.Event(testEventCtx(state, sink), pointerMove(5, 5), ptr(Str("x")), NewEnv())
		if !pod.IsHot() {
			t.Fatal("expected pod to be hot after an inside move")
		}
		if len(trace) == 0 || !strings.Contains(trace[0], "HotChanged") {
			t.Errorf("expected HotChanged before the move, got %v", trace)
		}
		if !state.repaint {
			t.Error("expected a repaint request on hot change")
		}

		state, sink = newTestRound()
		pod.Event(testEventCtx(state, sink), pointerMove(50, 50), ptr(Str("x")), NewEnv())
		if pod.IsHot() {
			t.Error("expected pod to cool down after an outside move")
		}
	})

	t.Run("internal events unwrap on target match", func(t *testing.T) {
		var got Event
		leaf := newTestLeaf("a", nil)
		leaf.onEvent = func(ctx *EventCtx, ev Event, data *Str) { got = ev }
		pod := NewPod[Str](leaf)
		initPod(t, pod, Rect{X0: 0, Y0: 0, X1: 10, Y1: 10})

		state, sink := newTestRound()
		pod.Event(testEventCtx(state, sink), Internal{Target: pod.ID(), Inner: Paste{Text: "hi"}}, ptr(Str("x")), NewEnv())
		if paste, ok := got.(Paste); !ok || paste.Text != "hi" {
			t.Errorf("expected unwrapped Paste, got %T", got)
		}

		got = nil
		state, sink = newTestRound()
		pod.Event(testEventCtx(state, sink), Internal{Target: pod.ID() + 1, Inner: Paste{Text: "hi"}}, ptr(Str("x")), NewEnv())
		if _, ok := got.(Internal); !ok {
			t.Errorf("expected mismatched Internal to pass through wrapped, got %T", got)
		}
	})
}

func TestPodUpdateGating(t *testing.T) {
	t.Run("same data skips the child", func(t *testing.T) {
		var trace []string
		pod := NewPod[Str](newTestLeaf("a", &trace))
		initPod(t, pod, Rect{X0: 0, Y0: 0, X1: 10, Y1: 10})
		state, sink := newTestRound()

		pod.Update(testUpdateCtx(state, sink), Str("x"), NewEnv())
		n := len(trace)
		pod.Update(testUpdateCtx(state, sink), Str("x"), NewEnv())
		if len(trace) != n {
			t.Errorf("expected same data to skip update, got %v", trace[n:])
		}
		pod.Update(testUpdateCtx(state, sink), Str("y"), NewEnv())
		if len(trace) != n+1 || !strings.Contains(trace[n], `"x"->"y"`) {
			t.Errorf("expected old->new pair on change, got %v", trace[n:])
		}
	})

	t.Run("first update passes data as both old and new", func(t *testing.T) {
		var trace []string
		pod := NewPod[Str](newTestLeaf("a", &trace))
		initPod(t, pod, Rect{X0: 0, Y0: 0, X1: 10, Y1: 10})
		state, sink := newTestRound()

		pod.Update(testUpdateCtx(state, sink), Str("x"), NewEnv())
		if len(trace) != 1 || !strings.Contains(trace[0], `"x"->"x"`) {
			t.Errorf("expected first update with coinciding values, got %v", trace)
		}
	})

	t.Run("request update overrides the gate", func(t *testing.T) {
		var trace []string
		leaf := newTestLeaf("a", &trace)
		leaf.onEvent = func(ctx *EventCtx, ev Event, data *Str) {
			ctx.RequestUpdate()
		}
		pod := NewPod[Str](leaf)
		initPod(t, pod, Rect{X0: 0, Y0: 0, X1: 10, Y1: 10})
		state, sink := newTestRound()
		pod.Update(testUpdateCtx(state, sink), Str("x"), NewEnv())
		trace = trace[:0]

		pod.Event(testEventCtx(state, sink), pointerDown(5, 5), ptr(Str("x")), NewEnv())
		if !state.updateRequested {
			t.Fatal("expected the request to reach the round state")
		}
		pod.Update(testUpdateCtx(state, sink), Str("x"), NewEnv())
		found := false
		for _, entry := range trace {
			if strings.Contains(entry, "update") {
				found = true
			}
		}
		if !found {
			t.Errorf("expected a forced update despite same data, got %v", trace)
		}
	})
}

func TestPodLayout(t *testing.T) {
	t.Run("result is clamped to constraints", func(t *testing.T) {
		leaf := newTestLeaf("a", nil)
		leaf.size = Size{Width: 500, Height: 500}
		pod := NewPod[Str](leaf)
		state, sink := newTestRound()
		pod.Lifecycle(testLifecycleCtx(state, sink), WidgetAdded{}, Str("x"), NewEnv())

		got := pod.Layout(testLayoutCtx(state, sink), LooseConstraints(Size{Width: 100, Height: 80}), Str("x"), NewEnv())
		want := Size{Width: 100, Height: 80}
		if got != want {
			t.Errorf("expected clamped size %v, got %v", want, got)
		}
	})

	t.Run("size change fires SizeChanged", func(t *testing.T) {
		var trace []string
		pod := NewPod[Str](newTestLeaf("a", &trace))
		initPod(t, pod, Rect{X0: 0, Y0: 0, X1: 10, Y1: 10})
		trace = trace[:0]

		state, sink := newTestRound()
		pod.SetLayoutRect(testLayoutCtx(state, sink), Str("x"), NewEnv(), Rect{X0: 0, Y0: 0, X1: 30, Y1: 10})
		if len(trace) != 1 || !strings.Contains(trace[0], "SizeChanged") {
			t.Errorf("expected SizeChanged on resize, got %v", trace)
		}

		trace = trace[:0]
		pod.SetLayoutRect(testLayoutCtx(state, sink), Str("x"), NewEnv(), Rect{X0: 5, Y0: 5, X1: 35, Y1: 15})
		if len(trace) != 0 {
			t.Errorf("expected a pure move to stay silent, got %v", trace)
		}
	})
}

func ptr[T any](v T) *T {
	return &v
}

package loom

import "testing"

func initUnitPod(t *testing.T, pod *Pod[Unit], r Rect) {
	t.Helper()
	state, sink := newTestRound()
	pod.Lifecycle(testLifecycleCtx(state, sink), WidgetAdded{}, Unit{}, NewEnv())
	pod.Update(testUpdateCtx(state, sink), Unit{}, NewEnv())
	ctx := testLayoutCtx(state, sink)
	pod.Layout(ctx, LooseConstraints(r.RectSize()), Unit{}, NewEnv())
	pod.SetLayoutRect(ctx, Unit{}, NewEnv(), r)
}

func TestSubRootHost(t *testing.T) {
	t.Run("events run against the private value", func(t *testing.T) {
		var trace []string
		leaf := newTestLeaf("a", &trace)
		leaf.onEvent = func(ctx *EventCtx, ev Event, data *Str) {
			if _, ok := ev.(PointerDown); ok {
				*data = "b"
			}
		}
		host := NewSubRootHost[Str](Str("a"), leaf)
		pod := NewPod[Unit](host)
		initUnitPod(t, pod, Rect{0, 0, 100, 100})
		trace = trace[:0]

		state, sink := newTestRound()
		pod.Event(testEventCtx(state, sink), pointerDown(5, 5), &Unit{}, NewEnv())

		if host.Data() != "b" {
			t.Errorf("expected the private value mutated, got %q", host.Data())
		}
		found := false
		for _, entry := range trace {
			if entry == `a:update "a"->"b"` {
				found = true
			}
		}
		if !found {
			t.Errorf("expected the subtree updated after the event, got %v", trace)
		}
	})

	t.Run("mutations are announced to the peer", func(t *testing.T) {
		leaf := newTestLeaf("a", nil)
		leaf.onEvent = func(ctx *EventCtx, ev Event, data *Str) {
			if _, ok := ev.(PointerDown); ok {
				*data = "b"
			}
		}
		peer := NextWidgetID()
		host := NewSubRootHost[Str](Str("a"), leaf).WithPeer(peer)
		pod := NewPod[Unit](host)
		initUnitPod(t, pod, Rect{0, 0, 100, 100})

		state, sink := newTestRound()
		pod.Event(testEventCtx(state, sink), pointerDown(5, 5), &Unit{}, NewEnv())

		cmds := state.queue.Drain()
		if len(cmds) != 1 {
			t.Fatalf("expected one announcement, got %v", cmds)
		}
		if !cmds[0].Is(SubRootHostToParent) || cmds[0].Target != peer {
			t.Errorf("expected a host-to-parent command addressed to the peer, got %+v", cmds[0])
		}
		if got, ok := cmds[0].Payload.(Str); !ok || got != "b" {
			t.Errorf("expected the new value carried, got %v", cmds[0].Payload)
		}

		// Same value again: nothing new to announce.
		state, sink = newTestRound()
		pod.Event(testEventCtx(state, sink), pointerDown(5, 5), &Unit{}, NewEnv())
		if cmds := state.queue.Drain(); len(cmds) != 0 {
			t.Errorf("expected no duplicate announcement, got %v", cmds)
		}
	})

	t.Run("a targeted command replaces the value", func(t *testing.T) {
		var trace []string
		host := NewSubRootHost[Str](Str("a"), newTestLeaf("a", &trace))
		pod := NewPod[Unit](host)
		initUnitPod(t, pod, Rect{0, 0, 100, 100})

		state, sink := newTestRound()
		ctx := testEventCtx(state, sink)
		pod.Event(ctx, CommandEvent{Command: Command{
			Selector: SubRootParentToHost,
			Payload:  Str("z"),
			Target:   pod.ID(),
		}}, &Unit{}, NewEnv())

		if host.Data() != "z" {
			t.Errorf("expected the value replaced, got %q", host.Data())
		}
		if !ctx.IsHandled() {
			t.Error("expected the command handled")
		}
	})

	t.Run("a mistargeted command is ignored", func(t *testing.T) {
		host := NewSubRootHost[Str](Str("a"), newTestLeaf("a", nil))
		pod := NewPod[Unit](host)
		initUnitPod(t, pod, Rect{0, 0, 100, 100})

		state, sink := newTestRound()
		pod.Event(testEventCtx(state, sink), CommandEvent{Command: Command{
			Selector: SubRootParentToHost,
			Payload:  Str("z"),
			Target:   NextWidgetID(),
		}}, &Unit{}, NewEnv())

		if host.Data() != "a" {
			t.Errorf("expected the value untouched, got %q", host.Data())
		}
	})

	t.Run("a wrong payload type is dropped", func(t *testing.T) {
		host := NewSubRootHost[Str](Str("a"), newTestLeaf("a", nil))
		pod := NewPod[Unit](host)
		initUnitPod(t, pod, Rect{0, 0, 100, 100})

		state, sink := newTestRound()
		pod.Event(testEventCtx(state, sink), CommandEvent{Command: Command{
			Selector: SubRootParentToHost,
			Payload:  42,
			Target:   pod.ID(),
		}}, &Unit{}, NewEnv())

		if host.Data() != "a" {
			t.Errorf("expected the value untouched, got %q", host.Data())
		}
	})
}

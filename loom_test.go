package loom

import "fmt"

// testLeaf is a recording widget: it appends one entry per dispatch to a
// shared trace so tests can assert ordering and routing.
type testLeaf struct {
	name    string
	trace   *[]string
	size    Size
	onEvent func(ctx *EventCtx, ev Event, data *Str)
}

func newTestLeaf(name string, trace *[]string) *testLeaf {
	return &testLeaf{name: name, trace: trace, size: Size{Width: 10, Height: 10}}
}

func (w *testLeaf) record(entry string) {
	if w.trace != nil {
		*w.trace = append(*w.trace, w.name+":"+entry)
	}
}

func (w *testLeaf) Event(ctx *EventCtx, ev Event, data *Str, env Env) {
	w.record(fmt.Sprintf("event %T", ev))
	if w.onEvent != nil {
		w.onEvent(ctx, ev, data)
	}
}

func (w *testLeaf) Lifecycle(ctx *LifecycleCtx, lc Lifecycle, data Str, env Env) {
	w.record(fmt.Sprintf("lifecycle %T", lc))
}

func (w *testLeaf) Update(ctx *UpdateCtx, oldData, data Str, env Env) {
	w.record(fmt.Sprintf("update %q->%q", string(oldData), string(data)))
}

func (w *testLeaf) Layout(ctx *LayoutCtx, bc BoxConstraints, data Str, env Env) Size {
	w.record("layout")
	return bc.Constrain(w.size)
}

func (w *testLeaf) Paint(ctx *PaintCtx, data Str, env Env) {
	w.record("paint")
}

func pointerDown(x, y float64) PointerDown {
	return PointerDown{Pointer: PointerState{Pos: Point{X: x, Y: y}}}
}

func pointerUp(x, y float64) PointerUp {
	return PointerUp{Pointer: PointerState{Pos: Point{X: x, Y: y}}}
}

func pointerMove(x, y float64) PointerMove {
	return PointerMove{Pointer: PointerState{Pos: Point{X: x, Y: y}}}
}

// newTestRound builds a round plus a sink pod state for direct Pod
// dispatch in tests that do not want a full Window.
func newTestRound() (*roundState, *podState) {
	return &roundState{queue: NewCommandQueue(), windowSize: Size{Width: 100, Height: 100}}, &podState{}
}

func testEventCtx(state *roundState, sink *podState) *EventCtx {
	return &EventCtx{ctxBase{state: state, pod: sink}}
}

func testLifecycleCtx(state *roundState, sink *podState) *LifecycleCtx {
	return &LifecycleCtx{ctxBase{state: state, pod: sink}}
}

func testUpdateCtx(state *roundState, sink *podState) *UpdateCtx {
	return &UpdateCtx{ctxBase{state: state, pod: sink}}
}

func testLayoutCtx(state *roundState, sink *podState) *LayoutCtx {
	return &LayoutCtx{ctxBase{state: state, pod: sink}}
}

package loom

// Dispatch pass limits. Rounds that keep generating work past these are
// almost certainly feedback loops; the driver warns and moves on rather
// than spinning.
const (
	maxCommandPasses   = 16
	maxStabilizePasses = 8
)

// Window drives a widget tree: it owns the root Pod, the data value,
// the environment, and the command queue, and runs the fixed round
// ordering. One external stimulus becomes
//
//	event -> command delivery -> routing -> update -> layout
//
// with paint pulled separately by the host, so data mutations made
// anywhere in the event phase are reflected before anything is drawn.
type Window[T Data[T]] struct {
	root  *Pod[T]
	data  T
	env   Env
	queue *CommandQueue
	size  Size

	// rootState is the merge sink above the root pod; it collects the
	// flags the root bubbles up.
	rootState podState

	connected    bool
	paintPending bool
	animPending  bool
}

// NewWindow builds a driver over root with the given initial data and
// environment.
func NewWindow[T Data[T]](root Widget[T], data T, env Env) *Window[T] {
	return &Window[T]{
		root:  NewPod(root),
		data:  data,
		env:   env,
		queue: NewCommandQueue(),
	}
}

// Data returns the current data value.
func (w *Window[T]) Data() T {
	return w.data
}

// Env returns the current environment.
func (w *Window[T]) Env() Env {
	return w.env
}

// SetEnv swaps the environment between rounds and forces a full
// rebuild of derived state.
func (w *Window[T]) SetEnv(env Env) {
	w.env = env
	state := w.newRound()
	upd := &UpdateCtx{ctxBase{state: state, pod: &w.rootState}}
	upd.RequestUpdate()
	w.stabilize(state)
	w.finishRound(state)
}

// Root returns the root pod, mainly for identity-addressed commands.
func (w *Window[T]) Root() *Pod[T] {
	return w.root
}

// Queue exposes the command queue so hosts can collect timer requests.
func (w *Window[T]) Queue() *CommandQueue {
	return w.queue
}

// NeedsPaint reports whether anything asked to be redrawn since the
// last Paint.
func (w *Window[T]) NeedsPaint() bool {
	return w.paintPending
}

// NeedsAnimFrame reports whether any node opted into the next tick.
func (w *Window[T]) NeedsAnimFrame() bool {
	return w.animPending
}

func (w *Window[T]) newRound() *roundState {
	return &roundState{queue: w.queue, windowSize: w.size}
}

// Connect brings the tree up at the given size: construction lifecycle
// first, then the connection events, then the first update and layout.
func (w *Window[T]) Connect(size Size) {
	if w.connected {
		logger.Warn("window connected twice")
		return
	}
	w.connected = true
	w.size = size

	state := w.newRound()
	lc := &LifecycleCtx{ctxBase{state: state, pod: &w.rootState}}
	w.root.Lifecycle(lc, WidgetAdded{}, w.data, w.env)

	w.deliverEvent(state, WindowConnected{})
	w.deliverEvent(state, WindowResized{Size: size})
	w.deliverCommands(state)
	w.stabilize(state)
	w.runLayout(state)
	w.paintPending = true
	w.captureRequests(state)
}

// Resize updates the host size and reruns layout.
func (w *Window[T]) Resize(size Size) {
	w.size = size
	state := w.newRound()
	w.deliverEvent(state, WindowResized{Size: size})
	w.deliverCommands(state)
	w.stabilize(state)
	w.runLayout(state)
	w.paintPending = true
	w.captureRequests(state)
}

// DispatchEvent runs one full round for an external event. Commands
// left over from the previous round are delivered first, then the
// event, then whatever the event submitted.
func (w *Window[T]) DispatchEvent(ev Event) {
	if !w.connected {
		logger.Warn("event dispatched before Connect", "event", ev)
		return
	}
	state := w.newRound()
	w.deliverCommands(state)
	w.deliverEvent(state, ev)
	w.deliverCommands(state)
	w.stabilize(state)
	w.finishRound(state)
}

// UpdateData mutates the data outside any event and runs the update
// half of a round.
func (w *Window[T]) UpdateData(mut func(*T)) {
	mut(&w.data)
	state := w.newRound()
	w.stabilize(state)
	w.deliverCommands(state)
	w.stabilize(state)
	w.finishRound(state)
}

// FireTimer delivers a previously requested timer.
func (w *Window[T]) FireTimer(token TimerToken) {
	w.DispatchEvent(TimerFired{Token: token})
}

// AnimFrame ticks in-flight animations with the elapsed nanoseconds.
// It is a no-op when nothing opted in.
func (w *Window[T]) AnimFrame(nanos uint64) {
	if !w.animPending {
		return
	}
	w.animPending = false
	state := w.newRound()
	lc := &LifecycleCtx{ctxBase{state: state, pod: &w.rootState}}
	w.root.Lifecycle(lc, AnimFrame{Nanos: nanos}, w.data, w.env)
	w.deliverCommands(state)
	w.stabilize(state)
	w.finishRound(state)
}

// RunLayout forces a layout pass at the current size.
func (w *Window[T]) RunLayout() {
	state := w.newRound()
	w.runLayout(state)
	w.captureRequests(state)
}

// Paint draws the whole tree onto surface and clears the paint request.
func (w *Window[T]) Paint(surface Surface) {
	state := w.newRound()
	ctx := &PaintCtx{
		ctxBase: ctxBase{state: state, pod: &w.rootState},
		surface: surface,
		size:    w.size,
	}
	w.root.Paint(ctx, w.data, w.env)
	w.paintPending = false
	w.rootState.needsPaint = false
	w.captureRequests(state)
}

func (w *Window[T]) deliverEvent(state *roundState, ev Event) {
	state.handled = false
	ctx := &EventCtx{ctxBase{state: state, pod: &w.rootState}}
	w.root.Event(ctx, ev, &w.data, w.env)
}

// deliverCommands drains the queue repeatedly, since handling one
// command may submit another. Each command is its own event delivery
// with a fresh handled flag.
func (w *Window[T]) deliverCommands(state *roundState) {
	for pass := 0; w.queue.HasPending(); pass++ {
		if pass >= maxCommandPasses {
			logger.Warn("command delivery did not settle, dropping the rest", "pending", len(w.queue.Drain()))
			return
		}
		for _, cmd := range w.queue.Drain() {
			w.deliverEvent(state, CommandEvent{Command: cmd})
		}
	}
}

// stabilize alternates routing and update passes until the tree stops
// asking for more. Structural changes made during update produce fresh
// uninitialized pods, which need routing and then a first update of
// their own.
func (w *Window[T]) stabilize(state *roundState) {
	for pass := 0; pass < maxStabilizePasses; pass++ {
		if state.childrenChanged {
			state.childrenChanged = false
			w.rootState.childrenChanged = false
			lc := &LifecycleCtx{ctxBase{state: state, pod: &w.rootState}}
			w.root.Lifecycle(lc, RouteWidgetAdded{}, w.data, w.env)
		}

		state.updateRequested = false
		w.rootState.updateRequested = false
		upd := &UpdateCtx{ctxBase{state: state, pod: &w.rootState}}
		w.root.Update(upd, w.data, w.env)

		if !state.childrenChanged && !state.updateRequested {
			return
		}
	}
	logger.Warn("update passes did not stabilize")
}

func (w *Window[T]) runLayout(state *roundState) {
	ctx := &LayoutCtx{ctxBase{state: state, pod: &w.rootState}}
	bc := TightConstraints(w.size)
	size := w.root.Layout(ctx, bc, w.data, w.env)
	w.root.SetLayoutRect(ctx, w.data, w.env, RectFromOriginSize(Point{}, size))
	state.relayout = false
	w.rootState.needsLayout = false
	w.paintPending = true
}

// finishRound folds the round's aggregated requests into the window
// and runs a layout pass if one was asked for.
func (w *Window[T]) finishRound(state *roundState) {
	if state.relayout || w.rootState.needsLayout {
		w.runLayout(state)
	}
	w.captureRequests(state)
}

func (w *Window[T]) captureRequests(state *roundState) {
	if state.repaint || w.rootState.needsPaint {
		w.paintPending = true
	}
	if state.animFrame || w.rootState.animRequested {
		w.animPending = true
	}
	w.rootState.animRequested = false
	state.animFrame = false
	state.repaint = false
}

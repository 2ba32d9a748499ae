package loom

// applyBindings is the self-addressed command a BindingHost submits when
// it detects a controlled-widget change in a phase that must not mutate
// data. The mutation then happens at the start of the next round.
const applyBindings Selector = "loom.apply-bindings"

// Binding ties a property of a controlled widget to a portion of the
// data, in either or both directions. Change values are detected in one
// phase and applied in a later one, so the change type carries whatever
// the binding needs to replay the mutation.
type Binding[T Data[T], C any] interface {
	// PushToControlled writes the data's current value into the
	// controlled widget.
	PushToControlled(data T, controlled *C, ctx *UpdateCtx, env Env)

	// DetectChange reports a pending controlled-side change, if any.
	DetectChange(controlled *C, data T, env Env) (any, bool)

	// ApplyChange writes a previously detected change into the data.
	ApplyChange(controlled *C, data *T, change any, ctx *EventCtx, env Env)
}

// Bindings composes an ordered list of bindings over the same
// controlled widget into one. The composite change is a slice with one
// slot per member, nil where that member saw nothing.
type Bindings[T Data[T], C any] []Binding[T, C]

func (bs Bindings[T, C]) PushToControlled(data T, controlled *C, ctx *UpdateCtx, env Env) {
	for _, b := range bs {
		b.PushToControlled(data, controlled, ctx, env)
	}
}

func (bs Bindings[T, C]) DetectChange(controlled *C, data T, env Env) (any, bool) {
	changes := make([]any, len(bs))
	found := false
	for i, b := range bs {
		if ch, ok := b.DetectChange(controlled, data, env); ok {
			changes[i] = ch
			found = true
		}
	}
	if !found {
		return nil, false
	}
	return changes, true
}

func (bs Bindings[T, C]) ApplyChange(controlled *C, data *T, change any, ctx *EventCtx, env Env) {
	changes, ok := change.([]any)
	if !ok || len(changes) != len(bs) {
		logger.Warn("binding composite received a mismatched change", "change", change)
		return
	}
	for i, b := range bs {
		if changes[i] != nil {
			b.ApplyChange(controlled, data, changes[i], ctx, env)
		}
	}
}

// Property is a named aspect of a controlled widget that a binding can
// read, write, and watch.
type Property[C any, V Data[V]] interface {
	// Write sets the property on the controlled widget.
	Write(controlled *C, value V, ctx *UpdateCtx, env Env)

	// Read returns the property's current value.
	Read(controlled *C, env Env) V
}

// propBinding connects a lensed portion of the data to one property of
// the controlled widget, in both directions.
type propBinding[T Data[T], C any, V Data[V]] struct {
	lens Lens[T, V]
	prop Property[C, V]
}

// Bind connects lens over the data with prop on the controlled widget.
func Bind[T Data[T], C any, V Data[V]](lens Lens[T, V], prop Property[C, V]) Binding[T, C] {
	return propBinding[T, C, V]{lens: lens, prop: prop}
}

func (pb propBinding[T, C, V]) PushToControlled(data T, controlled *C, ctx *UpdateCtx, env Env) {
	pb.lens.With(&data, func(v *V) {
		current := pb.prop.Read(controlled, env)
		if !current.Same(*v) {
			pb.prop.Write(controlled, (*v).Clone(), ctx, env)
		}
	})
}

func (pb propBinding[T, C, V]) DetectChange(controlled *C, data T, env Env) (any, bool) {
	current := pb.prop.Read(controlled, env)
	changed := false
	pb.lens.With(&data, func(v *V) {
		changed = !(*v).Same(current)
	})
	if !changed {
		return nil, false
	}
	return current.Clone(), true
}

func (pb propBinding[T, C, V]) ApplyChange(controlled *C, data *T, change any, ctx *EventCtx, env Env) {
	v, ok := change.(V)
	if !ok {
		logger.Warn("binding received a change of the wrong type", "change", change)
		return
	}
	pb.lens.WithMut(data, func(slot *V) {
		if !(*slot).Same(v) {
			*slot = v.Clone()
		}
	})
}

// forwardOnly restricts a binding to the data-to-controlled direction.
type forwardOnly[T Data[T], C any] struct {
	inner Binding[T, C]
}

// Forward keeps only the data-to-controlled half of b.
func Forward[T Data[T], C any](b Binding[T, C]) Binding[T, C] {
	return forwardOnly[T, C]{inner: b}
}

func (f forwardOnly[T, C]) PushToControlled(data T, controlled *C, ctx *UpdateCtx, env Env) {
	f.inner.PushToControlled(data, controlled, ctx, env)
}

func (f forwardOnly[T, C]) DetectChange(*C, T, Env) (any, bool) {
	return nil, false
}

func (f forwardOnly[T, C]) ApplyChange(*C, *T, any, *EventCtx, Env) {}

// backwardOnly restricts a binding to the controlled-to-data direction.
type backwardOnly[T Data[T], C any] struct {
	inner Binding[T, C]
}

// Backward keeps only the controlled-to-data half of b.
func Backward[T Data[T], C any](b Binding[T, C]) Binding[T, C] {
	return backwardOnly[T, C]{inner: b}
}

func (b backwardOnly[T, C]) PushToControlled(T, *C, *UpdateCtx, Env) {}

func (b backwardOnly[T, C]) DetectChange(controlled *C, data T, env Env) (any, bool) {
	return b.inner.DetectChange(controlled, data, env)
}

func (b backwardOnly[T, C]) ApplyChange(controlled *C, data *T, change any, ctx *EventCtx, env Env) {
	b.inner.ApplyChange(controlled, data, change, ctx, env)
}

// BindingHost wraps a contained widget and keeps a controlled widget's
// properties synchronized with the data through a binding.
//
// Controlled-side changes observed during the event phase are applied
// to the data immediately. Changes observed during read-only phases are
// remembered and a self-addressed command schedules their application
// at the start of the next event round, which is the soonest moment
// data mutation is legal again.
type BindingHost[T Data[T], C any] struct {
	contained  Widget[T]
	controlled *C
	binding    Binding[T, C]
	pending    any
	hasPending bool
	scheduled  bool
}

// NewBindingHost binds controlled's properties to the data while
// delegating the widget protocol to contained. The contained tree is
// expected to reach the same controlled widget.
func NewBindingHost[T Data[T], C any](contained Widget[T], controlled *C, binding Binding[T, C]) *BindingHost[T, C] {
	return &BindingHost[T, C]{contained: contained, controlled: controlled, binding: binding}
}

func (h *BindingHost[T, C]) Event(ctx *EventCtx, ev Event, data *T, env Env) {
	if cmd, ok := ev.(CommandEvent); ok && cmd.Command.Is(applyBindings) {
		if cmd.Command.Target == ctx.WidgetID() {
			h.scheduled = false
			if h.hasPending {
				change := h.pending
				h.pending = nil
				h.hasPending = false
				h.binding.ApplyChange(h.controlled, data, change, ctx, env)
			}
			ctx.SetHandled()
			return
		}
	}

	h.contained.Event(ctx, ev, data, env)
	// The event may have moved the controlled widget; fold that back
	// into the data in the same round.
	if change, ok := h.binding.DetectChange(h.controlled, *data, env); ok {
		h.binding.ApplyChange(h.controlled, data, change, ctx, env)
	}
}

func (h *BindingHost[T, C]) Lifecycle(ctx *LifecycleCtx, lc Lifecycle, data T, env Env) {
	h.contained.Lifecycle(ctx, lc, data, env)
	h.detectDeferred(ctx, data, env)
}

func (h *BindingHost[T, C]) Update(ctx *UpdateCtx, oldData, data T, env Env) {
	if !oldData.Same(data) {
		h.binding.PushToControlled(data, h.controlled, ctx, env)
	}
	h.contained.Update(ctx, oldData, data, env)
	h.detectDeferred(&LifecycleCtx{ctx.ctxBase}, data, env)
}

func (h *BindingHost[T, C]) Layout(ctx *LayoutCtx, bc BoxConstraints, data T, env Env) Size {
	size := h.contained.Layout(ctx, bc, data, env)
	h.detectDeferred(&LifecycleCtx{ctx.ctxBase}, data, env)
	return size
}

func (h *BindingHost[T, C]) Paint(ctx *PaintCtx, data T, env Env) {
	h.contained.Paint(ctx, data, env)
}

// detectDeferred records a controlled-side change seen in a read-only
// phase and schedules its application for the next round.
func (h *BindingHost[T, C]) detectDeferred(ctx *LifecycleCtx, data T, env Env) {
	change, ok := h.binding.DetectChange(h.controlled, data, env)
	if !ok {
		return
	}
	h.pending = change
	h.hasPending = true
	if !h.scheduled {
		h.scheduled = true
		ctx.SubmitCommand(Command{Selector: applyBindings, Target: ctx.WidgetID()})
	}
}

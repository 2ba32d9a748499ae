package loom

// LensWrap hosts a widget operating on an inner data type inside a tree
// whose data is the outer type, projecting through a lens on every
// dispatch.
type LensWrap[O Data[O], I Data[I]] struct {
	lens  Lens[O, I]
	child *Pod[I]
}

// WithLens adapts child to the outer data type through lens.
func WithLens[O Data[O], I Data[I]](lens Lens[O, I], child Widget[I]) *LensWrap[O, I] {
	return &LensWrap[O, I]{lens: lens, child: NewPod(child)}
}

func (w *LensWrap[O, I]) Event(ctx *EventCtx, ev Event, data *O, env Env) {
	w.lens.WithMut(data, func(inner *I) {
		w.child.Event(ctx, ev, inner, env)
	})
}

func (w *LensWrap[O, I]) Lifecycle(ctx *LifecycleCtx, lc Lifecycle, data O, env Env) {
	w.lens.With(&data, func(inner *I) {
		w.child.Lifecycle(ctx, lc, *inner, env)
	})
}

func (w *LensWrap[O, I]) Update(ctx *UpdateCtx, oldData, data O, env Env) {
	w.lens.With(&data, func(inner *I) {
		w.child.Update(ctx, *inner, env)
	})
}

func (w *LensWrap[O, I]) Layout(ctx *LayoutCtx, bc BoxConstraints, data O, env Env) Size {
	var size Size
	w.lens.With(&data, func(inner *I) {
		size = w.child.Layout(ctx, bc, *inner, env)
		w.child.SetLayoutRect(ctx, *inner, env, RectFromOriginSize(Point{}, size))
	})
	return size
}

func (w *LensWrap[O, I]) Paint(ctx *PaintCtx, data O, env Env) {
	w.lens.With(&data, func(inner *I) {
		w.child.PaintRaw(ctx, *inner, env)
	})
}

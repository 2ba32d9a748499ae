package loom

// Padding surrounds a single child with insets.
type Padding[T Data[T]] struct {
	insets Insets
	child  *Pod[T]
}

// NewPadding wraps child with the given insets.
func NewPadding[T Data[T]](insets Insets, child Widget[T]) *Padding[T] {
	return &Padding[T]{insets: insets, child: NewPod(child)}
}

// Pad wraps child with uniform insets.
func Pad[T Data[T]](amount float64, child Widget[T]) *Padding[T] {
	return NewPadding(UniformInsets(amount), child)
}

func (p *Padding[T]) Event(ctx *EventCtx, ev Event, data *T, env Env) {
	p.child.Event(ctx, ev, data, env)
}

func (p *Padding[T]) Lifecycle(ctx *LifecycleCtx, lc Lifecycle, data T, env Env) {
	p.child.Lifecycle(ctx, lc, data, env)
}

func (p *Padding[T]) Update(ctx *UpdateCtx, oldData, data T, env Env) {
	p.child.Update(ctx, data, env)
}

func (p *Padding[T]) Layout(ctx *LayoutCtx, bc BoxConstraints, data T, env Env) Size {
	hPad := p.insets.Left + p.insets.Right
	vPad := p.insets.Top + p.insets.Bottom
	childBC := bc.ShrinkMax(hPad, vPad)
	childSize := p.child.Layout(ctx, childBC, data, env)
	origin := Point{X: p.insets.Left, Y: p.insets.Top}
	p.child.SetLayoutRect(ctx, data, env, RectFromOriginSize(origin, childSize))
	return bc.Constrain(Size{
		Width:  childSize.Width + hPad,
		Height: childSize.Height + vPad,
	})
}

func (p *Padding[T]) Paint(ctx *PaintCtx, data T, env Env) {
	p.child.Paint(ctx, data, env)
}

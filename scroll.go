package loom

import "math"

// ScrollDirection selects which axes a Scroll viewport moves on.
type ScrollDirection int

const (
	ScrollBoth ScrollDirection = iota
	ScrollVertical
	ScrollHorizontal
)

func (d ScrollDirection) allows(axis Axis) bool {
	switch d {
	case ScrollVertical:
		return axis == Vertical
	case ScrollHorizontal:
		return axis == Horizontal
	}
	return true
}

// Scroll shows a movable viewport onto a child that may be larger than
// the space available. The child is laid out unbounded on the scrolled
// axes; wheel events move the offset, and pointer events are shifted
// into the child's content space.
type Scroll[T Data[T]] struct {
	direction    ScrollDirection
	child        *Pod[T]
	offset       Vec2
	contentSize  Size
	viewportSize Size
}

// NewScroll wraps child in a viewport scrolling on both axes.
func NewScroll[T Data[T]](child Widget[T]) *Scroll[T] {
	return &Scroll[T]{direction: ScrollBoth, child: NewPod(child)}
}

// WithDirection restricts scrolling to one axis.
func (s *Scroll[T]) WithDirection(d ScrollDirection) *Scroll[T] {
	s.direction = d
	return s
}

// Offset returns the current scroll offset.
func (s *Scroll[T]) Offset() Vec2 {
	return s.offset
}

// OffsetForAxis returns the offset component on one axis.
func (s *Scroll[T]) OffsetForAxis(axis Axis) float64 {
	if axis == Horizontal {
		return s.offset.X
	}
	return s.offset.Y
}

// ScrollToAxis moves the offset on one axis, clamped to the scrollable
// range. It reports whether the offset changed.
func (s *Scroll[T]) ScrollToAxis(axis Axis, value float64) bool {
	target := s.offset
	if axis == Horizontal {
		target.X = value
	} else {
		target.Y = value
	}
	return s.moveTo(target)
}

func (s *Scroll[T]) maxOffset() Vec2 {
	return Vec2{
		X: math.Max(0, s.contentSize.Width-s.viewportSize.Width),
		Y: math.Max(0, s.contentSize.Height-s.viewportSize.Height),
	}
}

func (s *Scroll[T]) moveTo(target Vec2) bool {
	limit := s.maxOffset()
	next := Vec2{
		X: math.Min(limit.X, math.Max(0, target.X)),
		Y: math.Min(limit.Y, math.Max(0, target.Y)),
	}
	if !s.direction.allows(Horizontal) {
		next.X = s.offset.X
	}
	if !s.direction.allows(Vertical) {
		next.Y = s.offset.Y
	}
	if next.Same(s.offset) {
		return false
	}
	s.offset = next
	return true
}

func (s *Scroll[T]) scrollBy(delta Vec2) bool {
	return s.moveTo(s.offset.Add(delta))
}

func (s *Scroll[T]) Event(ctx *EventCtx, ev Event, data *T, env Env) {
	if w, ok := ev.(Wheel); ok {
		if s.scrollBy(w.Delta) {
			ctx.RequestPaint()
			ctx.SetHandled()
			return
		}
	}

	viewport := RectFromOriginSize(Point{}, ctx.LayoutSize())
	force := s.child.IsHot() || s.child.IsActive()
	childEv, ok := TransformScroll(ev, s.offset, viewport, force)
	if !ok {
		return
	}
	s.child.Event(ctx, childEv, data, env)
}

func (s *Scroll[T]) Lifecycle(ctx *LifecycleCtx, lc Lifecycle, data T, env Env) {
	s.child.Lifecycle(ctx, lc, data, env)
}

func (s *Scroll[T]) Update(ctx *UpdateCtx, oldData, data T, env Env) {
	s.child.Update(ctx, data, env)
}

func (s *Scroll[T]) Layout(ctx *LayoutCtx, bc BoxConstraints, data T, env Env) Size {
	childBC := BoxConstraints{Max: bc.Max}
	if s.direction.allows(Horizontal) {
		childBC.Max.Width = Unbounded
	}
	if s.direction.allows(Vertical) {
		childBC.Max.Height = Unbounded
	}
	childSize := s.child.Layout(ctx, childBC, data, env)
	if !childSize.IsFinite() {
		logger.Warn("scroll child wants infinite size", "size", childSize)
	}
	s.contentSize = childSize
	s.child.SetLayoutRect(ctx, data, env, RectFromOriginSize(Point{}, childSize))

	self := bc.Constrain(childSize)
	s.viewportSize = self
	// A shrink can leave the old offset past the end of the content.
	s.moveTo(s.offset)
	return self
}

func (s *Scroll[T]) Paint(ctx *PaintCtx, data T, env Env) {
	ctx.WithSave(func(c *PaintCtx) {
		c.Clip(RectFromOriginSize(Point{}, c.Size()))
		c.Transform(Translate(s.offset.Negate()))
		s.child.PaintRaw(c, data, env)
	})
}

// ScrollToProperty exposes a Scroll's offset on one axis as a bindable
// property, so a data field can drive and follow the scroll position.
type ScrollToProperty[T Data[T]] struct {
	Axis Axis
}

func (p ScrollToProperty[T]) Write(controlled *Scroll[T], value F64, ctx *UpdateCtx, env Env) {
	if controlled.ScrollToAxis(p.Axis, float64(value)) {
		ctx.RequestPaint()
	}
}

func (p ScrollToProperty[T]) Read(controlled *Scroll[T], env Env) F64 {
	return F64(controlled.OffsetForAxis(p.Axis))
}

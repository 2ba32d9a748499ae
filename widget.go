package loom

import "math"

// Widget is the capability every tree node implements, generic over the
// data slice it operates on. The five methods are invoked in a fixed
// logical order per round: event, then update if data changed, then
// layout, then paint; lifecycle notices interleave as structure changes.
//
// None of the methods return errors. A widget that cannot do its job
// degrades (zero size, placeholder paint) and logs.
type Widget[T Data[T]] interface {
	// Event delivers one input event. The widget may mutate data in
	// place and may mark the event handled to stop sibling propagation.
	Event(ctx *EventCtx, ev Event, data *T, env Env)

	// Lifecycle delivers a structural notification. WidgetAdded arrives
	// exactly once, before any other call on this widget.
	Lifecycle(ctx *LifecycleCtx, lc Lifecycle, data T, env Env)

	// Update is called when the enclosing Pod observed the data change.
	// It diffs and sets dirty flags; it must not draw.
	Update(ctx *UpdateCtx, oldData, data T, env Env)

	// Layout picks a size within the constraints and must position every
	// child Pod (SetLayoutRect) before returning.
	Layout(ctx *LayoutCtx, bc BoxConstraints, data T, env Env) Size

	// Paint draws the widget. It must not mutate data.
	Paint(ctx *PaintCtx, data T, env Env)
}

// BoxConstraints bound a layout negotiation: the parent's minimum and
// maximum acceptable sizes.
type BoxConstraints struct {
	Min, Max Size
}

// Unbounded marks an axis with no upper size limit.
const Unbounded = math.MaxFloat64

// TightConstraints admit exactly one size.
func TightConstraints(s Size) BoxConstraints {
	return BoxConstraints{Min: s, Max: s}
}

// LooseConstraints admit anything up to max.
func LooseConstraints(max Size) BoxConstraints {
	return BoxConstraints{Max: max}
}

// Constrain clamps a size into the box.
func (bc BoxConstraints) Constrain(s Size) Size {
	return s.Clamp(bc.Min, bc.Max)
}

// Loosen drops the minimum, keeping the maximum.
func (bc BoxConstraints) Loosen() BoxConstraints {
	return BoxConstraints{Max: bc.Max}
}

// IsBoundedOn reports whether the axis has a finite maximum.
func (bc BoxConstraints) IsBoundedOn(axis Axis) bool {
	return axis.Major(bc.Max) < Unbounded
}

// ShrinkMax returns constraints whose maximum is reduced by the given
// amounts, floored at the minimum.
func (bc BoxConstraints) ShrinkMax(dw, dh float64) BoxConstraints {
	out := bc
	if out.Max.Width < Unbounded {
		out.Max.Width = math.Max(out.Min.Width, out.Max.Width-dw)
	}
	if out.Max.Height < Unbounded {
		out.Max.Height = math.Max(out.Min.Height, out.Max.Height-dh)
	}
	return out
}

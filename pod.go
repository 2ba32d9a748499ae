package loom

import (
	"fmt"
	"math"
	"sync/atomic"
)

// WidgetID is a node identity: globally unique, assigned at construction,
// never reassigned for the life of the Pod.
type WidgetID uint64

var widgetIDCounter atomic.Uint64

// NextWidgetID mints a fresh identity.
func NextWidgetID() WidgetID {
	return WidgetID(widgetIDCounter.Add(1))
}

// podState is the per-node bookkeeping a Pod owns on behalf of its child:
// interaction flags, the cached layout rect, and dirty bits. Flags that
// matter to ancestors bubble via mergeUp after each child dispatch.
type podState struct {
	id WidgetID

	hot    bool
	active bool
	focus  bool

	layoutRect Rect

	needsLayout     bool
	needsPaint      bool
	animRequested   bool
	updateRequested bool
	childrenChanged bool

	widgetAdded bool
}

func (s *podState) mergeUp(child *podState) {
	s.needsLayout = s.needsLayout || child.needsLayout
	s.needsPaint = s.needsPaint || child.needsPaint
	s.animRequested = s.animRequested || child.animRequested
	s.updateRequested = s.updateRequested || child.updateRequested
	s.childrenChanged = s.childrenChanged || child.childrenChanged
}

// Pod wraps exactly one child widget and is the unit across which the
// five-phase protocol is dispatched. It decides routing (hit tests, hot
// and active tracking, identity-targeted internal events), translates
// pointer coordinates into the child's space, caches the previous data
// value for diffing, and keeps the child's layout rect.
type Pod[T Data[T]] struct {
	child  Widget[T]
	state  podState
	oldVal T
	hasOld bool
}

// NewPod wraps a widget in a containment node with a fresh identity.
func NewPod[T Data[T]](child Widget[T]) *Pod[T] {
	return &Pod[T]{
		child: child,
		state: podState{id: NextWidgetID()},
	}
}

// ID returns the pod's stable identity.
func (p *Pod[T]) ID() WidgetID {
	return p.state.id
}

// Widget returns the wrapped child.
func (p *Pod[T]) Widget() Widget[T] {
	return p.child
}

// IsInitialized reports whether WidgetAdded has been delivered.
func (p *Pod[T]) IsInitialized() bool {
	return p.state.widgetAdded
}

// IsHot reports whether the pointer is over this node.
func (p *Pod[T]) IsHot() bool {
	return p.state.hot
}

// IsActive reports whether this node holds the pointer grab.
func (p *Pod[T]) IsActive() bool {
	return p.state.active
}

// HasFocus reports whether this node holds keyboard focus.
func (p *Pod[T]) HasFocus() bool {
	return p.state.focus
}

// LayoutRect returns the cached layout rect in the parent's coordinate
// space. It is only valid between a layout pass and the next data
// mutation.
func (p *Pod[T]) LayoutRect() Rect {
	return p.state.layoutRect
}

// Event routes one event to the child.
//
// Pointer events are skipped when the position is outside the cached
// layout rect and the node is neither hot nor active; active nodes keep
// receiving everything so drags continue off-widget. Internal events are
// unwrapped when targeted at this node. Positions are translated into
// child-local space.
func (p *Pod[T]) Event(ctx *EventCtx, ev Event, data *T, env Env) {
	if !p.state.widgetAdded {
		logger.Warn("event dropped before WidgetAdded", "id", p.state.id, "event", fmt.Sprintf("%T", ev))
		return
	}
	if ctx.IsHandled() {
		return
	}

	childEv := ev
	switch e := ev.(type) {
	case Internal:
		if e.Target == p.state.id {
			childEv = e.Inner
		}
	default:
		if pos, ok := pointerPos(ev); ok {
			inside := p.state.layoutRect.Contains(pos)
			if _, isMove := ev.(PointerMove); isMove {
				p.setHotState(ctx.state, inside, *data, env)
			}
			if !inside && !p.state.hot && !p.state.active {
				return
			}
			origin := p.state.layoutRect.Origin()
			childEv = translatePointer(ev, Vec2{-origin.X, -origin.Y})
		}
	}

	childCtx := &EventCtx{ctxBase{state: ctx.state, pod: &p.state}}
	p.child.Event(childCtx, childEv, data, env)
	ctx.pod.mergeUp(&p.state)
}

// setHotState flips the hot flag and tells the child immediately, so
// hover feedback does not wait a round.
func (p *Pod[T]) setHotState(state *roundState, hot bool, data T, env Env) {
	if p.state.hot == hot {
		return
	}
	p.state.hot = hot
	p.state.needsPaint = true
	state.repaint = true
	childCtx := &LifecycleCtx{ctxBase{state: state, pod: &p.state}}
	p.child.Lifecycle(childCtx, HotChanged{Hot: hot}, data, env)
}

// Lifecycle routes one structural notification to the child.
//
// WidgetAdded is accepted exactly once; RouteWidgetAdded converts into
// WidgetAdded for nodes that have not been initialized yet and passes
// through otherwise, which is how fresh children created mid-flight get
// their construction pass.
func (p *Pod[T]) Lifecycle(ctx *LifecycleCtx, lc Lifecycle, data T, env Env) {
	childLc := lc
	switch l := lc.(type) {
	case WidgetAdded:
		if p.state.widgetAdded {
			logger.Warn("WidgetAdded delivered twice", "id", p.state.id)
			return
		}
		p.state.widgetAdded = true
	case RouteWidgetAdded:
		if !p.state.widgetAdded {
			p.state.widgetAdded = true
			childLc = WidgetAdded{}
		}
	case AnimFrame:
		// Opt-in is per frame: clear before dispatch, the child
		// re-requests if the animation is still live.
		p.state.animRequested = false
	case FocusChanged:
		p.state.focus = l.Focused
	default:
	}
	if !p.state.widgetAdded {
		logger.Warn("lifecycle dropped before WidgetAdded", "id", p.state.id, "lifecycle", fmt.Sprintf("%T", lc))
		return
	}

	childCtx := &LifecycleCtx{ctxBase{state: ctx.state, pod: &p.state}}
	p.child.Lifecycle(childCtx, childLc, data, env)
	ctx.pod.mergeUp(&p.state)
}

// Update diffs the cached old data against the current value and lets the
// child react. The dispatch is skipped when the data compares Same, unless
// some descendant asked for an unconditional update (RequestUpdate).
func (p *Pod[T]) Update(ctx *UpdateCtx, data T, env Env) {
	if !p.state.widgetAdded {
		logger.Warn("update dropped before WidgetAdded", "id", p.state.id)
		return
	}

	childCtx := &UpdateCtx{ctxBase{state: ctx.state, pod: &p.state}}
	if !p.hasOld {
		// First update after construction: old and new coincide.
		p.oldVal = data.Clone()
		p.hasOld = true
		p.child.Update(childCtx, data, data, env)
		ctx.pod.mergeUp(&p.state)
		return
	}
	if p.oldVal.Same(data) && !p.state.updateRequested {
		return
	}
	p.state.updateRequested = false
	old := p.oldVal
	p.oldVal = data.Clone()
	p.child.Update(childCtx, old, data, env)
	ctx.pod.mergeUp(&p.state)
}

// Layout asks the child to size itself within bc. The result is clamped
// to the constraints; NaN components fall back to the minimum with a
// warning, since a GUI should degrade rather than crash on bad math.
// The caller still owns this pod's position (SetLayoutRect).
func (p *Pod[T]) Layout(ctx *LayoutCtx, bc BoxConstraints, data T, env Env) Size {
	if !p.state.widgetAdded {
		logger.Warn("layout dropped before WidgetAdded", "id", p.state.id)
		return bc.Min
	}

	childCtx := &LayoutCtx{ctxBase{state: ctx.state, pod: &p.state}}
	size := p.child.Layout(childCtx, bc, data, env)
	if math.IsNaN(size.Width) {
		logger.Warn("layout produced NaN width", "id", p.state.id)
		size.Width = bc.Min.Width
	}
	if math.IsNaN(size.Height) {
		logger.Warn("layout produced NaN height", "id", p.state.id)
		size.Height = bc.Min.Height
	}
	size = bc.Constrain(size)
	p.state.needsLayout = false
	p.state.layoutRect = p.state.layoutRect.WithSize(size)
	ctx.pod.mergeUp(&p.state)
	return size
}

// SetLayoutRect positions the pod within its parent. A size change is
// announced to the child right away.
func (p *Pod[T]) SetLayoutRect(ctx *LayoutCtx, data T, env Env, r Rect) {
	oldSize := p.state.layoutRect.RectSize()
	p.state.layoutRect = r
	if oldSize != r.RectSize() {
		childCtx := &LifecycleCtx{ctxBase{state: ctx.state, pod: &p.state}}
		p.child.Lifecycle(childCtx, SizeChanged{Size: r.RectSize()}, data, env)
		ctx.pod.mergeUp(&p.state)
	}
}

// Paint draws the child translated to its layout origin and clipped to
// its bounds.
func (p *Pod[T]) Paint(ctx *PaintCtx, data T, env Env) {
	if !p.state.widgetAdded {
		logger.Warn("paint dropped before WidgetAdded", "id", p.state.id)
		return
	}
	ctx.WithSave(func(c *PaintCtx) {
		origin := p.state.layoutRect.Origin()
		c.Transform(Translate(Vec2{origin.X, origin.Y}))
		c.Clip(RectFromOriginSize(Point{}, p.state.layoutRect.RectSize()))
		p.paintChild(c, data, env)
	})
}

// PaintRaw draws the child in the current coordinate space with no clip,
// for callers applying their own transforms (transitions, scrolls,
// rotations).
func (p *Pod[T]) PaintRaw(ctx *PaintCtx, data T, env Env) {
	if !p.state.widgetAdded {
		logger.Warn("paint dropped before WidgetAdded", "id", p.state.id)
		return
	}
	p.paintChild(ctx, data, env)
}

func (p *Pod[T]) paintChild(ctx *PaintCtx, data T, env Env) {
	childCtx := &PaintCtx{
		ctxBase: ctxBase{state: ctx.state, pod: &p.state},
		surface: ctx.surface,
		size:    p.state.layoutRect.RectSize(),
	}
	p.state.needsPaint = false
	p.child.Paint(childCtx, data, env)
	ctx.pod.mergeUp(&p.state)
}

package loom

import "time"

// roundState is the shared bookkeeping for one dispatch round. All five
// context types point at the same instance, so requests made anywhere in
// the tree are visible to the window driver when the round completes.
type roundState struct {
	queue      *CommandQueue
	windowSize Size

	handled bool

	// Aggregated requests for the driver.
	repaint         bool
	relayout        bool
	animFrame       bool
	childrenChanged bool
	updateRequested bool
}

// ctxBase carries the round state plus the state of the Pod currently
// being dispatched. Pods swap the pod pointer as dispatch descends.
type ctxBase struct {
	state *roundState
	pod   *podState
}

// WidgetID returns the identity of the node being dispatched.
func (c *ctxBase) WidgetID() WidgetID {
	return c.pod.id
}

// WindowSize returns the host surface size for this round.
func (c *ctxBase) WindowSize() Size {
	return c.state.windowSize
}

// RequestPaint asks for a repaint of this node after the round.
func (c *ctxBase) RequestPaint() {
	c.pod.needsPaint = true
	c.state.repaint = true
}

// RequestLayout asks for a layout pass after the round.
func (c *ctxBase) RequestLayout() {
	c.pod.needsLayout = true
	c.state.relayout = true
}

// RequestAnimFrame opts this node into the next animation tick. A node
// that stops requesting is considered done animating.
func (c *ctxBase) RequestAnimFrame() {
	c.pod.animRequested = true
	c.state.animFrame = true
	c.state.repaint = true
}

// RequestUpdate forces the next update pass to reach this node even if the
// outer data compares Same. Scopes rely on this: their private state can
// advance while the outer data does not.
func (c *ctxBase) RequestUpdate() {
	c.pod.updateRequested = true
	c.state.updateRequested = true
}

// ChildrenChanged tells the driver this node's child set changed
// structurally, so new children need their WidgetAdded pass.
func (c *ctxBase) ChildrenChanged() {
	c.pod.childrenChanged = true
	c.state.childrenChanged = true
	c.RequestLayout()
}

// SubmitCommand enqueues a command for delivery on the next round.
func (c *ctxBase) SubmitCommand(cmd Command) {
	c.state.queue.Submit(cmd)
}

// RequestTimer asks the host for a timer event after d.
func (c *ctxBase) RequestTimer(d time.Duration) TimerToken {
	return c.state.queue.RequestTimer(d)
}

// IsHot reports whether the pointer is over this node.
func (c *ctxBase) IsHot() bool {
	return c.pod.hot
}

// IsActive reports whether this node holds the pointer grab.
func (c *ctxBase) IsActive() bool {
	return c.pod.active
}

// HasFocus reports whether this node holds keyboard focus.
func (c *ctxBase) HasFocus() bool {
	return c.pod.focus
}

// LayoutSize returns this node's size from the last layout pass.
func (c *ctxBase) LayoutSize() Size {
	return c.pod.layoutRect.RectSize()
}

// EventCtx is passed through the event phase.
type EventCtx struct {
	ctxBase
}

// SetActive claims or releases the pointer grab. While active, this node
// keeps receiving pointer events regardless of position (drag
// continuation).
func (c *EventCtx) SetActive(active bool) {
	c.pod.active = active
}

// SetHandled stops the event from propagating to later siblings.
func (c *EventCtx) SetHandled() {
	c.state.handled = true
}

// IsHandled reports whether some node already handled the event.
func (c *EventCtx) IsHandled() bool {
	return c.state.handled
}

// LifecycleCtx is passed through the lifecycle phase.
type LifecycleCtx struct {
	ctxBase
}

// UpdateCtx is passed through the update phase.
type UpdateCtx struct {
	ctxBase
}

// LayoutCtx is passed through the layout phase.
type LayoutCtx struct {
	ctxBase
}

// PaintCtx is passed through the paint phase. Paint is read-only with
// respect to data by contract; it exposes no mutation requests beyond
// what sizing the clip needs.
type PaintCtx struct {
	ctxBase
	surface Surface
	size    Size
}

// Size returns the node's laid-out size.
func (c *PaintCtx) Size() Size {
	return c.size
}

// Surface exposes the active paint backend.
func (c *PaintCtx) Surface() Surface {
	return c.surface
}

// WithSave runs f inside a save/restore pair so transform and clip
// changes do not leak.
func (c *PaintCtx) WithSave(f func(*PaintCtx)) {
	c.surface.Save()
	f(c)
	c.surface.Restore()
}

// Transform composes a transform onto the current one.
func (c *PaintCtx) Transform(a Affine) {
	c.surface.Transform(a)
}

// Clip intersects the clip region with r in local coordinates.
func (c *PaintCtx) Clip(r Rect) {
	c.surface.Clip(r)
}

// Fill draws a filled rectangle.
func (c *PaintCtx) Fill(r Rect, color Color) {
	c.surface.FillRect(r, color)
}

// Stroke draws a line segment.
func (c *PaintCtx) Stroke(l Line, color Color, width float64) {
	c.surface.StrokeLine(l, color, width)
}

// Text draws positioned text.
func (c *PaintCtx) Text(text string, origin Point, color Color, size float64) {
	c.surface.DrawText(text, origin, color, size)
}

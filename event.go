package loom

// Event is one typed input delivered to the tree. The set is closed:
// events are dispatched by type switch, and containers that filter by
// class (see Tabs) enumerate the variants explicitly.
type Event interface {
	isEvent()
}

// PointerState carries the shared fields of pointer-derived events. Pos is
// expressed in the receiving node's local coordinate space; Pods translate
// it while descending.
type PointerState struct {
	Pos Point
}

// PointerDown is a press of the primary button.
type PointerDown struct {
	Pointer PointerState
}

// PointerUp is a release of the primary button.
type PointerUp struct {
	Pointer PointerState
}

// PointerMove is pointer motion, pressed or not.
type PointerMove struct {
	Pointer PointerState
}

// Wheel is scroll-wheel motion at a pointer position.
type Wheel struct {
	Pointer PointerState
	Delta   Vec2
}

// Key describes one key press or release.
type Key struct {
	Name  string
	Runes []rune
}

// KeyDown is a key press.
type KeyDown struct {
	Key Key
}

// KeyUp is a key release.
type KeyUp struct {
	Key Key
}

// Paste delivers clipboard text.
type Paste struct {
	Text string
}

// Zoom is a magnification gesture.
type Zoom struct {
	Scale float64
}

// WindowConnected is sent once when the host surface becomes live.
type WindowConnected struct{}

// WindowResized reports the new host surface size.
type WindowResized struct {
	Size Size
}

// TimerFired reports a previously requested timer.
type TimerFired struct {
	Token TimerToken
}

// CommandEvent delivers one post-office command.
type CommandEvent struct {
	Command Command
}

// Internal routes an event to one node by identity. Pods unwrap it when
// the target matches their own id and forward it untouched otherwise.
type Internal struct {
	Target WidgetID
	Inner  Event
}

func (PointerDown) isEvent()     {}
func (PointerUp) isEvent()       {}
func (PointerMove) isEvent()     {}
func (Wheel) isEvent()           {}
func (KeyDown) isEvent()         {}
func (KeyUp) isEvent()           {}
func (Paste) isEvent()           {}
func (Zoom) isEvent()            {}
func (WindowConnected) isEvent() {}
func (WindowResized) isEvent()   {}
func (TimerFired) isEvent()      {}
func (CommandEvent) isEvent()    {}
func (Internal) isEvent()        {}

// pointerPos extracts the position carried by pointer-class events.
func pointerPos(ev Event) (Point, bool) {
	switch e := ev.(type) {
	case PointerDown:
		return e.Pointer.Pos, true
	case PointerUp:
		return e.Pointer.Pos, true
	case PointerMove:
		return e.Pointer.Pos, true
	case Wheel:
		return e.Pointer.Pos, true
	}
	return Point{}, false
}

// translatePointer returns a copy of the event with any pointer position
// shifted by v. Non-pointer events pass through unchanged.
func translatePointer(ev Event, v Vec2) Event {
	switch e := ev.(type) {
	case PointerDown:
		e.Pointer.Pos = e.Pointer.Pos.Add(v)
		return e
	case PointerUp:
		e.Pointer.Pos = e.Pointer.Pos.Add(v)
		return e
	case PointerMove:
		e.Pointer.Pos = e.Pointer.Pos.Add(v)
		return e
	case Wheel:
		e.Pointer.Pos = e.Pointer.Pos.Add(v)
		return e
	}
	return ev
}

// TransformScroll adapts an event for a child viewed through a scrolled
// viewport. Pointer events inside the viewport (or forced, for drag
// continuation on a hot or active child) are shifted by the scroll offset;
// pointer events outside a non-forced viewport are swallowed. Everything
// else passes through.
func TransformScroll(ev Event, offset Vec2, viewport Rect, force bool) (Event, bool) {
	pos, ok := pointerPos(ev)
	if !ok {
		return ev, true
	}
	if force || viewport.Contains(pos) {
		return translatePointer(ev, offset), true
	}
	return nil, false
}

// Lifecycle is a structural notification. Like Event, the set is closed.
type Lifecycle interface {
	isLifecycle()
}

// WidgetAdded fires exactly once per node, before any other call reaches
// it. It is the construction hook for lazily built subtrees.
type WidgetAdded struct{}

// SizeChanged reports a node's new layout size.
type SizeChanged struct {
	Size Size
}

// AnimFrame ticks an in-flight animation with the elapsed nanoseconds
// since the previous frame.
type AnimFrame struct {
	Nanos uint64
}

// HotChanged reports a change of the node's hot (hover) status.
type HotChanged struct {
	Hot bool
}

// FocusChanged reports a change of keyboard focus.
type FocusChanged struct {
	Focused bool
}

// RouteWidgetAdded sweeps the tree after a structural change so freshly
// created Pods receive their WidgetAdded. Pods that are already
// initialized pass it through; uninitialized ones convert it.
type RouteWidgetAdded struct{}

func (WidgetAdded) isLifecycle()      {}
func (SizeChanged) isLifecycle()      {}
func (AnimFrame) isLifecycle()        {}
func (HotChanged) isLifecycle()       {}
func (FocusChanged) isLifecycle()     {}
func (RouteWidgetAdded) isLifecycle() {}

package loom

import (
	"sort"
)

// TabKey identifies one tab independently of its current position.
type TabKey int

// TabInfo is what the bar shows for one tab.
type TabInfo struct {
	Name     string
	CanClose bool
}

// TabsPolicy supplies the tab set: which tabs exist for the current
// data, what the bar shows for each, and the body widget behind each.
type TabsPolicy[T Data[T]] interface {
	// Tabs returns the current keys in display order.
	Tabs(data T, env Env) []TabKey

	// TabsChanged reports whether the key set may differ between old
	// and data.
	TabsChanged(old, data T, env Env) bool

	// Info describes one tab for the bar.
	Info(key TabKey, data T, env Env) TabInfo

	// Body builds the widget behind one tab. A nil return gets a
	// placeholder label.
	Body(key TabKey, data T, env Env) Widget[T]
}

// StaticTabs is the fixed-set policy: tabs declared up front, bodies
// handed over once.
type StaticTabs[T Data[T]] struct {
	names  []string
	bodies []Widget[T]
}

// NewStaticTabs builds an empty static tab set.
func NewStaticTabs[T Data[T]]() *StaticTabs[T] {
	return &StaticTabs[T]{}
}

// WithTab appends one tab and returns the receiver for chaining.
func (s *StaticTabs[T]) WithTab(name string, body Widget[T]) *StaticTabs[T] {
	s.names = append(s.names, name)
	s.bodies = append(s.bodies, body)
	return s
}

func (s *StaticTabs[T]) Tabs(data T, env Env) []TabKey {
	keys := make([]TabKey, len(s.names))
	for i := range keys {
		keys[i] = TabKey(i)
	}
	return keys
}

func (s *StaticTabs[T]) TabsChanged(old, data T, env Env) bool {
	return false
}

func (s *StaticTabs[T]) Info(key TabKey, data T, env Env) TabInfo {
	i := int(key)
	if i < 0 || i >= len(s.names) {
		return TabInfo{Name: "???"}
	}
	return TabInfo{Name: s.names[i]}
}

func (s *StaticTabs[T]) Body(key TabKey, data T, env Env) Widget[T] {
	i := int(key)
	if i < 0 || i >= len(s.bodies) {
		return nil
	}
	// Bodies are single use; a second request for the same key means
	// the caller lost the original pod.
	body := s.bodies[i]
	s.bodies[i] = nil
	return body
}

// TabsState is the private scope state a Tabs assembly runs on: the
// outer data plus the selection, which the outer data never sees.
type TabsState[T Data[T]] struct {
	Inner    T
	Selected int
	policy   TabsPolicy[T]
}

// Same compares inner data and selection; the policy is configuration,
// not data.
func (s TabsState[T]) Same(other TabsState[T]) bool {
	return s.Selected == other.Selected && s.Inner.Same(other.Inner)
}

func (s TabsState[T]) Clone() TabsState[T] {
	return TabsState[T]{Inner: s.Inner.Clone(), Selected: s.Selected, policy: s.policy}
}

// tabsScopeTransfer moves the inner data through the scope boundary and
// keeps the selection private.
type tabsScopeTransfer[T Data[T]] struct{}

func (tabsScopeTransfer[T]) ReadInput(state *TabsState[T], in T) {
	if !state.Inner.Same(in) {
		state.Inner = in.Clone()
	}
}

func (tabsScopeTransfer[T]) WriteBackInput(state TabsState[T], in *T) {
	if !(*in).Same(state.Inner) {
		*in = state.Inner.Clone()
	}
}

func (tabsScopeTransfer[T]) UpdateComputed(old, new T, state *TabsState[T], env Env) bool {
	changed := false
	if !state.Inner.Same(new) {
		state.Inner = new.Clone()
		changed = true
	}
	// A shrunken tab set can leave the selection past the end; fold it
	// back so the bar and the body agree on which tab is current.
	if keys := state.policy.Tabs(state.Inner, env); len(keys) > 0 && state.Selected >= len(keys) {
		state.Selected = len(keys) - 1
		changed = true
	}
	return changed
}

// TabsScopePolicy creates the private TabsState for a Tabs assembly.
func TabsScopePolicy[T Data[T]](policy TabsPolicy[T], selected int) ScopePolicy[T, TabsState[T]] {
	return DefaultScopePolicy[T, TabsState[T]](
		func(in T) TabsState[T] {
			return TabsState[T]{Inner: in.Clone(), Selected: selected, policy: policy}
		},
		tabsScopeTransfer[T]{},
	)
}

// tabBarEntry is one measured tab in the bar: its key, display name,
// and cumulative far edge on the major axis.
type tabBarEntry struct {
	key  TabKey
	name string
	far  float64
}

// TabBar shows the tab names and turns clicks into selection changes.
type TabBar[T Data[T]] struct {
	axis   Axis
	tabs   []tabBarEntry
	hotTab int
}

// NewTabBar builds a bar laid out along axis.
func NewTabBar[T Data[T]](axis Axis) *TabBar[T] {
	return &TabBar[T]{axis: axis, hotTab: -1}
}

func (b *TabBar[T]) rebuild(data TabsState[T], env Env) {
	keys := data.policy.Tabs(data.Inner, env)
	b.tabs = b.tabs[:0]
	for _, k := range keys {
		info := data.policy.Info(k, data.Inner, env)
		b.tabs = append(b.tabs, tabBarEntry{key: k, name: info.Name})
	}
}

// tabAt maps a major-axis position to a tab index: the first tab whose
// far edge is at or beyond the position. Returns -1 past the last tab.
func (b *TabBar[T]) tabAt(major float64) int {
	i := sort.Search(len(b.tabs), func(i int) bool {
		return b.tabs[i].far >= major
	})
	if i >= len(b.tabs) {
		return -1
	}
	return i
}

func (b *TabBar[T]) Event(ctx *EventCtx, ev Event, data *TabsState[T], env Env) {
	switch e := ev.(type) {
	case PointerDown:
		idx := b.tabAt(b.axis.MajorPos(e.Pointer.Pos))
		if idx >= 0 && idx != data.Selected {
			data.Selected = idx
			ctx.RequestPaint()
		}
		ctx.SetHandled()
	case PointerMove:
		idx := b.tabAt(b.axis.MajorPos(e.Pointer.Pos))
		if idx != b.hotTab {
			b.hotTab = idx
			ctx.RequestPaint()
		}
	}
}

func (b *TabBar[T]) Lifecycle(ctx *LifecycleCtx, lc Lifecycle, data TabsState[T], env Env) {
	switch l := lc.(type) {
	case WidgetAdded:
		b.rebuild(data, env)
	case HotChanged:
		if !l.Hot && b.hotTab != -1 {
			b.hotTab = -1
			ctx.RequestPaint()
		}
	}
}

func (b *TabBar[T]) Update(ctx *UpdateCtx, oldData, data TabsState[T], env Env) {
	if data.policy.TabsChanged(oldData.Inner, data.Inner, env) {
		b.rebuild(data, env)
		ctx.RequestLayout()
		ctx.RequestPaint()
		return
	}
	if oldData.Selected != data.Selected {
		ctx.RequestPaint()
	}
}

func (b *TabBar[T]) Layout(ctx *LayoutCtx, bc BoxConstraints, data TabsState[T], env Env) Size {
	textSize := env.Float(KeyTextSize, 14)
	pad := env.Float(KeyTabPadding, 5)
	minor := textSize*1.2 + 2*pad

	var major float64
	for i := range b.tabs {
		major += 2*pad + 0.6*textSize*float64(len([]rune(b.tabs[i].name)))
		b.tabs[i].far = major
	}
	return bc.Constrain(b.axis.PackSize(major, minor))
}

func (b *TabBar[T]) Paint(ctx *PaintCtx, data TabsState[T], env Env) {
	textSize := env.Float(KeyTextSize, 14)
	pad := env.Float(KeyTabPadding, 5)
	minor := b.axis.Minor(ctx.Size())

	var near float64
	for i, tab := range b.tabs {
		bg := env.Color(KeyBackgroundDark, Hex(0x2b2b2b))
		switch {
		case i == data.Selected:
			bg = env.Color(KeyBackgroundLight, Hex(0x3c3f41))
		case i == b.hotTab:
			bg = env.Color(KeyButtonDark, Hex(0x3a3a3a))
		}
		origin := b.axis.Pack(near, 0)
		cell := RectFromOriginSize(origin, b.axis.PackSize(tab.far-near, minor))
		ctx.Fill(cell, bg)

		textOrigin := b.axis.Pack(near+pad, pad+textSize)
		ctx.Text(tab.name, textOrigin, env.Color(KeyTextColor, RGB(0xf0, 0xf0, 0xea)), textSize)

		if i == data.Selected {
			edge := Line{
				P0: b.axis.Pack(near, minor),
				P1: b.axis.Pack(tab.far, minor),
			}
			ctx.Stroke(edge, env.Color(KeyPrimaryLight, Hex(0x5cc4ff)), 2)
		}
		near = tab.far
	}
}

// tabsTransitionNanos is how long a selection switch slides.
const tabsTransitionNanos uint64 = 250 * 1e6

// TabsTransition animates a selection change: the outgoing tab slides
// away while the incoming one slides in, direction chosen by index
// order.
type TabsTransition struct {
	duration   uint64
	previous   int
	elapsed    uint64
	increasing bool
	live       bool
}

func (t *TabsTransition) start(previous, next int, duration uint64) {
	if duration == 0 {
		return
	}
	t.duration = duration
	t.previous = previous
	t.elapsed = 0
	t.increasing = next > previous
	t.live = true
}

// Live reports whether a transition is in flight.
func (t *TabsTransition) Live() bool {
	return t.live
}

// Previous returns the outgoing tab index while live.
func (t *TabsTransition) Previous() int {
	return t.previous
}

func (t *TabsTransition) advance(nanos uint64) {
	if !t.live {
		return
	}
	t.elapsed += nanos
	if t.elapsed >= t.duration {
		t.live = false
	}
}

// Fraction is transition progress in [0, 1].
func (t *TabsTransition) Fraction() float64 {
	if !t.live || t.duration == 0 {
		return 1
	}
	return float64(t.elapsed) / float64(t.duration)
}

// PreviousTransform positions the outgoing tab body.
func (t *TabsTransition) PreviousTransform(axis Axis, mainLen float64) Affine {
	shift := t.Fraction() * mainLen
	if t.increasing {
		shift = -shift
	}
	v := axis.Pack(shift, 0)
	return Translate(Vec2{X: v.X, Y: v.Y})
}

// SelectedTransform positions the incoming tab body.
func (t *TabsTransition) SelectedTransform(axis Axis, mainLen float64) Affine {
	shift := (1 - t.Fraction()) * mainLen
	if !t.increasing {
		shift = -shift
	}
	v := axis.Pack(shift, 0)
	return Translate(Vec2{X: v.X, Y: v.Y})
}

// hiddenShouldReceiveEvent reports whether an event also goes to tabs
// that are not showing. Commands, timers, and window notices do; direct
// user input does not.
func hiddenShouldReceiveEvent(ev Event) bool {
	switch ev.(type) {
	case WindowConnected, WindowResized, TimerFired, CommandEvent, Internal:
		return true
	}
	return false
}

// hiddenShouldReceiveLifecycle reports whether a lifecycle notice also
// goes to hidden tabs. Construction routing must reach everything.
func hiddenShouldReceiveLifecycle(lc Lifecycle) bool {
	switch lc.(type) {
	case WidgetAdded, RouteWidgetAdded:
		return true
	}
	return false
}

// TabsBody hosts one Pod per live tab and shows the selected one.
// Hidden tabs keep their Pods, and with them their identity and state;
// they just stop seeing user input and paint.
type TabsBody[T Data[T]] struct {
	axis       Axis
	duration   uint64
	keys       []TabKey
	pods       map[TabKey]*Pod[T]
	transition TabsTransition
}

// NewTabsBody builds the body region, sliding along axis on selection
// change.
func NewTabsBody[T Data[T]](axis Axis) *TabsBody[T] {
	return &TabsBody[T]{axis: axis, duration: tabsTransitionNanos, pods: make(map[TabKey]*Pod[T])}
}

// WithTransitionDuration overrides the slide duration in nanoseconds;
// zero disables the animation.
func (tb *TabsBody[T]) WithTransitionDuration(nanos uint64) *TabsBody[T] {
	tb.duration = nanos
	return tb
}

// ensureForTabs reconciles the pod cache against the policy's current
// key set. Keys that persist keep their Pods; vanished keys drop them.
func (tb *TabsBody[T]) ensureForTabs(data TabsState[T], env Env) bool {
	newKeys := data.policy.Tabs(data.Inner, env)
	changed := len(newKeys) != len(tb.keys)
	if !changed {
		for i, k := range newKeys {
			if tb.keys[i] != k {
				changed = true
				break
			}
		}
	}

	live := make(map[TabKey]bool, len(newKeys))
	for _, k := range newKeys {
		live[k] = true
		if _, ok := tb.pods[k]; !ok {
			body := data.policy.Body(k, data.Inner, env)
			if body == nil {
				logger.Warn("tab body missing, using placeholder", "key", k)
				body = NewLabel[T]("tab body unavailable")
			}
			tb.pods[k] = NewPod(body)
			changed = true
		}
	}
	for k := range tb.pods {
		if !live[k] {
			delete(tb.pods, k)
		}
	}
	tb.keys = newKeys
	return changed
}

// selectedIndex clamps the selection into the live range. A selection
// past the end after tabs vanished falls back to the last tab.
func (tb *TabsBody[T]) selectedIndex(selected int) int {
	if len(tb.keys) == 0 {
		return -1
	}
	if selected < 0 {
		return 0
	}
	if selected >= len(tb.keys) {
		return len(tb.keys) - 1
	}
	return selected
}

func (tb *TabsBody[T]) podAt(i int) *Pod[T] {
	if i < 0 || i >= len(tb.keys) {
		return nil
	}
	return tb.pods[tb.keys[i]]
}

func (tb *TabsBody[T]) activePod(data TabsState[T]) *Pod[T] {
	return tb.podAt(tb.selectedIndex(data.Selected))
}

func (tb *TabsBody[T]) Event(ctx *EventCtx, ev Event, data *TabsState[T], env Env) {
	if hiddenShouldReceiveEvent(ev) {
		for _, k := range tb.keys {
			tb.pods[k].Event(ctx, ev, &data.Inner, env)
		}
		return
	}
	if active := tb.activePod(*data); active != nil {
		active.Event(ctx, ev, &data.Inner, env)
	}
}

func (tb *TabsBody[T]) Lifecycle(ctx *LifecycleCtx, lc Lifecycle, data TabsState[T], env Env) {
	if _, ok := lc.(WidgetAdded); ok {
		tb.ensureForTabs(data, env)
	}
	if af, ok := lc.(AnimFrame); ok && tb.transition.Live() {
		tb.transition.advance(af.Nanos)
		ctx.RequestPaint()
		if tb.transition.Live() {
			ctx.RequestAnimFrame()
		}
	}
	if hiddenShouldReceiveLifecycle(lc) {
		for _, k := range tb.keys {
			tb.pods[k].Lifecycle(ctx, lc, data.Inner, env)
		}
		return
	}
	if active := tb.activePod(data); active != nil {
		active.Lifecycle(ctx, lc, data.Inner, env)
	}
}

func (tb *TabsBody[T]) Update(ctx *UpdateCtx, oldData, data TabsState[T], env Env) {
	if data.policy.TabsChanged(oldData.Inner, data.Inner, env) {
		if tb.ensureForTabs(data, env) {
			ctx.ChildrenChanged()
			ctx.RequestUpdate()
		}
	}
	if oldData.Selected != data.Selected {
		tb.transition.start(tb.selectedIndex(oldData.Selected), tb.selectedIndex(data.Selected), tb.duration)
		// The incoming body may never have been measured.
		ctx.RequestLayout()
		ctx.RequestPaint()
		if tb.transition.Live() {
			ctx.RequestAnimFrame()
		}
	}
	for _, k := range tb.keys {
		if pod := tb.pods[k]; pod.IsInitialized() {
			pod.Update(ctx, data.Inner, env)
		}
	}
}

func (tb *TabsBody[T]) Layout(ctx *LayoutCtx, bc BoxConstraints, data TabsState[T], env Env) Size {
	active := tb.activePod(data)
	if active == nil {
		return bc.Min
	}
	size := active.Layout(ctx, bc, data.Inner, env)
	active.SetLayoutRect(ctx, data.Inner, env, RectFromOriginSize(Point{}, size))
	return size
}

func (tb *TabsBody[T]) Paint(ctx *PaintCtx, data TabsState[T], env Env) {
	active := tb.activePod(data)
	if active == nil {
		return
	}
	if !tb.transition.Live() {
		active.Paint(ctx, data.Inner, env)
		return
	}

	mainLen := tb.axis.Major(ctx.Size())
	previous := tb.podAt(tb.transition.Previous())
	ctx.WithSave(func(c *PaintCtx) {
		c.Clip(RectFromOriginSize(Point{}, c.Size()))
		if previous != nil && previous != active && previous.IsInitialized() {
			c.WithSave(func(cc *PaintCtx) {
				cc.Transform(tb.transition.PreviousTransform(tb.axis, mainLen))
				previous.PaintRaw(cc, data.Inner, env)
			})
		}
		c.WithSave(func(cc *PaintCtx) {
			cc.Transform(tb.transition.SelectedTransform(tb.axis, mainLen))
			active.PaintRaw(cc, data.Inner, env)
		})
	})
}

// Tabs assembles a bar and a body over a shared private selection. It
// presents a Widget[T] built lazily: the scope, bar, and body come into
// existence when the widget joins a tree.
type Tabs[T Data[T]] struct {
	axis     Axis
	selected int
	duration uint64
	policy   TabsPolicy[T]
	running  *Pod[T]
}

// NewTabs builds a tabs assembly over policy with a horizontal bar.
func NewTabs[T Data[T]](policy TabsPolicy[T]) *Tabs[T] {
	return &Tabs[T]{axis: Horizontal, duration: tabsTransitionNanos, policy: policy}
}

// NewStaticTabsOf is shorthand for a fixed name/body set.
func NewStaticTabsOf[T Data[T]](tabs *StaticTabs[T]) *Tabs[T] {
	return NewTabs[T](tabs)
}

// WithBarAxis places the bar along the given axis.
func (t *Tabs[T]) WithBarAxis(axis Axis) *Tabs[T] {
	t.axis = axis
	return t
}

// WithInitialSelection sets which tab starts selected.
func (t *Tabs[T]) WithInitialSelection(i int) *Tabs[T] {
	t.selected = i
	return t
}

// WithTransitionDuration sets the body slide duration in nanoseconds;
// zero disables it.
func (t *Tabs[T]) WithTransitionDuration(nanos uint64) *Tabs[T] {
	t.duration = nanos
	return t
}

func (t *Tabs[T]) assemble() *Pod[T] {
	bar := NewTabBar[T](t.axis)
	body := NewTabsBody[T](t.axis).WithTransitionDuration(t.duration)
	layout := NewFlex[TabsState[T]](t.axis.Cross()).
		WithChild(bar).
		WithFlexChild(Pad[TabsState[T]](5, body), 1)
	scope := NewScope[T, TabsState[T]](TabsScopePolicy(t.policy, t.selected), layout)
	return NewPod[T](scope)
}

func (t *Tabs[T]) Event(ctx *EventCtx, ev Event, data *T, env Env) {
	if t.running == nil {
		logger.Warn("tabs received an event before assembly")
		return
	}
	t.running.Event(ctx, ev, data, env)
}

func (t *Tabs[T]) Lifecycle(ctx *LifecycleCtx, lc Lifecycle, data T, env Env) {
	if t.running == nil {
		if _, ok := lc.(WidgetAdded); !ok {
			logger.Warn("tabs received a lifecycle notice before assembly")
			return
		}
		t.running = t.assemble()
	}
	t.running.Lifecycle(ctx, lc, data, env)
}

func (t *Tabs[T]) Update(ctx *UpdateCtx, oldData, data T, env Env) {
	if t.running == nil {
		return
	}
	t.running.Update(ctx, data, env)
}

func (t *Tabs[T]) Layout(ctx *LayoutCtx, bc BoxConstraints, data T, env Env) Size {
	if t.running == nil {
		return bc.Min
	}
	size := t.running.Layout(ctx, bc, data, env)
	t.running.SetLayoutRect(ctx, data, env, RectFromOriginSize(Point{}, size))
	return size
}

func (t *Tabs[T]) Paint(ctx *PaintCtx, data T, env Env) {
	if t.running == nil {
		return
	}
	t.running.PaintRaw(ctx, data, env)
}

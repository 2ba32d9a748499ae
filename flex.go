package loom

import "math"

// CrossAxisAlignment positions children on the minor axis of a Flex.
type CrossAxisAlignment int

const (
	CrossStart CrossAxisAlignment = iota
	CrossCenter
	CrossEnd
)

// FlexParams is the per-child augment of a Flex: a weight of zero means
// the child takes its natural size, a positive weight shares the
// leftover major-axis space proportionally.
type FlexParams struct {
	Weight float64
}

// Flex lays its children out along one axis. Fixed children are
// measured first, then weighted children split whatever major-axis
// space remains.
type Flex[T Data[T]] struct {
	axis    Axis
	cross   CrossAxisAlignment
	content Content[T, FlexParams]
}

// NewFlex builds an empty flex container on the given axis.
func NewFlex[T Data[T]](axis Axis) *Flex[T] {
	return &Flex[T]{axis: axis, content: StaticOf[T, FlexParams]()}
}

// Row is a horizontal flex container.
func Row[T Data[T]]() *Flex[T] { return NewFlex[T](Horizontal) }

// Column is a vertical flex container.
func Column[T Data[T]]() *Flex[T] { return NewFlex[T](Vertical) }

// WithCrossAxisAlignment sets the minor-axis placement and returns the
// receiver for chaining.
func (f *Flex[T]) WithCrossAxisAlignment(c CrossAxisAlignment) *Flex[T] {
	f.cross = c
	return f
}

// WithContent replaces the child set wholesale.
func (f *Flex[T]) WithContent(content Content[T, FlexParams]) *Flex[T] {
	f.content = content
	return f
}

// WithChild appends a fixed-size child.
func (f *Flex[T]) WithChild(w Widget[T]) *Flex[T] {
	f.content.AddChild(&AugPod[T, FlexParams]{Pod: NewPod(w)})
	return f
}

// WithFlexChild appends a child sharing leftover space by weight.
func (f *Flex[T]) WithFlexChild(w Widget[T], weight float64) *Flex[T] {
	f.content.AddChild(&AugPod[T, FlexParams]{Pod: NewPod(w), Aug: FlexParams{Weight: weight}})
	return f
}

func (f *Flex[T]) Event(ctx *EventCtx, ev Event, data *T, env Env) {
	ForEachChild(f.content, func(c *AugPod[T, FlexParams]) {
		c.Pod.Event(ctx, ev, data, env)
	})
}

func (f *Flex[T]) Lifecycle(ctx *LifecycleCtx, lc Lifecycle, data T, env Env) {
	if _, ok := lc.(WidgetAdded); ok {
		f.content.ContentAdded(data, env)
	}
	ForEachChild(f.content, func(c *AugPod[T, FlexParams]) {
		c.Pod.Lifecycle(ctx, lc, data, env)
	})
}

func (f *Flex[T]) Update(ctx *UpdateCtx, oldData, data T, env Env) {
	if f.content.Update(oldData, data, env) {
		ctx.ChildrenChanged()
		// Fresh children need an update pass once routing has
		// initialized them.
		ctx.RequestUpdate()
	}
	ForEachChild(f.content, func(c *AugPod[T, FlexParams]) {
		if c.Pod.IsInitialized() {
			c.Pod.Update(ctx, data, env)
		}
	})
}

func (f *Flex[T]) Layout(ctx *LayoutCtx, bc BoxConstraints, data T, env Env) Size {
	majorMax := f.axis.Major(bc.Max)
	minorMax := f.axis.Minor(bc.Max)

	var totalWeight, usedMajor, maxMinor float64
	ForEachChild(f.content, func(c *AugPod[T, FlexParams]) {
		if c.Aug.Weight > 0 {
			totalWeight += c.Aug.Weight
			return
		}
		childBC := BoxConstraints{
			Max: f.axis.PackSize(majorMax-usedMajor, minorMax),
		}
		size := c.Pod.Layout(ctx, childBC, data, env)
		usedMajor += f.axis.Major(size)
		maxMinor = math.Max(maxMinor, f.axis.Minor(size))
	})

	remaining := math.Max(0, majorMax-usedMajor)
	ForEachChild(f.content, func(c *AugPod[T, FlexParams]) {
		if c.Aug.Weight <= 0 {
			return
		}
		share := remaining * c.Aug.Weight / totalWeight
		childBC := BoxConstraints{
			Min: f.axis.PackSize(share, 0),
			Max: f.axis.PackSize(share, minorMax),
		}
		size := c.Pod.Layout(ctx, childBC, data, env)
		usedMajor += f.axis.Major(size)
		maxMinor = math.Max(maxMinor, f.axis.Minor(size))
	})

	// Position pass: children advance monotonically on the major axis
	// and align on the minor axis.
	var majorPos float64
	ForEachChild(f.content, func(c *AugPod[T, FlexParams]) {
		size := c.Pod.LayoutRect().RectSize()
		var minorPos float64
		switch f.cross {
		case CrossCenter:
			minorPos = (maxMinor - f.axis.Minor(size)) / 2
		case CrossEnd:
			minorPos = maxMinor - f.axis.Minor(size)
		}
		origin := f.axis.Pack(majorPos, minorPos)
		c.Pod.SetLayoutRect(ctx, data, env, RectFromOriginSize(origin, size))
		majorPos += f.axis.Major(size)
	})

	return bc.Constrain(f.axis.PackSize(usedMajor, maxMinor))
}

func (f *Flex[T]) Paint(ctx *PaintCtx, data T, env Env) {
	ForEachChild(f.content, func(c *AugPod[T, FlexParams]) {
		c.Pod.Paint(ctx, data, env)
	})
}

package loom

import "math"

// Slider edits an F64 in [min, max] by dragging along a horizontal
// track. Pointer-down grabs the slider so the drag keeps working when
// the pointer leaves the bounds.
type Slider struct {
	min, max float64
}

// NewSlider builds a slider over [0, 1].
func NewSlider() *Slider {
	return &Slider{min: 0, max: 1}
}

// WithRange sets the editable range.
func (s *Slider) WithRange(min, max float64) *Slider {
	s.min = min
	s.max = max
	return s
}

func (s *Slider) valueFromPos(x float64, width float64) float64 {
	if width <= 0 {
		return s.min
	}
	frac := math.Min(1, math.Max(0, x/width))
	return s.min + frac*(s.max-s.min)
}

func (s *Slider) Event(ctx *EventCtx, ev Event, data *F64, env Env) {
	width := ctx.LayoutSize().Width
	switch e := ev.(type) {
	case PointerDown:
		ctx.SetActive(true)
		*data = F64(s.valueFromPos(e.Pointer.Pos.X, width))
		ctx.RequestPaint()
		ctx.SetHandled()
	case PointerMove:
		if ctx.IsActive() {
			*data = F64(s.valueFromPos(e.Pointer.Pos.X, width))
			ctx.RequestPaint()
			ctx.SetHandled()
		}
	case PointerUp:
		if ctx.IsActive() {
			ctx.SetActive(false)
			*data = F64(s.valueFromPos(e.Pointer.Pos.X, width))
			ctx.RequestPaint()
			ctx.SetHandled()
		}
	}
}

func (s *Slider) Lifecycle(ctx *LifecycleCtx, lc Lifecycle, data F64, env Env) {}

func (s *Slider) Update(ctx *UpdateCtx, oldData, data F64, env Env) {
	if !oldData.Same(data) {
		ctx.RequestPaint()
	}
}

func (s *Slider) Layout(ctx *LayoutCtx, bc BoxConstraints, data F64, env Env) Size {
	height := env.Float(KeyTextSize, 14) * 1.5
	width := 120.0
	if bc.IsBoundedOn(Horizontal) {
		width = bc.Max.Width
	}
	return bc.Constrain(Size{Width: width, Height: height})
}

func (s *Slider) Paint(ctx *PaintCtx, data F64, env Env) {
	size := ctx.Size()
	track := Line{
		P0: Point{X: 0, Y: size.Height / 2},
		P1: Point{X: size.Width, Y: size.Height / 2},
	}
	ctx.Stroke(track, env.Color(KeyBorderDark, Hex(0x3a3a3a)), 1)

	span := s.max - s.min
	frac := 0.0
	if span > 0 {
		frac = (float64(data) - s.min) / span
	}
	frac = math.Min(1, math.Max(0, frac))
	knobX := frac * size.Width
	knobColor := env.Color(KeyPrimaryLight, Hex(0x5cc4ff))
	if ctx.IsHot() || ctx.IsActive() {
		knobColor = env.Color(KeyButtonDark, Hex(0x3a3a3a))
	}
	knob := Rect{
		X0: knobX - 2, Y0: 0,
		X1: knobX + 2, Y1: size.Height,
	}
	ctx.Fill(knob, knobColor)
}

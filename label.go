package loom

// Label draws a single line of text, either fixed or derived from the
// data on every paint.
type Label[T Data[T]] struct {
	text   string
	derive func(T, Env) string
	color  *Color
}

// NewLabel builds a label with fixed text.
func NewLabel[T Data[T]](text string) *Label[T] {
	return &Label[T]{text: text}
}

// NewDynamicLabel builds a label whose text is recomputed from the
// data.
func NewDynamicLabel[T Data[T]](derive func(T, Env) string) *Label[T] {
	return &Label[T]{derive: derive}
}

// WithColor overrides the themed text color.
func (l *Label[T]) WithColor(c Color) *Label[T] {
	l.color = &c
	return l
}

func (l *Label[T]) currentText(data T, env Env) string {
	if l.derive != nil {
		return l.derive(data, env)
	}
	return l.text
}

func (l *Label[T]) Event(ctx *EventCtx, ev Event, data *T, env Env) {}

func (l *Label[T]) Lifecycle(ctx *LifecycleCtx, lc Lifecycle, data T, env Env) {}

func (l *Label[T]) Update(ctx *UpdateCtx, oldData, data T, env Env) {
	if l.derive == nil {
		return
	}
	if l.derive(oldData, env) != l.derive(data, env) {
		ctx.RequestLayout()
		ctx.RequestPaint()
	}
}

func (l *Label[T]) Layout(ctx *LayoutCtx, bc BoxConstraints, data T, env Env) Size {
	size := env.Float(KeyTextSize, 14)
	text := l.currentText(data, env)
	// Monospace-ish advance estimate; a real text stack would shape.
	width := 0.6 * size * float64(len([]rune(text)))
	return bc.Constrain(Size{Width: width, Height: size * 1.2})
}

func (l *Label[T]) Paint(ctx *PaintCtx, data T, env Env) {
	color := env.Color(KeyTextColor, RGB(0xf0, 0xf0, 0xea))
	if l.color != nil {
		color = *l.color
	}
	size := env.Float(KeyTextSize, 14)
	ctx.Text(l.currentText(data, env), Point{Y: size}, color, size)
}

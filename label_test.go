package loom

import "testing"

func TestLabelLayout(t *testing.T) {
	env := NewEnv()
	label := NewLabel[Str]("abcd")
	state, sink := newTestRound()
	size := label.Layout(testLayoutCtx(state, sink), LooseConstraints(Size{Width: 100, Height: 100}), Str("x"), env)

	textSize := env.Float(KeyTextSize, 14)
	want := Size{Width: 0.6 * textSize * 4, Height: textSize * 1.2}
	if size != want {
		t.Errorf("expected %v, got %v", want, size)
	}
}

func TestDynamicLabel(t *testing.T) {
	label := NewDynamicLabel[Str](func(d Str, env Env) string { return "n=" + string(d) })
	w := NewWindow[Str](label, Str("a"), NewEnv())
	w.Connect(Size{Width: 100, Height: 30})

	firstText := func() string {
		surface := NewRecordingSurface()
		w.Paint(surface)
		ops := surface.TextOps()
		if len(ops) != 1 {
			t.Fatalf("expected one text op, got %d", len(ops))
		}
		return ops[0].Text
	}

	if got := firstText(); got != "n=a" {
		t.Errorf("expected n=a, got %q", got)
	}

	w.UpdateData(func(d *Str) { *d = "b" })
	if !w.NeedsPaint() {
		t.Error("expected a derived text change to request paint")
	}
	if got := firstText(); got != "n=b" {
		t.Errorf("expected n=b, got %q", got)
	}
}

func TestLabelColor(t *testing.T) {
	custom := Hex(0xff00ff)
	w := NewWindow[Str](NewLabel[Str]("hi").WithColor(custom), Str("x"), NewEnv())
	w.Connect(Size{Width: 100, Height: 30})

	surface := NewRecordingSurface()
	w.Paint(surface)
	ops := surface.TextOps()
	if len(ops) != 1 || ops[0].Color != custom {
		t.Errorf("expected the override color, got %v", ops)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/loomui/loom"
)

// appData is the demo's root data value.
type appData struct {
	Count  int
	Volume loom.F64
}

func (d appData) Same(other appData) bool { return d == other }
func (d appData) Clone() appData          { return d }

// keyController adjusts the item count from the keyboard, passing
// everything else through to its child.
type keyController struct {
	child *loom.Pod[appData]
}

func newKeyController(child loom.Widget[appData]) *keyController {
	return &keyController{child: loom.NewPod(child)}
}

func (k *keyController) Event(ctx *loom.EventCtx, ev loom.Event, data *appData, env loom.Env) {
	if key, ok := ev.(loom.KeyDown); ok {
		switch key.Key.Name {
		case "+":
			data.Count++
			ctx.SetHandled()
			return
		case "-":
			if data.Count > 0 {
				data.Count--
			}
			ctx.SetHandled()
			return
		}
	}
	k.child.Event(ctx, ev, data, env)
}

func (k *keyController) Lifecycle(ctx *loom.LifecycleCtx, lc loom.Lifecycle, data appData, env loom.Env) {
	k.child.Lifecycle(ctx, lc, data, env)
}

func (k *keyController) Update(ctx *loom.UpdateCtx, oldData, data appData, env loom.Env) {
	k.child.Update(ctx, data, env)
}

func (k *keyController) Layout(ctx *loom.LayoutCtx, bc loom.BoxConstraints, data appData, env loom.Env) loom.Size {
	size := k.child.Layout(ctx, bc, data, env)
	k.child.SetLayoutRect(ctx, data, env, loom.RectFromOriginSize(loom.Point{}, size))
	return size
}

func (k *keyController) Paint(ctx *loom.PaintCtx, data appData, env loom.Env) {
	k.child.PaintRaw(ctx, data, env)
}

// itemsTab is a scrolling list whose rows come and go with Count.
func itemsTab() loom.Widget[appData] {
	list := loom.Column[appData]().WithContent(
		loom.ForEach[appData, int, loom.FlexParams](
			func(d appData, _ loom.Env) []int {
				keys := make([]int, d.Count)
				for i := range keys {
					keys[i] = i
				}
				return keys
			},
			func(key int) (loom.Widget[appData], loom.FlexParams) {
				return loom.NewLabel[appData](fmt.Sprintf("item %d", key)), loom.FlexParams{}
			},
		),
	)
	help := loom.NewDynamicLabel[appData](func(d appData, _ loom.Env) string {
		return fmt.Sprintf("%d items (press + / - to change)", d.Count)
	})
	return loom.Column[appData]().
		WithChild(help).
		WithFlexChild(loom.NewScroll[appData](list).WithDirection(loom.ScrollVertical), 1)
}

// volumeTab pairs a slider with a readout of the value it edits.
func volumeTab() loom.Widget[appData] {
	volume := loom.Field(func(d *appData) *loom.F64 { return &d.Volume })
	readout := loom.NewDynamicLabel[appData](func(d appData, _ loom.Env) string {
		return fmt.Sprintf("volume: %0.2f", float64(d.Volume))
	})
	return loom.Column[appData]().
		WithChild(readout).
		WithChild(loom.Pad[appData](1, loom.WithLens(volume, loom.NewSlider())))
}

func loadEnv() loom.Env {
	path := os.Getenv("LOOM_THEME")
	if path == "" {
		return loom.TerminalEnv()
	}
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "theme: %v\n", err)
		return loom.TerminalEnv()
	}
	defer f.Close()
	env, err := loom.LoadEnv(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "theme: %v\n", err)
		return loom.TerminalEnv()
	}
	return env
}

func main() {
	tabs := loom.NewTabs[appData](
		loom.NewStaticTabs[appData]().
			WithTab("items", itemsTab()).
			WithTab("volume", volumeTab()),
	)
	root := newKeyController(tabs)
	data := appData{Count: 5, Volume: 0.5}
	if err := loom.RunShell[appData](root, data, loadEnv()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

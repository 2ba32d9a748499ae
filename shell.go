package loom

import (
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// frameInterval is the animation tick cadence on a terminal.
const frameInterval = 50 * time.Millisecond

type animTickMsg time.Time

type timerMsg struct {
	token TimerToken
}

// TerminalEnv returns the default theme with metrics rescaled to cell
// units, where one logical unit is one character cell.
func TerminalEnv() Env {
	return NewEnv().
		With(KeyTextSize, 1.0).
		With(KeyTabPadding, 1.0)
}

// Shell hosts a Window on a terminal. It adapts terminal input to
// events, schedules requested timers and animation ticks, and renders
// each frame through a CellSurface.
type Shell[T Data[T]] struct {
	window *Window[T]

	width   int
	height  int
	started bool

	lastTick      time.Time
	animScheduled bool
}

// NewShell wraps a window for terminal hosting. When the terminal size
// is known up front it seeds the first layout; the real size arrives
// with the first WindowSizeMsg regardless.
func NewShell[T Data[T]](window *Window[T]) *Shell[T] {
	s := &Shell[T]{window: window, width: 80, height: 24}
	if isatty.IsTerminal(os.Stdout.Fd()) {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			s.width, s.height = w, h
		}
	}
	return s
}

// Window returns the hosted window.
func (s *Shell[T]) Window() *Window[T] {
	return s.window
}

func (s *Shell[T]) Init() tea.Cmd {
	return nil
}

func (s *Shell[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width, s.height = msg.Width, msg.Height
		size := Size{Width: float64(msg.Width), Height: float64(msg.Height)}
		if !s.started {
			s.started = true
			s.window.Connect(size)
		} else {
			s.window.Resize(size)
		}

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return s, tea.Quit
		}
		s.window.DispatchEvent(KeyDown{Key: Key{Name: msg.String(), Runes: msg.Runes}})

	case tea.MouseMsg:
		s.dispatchMouse(msg)

	case animTickMsg:
		s.animScheduled = false
		now := time.Time(msg)
		delta := frameInterval
		if !s.lastTick.IsZero() {
			delta = now.Sub(s.lastTick)
		}
		s.lastTick = now
		s.window.AnimFrame(uint64(delta.Nanoseconds()))

	case timerMsg:
		s.window.FireTimer(msg.token)
	}

	return s, s.collectWork()
}

func (s *Shell[T]) dispatchMouse(msg tea.MouseMsg) {
	pointer := PointerState{Pos: Point{X: float64(msg.X), Y: float64(msg.Y)}}
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			s.window.DispatchEvent(Wheel{Pointer: pointer, Delta: Vec2{Y: -1}})
		case tea.MouseButtonWheelDown:
			s.window.DispatchEvent(Wheel{Pointer: pointer, Delta: Vec2{Y: 1}})
		case tea.MouseButtonWheelLeft:
			s.window.DispatchEvent(Wheel{Pointer: pointer, Delta: Vec2{X: -1}})
		case tea.MouseButtonWheelRight:
			s.window.DispatchEvent(Wheel{Pointer: pointer, Delta: Vec2{X: 1}})
		default:
			s.window.DispatchEvent(PointerDown{Pointer: pointer})
		}
	case tea.MouseActionRelease:
		s.window.DispatchEvent(PointerUp{Pointer: pointer})
	case tea.MouseActionMotion:
		s.window.DispatchEvent(PointerMove{Pointer: pointer})
	}
}

// collectWork turns the window's outstanding asks into bubbletea
// commands: one Tick per requested timer, plus the next animation tick
// when something is animating.
func (s *Shell[T]) collectWork() tea.Cmd {
	var cmds []tea.Cmd
	for _, tr := range s.window.Queue().DrainTimers() {
		token := tr.Token
		cmds = append(cmds, tea.Tick(tr.Duration, func(time.Time) tea.Msg {
			return timerMsg{token: token}
		}))
	}
	if s.window.NeedsAnimFrame() && !s.animScheduled {
		s.animScheduled = true
		cmds = append(cmds, tea.Tick(frameInterval, func(t time.Time) tea.Msg {
			return animTickMsg(t)
		}))
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (s *Shell[T]) View() string {
	if !s.started {
		return ""
	}
	surface := NewCellSurface(s.width, s.height)
	s.window.Paint(surface)
	return surface.Flush()
}

// RunShell hosts a fresh window over root on the terminal and blocks
// until the user quits.
func RunShell[T Data[T]](root Widget[T], data T, env Env) error {
	shell := NewShell(NewWindow(root, data, env))
	program := tea.NewProgram(shell, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := program.Run()
	return err
}

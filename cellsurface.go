package loom

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Cell is one terminal character slot with its colors.
type Cell struct {
	Rune rune
	FG   Color
	BG   Color
}

type cellState struct {
	offset  Vec2
	clip    Rect
	hasClip bool
}

// CellSurface rasterizes paint ops onto a terminal-sized cell grid.
// One logical unit is one cell, so widget geometry maps directly to
// rows and columns. Transforms are honored for their translation part
// only; a terminal cannot rotate or scale glyphs, and anything else is
// a logged no-op.
type CellSurface struct {
	width  int
	height int
	cells  []Cell
	stack  []cellState
	cur    cellState
}

// NewCellSurface returns a cleared grid of the given dimensions.
func NewCellSurface(width, height int) *CellSurface {
	s := &CellSurface{width: width, height: height}
	s.Reset()
	return s
}

// Width returns the grid width in cells.
func (s *CellSurface) Width() int { return s.width }

// Height returns the grid height in cells.
func (s *CellSurface) Height() int { return s.height }

// Reset clears every cell and drops any saved state.
func (s *CellSurface) Reset() {
	s.cells = make([]Cell, s.width*s.height)
	for i := range s.cells {
		s.cells[i].Rune = ' '
	}
	s.stack = nil
	s.cur = cellState{}
}

// CellAt returns the cell at column x, row y.
func (s *CellSurface) CellAt(x, y int) Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return Cell{Rune: ' '}
	}
	return s.cells[y*s.width+x]
}

func (s *CellSurface) Save() {
	s.stack = append(s.stack, s.cur)
}

func (s *CellSurface) Restore() {
	if len(s.stack) == 0 {
		logger.Warn("surface restore without matching save")
		return
	}
	s.cur = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *CellSurface) Transform(a Affine) {
	if a[0] != 1 || a[1] != 0 || a[2] != 0 || a[3] != 1 {
		logger.Warn("cell surface ignores non-translation transform")
	}
	s.cur.offset = s.cur.offset.Add(Vec2{X: a[4], Y: a[5]})
}

func (s *CellSurface) Clip(r Rect) {
	abs := r.WithOrigin(Point{
		X: r.X0 + s.cur.offset.X,
		Y: r.Y0 + s.cur.offset.Y,
	})
	if s.cur.hasClip {
		abs = s.cur.clip.Intersect(abs)
	}
	s.cur.clip = abs
	s.cur.hasClip = true
}

// cellBounds converts an absolute rect to clipped integer cell bounds.
// The second result is false when nothing is visible.
func (s *CellSurface) cellBounds(abs Rect) (x0, y0, x1, y1 int, ok bool) {
	if s.cur.hasClip {
		abs = s.cur.clip.Intersect(abs)
	}
	x0 = int(math.Floor(abs.X0 + 0.5))
	y0 = int(math.Floor(abs.Y0 + 0.5))
	x1 = int(math.Ceil(abs.X1 - 0.5))
	y1 = int(math.Ceil(abs.Y1 - 0.5))
	x0 = max(x0, 0)
	y0 = max(y0, 0)
	x1 = min(x1, s.width)
	y1 = min(y1, s.height)
	return x0, y0, x1, y1, x0 < x1 && y0 < y1
}

func (s *CellSurface) FillRect(r Rect, c Color) {
	abs := Rect{
		X0: r.X0 + s.cur.offset.X, Y0: r.Y0 + s.cur.offset.Y,
		X1: r.X1 + s.cur.offset.X, Y1: r.Y1 + s.cur.offset.Y,
	}
	x0, y0, x1, y1, ok := s.cellBounds(abs)
	if !ok {
		return
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			s.cells[y*s.width+x].BG = c
		}
	}
}

func (s *CellSurface) StrokeLine(l Line, c Color, width float64) {
	p0 := Point{X: l.P0.X + s.cur.offset.X, Y: l.P0.Y + s.cur.offset.Y}
	p1 := Point{X: l.P1.X + s.cur.offset.X, Y: l.P1.Y + s.cur.offset.Y}
	switch {
	case p0.Y == p1.Y:
		y := int(p0.Y) - 1
		if y < 0 {
			y = int(p0.Y)
		}
		for x := int(math.Min(p0.X, p1.X)); x < int(math.Max(p0.X, p1.X)); x++ {
			s.setRune(x, y, '─', c)
		}
	case p0.X == p1.X:
		x := int(p0.X)
		for y := int(math.Min(p0.Y, p1.Y)); y < int(math.Max(p0.Y, p1.Y)); y++ {
			s.setRune(x, y, '│', c)
		}
	default:
		logger.Warn("cell surface cannot stroke diagonal lines")
	}
}

func (s *CellSurface) DrawText(text string, origin Point, c Color, size float64) {
	// origin is the text baseline; the glyphs sit on the row above it.
	y := int(math.Ceil(origin.Y+s.cur.offset.Y)) - 1
	x := int(origin.X + s.cur.offset.X)
	for _, r := range text {
		s.setRune(x, y, r, c)
		x++
	}
}

func (s *CellSurface) setRune(x, y int, r rune, fg Color) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	if s.cur.hasClip {
		p := Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}
		if !s.cur.clip.Contains(p) {
			return
		}
	}
	cell := &s.cells[y*s.width+x]
	cell.Rune = r
	cell.FG = fg
}

// lipglossColor maps a Color onto the terminal color model.
func lipglossColor(c Color) lipgloss.TerminalColor {
	switch c.Mode {
	case Color16, Color256:
		return lipgloss.Color(strconv.Itoa(int(c.Index)))
	case ColorRGB:
		return lipgloss.Color(c.HexString())
	}
	return lipgloss.NoColor{}
}

// Flush renders the grid as styled terminal output, one style run at a
// time.
func (s *CellSurface) Flush() string {
	var out strings.Builder
	for y := 0; y < s.height; y++ {
		x := 0
		for x < s.width {
			first := s.cells[y*s.width+x]
			var run strings.Builder
			for x < s.width {
				cell := s.cells[y*s.width+x]
				if cell.FG != first.FG || cell.BG != first.BG {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			style := lipgloss.NewStyle()
			if first.FG.Mode != ColorDefault {
				style = style.Foreground(lipglossColor(first.FG))
			}
			if first.BG.Mode != ColorDefault {
				style = style.Background(lipglossColor(first.BG))
			}
			if first.FG.Mode == ColorDefault && first.BG.Mode == ColorDefault {
				out.WriteString(run.String())
			} else {
				out.WriteString(style.Render(run.String()))
			}
		}
		if y < s.height-1 {
			out.WriteByte('\n')
		}
	}
	return out.String()
}

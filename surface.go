package loom

// Surface is the paint backend boundary. Draw ops are addressed in the
// current local coordinate space (origin top-left, y-down); Save/Restore
// scope transform and clip changes.
type Surface interface {
	Save()
	Restore()
	Transform(a Affine)
	Clip(r Rect)
	FillRect(r Rect, c Color)
	StrokeLine(l Line, c Color, width float64)
	DrawText(text string, origin Point, c Color, size float64)
}

// PaintOpKind tags one recorded operation.
type PaintOpKind uint8

const (
	OpFillRect PaintOpKind = iota
	OpStrokeLine
	OpDrawText
)

// PaintOp is one drawing operation captured by a RecordingSurface, with
// the transform at record time already applied to its geometry.
type PaintOp struct {
	Kind  PaintOpKind
	Rect  Rect
	Line  Line
	Text  string
	At    Point
	Color Color
	Width float64
}

// RecordingSurface captures draw ops instead of rasterizing them. Tests
// use it to assert what painted and where; it is also handy for headless
// snapshots.
type RecordingSurface struct {
	Ops   []PaintOp
	stack []surfaceState
	cur   surfaceState
}

type surfaceState struct {
	transform Affine
	clip      Rect
	hasClip   bool
}

// NewRecordingSurface returns an empty recording surface.
func NewRecordingSurface() *RecordingSurface {
	return &RecordingSurface{cur: surfaceState{transform: IdentityAffine()}}
}

// Save pushes the current transform and clip.
func (s *RecordingSurface) Save() {
	s.stack = append(s.stack, s.cur)
}

// Restore pops the most recent Save. An unmatched Restore is a logged
// no-op rather than a crash.
func (s *RecordingSurface) Restore() {
	if len(s.stack) == 0 {
		logger.Warn("surface restore without matching save")
		return
	}
	s.cur = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

// Transform composes a onto the current transform.
func (s *RecordingSurface) Transform(a Affine) {
	s.cur.transform = s.cur.transform.Mul(a)
}

// Clip intersects the clip region with r (in local coordinates).
func (s *RecordingSurface) Clip(r Rect) {
	abs := s.mapRect(r)
	if s.cur.hasClip {
		s.cur.clip = s.cur.clip.Intersect(abs)
	} else {
		s.cur.clip = abs
		s.cur.hasClip = true
	}
}

// ClipRect returns the active clip in root coordinates, if any.
func (s *RecordingSurface) ClipRect() (Rect, bool) {
	return s.cur.clip, s.cur.hasClip
}

func (s *RecordingSurface) mapRect(r Rect) Rect {
	p0 := s.cur.transform.Apply(r.Origin())
	p1 := s.cur.transform.Apply(Point{r.X1, r.Y1})
	return Rect{p0.X, p0.Y, p1.X, p1.Y}
}

// FillRect records a filled rectangle.
func (s *RecordingSurface) FillRect(r Rect, c Color) {
	s.Ops = append(s.Ops, PaintOp{Kind: OpFillRect, Rect: s.mapRect(r), Color: c})
}

// StrokeLine records a stroked segment.
func (s *RecordingSurface) StrokeLine(l Line, c Color, width float64) {
	s.Ops = append(s.Ops, PaintOp{
		Kind:  OpStrokeLine,
		Line:  Line{s.cur.transform.Apply(l.P0), s.cur.transform.Apply(l.P1)},
		Color: c,
		Width: width,
	})
}

// DrawText records positioned text.
func (s *RecordingSurface) DrawText(text string, origin Point, c Color, size float64) {
	s.Ops = append(s.Ops, PaintOp{
		Kind:  OpDrawText,
		Text:  text,
		At:    s.cur.transform.Apply(origin),
		Color: c,
		Width: size,
	})
}

// TextOps returns just the recorded text draws, in paint order.
func (s *RecordingSurface) TextOps() []PaintOp {
	var out []PaintOp
	for _, op := range s.Ops {
		if op.Kind == OpDrawText {
			out = append(out, op)
		}
	}
	return out
}

// Reset discards recorded ops and state, keeping allocations.
func (s *RecordingSurface) Reset() {
	s.Ops = s.Ops[:0]
	s.stack = s.stack[:0]
	s.cur = surfaceState{transform: IdentityAffine()}
}

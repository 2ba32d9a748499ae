package loom

import "math"

// Point is a position in 2D space, y-down.
type Point struct {
	X, Y float64
}

// Add returns the point shifted by the given vector.
func (p Point) Add(v Vec2) Point {
	return Point{p.X + v.X, p.Y + v.Y}
}

// Sub returns the vector from other to p.
func (p Point) Sub(other Point) Vec2 {
	return Vec2{p.X - other.X, p.Y - other.Y}
}

// Vec2 is a 2D displacement. It doubles as a small data value for scroll
// offsets, so it carries Same/Clone.
type Vec2 struct {
	X, Y float64
}

// Add returns the component-wise sum.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Negate returns the vector pointing the opposite way.
func (v Vec2) Negate() Vec2 {
	return Vec2{-v.X, -v.Y}
}

// Same reports exact equality.
func (v Vec2) Same(other Vec2) bool {
	return v == other
}

// Clone returns a copy.
func (v Vec2) Clone() Vec2 {
	return v
}

// Size is a width/height pair.
type Size struct {
	Width, Height float64
}

// IsFinite reports whether both dimensions are finite and not NaN.
func (s Size) IsFinite() bool {
	return !math.IsInf(s.Width, 0) && !math.IsInf(s.Height, 0) &&
		!math.IsNaN(s.Width) && !math.IsNaN(s.Height)
}

// Clamp limits the size to lie between min and max, component-wise.
func (s Size) Clamp(min, max Size) Size {
	w := math.Max(min.Width, math.Min(max.Width, s.Width))
	h := math.Max(min.Height, math.Min(max.Height, s.Height))
	return Size{w, h}
}

// Same reports exact equality.
func (s Size) Same(other Size) bool {
	return s == other
}

// Clone returns a copy.
func (s Size) Clone() Size {
	return s
}

// Rect is an axis-aligned rectangle with min/max corners.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// RectFromOriginSize builds a rect from a top-left origin and a size.
func RectFromOriginSize(origin Point, size Size) Rect {
	return Rect{origin.X, origin.Y, origin.X + size.Width, origin.Y + size.Height}
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point {
	return Point{r.X0, r.Y0}
}

// RectSize returns the rect's dimensions.
func (r Rect) RectSize() Size {
	return Size{r.X1 - r.X0, r.Y1 - r.Y0}
}

// Contains reports whether the point lies inside the rect. The top and left
// edges are inclusive, the bottom and right exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X0 && p.X < r.X1 && p.Y >= r.Y0 && p.Y < r.Y1
}

// Union returns the smallest rect covering both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		math.Min(r.X0, other.X0),
		math.Min(r.Y0, other.Y0),
		math.Max(r.X1, other.X1),
		math.Max(r.Y1, other.Y1),
	}
}

// Intersect returns the overlap of r and other. The result may be empty.
func (r Rect) Intersect(other Rect) Rect {
	out := Rect{
		math.Max(r.X0, other.X0),
		math.Max(r.Y0, other.Y0),
		math.Min(r.X1, other.X1),
		math.Min(r.Y1, other.Y1),
	}
	if out.X1 < out.X0 {
		out.X1 = out.X0
	}
	if out.Y1 < out.Y0 {
		out.Y1 = out.Y0
	}
	return out
}

// WithOrigin returns the rect moved to a new top-left corner, keeping size.
func (r Rect) WithOrigin(origin Point) Rect {
	return RectFromOriginSize(origin, r.RectSize())
}

// WithSize returns the rect resized in place, keeping the origin.
func (r Rect) WithSize(size Size) Rect {
	return RectFromOriginSize(r.Origin(), size)
}

// Line is a segment between two points.
type Line struct {
	P0, P1 Point
}

// Insets describes spacing around a rect's four edges.
type Insets struct {
	Top, Right, Bottom, Left float64
}

// UniformInsets returns the same spacing on every edge.
func UniformInsets(v float64) Insets {
	return Insets{v, v, v, v}
}

// Affine is a 2D affine transform in column-major [a b c d e f] form,
// mapping (x, y) to (a*x + c*y + e, b*x + d*y + f).
type Affine [6]float64

// IdentityAffine returns the identity transform.
func IdentityAffine() Affine {
	return Affine{1, 0, 0, 1, 0, 0}
}

// Translate returns a pure translation.
func Translate(v Vec2) Affine {
	return Affine{1, 0, 0, 1, v.X, v.Y}
}

// Rotate returns a rotation about the origin by theta radians.
func Rotate(theta float64) Affine {
	s, c := math.Sin(theta), math.Cos(theta)
	return Affine{c, s, -s, c, 0, 0}
}

// Mul composes two transforms; the receiver applies second.
func (a Affine) Mul(b Affine) Affine {
	return Affine{
		a[0]*b[0] + a[2]*b[1],
		a[1]*b[0] + a[3]*b[1],
		a[0]*b[2] + a[2]*b[3],
		a[1]*b[2] + a[3]*b[3],
		a[0]*b[4] + a[2]*b[5] + a[4],
		a[1]*b[4] + a[3]*b[5] + a[5],
	}
}

// Apply transforms a point.
func (a Affine) Apply(p Point) Point {
	return Point{
		a[0]*p.X + a[2]*p.Y + a[4],
		a[1]*p.X + a[3]*p.Y + a[5],
	}
}

// Axis is a layout direction.
type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
)

// Cross returns the perpendicular axis.
func (a Axis) Cross() Axis {
	if a == Horizontal {
		return Vertical
	}
	return Horizontal
}

// Major extracts the size component along the axis.
func (a Axis) Major(s Size) float64 {
	if a == Horizontal {
		return s.Width
	}
	return s.Height
}

// Minor extracts the size component across the axis.
func (a Axis) Minor(s Size) float64 {
	return a.Cross().Major(s)
}

// MajorPos extracts the coordinate along the axis.
func (a Axis) MajorPos(p Point) float64 {
	if a == Horizontal {
		return p.X
	}
	return p.Y
}

// MinorPos extracts the coordinate across the axis.
func (a Axis) MinorPos(p Point) float64 {
	return a.Cross().MajorPos(p)
}

// Pack builds a point from major/minor components.
func (a Axis) Pack(major, minor float64) Point {
	if a == Horizontal {
		return Point{major, minor}
	}
	return Point{minor, major}
}

// PackSize builds a size from major/minor components.
func (a Axis) PackSize(major, minor float64) Size {
	if a == Horizontal {
		return Size{major, minor}
	}
	return Size{minor, major}
}

// MajorSpan returns the near and far edges of the rect along the axis.
func (a Axis) MajorSpan(r Rect) (near, far float64) {
	if a == Horizontal {
		return r.X0, r.X1
	}
	return r.Y0, r.Y1
}

// MinorSpan returns the near and far edges of the rect across the axis.
func (a Axis) MinorSpan(r Rect) (near, far float64) {
	return a.Cross().MajorSpan(r)
}

package scene

import (
	"github.com/chewxy/math32"
)

// Point is a position in scene space.
type Point struct {
	X, Y float32
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float32) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p scaled by s.
func (p Point) Scale(s float32) Point { return Point{p.X * s, p.Y * s} }

// Rect is an axis-aligned rectangle given by its min and max corners.
type Rect struct {
	MinX, MinY float32
	MaxX, MaxY float32
}

// RectXYWH creates a rectangle from an origin and a size.
func RectXYWH(x, y, w, h float32) Rect {
	return Rect{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
}

// EmptyRect returns an inverted rectangle that acts as the identity for Union.
func EmptyRect() Rect {
	return Rect{
		MinX: math32.MaxFloat32,
		MinY: math32.MaxFloat32,
		MaxX: -math32.MaxFloat32,
		MaxY: -math32.MaxFloat32,
	}
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.MinX >= r.MaxX || r.MinY >= r.MaxY
}

// Width returns the width of r, or 0 if r is empty.
func (r Rect) Width() float32 {
	if r.IsEmpty() {
		return 0
	}
	return r.MaxX - r.MinX
}

// Height returns the height of r, or 0 if r is empty.
func (r Rect) Height() float32 {
	if r.IsEmpty() {
		return 0
	}
	return r.MaxY - r.MinY
}

// Union returns the smallest rectangle containing r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		MinX: min(r.MinX, o.MinX),
		MinY: min(r.MinY, o.MinY),
		MaxX: max(r.MaxX, o.MaxX),
		MaxY: max(r.MaxY, o.MaxY),
	}
}

// UnionPoint expands r to include (x, y).
func (r Rect) UnionPoint(x, y float32) Rect {
	return Rect{
		MinX: min(r.MinX, x),
		MinY: min(r.MinY, y),
		MaxX: max(r.MaxX, x),
		MaxY: max(r.MaxY, y),
	}
}

// Inset grows r by d on every side (shrinks it for negative d).
func (r Rect) Inset(d float32) Rect {
	return Rect{MinX: r.MinX - d, MinY: r.MinY - d, MaxX: r.MaxX + d, MaxY: r.MaxY + d}
}

// Transform returns the bounding box of r mapped through t.
func (r Rect) Transform(t Affine) Rect {
	if r.IsEmpty() {
		return r
	}
	out := EmptyRect()
	for _, p := range [4]Point{{r.MinX, r.MinY}, {r.MaxX, r.MinY}, {r.MaxX, r.MaxY}, {r.MinX, r.MaxY}} {
		x, y := t.TransformPoint(p.X, p.Y)
		out = out.UnionPoint(x, y)
	}
	return out
}

// Affine is a 2D affine transformation stored in row-major order:
//
//	| A  B  C |
//	| D  E  F |
//
// A point (x, y) maps to:
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
//
// Affine is an immutable value; every operation returns a new transform.
type Affine struct {
	A, B, C float32
	D, E, F float32
}

// IdentityAffine returns the identity transformation.
func IdentityAffine() Affine {
	return Affine{A: 1, E: 1}
}

// TranslateAffine creates a translation.
func TranslateAffine(x, y float32) Affine {
	return Affine{A: 1, C: x, E: 1, F: y}
}

// ScaleAffine creates a non-uniform scale.
func ScaleAffine(x, y float32) Affine {
	return Affine{A: x, E: y}
}

// UniformScaleAffine creates a scale by s on both axes.
func UniformScaleAffine(s float32) Affine {
	return ScaleAffine(s, s)
}

// RotateAffine creates a rotation by angle radians.
func RotateAffine(angle float32) Affine {
	sin, cos := math32.Sincos(angle)
	return Affine{A: cos, B: -sin, D: sin, E: cos}
}

// FlipY mirrors the vertical axis. Glyph outlines are defined y-up while the
// scene is y-down; FlipY maps one onto the other.
func FlipY() Affine {
	return ScaleAffine(1, -1)
}

// Multiply returns a·b: the transform that applies b first, then a.
func (a Affine) Multiply(b Affine) Affine {
	return Affine{
		A: a.A*b.A + a.B*b.D,
		B: a.A*b.B + a.B*b.E,
		C: a.A*b.C + a.B*b.F + a.C,
		D: a.D*b.A + a.E*b.D,
		E: a.D*b.B + a.E*b.E,
		F: a.D*b.C + a.E*b.F + a.F,
	}
}

// Then returns the transform that applies a first, then b.
func (a Affine) Then(b Affine) Affine {
	return b.Multiply(a)
}

// TransformPoint maps (x, y) through a.
func (a Affine) TransformPoint(x, y float32) (float32, float32) {
	return a.A*x + a.B*y + a.C, a.D*x + a.E*y + a.F
}

// Apply maps p through a.
func (a Affine) Apply(p Point) Point {
	x, y := a.TransformPoint(p.X, p.Y)
	return Point{x, y}
}

// Determinant returns the determinant of the linear part.
func (a Affine) Determinant() float32 {
	return a.A*a.E - a.B*a.D
}

// ScaleFactor returns an approximation of the uniform scale applied by a,
// the square root of the absolute determinant.
func (a Affine) ScaleFactor() float32 {
	return math32.Sqrt(math32.Abs(a.Determinant()))
}

// IsIdentity reports whether a is exactly the identity.
func (a Affine) IsIdentity() bool {
	return a == IdentityAffine()
}

// ApproxEqual reports whether every coefficient of a and b differs by at most eps.
func (a Affine) ApproxEqual(b Affine, eps float32) bool {
	return math32.Abs(a.A-b.A) <= eps && math32.Abs(a.B-b.B) <= eps &&
		math32.Abs(a.C-b.C) <= eps && math32.Abs(a.D-b.D) <= eps &&
		math32.Abs(a.E-b.E) <= eps && math32.Abs(a.F-b.F) <= eps
}

package scene

// Shape is anything that can be converted to a path for filling or clipping.
type Shape interface {
	// ToPath returns the shape outline in its local coordinates.
	ToPath() *Path
	// Bounds returns the shape's local bounding box.
	Bounds() Rect
}

// RectShape is an axis-aligned rectangle.
type RectShape struct {
	X, Y, Width, Height float32
}

// NewRectShape creates a rectangle shape.
func NewRectShape(x, y, width, height float32) *RectShape {
	return &RectShape{X: x, Y: y, Width: width, Height: height}
}

// ToPath implements Shape.
func (r *RectShape) ToPath() *Path {
	return NewPath().Rectangle(r.X, r.Y, r.Width, r.Height)
}

// Bounds implements Shape.
func (r *RectShape) Bounds() Rect {
	return RectXYWH(r.X, r.Y, r.Width, r.Height)
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r *RectShape) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// EllipseShape is an axis-aligned ellipse.
type EllipseShape struct {
	CX, CY, RX, RY float32
}

// NewCircleShape creates a circle.
func NewCircleShape(cx, cy, r float32) *EllipseShape {
	return &EllipseShape{CX: cx, CY: cy, RX: r, RY: r}
}

// ToPath implements Shape.
func (e *EllipseShape) ToPath() *Path {
	return NewPath().Ellipse(e.CX, e.CY, e.RX, e.RY)
}

// Bounds implements Shape.
func (e *EllipseShape) Bounds() Rect {
	return Rect{MinX: e.CX - e.RX, MinY: e.CY - e.RY, MaxX: e.CX + e.RX, MaxY: e.CY + e.RY}
}

// LineShape is a single line segment. It has no area and is only useful
// for strokes.
type LineShape struct {
	From, To Point
}

// NewLineShape creates a line segment from (x1, y1) to (x2, y2).
func NewLineShape(x1, y1, x2, y2 float32) *LineShape {
	return &LineShape{From: Point{x1, y1}, To: Point{x2, y2}}
}

// ToPath implements Shape.
func (l *LineShape) ToPath() *Path {
	return NewPath().MoveTo(l.From.X, l.From.Y).LineTo(l.To.X, l.To.Y)
}

// Bounds implements Shape.
func (l *LineShape) Bounds() Rect {
	return EmptyRect().UnionPoint(l.From.X, l.From.Y).UnionPoint(l.To.X, l.To.Y)
}

// PathShape adapts a Path to the Shape interface.
type PathShape struct {
	Path *Path
}

// NewPathShape wraps p.
func NewPathShape(p *Path) *PathShape {
	return &PathShape{Path: p}
}

// ToPath implements Shape.
func (s *PathShape) ToPath() *Path {
	if s.Path == nil {
		return NewPath()
	}
	return s.Path
}

// Bounds implements Shape.
func (s *PathShape) Bounds() Rect {
	return s.Path.Bounds()
}

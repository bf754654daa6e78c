package scene

import (
	"iter"

	"github.com/chewxy/math32"
)

// PathVerb is a path construction command.
type PathVerb uint8

const (
	VerbMoveTo PathVerb = iota
	VerbLineTo
	VerbQuadTo
	VerbCubicTo
	VerbClose
)

func (v PathVerb) String() string {
	switch v {
	case VerbMoveTo:
		return "MoveTo"
	case VerbLineTo:
		return "LineTo"
	case VerbQuadTo:
		return "QuadTo"
	case VerbCubicTo:
		return "CubicTo"
	case VerbClose:
		return "Close"
	default:
		return unknownStr
	}
}

// pointCount is the number of points a verb consumes.
func (v PathVerb) pointCount() int {
	switch v {
	case VerbMoveTo, VerbLineTo:
		return 1
	case VerbQuadTo:
		return 2
	case VerbCubicTo:
		return 3
	default:
		return 0
	}
}

// PathElement is one decoded path command. Pts holds the verb's points in
// order; only the first pointCount entries are meaningful.
type PathElement struct {
	Verb PathVerb
	Pts  [3]Point
}

// End returns the element's end point. It is the zero point for Close.
func (e PathElement) End() Point {
	if n := e.Verb.pointCount(); n > 0 {
		return e.Pts[n-1]
	}
	return Point{}
}

// Path is a vector path made of subpaths of lines and Bézier curves.
// Verbs and points are stored in separate streams.
type Path struct {
	verbs  []PathVerb
	points []Point
	bounds Rect
}

// NewPath creates an empty path.
func NewPath() *Path {
	return &Path{bounds: EmptyRect()}
}

func (p *Path) push(v PathVerb, pts ...Point) *Path {
	if p.verbs == nil {
		p.bounds = EmptyRect()
	}
	p.verbs = append(p.verbs, v)
	for _, pt := range pts {
		p.points = append(p.points, pt)
		p.bounds = p.bounds.UnionPoint(pt.X, pt.Y)
	}
	return p
}

// MoveTo begins a new subpath at (x, y).
func (p *Path) MoveTo(x, y float32) *Path {
	return p.push(VerbMoveTo, Point{x, y})
}

// LineTo adds a line from the current point to (x, y).
func (p *Path) LineTo(x, y float32) *Path {
	return p.push(VerbLineTo, Point{x, y})
}

// QuadTo adds a quadratic Bézier with control point (cx, cy).
func (p *Path) QuadTo(cx, cy, x, y float32) *Path {
	return p.push(VerbQuadTo, Point{cx, cy}, Point{x, y})
}

// CubicTo adds a cubic Bézier with control points (c1x, c1y) and (c2x, c2y).
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float32) *Path {
	return p.push(VerbCubicTo, Point{c1x, c1y}, Point{c2x, c2y}, Point{x, y})
}

// Close closes the current subpath.
func (p *Path) Close() *Path {
	return p.push(VerbClose)
}

// Rectangle adds a closed rectangle subpath.
func (p *Path) Rectangle(x, y, w, h float32) *Path {
	return p.MoveTo(x, y).LineTo(x+w, y).LineTo(x+w, y+h).LineTo(x, y+h).Close()
}

// kappa is the cubic control distance for a quarter circle of radius 1.
const kappa = 0.5522847498

// Ellipse adds a closed ellipse subpath made of four cubic arcs.
func (p *Path) Ellipse(cx, cy, rx, ry float32) *Path {
	kx, ky := rx*kappa, ry*kappa
	return p.MoveTo(cx+rx, cy).
		CubicTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry).
		CubicTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy).
		CubicTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry).
		CubicTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy).
		Close()
}

// Bounds returns a conservative bounding box that includes control points.
func (p *Path) Bounds() Rect {
	if p == nil || len(p.verbs) == 0 {
		return EmptyRect()
	}
	return p.bounds
}

// IsEmpty reports whether the path has no commands.
func (p *Path) IsEmpty() bool {
	return p == nil || len(p.verbs) == 0
}

// Len returns the number of commands in the path.
func (p *Path) Len() int {
	if p == nil {
		return 0
	}
	return len(p.verbs)
}

// Elements iterates over the path commands in order.
func (p *Path) Elements() iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		if p == nil {
			return
		}
		i := 0
		for _, v := range p.verbs {
			e := PathElement{Verb: v}
			n := v.pointCount()
			copy(e.Pts[:n], p.points[i:i+n])
			i += n
			if !yield(e) {
				return
			}
		}
	}
}

// Transform returns a new path with every point mapped through t.
func (p *Path) Transform(t Affine) *Path {
	out := &Path{
		verbs:  append([]PathVerb(nil), p.verbs...),
		points: make([]Point, len(p.points)),
		bounds: EmptyRect(),
	}
	for i, pt := range p.points {
		q := t.Apply(pt)
		out.points[i] = q
		out.bounds = out.bounds.UnionPoint(q.X, q.Y)
	}
	return out
}

// Length returns the polyline length of the path, measuring curves by
// their control polygon.
func (p *Path) Length() float32 {
	var total float32
	var cur, start Point
	for e := range p.Elements() {
		switch e.Verb {
		case VerbMoveTo:
			cur, start = e.Pts[0], e.Pts[0]
		case VerbClose:
			total += dist(cur, start)
			cur = start
		default:
			for _, pt := range e.Pts[:e.Verb.pointCount()] {
				total += dist(cur, pt)
				cur = pt
			}
		}
	}
	return total
}

func dist(a, b Point) float32 {
	return math32.Hypot(b.X-a.X, b.Y-a.Y)
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package raster converts scene paths into polygons for the software
// rasterizer: curve flattening, stroke expansion and coverage masks.
package raster

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/scenekit/scene"
)

// Tolerance is the maximum distance, in device pixels, between a curve and
// its flattened polyline.
const Tolerance = 0.1

// Polyline is one flattened subpath.
type Polyline struct {
	Pts    []scene.Point
	Closed bool
}

// Flatten converts p into polylines, subdividing curves until every chord
// is within tolerance of the curve. Tolerance is in path units.
func Flatten(p *scene.Path, tolerance float32) []Polyline {
	if tolerance <= 0 {
		tolerance = Tolerance
	}
	var out []Polyline
	var cur Polyline
	var pen scene.Point

	flush := func() {
		if len(cur.Pts) > 1 {
			out = append(out, cur)
		}
		cur = Polyline{}
	}

	for e := range p.Elements() {
		switch e.Verb {
		case scene.VerbMoveTo:
			flush()
			pen = e.Pts[0]
			cur.Pts = append(cur.Pts, pen)
		case scene.VerbLineTo:
			if len(cur.Pts) == 0 {
				cur.Pts = append(cur.Pts, pen)
			}
			pen = e.Pts[0]
			cur.Pts = append(cur.Pts, pen)
		case scene.VerbQuadTo:
			if len(cur.Pts) == 0 {
				cur.Pts = append(cur.Pts, pen)
			}
			flattenQuad(pen, e.Pts[0], e.Pts[1], tolerance, &cur.Pts)
			pen = e.Pts[1]
		case scene.VerbCubicTo:
			if len(cur.Pts) == 0 {
				cur.Pts = append(cur.Pts, pen)
			}
			flattenCubic(pen, e.Pts[0], e.Pts[1], e.Pts[2], tolerance, &cur.Pts)
			pen = e.Pts[2]
		case scene.VerbClose:
			if len(cur.Pts) > 0 {
				cur.Closed = true
				pen = cur.Pts[0]
				flush()
			}
		}
	}
	flush()
	return out
}

// Transform maps every point of lines through t in place.
func Transform(lines []Polyline, t scene.Affine) {
	if t.IsIdentity() {
		return
	}
	for i := range lines {
		for j, pt := range lines[i].Pts {
			lines[i].Pts[j] = t.Apply(pt)
		}
	}
}

// maxDepth bounds subdivision for degenerate or huge curves.
const maxDepth = 16

func flattenQuad(p0, p1, p2 scene.Point, tol float32, pts *[]scene.Point) {
	flattenQuadRec(p0, p1, p2, tol, 0, pts)
}

func flattenQuadRec(p0, p1, p2 scene.Point, tol float32, depth int, pts *[]scene.Point) {
	if depth >= maxDepth || distanceToLine(p1, p0, p2) < tol {
		*pts = append(*pts, p2)
		return
	}
	q0 := lerp(p0, p1, 0.5)
	q1 := lerp(p1, p2, 0.5)
	m := lerp(q0, q1, 0.5)
	flattenQuadRec(p0, q0, m, tol, depth+1, pts)
	flattenQuadRec(m, q1, p2, tol, depth+1, pts)
}

func flattenCubic(p0, p1, p2, p3 scene.Point, tol float32, pts *[]scene.Point) {
	flattenCubicRec(p0, p1, p2, p3, tol, 0, pts)
}

func flattenCubicRec(p0, p1, p2, p3 scene.Point, tol float32, depth int, pts *[]scene.Point) {
	d := max(distanceToLine(p1, p0, p3), distanceToLine(p2, p0, p3))
	if depth >= maxDepth || d < tol {
		*pts = append(*pts, p3)
		return
	}
	// de Casteljau split at t = 0.5
	q0 := lerp(p0, p1, 0.5)
	q1 := lerp(p1, p2, 0.5)
	q2 := lerp(p2, p3, 0.5)
	r0 := lerp(q0, q1, 0.5)
	r1 := lerp(q1, q2, 0.5)
	s := lerp(r0, r1, 0.5)
	flattenCubicRec(p0, q0, r0, s, tol, depth+1, pts)
	flattenCubicRec(s, r1, q2, p3, tol, depth+1, pts)
}

func lerp(p, q scene.Point, t float32) scene.Point {
	return scene.Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

// distanceToLine returns the distance from p to segment ab.
func distanceToLine(p, a, b scene.Point) float32 {
	ab := b.Sub(a)
	l2 := ab.X*ab.X + ab.Y*ab.Y
	if l2 < 1e-12 {
		return dist(p, a)
	}
	ap := p.Sub(a)
	t := (ap.X*ab.X + ap.Y*ab.Y) / l2
	switch {
	case t < 0:
		return dist(p, a)
	case t > 1:
		return dist(p, b)
	}
	return dist(p, a.Add(ab.Scale(t)))
}

func dist(a, b scene.Point) float32 {
	return math32.Hypot(b.X-a.X, b.Y-a.Y)
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/scenekit/scene"
)

// Stroke expands polylines into closed quads, one per segment, of the given
// width. All quads share one orientation so their coverage adds up under
// the non-zero rule and overlaps at joins do not cancel. Caps are butt and
// joins are left open.
func Stroke(lines []Polyline, width float32) []Polyline {
	if width <= 0 {
		return nil
	}
	hw := width / 2
	var out []Polyline
	for _, l := range lines {
		pts := l.Pts
		if l.Closed && len(pts) > 1 && pts[0] != pts[len(pts)-1] {
			pts = append(pts[:len(pts):len(pts)], pts[0])
		}
		for i := 1; i < len(pts); i++ {
			if q, ok := segmentQuad(pts[i-1], pts[i], hw); ok {
				out = append(out, q)
			}
		}
	}
	return out
}

func segmentQuad(a, b scene.Point, hw float32) (Polyline, bool) {
	d := b.Sub(a)
	l := math32.Hypot(d.X, d.Y)
	if l < 1e-6 {
		return Polyline{}, false
	}
	// left normal scaled to half width
	n := scene.Point{X: -d.Y / l * hw, Y: d.X / l * hw}
	return Polyline{
		Pts:    []scene.Point{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)},
		Closed: true,
	}, true
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	"image"
	"image/color"

	"golang.org/x/image/vector"
)

// Mask accumulates polygons into an anti-aliased coverage mask. A Mask is
// reused across draws to keep the rasterizer's buffers.
type Mask struct {
	z     vector.Rasterizer
	alpha *image.Alpha
}

// NewMask creates a mask of w×h pixels.
func NewMask(w, h int) *Mask {
	m := &Mask{}
	m.Reset(w, h)
	return m
}

// Reset clears the mask and resizes it to w×h.
func (m *Mask) Reset(w, h int) {
	m.z.Reset(w, h)
	if m.alpha == nil || m.alpha.Rect.Dx() != w || m.alpha.Rect.Dy() != h {
		m.alpha = image.NewAlpha(image.Rect(0, 0, w, h))
		return
	}
	clear(m.alpha.Pix)
}

// Add adds polygons in device space. Open polylines are closed implicitly.
func (m *Mask) Add(lines []Polyline) {
	for _, l := range lines {
		if len(l.Pts) < 2 {
			continue
		}
		m.z.MoveTo(l.Pts[0].X, l.Pts[0].Y)
		for _, p := range l.Pts[1:] {
			m.z.LineTo(p.X, p.Y)
		}
		m.z.ClosePath()
	}
}

// Coverage renders the accumulated polygons scaled by alpha and returns the
// mask image. The result is owned by m and valid until the next Reset.
func (m *Mask) Coverage(alpha float32) *image.Alpha {
	a := uint8(clamp01(alpha)*255 + 0.5)
	m.z.Draw(m.alpha, m.alpha.Rect, image.NewUniform(color.Alpha{A: a}), image.Point{})
	return m.alpha
}

// Fill returns a mask of w×h with every pixel set to alpha.
func Fill(w, h int, alpha float32) *image.Alpha {
	img := image.NewAlpha(image.Rect(0, 0, w, h))
	a := uint8(clamp01(alpha)*255 + 0.5)
	for i := range img.Pix {
		img.Pix[i] = a
	}
	return img
}

func clamp01(v float32) float32 {
	return min(max(v, 0), 1)
}

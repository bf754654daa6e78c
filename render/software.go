// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"context"
	"fmt"
	"image"
	"image/draw"

	"github.com/gogpu/scenekit"
	"github.com/gogpu/scenekit/internal/raster"
	"github.com/gogpu/scenekit/scene"
	"github.com/gogpu/scenekit/surface"
)

// SoftwareOption configures a SoftwareRasterizer.
type SoftwareOption func(*SoftwareRasterizer)

// WithClearColor sets the color the target is cleared to before each frame.
// The default is transparent.
func WithClearColor(c scenekit.RGBA) SoftwareOption {
	return func(r *SoftwareRasterizer) {
		r.clear = c
	}
}

// SoftwareRasterizer is the reference CPU rasterizer. It draws into the
// target's staging image using golang.org/x/image/vector coverage.
//
// Fills use the non-zero rule (even-odd fills are drawn as non-zero),
// strokes use butt caps without join geometry, and layers are rendered into
// offscreen buffers composited with their alpha, clip and blend mode.
// Fragments are drawn through Scene.Flattened.
//
// SoftwareRasterizer reuses its buffers across frames and is not safe for
// concurrent use.
type SoftwareRasterizer struct {
	clear scenekit.RGBA
	mask  *raster.Mask
	clip  *raster.Mask
	pool  []*image.RGBA
}

// NewSoftwareRasterizer creates a rasterizer.
func NewSoftwareRasterizer(opts ...SoftwareOption) *SoftwareRasterizer {
	r := &SoftwareRasterizer{
		clear: scenekit.Transparent,
		mask:  raster.NewMask(0, 0),
		clip:  raster.NewMask(0, 0),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

type layerState struct {
	img   *image.RGBA
	blend scene.BlendMode
	alpha float32
	clip  *image.Alpha // nil when unclipped
}

// Render implements Rasterizer.
func (r *SoftwareRasterizer) Render(ctx context.Context, s *scene.Scene, target surface.Target) error {
	if target == nil {
		return ErrNilTarget
	}
	base := target.Image()
	draw.Draw(base, base.Bounds(), image.NewUniform(r.clear), image.Point{}, draw.Src)
	if s == nil {
		return nil
	}

	stack := []*layerState{{img: base}}
	defer func() {
		for _, l := range stack[1:] {
			r.release(l.img)
		}
	}()

	for cmd := range s.Flattened() {
		if err := ctx.Err(); err != nil {
			return err
		}
		top := stack[len(stack)-1]

		switch c := cmd.(type) {
		case scene.Fill:
			if c.Shape == nil {
				continue
			}
			lines := raster.Flatten(c.Shape.ToPath(), tolerance(c.Transform))
			raster.Transform(lines, c.Transform)
			if err := r.paint(top.img, lines, c.Brush, c.Clip, c.Transform); err != nil {
				return err
			}
		case scene.Stroke:
			if c.Path == nil {
				continue
			}
			lines := raster.Flatten(c.Path, tolerance(c.Transform))
			quads := raster.Stroke(lines, c.Style.Width)
			raster.Transform(quads, c.Transform)
			if err := r.paint(top.img, quads, c.Brush, c.Clip, c.Transform); err != nil {
				return err
			}
		case scene.PushLayer:
			l := &layerState{img: r.acquire(base.Rect), blend: c.Blend, alpha: c.Alpha}
			if c.Clip != nil {
				l.clip = r.coverage(c.Clip, c.Transform, base.Rect, 1)
			}
			stack = append(stack, l)
		case scene.PopLayer:
			if len(stack) == 1 {
				return &scene.UnbalancedLayerError{Op: "Render", Depth: 0}
			}
			stack = stack[:len(stack)-1]
			r.composite(stack[len(stack)-1].img, top)
			r.release(top.img)
		case scene.AppendFragment:
			// expanded by Flattened
		default:
			return fmt.Errorf("render: unknown command %v", cmd.Kind())
		}
	}

	if depth := len(stack) - 1; depth != 0 {
		return &scene.UnbalancedLayerError{Op: "Render", Depth: depth}
	}
	return nil
}

// paint draws device-space polygons onto dst with brush, restricted to
// clip placed under t.
func (r *SoftwareRasterizer) paint(dst *image.RGBA, lines []raster.Polyline, brush scene.Brush, clip scene.Shape, t scene.Affine) error {
	src, err := brushSource(brush)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}
	w, h := dst.Rect.Dx(), dst.Rect.Dy()
	r.mask.Reset(w, h)
	r.mask.Add(lines)
	m := r.mask.Coverage(1)
	if clip != nil {
		multiplyAlpha(m, r.coverage(clip, t, dst.Rect, 1))
	}
	draw.DrawMask(dst, dst.Rect, src, image.Point{}, m, image.Point{}, draw.Over)
	return nil
}

// coverage returns a fresh alpha mask of shape under t.
func (r *SoftwareRasterizer) coverage(shape scene.Shape, t scene.Affine, bounds image.Rectangle, alpha float32) *image.Alpha {
	lines := raster.Flatten(shape.ToPath(), tolerance(t))
	raster.Transform(lines, t)
	r.clip.Reset(bounds.Dx(), bounds.Dy())
	r.clip.Add(lines)
	m := r.clip.Coverage(alpha)
	out := image.NewAlpha(m.Rect)
	copy(out.Pix, m.Pix)
	return out
}

// composite blends a finished layer onto its parent.
func (r *SoftwareRasterizer) composite(parent *image.RGBA, l *layerState) {
	var m *image.Alpha
	if l.clip != nil {
		m = l.clip
		scaleAlpha(m, l.alpha)
	} else {
		m = raster.Fill(parent.Rect.Dx(), parent.Rect.Dy(), l.alpha)
	}
	if l.blend == scene.BlendNormal {
		draw.DrawMask(parent, parent.Rect, l.img, image.Point{}, m, image.Point{}, draw.Over)
		return
	}
	raster.Composite(parent, l.img, m, l.blend)
}

func (r *SoftwareRasterizer) acquire(rect image.Rectangle) *image.RGBA {
	for i, img := range r.pool {
		if img.Rect == rect {
			r.pool = append(r.pool[:i], r.pool[i+1:]...)
			clear(img.Pix)
			return img
		}
	}
	return image.NewRGBA(rect)
}

func (r *SoftwareRasterizer) release(img *image.RGBA) {
	r.pool = append(r.pool, img)
}

// brushSource converts a brush to an image source. Every brush kind must
// have a case here.
func brushSource(b scene.Brush) (image.Image, error) {
	switch b.Kind {
	case scene.BrushSolid:
		return image.NewUniform(b.Color), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedBrush, b.Kind)
	}
}

// tolerance converts the device flattening tolerance into path units.
func tolerance(t scene.Affine) float32 {
	if s := t.ScaleFactor(); s > 1e-6 {
		return raster.Tolerance / s
	}
	return raster.Tolerance
}

func multiplyAlpha(dst, src *image.Alpha) {
	for i := range dst.Pix {
		dst.Pix[i] = uint8((uint16(dst.Pix[i])*uint16(src.Pix[i]) + 127) / 255)
	}
}

func scaleAlpha(m *image.Alpha, alpha float32) {
	a := uint16(min(max(alpha, 0), 1)*255 + 0.5)
	for i := range m.Pix {
		m.Pix[i] = uint8((uint16(m.Pix[i])*a + 127) / 255)
	}
}

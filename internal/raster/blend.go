// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	"image"

	"github.com/chewxy/math32"

	"github.com/gogpu/scenekit/scene"
)

// Composite blends src onto dst with a separable blend mode, scaling src by
// mask. Both images are premultiplied RGBA of the same bounds. The result
// follows the W3C compositing formula
//
//	Cr = (1 - Sa)·D + (1 - Da)·S + Sa·Da·B(Sc, Dc)
//
// with B applied to unpremultiplied channels.
func Composite(dst, src *image.RGBA, mask *image.Alpha, mode scene.BlendMode) {
	fn := blendFunc(mode)
	b := dst.Rect.Intersect(src.Rect)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			m := float32(1)
			if mask != nil {
				m = float32(mask.AlphaAt(x, y).A) / 255
			}
			si := src.PixOffset(x, y)
			sa := float32(src.Pix[si+3]) / 255 * m
			if sa == 0 {
				continue
			}
			di := dst.PixOffset(x, y)
			da := float32(dst.Pix[di+3]) / 255

			for c := 0; c < 3; c++ {
				s := float32(src.Pix[si+c]) / 255 * m
				d := float32(dst.Pix[di+c]) / 255
				var bl float32
				if da > 0 {
					bl = fn(s/sa, d/da)
				}
				r := (1-sa)*d + (1-da)*s + sa*da*bl
				dst.Pix[di+c] = toByte(r)
			}
			dst.Pix[di+3] = toByte(sa + da - sa*da)
		}
	}
}

func blendFunc(mode scene.BlendMode) func(s, d float32) float32 {
	switch mode {
	case scene.BlendMultiply:
		return func(s, d float32) float32 { return s * d }
	case scene.BlendScreen:
		return func(s, d float32) float32 { return s + d - s*d }
	case scene.BlendOverlay:
		return func(s, d float32) float32 {
			// hard light with the layers swapped
			if d <= 0.5 {
				return 2 * s * d
			}
			return 1 - 2*(1-s)*(1-d)
		}
	case scene.BlendDarken:
		return func(s, d float32) float32 { return min(s, d) }
	case scene.BlendLighten:
		return func(s, d float32) float32 { return max(s, d) }
	case scene.BlendDifference:
		return func(s, d float32) float32 { return math32.Abs(s - d) }
	case scene.BlendExclusion:
		return func(s, d float32) float32 { return s + d - 2*s*d }
	default:
		return func(s, _ float32) float32 { return s }
	}
}

func toByte(v float32) uint8 {
	return uint8(min(max(v, 0), 1)*255 + 0.5)
}

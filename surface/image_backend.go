// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"image"
	"time"

	"github.com/gogpu/gputypes"
)

// ImageBackend allocates CPU staging targets in RGBA8Unorm. It is the
// headless backend: Present calls the optional Presenter and otherwise only
// counts frames.
type ImageBackend struct {
	present Presenter
}

// NewImageBackend creates a backend. present may be nil.
func NewImageBackend(present Presenter) *ImageBackend {
	return &ImageBackend{present: present}
}

// Name implements Backend.
func (b *ImageBackend) Name() string { return "image" }

// CreateTarget implements Backend.
func (b *ImageBackend) CreateTarget(width, height int) (Target, error) {
	return newImageTarget(width, height, gputypes.TextureFormatRGBA8Unorm, b.present), nil
}

// ImageTarget is a Target backed by an in-memory RGBA image.
type ImageTarget struct {
	img       *image.RGBA
	scratch   *image.RGBA
	format    gputypes.TextureFormat
	present   Presenter
	presented uint64
	destroyed bool
}

func newImageTarget(width, height int, format gputypes.TextureFormat, present Presenter) *ImageTarget {
	return &ImageTarget{
		img:     image.NewRGBA(image.Rect(0, 0, width, height)),
		format:  format,
		present: present,
	}
}

// Width implements Target.
func (t *ImageTarget) Width() int { return t.img.Rect.Dx() }

// Height implements Target.
func (t *ImageTarget) Height() int { return t.img.Rect.Dy() }

// Format implements Target.
func (t *ImageTarget) Format() gputypes.TextureFormat { return t.format }

// Image implements Target.
func (t *ImageTarget) Image() *image.RGBA { return t.img }

// Presented returns the number of successful Present calls.
func (t *ImageTarget) Presented() uint64 { return t.presented }

// Timestamp implements Timestamper with the wall clock.
func (t *ImageTarget) Timestamp() (time.Time, bool) {
	if t.destroyed {
		return time.Time{}, false
	}
	return time.Now(), true
}

// Present implements Target.
func (t *ImageTarget) Present() error {
	if t.destroyed {
		return &SurfaceClosedError{Op: "Present"}
	}
	if t.present != nil {
		if err := t.present(t.formatted(), t.format); err != nil {
			return err
		}
	}
	t.presented++
	return nil
}

// formatted returns the pixels in the target's byte order.
func (t *ImageTarget) formatted() *image.RGBA {
	if t.format != gputypes.TextureFormatBGRA8Unorm {
		return t.img
	}
	if t.scratch == nil || t.scratch.Rect != t.img.Rect {
		t.scratch = image.NewRGBA(t.img.Rect)
	}
	src, dst := t.img.Pix, t.scratch.Pix
	for i := 0; i+3 < len(src); i += 4 {
		dst[i], dst[i+1], dst[i+2], dst[i+3] = src[i+2], src[i+1], src[i], src[i+3]
	}
	return t.scratch
}

// Destroy implements Target.
func (t *ImageTarget) Destroy() error {
	if t.destroyed {
		return &SurfaceClosedError{Op: "Destroy"}
	}
	t.destroyed = true
	t.img = image.NewRGBA(image.Rectangle{})
	t.scratch = nil
	return nil
}

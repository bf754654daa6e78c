// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"context"
	"image"
	"time"

	"github.com/gogpu/gputypes"
)

// Target is an allocated presentation target. The rasterizer draws into
// Image, then Present hands the pixels to the backend.
//
// Targets are created and destroyed only by a Manager and are not safe for
// concurrent use.
type Target interface {
	// Width returns the target width in pixels.
	Width() int

	// Height returns the target height in pixels.
	Height() int

	// Format returns the texture format the backend presents in.
	Format() gputypes.TextureFormat

	// Image returns the staging pixels, always in RGBA order.
	Image() *image.RGBA

	// Present submits the staging pixels for display. It may block until
	// the backend accepts the frame.
	Present() error

	// Destroy releases the target. Later calls return a SurfaceClosedError.
	Destroy() error
}

// Timestamper is implemented by targets that can report the presentation
// time of the upcoming frame.
type Timestamper interface {
	Timestamp() (time.Time, bool)
}

// Acquirer is implemented by targets that must wait for a free backbuffer
// before drawing. Acquire may block until one is available or ctx is done.
type Acquirer interface {
	Acquire(ctx context.Context) error
}

// Backend allocates targets.
type Backend interface {
	// Name identifies the backend in logs and errors.
	Name() string

	// CreateTarget allocates a target of width×height pixels. Dimensions
	// are validated by the caller.
	CreateTarget(width, height int) (Target, error)
}

// Presenter receives a finished frame. For BGRA targets the pixels have
// already been reordered, so img holds bytes in format order.
type Presenter func(img *image.RGBA, format gputypes.TextureFormat) error

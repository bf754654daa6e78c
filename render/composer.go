// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"context"
	"time"

	"github.com/gogpu/scenekit/scene"
	"github.com/gogpu/scenekit/surface"
)

// FrameContext describes the frame being produced.
type FrameContext struct {
	// Index increases by one every tick, starting at 0.
	Index uint64

	// Timestamp is the expected presentation time, when the target
	// reports one.
	Timestamp    time.Time
	HasTimestamp bool
}

// Composer records one frame into dst. dst has already been reset; the
// driver checks layer balance after Compose returns.
type Composer interface {
	Compose(dst *scene.Scene, frame FrameContext) error
}

// ComposeFunc adapts a function to Composer.
type ComposeFunc func(dst *scene.Scene, frame FrameContext) error

// Compose implements Composer.
func (f ComposeFunc) Compose(dst *scene.Scene, frame FrameContext) error {
	return f(dst, frame)
}

// Rasterizer turns a finished scene into pixels on target. It returns
// ErrDeviceLost when the underlying device is gone.
type Rasterizer interface {
	Render(ctx context.Context, s *scene.Scene, target surface.Target) error
}

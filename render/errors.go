// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/scenekit/surface"
)

// Sentinel errors for the render package.
var (
	// ErrDeviceLost is returned by a Rasterizer when the GPU device went
	// away during submission. It is fatal unless the driver was built with
	// WithDeviceLossRecovery.
	ErrDeviceLost = errors.New("render: device lost")

	// ErrUnsupportedBrush is returned for a brush kind the rasterizer cannot
	// paint.
	ErrUnsupportedBrush = errors.New("render: unsupported brush")

	// ErrNilTarget is returned when rendering without a target.
	ErrNilTarget = errors.New("render: nil target")

	// ErrNoScheduler is returned by SelectScheduler when the host supports
	// neither scheduling strategy.
	ErrNoScheduler = errors.New("render: host provides no frame scheduling")
)

// FrameError reports a frame that was skipped because composing or
// rasterizing it violated a contract (for example an unbalanced layer).
// The loop continues with the next frame.
type FrameError struct {
	Frame uint64
	Err   error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("render: frame %d skipped: %v", e.Frame, e.Err)
}

// Unwrap returns the underlying error.
func (e *FrameError) Unwrap() error { return e.Err }

// IsFatal reports whether err returned by Driver.Tick must stop the loop.
// Skipped frames and transient zero-size windows are not fatal; surface
// creation failures, destroyed surfaces and device loss are.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var fe *FrameError
	if errors.As(err, &fe) {
		return false
	}
	return !errors.Is(err, surface.ErrInvalidDimensions)
}

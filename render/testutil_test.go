// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"context"
	"errors"

	"github.com/gogpu/scenekit"
	"github.com/gogpu/scenekit/scene"
	"github.com/gogpu/scenekit/surface"
)

// countingScheduler counts RequestNextFrame calls.
type countingScheduler struct {
	n int
}

func (s *countingScheduler) RequestNextFrame() { s.n++ }

// recordingRasterizer records the scenes it is asked to draw and fails
// with err when set.
type recordingRasterizer struct {
	calls    int
	err      error
	failOnce bool
	lastLen  int
}

func (r *recordingRasterizer) Render(_ context.Context, s *scene.Scene, _ surface.Target) error {
	r.calls++
	r.lastLen = s.Len()
	if r.err != nil {
		err := r.err
		if r.failOnce {
			r.err = nil
		}
		return err
	}
	return nil
}

// failingBackend fails every CreateTarget call.
type failingBackend struct{}

func (failingBackend) Name() string { return "failing" }

func (failingBackend) CreateTarget(int, int) (surface.Target, error) {
	return nil, errors.New("no adapter")
}

// rectComposer fills one rectangle per frame and records frame contexts.
type rectComposer struct {
	frames []FrameContext
}

func (c *rectComposer) Compose(dst *scene.Scene, fc FrameContext) error {
	c.frames = append(c.frames, fc)
	dst.Fill(scene.FillNonZero, scene.IdentityAffine(), scene.SolidBrush(scenekit.Red), nil,
		scene.NewRectShape(0, 0, 10, 10))
	return nil
}

func newTestDriver(composer Composer, r Rasterizer, opts ...Option) (*Driver, *surface.Manager, *countingScheduler) {
	m := surface.NewManager(surface.NewImageBackend(nil))
	sched := &countingScheduler{}
	d := NewDriver(m, surface.NewHeadlessWindow(800, 600), composer, r, sched, opts...)
	return d, m, sched
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gogpu/scenekit"
	"github.com/gogpu/scenekit/scene"
	"github.com/gogpu/scenekit/surface"
)

// Option configures a Driver.
type Option func(*Driver)

// WithPacing sets the frame pacing. The default is PacingUncapped.
func WithPacing(p Pacing) Option {
	return func(d *Driver) {
		d.pacing = p
	}
}

// WithDeviceLossRecovery makes the driver recreate the surface and retry
// submission once when the rasterizer reports ErrDeviceLost. Without it
// device loss is fatal.
func WithDeviceLossRecovery(enabled bool) Option {
	return func(d *Driver) {
		d.recoverLoss = enabled
	}
}

// WithLogger sets the driver's logger. By default scenekit.Logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) {
		d.log = l
	}
}

// WithClock replaces the clock used for pacing.
func WithClock(now func() time.Time) Option {
	return func(d *Driver) {
		if now != nil {
			d.now = now
		}
	}
}

// Driver runs the per-frame loop: connect, acquire, compose, rasterize,
// present, schedule. Each Tick produces at most one frame; frames are
// produced strictly in index order and never overlap.
//
// Driver is not safe for concurrent use. Call Tick from the thread that
// owns the window.
type Driver struct {
	manager  *surface.Manager
	window   surface.Window
	composer Composer
	raster   Rasterizer
	sched    FrameScheduler

	scene       *scene.Scene
	frame       uint64
	pacing      Pacing
	recoverLoss bool
	lastPresent time.Time
	now         func() time.Time
	log         *slog.Logger
}

// NewDriver creates a driver. It panics if manager, composer, rasterizer or
// scheduler is nil.
func NewDriver(manager *surface.Manager, window surface.Window, composer Composer,
	rasterizer Rasterizer, scheduler FrameScheduler, opts ...Option,
) *Driver {
	switch {
	case manager == nil:
		panic("render: nil surface manager")
	case composer == nil:
		panic("render: nil composer")
	case rasterizer == nil:
		panic("render: nil rasterizer")
	case scheduler == nil:
		panic("render: nil scheduler")
	}
	d := &Driver{
		manager:  manager,
		window:   window,
		composer: composer,
		raster:   rasterizer,
		sched:    scheduler,
		scene:    scene.NewScene(),
		now:      time.Now,
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

func (d *Driver) logger() *slog.Logger {
	if d.log != nil {
		return d.log
	}
	return scenekit.Logger()
}

// Frame returns the index of the next frame.
func (d *Driver) Frame() uint64 { return d.frame }

// Scene returns the scene of the most recent frame.
func (d *Driver) Scene() *scene.Scene { return d.scene }

// Tick produces one frame.
//
// Errors are classified by IsFatal: a *FrameError means the frame was
// skipped and the next one is already scheduled; anything else fatal must
// end the loop.
func (d *Driver) Tick(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target, err := d.ensureTarget()
	if err != nil {
		if !IsFatal(err) {
			d.sched.RequestNextFrame()
		}
		return err
	}

	fc := FrameContext{Index: d.frame}
	if ts, ok := target.(surface.Timestamper); ok {
		fc.Timestamp, fc.HasTimestamp = ts.Timestamp()
	}
	if acq, ok := target.(surface.Acquirer); ok {
		if err := acq.Acquire(ctx); err != nil {
			return fmt.Errorf("render: acquire frame %d: %w", fc.Index, err)
		}
	}

	d.scene.Begin()
	if err := d.compose(fc); err != nil {
		return d.skip(fc, err)
	}

	if err := d.submit(ctx, target); err != nil {
		if errors.Is(err, ErrUnsupportedBrush) || errors.Is(err, scene.ErrUnbalancedLayer) {
			return d.skip(fc, err)
		}
		return fmt.Errorf("render: frame %d: %w", fc.Index, err)
	}

	d.frame++
	if err := sleepContext(ctx, d.pacing.delay(d.lastPresent, d.now())); err != nil {
		return err
	}
	d.lastPresent = d.now()
	d.logger().Debug("render: frame presented", "frame", fc.Index, "commands", d.scene.Len())
	d.sched.RequestNextFrame()
	return nil
}

// Run ticks until ctx is canceled, a fatal error occurs or the given number
// of frames has been produced (zero means no limit). It is the loop for
// hosts that do not drive ticks from their own event loop.
func (d *Driver) Run(ctx context.Context, frames uint64) error {
	start := d.frame
	for frames == 0 || d.frame-start < frames {
		if err := d.Tick(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			if IsFatal(err) {
				return err
			}
			d.logger().Warn("render: tick", "err", err)
		}
	}
	return nil
}

// Shutdown drains the surface manager to Destroyed. The host calls it
// before releasing the window.
func (d *Driver) Shutdown() error {
	if d.manager.State() == surface.StateDestroyed {
		return nil
	}
	return d.manager.OnDestroy()
}

func (d *Driver) ensureTarget() (surface.Target, error) {
	if t := d.manager.Target(); t != nil {
		return t, nil
	}
	if d.manager.State() == surface.StateDestroyed {
		return nil, &surface.SurfaceClosedError{Op: "Tick"}
	}
	if d.window == nil {
		return nil, errors.New("render: no window to connect")
	}
	if err := d.manager.OnConnect(d.window); err != nil {
		return nil, err
	}
	return d.manager.Target(), nil
}

func (d *Driver) compose(fc FrameContext) error {
	if err := d.composer.Compose(d.scene, fc); err != nil {
		return err
	}
	return d.scene.Finish()
}

// submit rasterizes and presents, retrying once on device loss when
// recovery is enabled.
func (d *Driver) submit(ctx context.Context, target surface.Target) error {
	err := d.present(ctx, target)
	if err == nil || !d.recoverLoss || !errors.Is(err, ErrDeviceLost) {
		return err
	}
	d.logger().Warn("render: device lost, recreating surface", "frame", d.frame)
	if rerr := d.manager.Recreate(); rerr != nil {
		return errors.Join(err, rerr)
	}
	return d.present(ctx, d.manager.Target())
}

func (d *Driver) present(ctx context.Context, target surface.Target) error {
	if err := d.raster.Render(ctx, d.scene, target); err != nil {
		return err
	}
	return target.Present()
}

// skip drops the current frame, keeps the loop alive and reports why.
func (d *Driver) skip(fc FrameContext, err error) error {
	fe := &FrameError{Frame: fc.Index, Err: err}
	d.logger().Warn("render: frame skipped", "frame", fc.Index, "err", err)
	d.frame++
	d.sched.RequestNextFrame()
	return fe
}

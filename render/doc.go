// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package render drives frames from a composer to a surface.
//
// A Driver owns the per-frame loop. On every Tick it makes sure the
// surface.Manager has a target, resets its scene, asks the Composer to
// record the frame, hands the finished scene to a Rasterizer and presents
// the target. It then asks the FrameScheduler for the next tick, so the host
// keeps calling Tick for as long as the window lives:
//
//	sched, err := render.SelectScheduler(window, render.Capabilities{})
//	if err != nil {
//		return err
//	}
//	d := render.NewDriver(manager, window, composer,
//		render.NewSoftwareRasterizer(), sched,
//		render.WithPacing(render.PacingFPS(60)))
//	for {
//		if err := d.Tick(ctx); render.IsFatal(err) {
//			return err
//		}
//	}
//
// A frame whose scene is malformed is skipped and reported as *FrameError;
// the loop keeps going. Surface creation failures and device loss are fatal.
//
// SoftwareRasterizer is the reference Rasterizer. It rasterizes on the CPU
// with golang.org/x/image/vector and works with every surface backend.
package render

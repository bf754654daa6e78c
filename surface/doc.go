// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package surface manages the presentation target a frame is drawn into.
//
// A [Manager] binds one [Backend] to one host [Window] and keeps a single
// [Target] whose size matches the window's content size. Every resize is
// a full recreation: the old target is destroyed and a new one allocated.
// Backend allocation failures are returned as [*CreateError] and are fatal
// to the render loop.
//
// # Backends
//
//   - [ImageBackend]: CPU staging image, used headless and by window hosts
//     that upload pixels themselves.
//   - [DeviceBackend]: staging target bound to a GPU device shared through
//     [gpucontext.DeviceProvider].
//
// Third-party hosts register their own backends with [Register] and
// binaries select them with [NewBackend] or [Default].
//
// # Example
//
//	mgr := surface.NewManager(surface.NewImageBackend(nil))
//	if err := mgr.OnConnect(surface.NewHeadlessWindow(800, 600)); err != nil {
//	    return err
//	}
//	defer mgr.OnDestroy()
//
//	_ = mgr.OnResize(400, 300) // destroys and recreates at 400×300
package surface

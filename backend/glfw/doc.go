// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package glfw hosts scenekit frames in a GLFW window with an OpenGL 4.1
// core context.
//
// A Window satisfies surface.Window for the surface manager and both
// render.IdleHost and render.InvalidateHost for frame scheduling. The
// Backend presents targets by uploading their pixels into a texture and
// drawing it over the whole framebuffer.
//
// GLFW and OpenGL must be used from the main thread. Call Open, Run and
// Close from main and lock the OS thread in an init function:
//
//	func init() { runtime.LockOSThread() }
//
// Importing the package registers the "glfw" backend with the surface
// registry. It is available while a Window is open.
package glfw

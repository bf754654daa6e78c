// Package scenekit composes real-time vector-graphics frames.
//
// # Overview
//
// scenekit merges 2D drawing primitives (fills, strokes, layered
// compositing) with shaped text into a single per-frame scene, and drives the
// presentation surface that consumes it. The module is split into packages
// that follow the data flow of one frame:
//
//   - [github.com/gogpu/scenekit/scene]: transforms, paths, brushes and the
//     Scene command list with balanced layers.
//   - [github.com/gogpu/scenekit/text]: font loading, layout over HarfBuzz
//     shaping, the glyph fragment cache and glyph run placement.
//   - [github.com/gogpu/scenekit/animator]: the frame composer that rebuilds
//     the scene from a frame index.
//   - [github.com/gogpu/scenekit/surface]: the surface lifecycle manager and
//     presentation backends.
//   - [github.com/gogpu/scenekit/render]: the render driver loop, frame
//     schedulers and the software rasterizer.
//
// # Quick Start
//
//	res, _ := animator.NewResources(nil)
//	comp := animator.NewComposer(animator.DefaultConfig())
//
//	s := scene.NewScene()
//	s.Begin()
//	if err := comp.Compose(s, 0, res); err != nil {
//	    log.Fatal(err)
//	}
//	if err := s.Finish(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Logging
//
// scenekit is silent by default. Call [SetLogger] to route diagnostics from
// every sub-package to a [log/slog] logger.
package scenekit

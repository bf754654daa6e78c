// Package scene provides the per-frame drawing program handed to a rasterizer.
//
// # Overview
//
// A [Scene] is an ordered list of [Command] values: [Fill], [Stroke],
// [PushLayer], [PopLayer] and [AppendFragment]. Layers are compositing
// scopes with a blend mode, alpha and clip; pushes and pops must balance
// within one frame, and violations are reported as [*UnbalancedLayerError].
//
// # Geometry
//
// [Affine] is an immutable 2D transform. Composition follows matrix order:
// a.Multiply(b) applies b first. Shapes ([RectShape], [EllipseShape],
// [LineShape], [PathShape]) convert to a [Path] of lines and Bézier curves.
//
// # Fragments
//
// A [Fragment] is an immutable sub-scene built once (for example a glyph
// outline) and appended to many scenes by reference. [Scene.Flattened]
// expands fragments with their transforms composed as outer·inner.
package scene

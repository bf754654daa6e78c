// Package animator composes the reference animation: a gray background, a
// styled text block scaled over time, a rotating line and two rectangles
// inside a pulsing translucent layer.
//
// The drawing is a pure function of the frame index, the Config and the
// Resources passed in. Resources carry the state that is expensive to
// rebuild (the shaping context and the glyph fragment cache) and are reused
// from frame to frame; the composer itself keeps nothing between frames.
//
// Configs are loaded from TOML or YAML with LoadConfig. Fields left out keep
// their DefaultConfig values.
package animator

package scene

import "iter"

// Scene is an ordered, layer-structured list of draw commands for one frame.
// It is the representation handed to a rasterizer.
//
// A Scene is rebuilt every frame: Begin discards all prior commands, the
// drawing methods append, and Finish validates that every PushLayer was
// matched by a PopLayer.
//
// Example:
//
//	s := NewScene()
//	s.Begin()
//	s.Fill(FillNonZero, IdentityAffine(), SolidBrush(scenekit.Red), nil, NewRectShape(0, 0, 100, 100))
//	s.PushLayer(BlendNormal, 0.5, IdentityAffine(), NewRectShape(0, 0, 50, 50))
//	s.Stroke(NewStroke(2), IdentityAffine(), SolidBrush(scenekit.Blue), nil, path)
//	if err := s.PopLayer(); err != nil {
//	    return err
//	}
//	return s.Finish()
//
// Scene is not safe for concurrent use.
type Scene struct {
	cmds   []Command
	depth  int
	bounds Rect
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{
		cmds:   make([]Command, 0, 64),
		bounds: EmptyRect(),
	}
}

// Begin resets the command list and layer depth. The backing storage is
// kept, but no command recorded before Begin remains reachable.
func (s *Scene) Begin() {
	clear(s.cmds)
	s.cmds = s.cmds[:0]
	s.depth = 0
	s.bounds = EmptyRect()
}

func (s *Scene) push(c Command) {
	s.cmds = append(s.cmds, c)
	s.bounds = s.bounds.Union(commandBounds(c))
}

// Fill appends a fill of shape under transform. A nil clip means unclipped.
func (s *Scene) Fill(rule FillRule, transform Affine, brush Brush, clip Shape, shape Shape) {
	s.push(Fill{Rule: rule, Transform: transform, Brush: brush, Clip: clip, Shape: shape})
}

// Stroke appends a stroke of path under transform. A nil clip means unclipped.
func (s *Scene) Stroke(style StrokeStyle, transform Affine, brush Brush, clip Shape, path *Path) {
	s.push(Stroke{Style: style, Transform: transform, Brush: brush, Clip: clip, Path: path})
}

// PushLayer opens a layer. Alpha is clamped to [0, 1].
func (s *Scene) PushLayer(blend BlendMode, alpha float32, transform Affine, clip Shape) {
	s.depth++
	s.push(PushLayer{Blend: blend, Alpha: min(max(alpha, 0), 1), Transform: transform, Clip: clip})
}

// PopLayer closes the innermost layer. It returns an *UnbalancedLayerError
// and leaves the scene unchanged if no layer is open.
func (s *Scene) PopLayer() error {
	if s.depth == 0 {
		return &UnbalancedLayerError{Op: "PopLayer"}
	}
	s.depth--
	s.push(PopLayer{})
	return nil
}

// AppendFragment appends a shared fragment under transform. The fragment's
// own transforms are right-composed with transform when the scene is
// flattened.
func (s *Scene) AppendFragment(f *Fragment, transform Affine) {
	s.push(AppendFragment{Fragment: f, Transform: transform})
}

// Finish validates the scene at frame end. It returns an
// *UnbalancedLayerError if any layer is still open.
func (s *Scene) Finish() error {
	if s.depth != 0 {
		return &UnbalancedLayerError{Op: "Finish", Depth: s.depth}
	}
	return nil
}

// LayerDepth returns the number of currently open layers.
func (s *Scene) LayerDepth() int {
	return s.depth
}

// Len returns the number of recorded commands.
func (s *Scene) Len() int {
	return len(s.cmds)
}

// IsEmpty reports whether no commands have been recorded since Begin.
func (s *Scene) IsEmpty() bool {
	return len(s.cmds) == 0
}

// Commands returns the recorded commands. The slice is owned by the scene
// and is only valid until the next Begin; callers must not modify it.
func (s *Scene) Commands() []Command {
	return s.cmds
}

// Count returns the number of recorded commands of the given kind.
func (s *Scene) Count(kind CommandKind) int {
	n := 0
	for _, c := range s.cmds {
		if c.Kind() == kind {
			n++
		}
	}
	return n
}

// Bounds returns the scene-space bounding box of all drawn content.
func (s *Scene) Bounds() Rect {
	return s.bounds
}

// Flattened iterates over the scene with every AppendFragment expanded in
// place. Each fragment command is yielded with its transform composed as
// outer·inner, recursively for nested fragments.
func (s *Scene) Flattened() iter.Seq[Command] {
	return func(yield func(Command) bool) {
		for _, c := range s.cmds {
			if !flatten(c, IdentityAffine(), yield) {
				return
			}
		}
	}
}

func flatten(c Command, outer Affine, yield func(Command) bool) bool {
	af, ok := c.(AppendFragment)
	if !ok {
		if outer.IsIdentity() {
			return yield(c)
		}
		return yield(c.composed(outer))
	}
	if af.Fragment == nil {
		return true
	}
	t := outer.Multiply(af.Transform)
	for inner := range af.Fragment.Commands() {
		if !flatten(inner, t, yield) {
			return false
		}
	}
	return true
}

package scene

// SceneBuilder is a fluent wrapper around a Scene. It carries a current
// transform that is applied to every command it records, and defers error
// reporting to Build so drawing code can be chained.
//
// Example:
//
//	s, err := NewSceneBuilder(nil).
//	    Fill(NewRectShape(0, 0, 800, 600), SolidBrush(scenekit.White)).
//	    Layer(BlendNormal, 0.5, NewRectShape(0, 0, 400, 300), func(b *SceneBuilder) {
//	        b.Fill(NewCircleShape(100, 100, 50), SolidBrush(scenekit.Red))
//	    }).
//	    Build()
type SceneBuilder struct {
	scene     *Scene
	transform Affine
	err       error
}

// NewSceneBuilder creates a builder appending to s. A nil s starts a new
// scene. The scene is not reset; call Scene.Begin first when reusing it.
func NewSceneBuilder(s *Scene) *SceneBuilder {
	if s == nil {
		s = NewScene()
	}
	return &SceneBuilder{scene: s, transform: IdentityAffine()}
}

// Scene returns the underlying scene.
func (b *SceneBuilder) Scene() *Scene {
	return b.scene
}

// Transform returns the builder's current transform.
func (b *SceneBuilder) Transform() Affine {
	return b.transform
}

// Fill fills shape with brush using the non-zero rule.
func (b *SceneBuilder) Fill(shape Shape, brush Brush) *SceneBuilder {
	b.scene.Fill(FillNonZero, b.transform, brush, nil, shape)
	return b
}

// FillWith fills shape with an explicit rule and clip.
func (b *SceneBuilder) FillWith(rule FillRule, shape Shape, brush Brush, clip Shape) *SceneBuilder {
	b.scene.Fill(rule, b.transform, brush, clip, shape)
	return b
}

// Stroke strokes path with brush and style.
func (b *SceneBuilder) Stroke(path *Path, brush Brush, style StrokeStyle) *SceneBuilder {
	b.scene.Stroke(style, b.transform, brush, nil, path)
	return b
}

// Fragment appends a shared fragment at the current transform.
func (b *SceneBuilder) Fragment(f *Fragment) *SceneBuilder {
	b.scene.AppendFragment(f, b.transform)
	return b
}

// WithTransform runs fn with t applied on top of the current transform,
// then restores the previous transform.
func (b *SceneBuilder) WithTransform(t Affine, fn func(*SceneBuilder)) *SceneBuilder {
	saved := b.transform
	b.transform = saved.Multiply(t)
	fn(b)
	b.transform = saved
	return b
}

// Layer records fn inside a layer. The push and pop are always paired.
func (b *SceneBuilder) Layer(blend BlendMode, alpha float32, clip Shape, fn func(*SceneBuilder)) *SceneBuilder {
	b.scene.PushLayer(blend, alpha, b.transform, clip)
	fn(b)
	return b.PopLayer()
}

// PushLayer opens a layer that must be closed with PopLayer.
func (b *SceneBuilder) PushLayer(blend BlendMode, alpha float32, clip Shape) *SceneBuilder {
	b.scene.PushLayer(blend, alpha, b.transform, clip)
	return b
}

// PopLayer closes the innermost layer. An imbalance is recorded and
// reported by Build.
func (b *SceneBuilder) PopLayer() *SceneBuilder {
	if err := b.scene.PopLayer(); err != nil && b.err == nil {
		b.err = err
	}
	return b
}

// Build returns the scene, or the first recorded error followed by the
// frame-end balance check.
func (b *SceneBuilder) Build() (*Scene, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.scene.Finish(); err != nil {
		return nil, err
	}
	return b.scene, nil
}

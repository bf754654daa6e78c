package scene

// CommandKind identifies the variant of a Command.
type CommandKind uint8

const (
	KindFill CommandKind = iota
	KindStroke
	KindPushLayer
	KindPopLayer
	KindAppendFragment
)

func (k CommandKind) String() string {
	switch k {
	case KindFill:
		return "Fill"
	case KindStroke:
		return "Stroke"
	case KindPushLayer:
		return "PushLayer"
	case KindPopLayer:
		return "PopLayer"
	case KindAppendFragment:
		return "AppendFragment"
	default:
		return unknownStr
	}
}

// Command is one draw operation recorded in a Scene. The set of commands is
// closed: the only implementations are Fill, Stroke, PushLayer, PopLayer and
// AppendFragment, and consumers switch over them exhaustively.
type Command interface {
	Kind() CommandKind

	// composed returns a copy of the command placed under outer, so that
	// its effective transform becomes outer·own.
	composed(outer Affine) Command
}

// Fill fills Shape under Transform. Clip, when non-nil, is given in the same
// local space and restricts the painted area.
type Fill struct {
	Rule      FillRule
	Transform Affine
	Brush     Brush
	Clip      Shape
	Shape     Shape
}

// Stroke strokes Path under Transform.
type Stroke struct {
	Style     StrokeStyle
	Transform Affine
	Brush     Brush
	Clip      Shape
	Path      *Path
}

// PushLayer opens a compositing scope. Content drawn until the matching
// PopLayer is blended onto the parent with Blend, scaled by Alpha and
// restricted to Clip (in the space of Transform).
type PushLayer struct {
	Blend     BlendMode
	Alpha     float32
	Transform Affine
	Clip      Shape
}

// PopLayer closes the innermost open layer.
type PopLayer struct{}

// AppendFragment draws a shared, pre-built Fragment under Transform.
type AppendFragment struct {
	Fragment  *Fragment
	Transform Affine
}

func (Fill) Kind() CommandKind           { return KindFill }
func (Stroke) Kind() CommandKind         { return KindStroke }
func (PushLayer) Kind() CommandKind      { return KindPushLayer }
func (PopLayer) Kind() CommandKind       { return KindPopLayer }
func (AppendFragment) Kind() CommandKind { return KindAppendFragment }

func (c Fill) composed(outer Affine) Command {
	c.Transform = outer.Multiply(c.Transform)
	return c
}

func (c Stroke) composed(outer Affine) Command {
	c.Transform = outer.Multiply(c.Transform)
	return c
}

func (c PushLayer) composed(outer Affine) Command {
	c.Transform = outer.Multiply(c.Transform)
	return c
}

func (c PopLayer) composed(Affine) Command { return c }

func (c AppendFragment) composed(outer Affine) Command {
	c.Transform = outer.Multiply(c.Transform)
	return c
}

// commandBounds returns the scene-space bounding box of a leaf command,
// or an empty rectangle for layer markers.
func commandBounds(c Command) Rect {
	switch c := c.(type) {
	case Fill:
		if c.Shape == nil {
			return EmptyRect()
		}
		return c.Shape.Bounds().Transform(c.Transform)
	case Stroke:
		return c.Path.Bounds().Inset(c.Style.Width / 2).Transform(c.Transform)
	case AppendFragment:
		if c.Fragment == nil {
			return EmptyRect()
		}
		return c.Fragment.Bounds().Transform(c.Transform)
	default:
		return EmptyRect()
	}
}

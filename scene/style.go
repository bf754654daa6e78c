package scene

import "github.com/gogpu/scenekit"

// unknownStr is the string returned for unknown enum values.
const unknownStr = "Unknown"

// FillRule selects how path winding determines the filled interior.
type FillRule uint8

const (
	// FillNonZero uses the non-zero winding rule.
	FillNonZero FillRule = iota
	// FillEvenOdd uses the even-odd rule.
	FillEvenOdd
)

func (r FillRule) String() string {
	switch r {
	case FillNonZero:
		return "NonZero"
	case FillEvenOdd:
		return "EvenOdd"
	default:
		return unknownStr
	}
}

// BlendMode is the compositing mode of a layer.
type BlendMode uint8

// Separable blend modes.
const (
	BlendNormal BlendMode = iota
	BlendMultiply
	BlendScreen
	BlendOverlay
	BlendDarken
	BlendLighten
	BlendDifference
	BlendExclusion
)

func (m BlendMode) String() string {
	switch m {
	case BlendNormal:
		return "Normal"
	case BlendMultiply:
		return "Multiply"
	case BlendScreen:
		return "Screen"
	case BlendOverlay:
		return "Overlay"
	case BlendDarken:
		return "Darken"
	case BlendLighten:
		return "Lighten"
	case BlendDifference:
		return "Difference"
	case BlendExclusion:
		return "Exclusion"
	default:
		return unknownStr
	}
}

// LineCap is the shape of open stroke endpoints.
type LineCap uint8

const (
	LineCapButt LineCap = iota
	LineCapRound
	LineCapSquare
)

// LineJoin is the shape of corners between stroke segments.
type LineJoin uint8

const (
	LineJoinMiter LineJoin = iota
	LineJoinRound
	LineJoinBevel
)

// StrokeStyle holds stroke parameters. Width is in the local space of the
// stroke's transform and must be >= 0.
type StrokeStyle struct {
	Width      float32
	MiterLimit float32
	Cap        LineCap
	Join       LineJoin
}

// NewStroke returns a stroke style of the given width with miter joins and
// butt caps.
func NewStroke(width float32) StrokeStyle {
	return StrokeStyle{
		Width:      max(width, 0),
		MiterLimit: 4,
		Cap:        LineCapButt,
		Join:       LineJoinMiter,
	}
}

// BrushKind identifies the variant held by a Brush.
type BrushKind uint8

const (
	// BrushSolid paints a single color.
	BrushSolid BrushKind = iota
)

func (k BrushKind) String() string {
	switch k {
	case BrushSolid:
		return "Solid"
	default:
		return unknownStr
	}
}

// Brush is a paint source. It is a closed union: Kind selects which of the
// remaining fields are meaningful. New paint kinds are added as new variants.
//
// Brush is a comparable value and can be used as a map key.
type Brush struct {
	Kind  BrushKind
	Color scenekit.RGBA
}

// SolidBrush creates a solid color brush.
func SolidBrush(c scenekit.RGBA) Brush {
	return Brush{Kind: BrushSolid, Color: c}
}

// Equal reports whether b and o describe the same paint.
func (b Brush) Equal(o Brush) bool {
	if b.Kind != o.Kind {
		return false
	}
	switch b.Kind {
	case BrushSolid:
		return b.Color == o.Color
	default:
		return b == o
	}
}

func (b Brush) String() string {
	switch b.Kind {
	case BrushSolid:
		return "Solid(" + b.Color.String() + ")"
	default:
		return unknownStr
	}
}

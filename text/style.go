package text

import (
	"github.com/gogpu/scenekit"
	"github.com/gogpu/scenekit/scene"
)

// PropertyKind identifies which field of a StyleProperty is set.
type PropertyKind uint8

const (
	PropFontSize PropertyKind = iota
	PropBrush
	PropFont
	PropLocale
)

// StyleProperty is one style attribute applied to a byte range of a layout
// (or to the whole text as a default). Create it with FontSize, FontBrush,
// FontFace or Locale.
type StyleProperty struct {
	kind   PropertyKind
	size   float32
	brush  scene.Brush
	font   *Font
	locale string
}

// FontSize sets the font size in scene units, before the layout scale.
func FontSize(size float32) StyleProperty {
	return StyleProperty{kind: PropFontSize, size: size}
}

// FontBrush sets the paint used for glyphs.
func FontBrush(b scene.Brush) StyleProperty {
	return StyleProperty{kind: PropBrush, brush: b}
}

// FontFace selects the primary font. Runes the font cannot map fall back to
// the context's fonts.
func FontFace(f *Font) StyleProperty {
	return StyleProperty{kind: PropFont, font: f}
}

// Locale sets the BCP 47 language tag used for shaping.
func Locale(tag string) StyleProperty {
	return StyleProperty{kind: PropLocale, locale: tag}
}

// Kind returns which attribute p sets.
func (p StyleProperty) Kind() PropertyKind { return p.kind }

// Style is the resolved style of a span of text.
type Style struct {
	Size   float32
	Brush  scene.Brush
	Font   *Font
	Locale string
}

// defaultStyle matches an unstyled layout: 16 units, black.
func defaultStyle(f *Font) Style {
	return Style{
		Size:  16,
		Brush: scene.SolidBrush(scenekit.Black),
		Font:  f,
	}
}

func (s *Style) apply(p StyleProperty) {
	switch p.kind {
	case PropFontSize:
		if p.size > 0 {
			s.Size = p.size
		}
	case PropBrush:
		s.Brush = p.brush
	case PropFont:
		if p.font != nil {
			s.Font = p.font
		}
	case PropLocale:
		s.Locale = p.locale
	}
}

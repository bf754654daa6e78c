package text

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"os"
	"sync"

	"github.com/go-text/typesetting/font"
	"golang.org/x/image/font/gofont/goregular"
)

// FontID is the content identity of a font: two fonts parsed from the same
// bytes have the same ID. It keys the glyph fragment cache.
type FontID uint64

// Font is a parsed font face.
//
// Font wraps a go-text face, which caches glyph lookups and is not safe for
// concurrent use. Fonts belong to the render thread.
type Font struct {
	id   FontID
	name string
	face *font.Face
}

// ParseFont parses TrueType or OpenType data. The data is hashed to derive
// the font's identity and is not retained beyond what the parser keeps.
func ParseFont(data []byte) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}
	h := fnv.New64a()
	_, _ = h.Write(data) // fnv.Write never returns an error

	return &Font{
		id:   FontID(h.Sum64()),
		name: face.Describe().Family,
		face: face,
	}, nil
}

// LoadFont reads and parses a font file.
func LoadFont(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: load font: %w", err)
	}
	return ParseFont(data)
}

var defaultFont = sync.OnceValues(func() (*Font, error) {
	return ParseFont(goregular.TTF)
})

// DefaultFont returns the Go Regular font. The same *Font is returned on
// every call.
func DefaultFont() (*Font, error) {
	return defaultFont()
}

// ID returns the content identity of f.
func (f *Font) ID() FontID { return f.id }

// Name returns the font family name, if the font declares one.
func (f *Font) Name() string { return f.name }

// Face returns the underlying go-text face.
func (f *Font) Face() *font.Face { return f.face }

// Upem returns the font's units per em.
func (f *Font) Upem() float32 {
	if u := f.face.Upem(); u != 0 {
		return float32(u)
	}
	return 1000
}

// HasGlyph reports whether the font maps r to a glyph.
func (f *Font) HasGlyph(r rune) bool {
	_, ok := f.face.NominalGlyph(r)
	return ok
}

// GlyphIndex returns the nominal glyph for r.
func (f *Font) GlyphIndex(r rune) (GlyphID, bool) {
	gid, ok := f.face.NominalGlyph(r)
	return GlyphID(gid), ok
}

// outline returns the vector outline of gid in font units (y-up).
// Bitmap and SVG glyphs only have an outline when the font supplies a
// fallback one.
func (f *Font) outline(gid GlyphID) (font.GlyphOutline, bool) {
	switch data := f.face.GlyphData(font.GID(gid)).(type) {
	case font.GlyphOutline:
		return data, true
	case font.GlyphSVG:
		return data.Outline, len(data.Outline.Segments) > 0
	case font.GlyphBitmap:
		if data.Outline != nil {
			return *data.Outline, true
		}
	}
	return font.GlyphOutline{}, false
}

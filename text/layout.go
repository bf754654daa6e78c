package text

import (
	"fmt"
	"iter"
	"slices"
	"sort"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	xlanguage "golang.org/x/text/language"

	"github.com/gogpu/scenekit/scene"
)

// GlyphID is a glyph index within a font.
type GlyphID uint32

// Glyph is one positioned glyph of a run. X and Y are offsets from the pen
// position, Y pointing up as in font space. Advance moves the pen for the
// next glyph. Cluster is the byte offset of the first source character
// shaped into this glyph.
type Glyph struct {
	ID      GlyphID
	X, Y    float32
	Advance float32
	Cluster int
}

// GlyphRun is a maximal sequence of glyphs sharing font, size and style
// within one line. Offset is the x of the run's first pen position and
// Baseline the y of its baseline, both relative to the layout origin.
type GlyphRun struct {
	Font     *Font
	Size     float32
	Brush    scene.Brush
	Offset   float32
	Baseline float32
	Advance  float32
	RTL      bool
	Glyphs   []Glyph
	// Start and End delimit the source bytes of the run.
	Start, End int
}

// Line is one line of a layout. Lines break only at '\n'.
type Line struct {
	Runs     []GlyphRun
	Baseline float32
	Ascent   float32
	Descent  float32
	Gap      float32
	Width    float32
}

// Layout is the shaped form of a styled string: lines of glyph runs,
// top to bottom, runs in logical order within a line.
type Layout struct {
	Lines  []Line
	Width  float32
	Height float32
}

// Runs iterates over every run of every line in order.
func (l *Layout) Runs() iter.Seq[*GlyphRun] {
	return func(yield func(*GlyphRun) bool) {
		for i := range l.Lines {
			for j := range l.Lines[i].Runs {
				if !yield(&l.Lines[i].Runs[j]) {
					return
				}
			}
		}
	}
}

// GlyphCount returns the number of glyphs in the layout.
func (l *Layout) GlyphCount() int {
	n := 0
	for r := range l.Runs() {
		n += len(r.Glyphs)
	}
	return n
}

// Context owns the reusable shaping state: the HarfBuzz shaper, the
// segmenter and the fallback fonts. It is meant to live across frames and
// be passed to each layout pass explicitly.
//
// Context is not safe for concurrent use.
type Context struct {
	fallbacks []*Font
	shaper    shaping.HarfbuzzShaper
	seg       shaping.Segmenter
}

// NewContext creates a shaping context. The first font is the default for
// unstyled text; the rest are consulted, in order, for runes it cannot map.
// With no fonts, DefaultFont is used.
func NewContext(fonts ...*Font) (*Context, error) {
	fonts = slices.DeleteFunc(slices.Clone(fonts), func(f *Font) bool { return f == nil })
	if len(fonts) == 0 {
		f, err := DefaultFont()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNoFont, err)
		}
		fonts = []*Font{f}
	}
	return &Context{fallbacks: fonts}, nil
}

// DefaultFont returns the context's primary font.
func (c *Context) DefaultFont() *Font {
	return c.fallbacks[0]
}

// NewBuilder starts a layout of text. Every font size is multiplied by scale.
func (c *Context) NewBuilder(text string, scale float32) *Builder {
	return &Builder{ctx: c, text: text, scale: scale}
}

type rangedProperty struct {
	prop       StyleProperty
	start, end int
}

// Builder collects style properties for one layout pass.
type Builder struct {
	ctx      *Context
	text     string
	scale    float32
	defaults []StyleProperty
	ranges   []rangedProperty
}

// PushDefault sets a property for the whole text. Ranged properties
// always take precedence over defaults.
func (b *Builder) PushDefault(p StyleProperty) *Builder {
	b.defaults = append(b.defaults, p)
	return b
}

// Push sets a property on the byte range [start, end). The range is clamped
// to the text; later pushes override earlier ones where they overlap.
func (b *Builder) Push(p StyleProperty, start, end int) *Builder {
	start = max(start, 0)
	end = min(end, len(b.text))
	if start < end {
		b.ranges = append(b.ranges, rangedProperty{prop: p, start: start, end: end})
	}
	return b
}

// styleAt resolves the style of the byte at offset i.
func (b *Builder) styleAt(i int) Style {
	s := defaultStyle(b.ctx.DefaultFont())
	for _, p := range b.defaults {
		s.apply(p)
	}
	for _, r := range b.ranges {
		if i >= r.start && i < r.end {
			s.apply(r.prop)
		}
	}
	return s
}

// Build shapes the text and lays it out.
func (b *Builder) Build() (*Layout, error) {
	runes := []rune(b.text)
	// byteOff[i] is the byte offset of rune i; byteOff[len(runes)] = len(text).
	byteOff := make([]int, 0, len(runes)+1)
	for i := range b.text {
		byteOff = append(byteOff, i)
	}
	byteOff = append(byteOff, len(b.text))
	runeAt := func(byteIdx int) int {
		return sort.SearchInts(byteOff, byteIdx)
	}

	bounds := b.boundaries()
	layout := &Layout{}
	var top float32
	lineStart := 0
	for lineStart <= len(b.text) {
		lineEnd := len(b.text)
		for i := lineStart; i < len(b.text); i++ {
			if b.text[i] == '\n' {
				lineEnd = i
				break
			}
		}

		line := Line{}
		var pen float32
		spanStart := lineStart
		for _, bd := range bounds {
			if bd <= spanStart || bd > lineEnd {
				continue
			}
			runs, err := b.shapeSpan(runes, runeAt(spanStart), runeAt(bd), byteOff, b.styleAt(spanStart), &pen)
			if err != nil {
				return nil, err
			}
			for _, r := range runs {
				line.Ascent = max(line.Ascent, r.asc)
				line.Descent = max(line.Descent, r.desc)
				line.Gap = max(line.Gap, r.gap)
				line.Runs = append(line.Runs, r.GlyphRun)
			}
			spanStart = bd
		}
		if len(line.Runs) == 0 {
			b.emptyLineMetrics(&line, b.styleAt(lineStart))
		}

		line.Width = pen
		line.Baseline = top + line.Ascent
		for i := range line.Runs {
			line.Runs[i].Baseline = line.Baseline
		}
		top += line.Ascent + line.Descent + line.Gap
		layout.Width = max(layout.Width, line.Width)
		layout.Lines = append(layout.Lines, line)

		if lineEnd == len(b.text) {
			break
		}
		lineStart = lineEnd + 1
	}
	layout.Height = top
	return layout, nil
}

// boundaries returns the sorted byte offsets where the resolved style may
// change or a line ends.
func (b *Builder) boundaries() []int {
	bounds := []int{len(b.text)}
	for _, r := range b.ranges {
		bounds = append(bounds, r.start, r.end)
	}
	for i := 0; i < len(b.text); i++ {
		if b.text[i] == '\n' {
			bounds = append(bounds, i)
		}
	}
	slices.Sort(bounds)
	return slices.Compact(bounds)
}

type shapedRun struct {
	GlyphRun
	asc, desc, gap float32
}

func (b *Builder) shapeSpan(runes []rune, rs, re int, byteOff []int, st Style, pen *float32) ([]shapedRun, error) {
	if rs >= re {
		return nil, nil
	}
	lang := language.NewLanguage("en")
	if st.Locale != "" {
		tag, err := xlanguage.Parse(st.Locale)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLocale, st.Locale)
		}
		lang = language.NewLanguage(tag.String())
	}

	size := st.Size * b.scale
	chain := fontChain{primary: st.Font, fallbacks: b.ctx.fallbacks}
	input := shaping.Input{
		Text:      runes,
		RunStart:  rs,
		RunEnd:    re,
		Direction: di.DirectionLTR,
		Face:      st.Font.Face(),
		Size:      toFixed(size),
		Script:    language.LookupScript(runes[rs]),
		Language:  lang,
	}

	var out []shapedRun
	for _, in := range b.ctx.seg.Split(input, chain) {
		if in.Face == nil {
			continue
		}
		o := b.ctx.shaper.Shape(in)
		run := shapedRun{
			GlyphRun: GlyphRun{
				Font:    chain.fontFor(o.Face),
				Size:    size,
				Brush:   st.Brush,
				Offset:  *pen,
				Advance: fromFixed(o.Advance),
				RTL:     o.Direction.Progression() == di.TowardTopLeft,
				Glyphs:  make([]Glyph, len(o.Glyphs)),
				Start:   byteOff[in.RunStart],
				End:     byteOff[in.RunEnd],
			},
			asc:  fromFixed(o.LineBounds.Ascent),
			desc: -fromFixed(o.LineBounds.Descent),
			gap:  fromFixed(o.LineBounds.Gap),
		}
		for i, g := range o.Glyphs {
			run.Glyphs[i] = Glyph{
				ID:      GlyphID(g.GlyphID),
				X:       fromFixed(g.XOffset),
				Y:       fromFixed(g.YOffset),
				Advance: fromFixed(g.Advance),
				Cluster: byteOff[min(max(g.TextIndex(), 0), len(runes))],
			}
		}
		*pen += run.Advance
		out = append(out, run)
	}
	return out, nil
}

// emptyLineMetrics gives a line without glyphs the height of its font.
func (b *Builder) emptyLineMetrics(line *Line, st Style) {
	ext, ok := st.Font.Face().FontHExtents()
	if !ok {
		return
	}
	sc := st.Size * b.scale / st.Font.Upem()
	line.Ascent = ext.Ascender * sc
	line.Descent = -ext.Descender * sc
	line.Gap = ext.LineGap * sc
}

// fontChain resolves faces for the segmenter: the style's font first, then
// the context fallbacks in order.
type fontChain struct {
	primary   *Font
	fallbacks []*Font
}

// ResolveFace implements shaping.Fontmap.
func (c fontChain) ResolveFace(r rune) *font.Face {
	if c.primary.HasGlyph(r) {
		return c.primary.Face()
	}
	for _, f := range c.fallbacks {
		if f.HasGlyph(r) {
			return f.Face()
		}
	}
	return c.primary.Face()
}

func (c fontChain) fontFor(face *font.Face) *Font {
	if c.primary.Face() == face {
		return c.primary
	}
	for _, f := range c.fallbacks {
		if f.Face() == face {
			return f
		}
	}
	return c.primary
}

func toFixed(v float32) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func fromFixed(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

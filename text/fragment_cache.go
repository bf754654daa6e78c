package text

import (
	"github.com/go-text/typesetting/font/opentype"

	"github.com/gogpu/scenekit"
	"github.com/gogpu/scenekit/scene"
)

// FragmentKey identifies one cached glyph fragment. Two lookups with equal
// keys always yield the same fragment.
type FragmentKey struct {
	Font  FontID
	Size  float32
	Glyph GlyphID
	Brush scene.Brush
}

// Default cache bounds. A fragment unused for DefaultFrameLifetime frames is
// evicted by Maintain; past DefaultMaxFragments entries the least recently
// used one is dropped on insert.
const (
	DefaultFrameLifetime = 64
	DefaultMaxFragments  = 4096
)

type fragmentEntry struct {
	key  FragmentKey
	frag *scene.Fragment // nil for glyphs without an outline
	seen uint64

	prev, next *fragmentEntry
}

// FragmentCacheStats holds cache statistics.
type FragmentCacheStats struct {
	Hits      uint64
	Misses    uint64
	Entries   int
	Evictions uint64
}

// FragmentCacheOption configures a FragmentCache.
type FragmentCacheOption func(*FragmentCache)

// WithFrameLifetime makes Maintain evict entries not looked up during the
// last n frames. Zero disables frame eviction; the entry cap still applies.
func WithFrameLifetime(n uint64) FragmentCacheOption {
	return func(c *FragmentCache) {
		c.lifetime = n
	}
}

// WithMaxEntries caps the number of cached entries. Values below one select
// DefaultMaxFragments.
func WithMaxEntries(n int) FragmentCacheOption {
	return func(c *FragmentCache) {
		c.maxEntries = n
	}
}

// FragmentCache maps (font, size, glyph, brush) to a brush-colored outline
// fragment. Fragments are built on first use and never modified afterwards,
// so scenes may hold them across frames. Glyphs without an outline are
// remembered as well and keep reporting a miss without touching the font.
//
// The cache is bounded two ways: Maintain evicts entries unused for the
// frame lifetime, and an insert beyond the entry cap evicts the least
// recently used entry.
//
// FragmentCache belongs to the render thread and is not safe for concurrent
// use.
type FragmentCache struct {
	entries    map[FragmentKey]*fragmentEntry
	head, tail *fragmentEntry // most and least recently used
	frame      uint64
	lifetime   uint64
	maxEntries int
	stats      FragmentCacheStats
}

// NewFragmentCache creates an empty cache with DefaultFrameLifetime and
// DefaultMaxFragments unless overridden by opts.
func NewFragmentCache(opts ...FragmentCacheOption) *FragmentCache {
	c := &FragmentCache{
		entries:    make(map[FragmentKey]*fragmentEntry),
		lifetime:   DefaultFrameLifetime,
		maxEntries: DefaultMaxFragments,
	}
	for _, o := range opts {
		o(c)
	}
	if c.maxEntries <= 0 {
		c.maxEntries = DefaultMaxFragments
	}
	return c
}

// Get returns the fragment for glyph gid of f at size, painted with brush.
// It reports false when the font has no outline for the glyph: bitmap or
// SVG-only glyphs, and empty outlines such as spaces.
func (c *FragmentCache) Get(f *Font, size float32, gid GlyphID, brush scene.Brush) (*scene.Fragment, bool) {
	if f == nil || size <= 0 {
		return nil, false
	}
	key := FragmentKey{Font: f.ID(), Size: size, Glyph: gid, Brush: brush}
	if e, ok := c.entries[key]; ok {
		c.stats.Hits++
		e.seen = c.frame
		c.moveToFront(e)
		return e.frag, e.frag != nil
	}

	c.stats.Misses++
	frag := buildGlyphFragment(f, size, gid, brush)
	for len(c.entries) >= c.maxEntries && c.tail != nil {
		c.evict(c.tail)
	}
	e := &fragmentEntry{key: key, frag: frag, seen: c.frame}
	c.entries[key] = e
	c.addToFront(e)
	if frag == nil {
		scenekit.Logger().Debug("text: glyph has no outline", "font", f.Name(), "glyph", gid)
	}
	return frag, frag != nil
}

// Maintain advances the cache frame counter and, with a frame lifetime set,
// evicts entries that went unused for that many frames. Call it once per
// frame after composing.
func (c *FragmentCache) Maintain() {
	c.frame++
	if c.lifetime == 0 || c.frame < c.lifetime {
		return
	}
	threshold := c.frame - c.lifetime
	// The list is ordered by last use, so stale entries sit at the tail.
	for c.tail != nil && c.tail.seen < threshold {
		c.evict(c.tail)
	}
}

// Clear drops every entry. Fragments already referenced by a scene stay
// valid.
func (c *FragmentCache) Clear() {
	clear(c.entries)
	c.head, c.tail = nil, nil
}

// Len returns the number of cached entries, including negative ones.
func (c *FragmentCache) Len() int {
	return len(c.entries)
}

// Stats returns a snapshot of the cache statistics.
func (c *FragmentCache) Stats() FragmentCacheStats {
	s := c.stats
	s.Entries = len(c.entries)
	return s
}

func (c *FragmentCache) evict(e *fragmentEntry) {
	delete(c.entries, e.key)
	c.remove(e)
	c.stats.Evictions++
}

func (c *FragmentCache) addToFront(e *fragmentEntry) {
	e.prev = nil
	e.next = c.head
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *FragmentCache) moveToFront(e *fragmentEntry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

// remove unlinks e from the recency list; the map is left alone.
func (c *FragmentCache) remove(e *fragmentEntry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
	e.prev, e.next = nil, nil
}

// buildGlyphFragment converts a glyph outline into a single non-zero fill.
// The path stays in font units (y-up); the fill transform scales it to size.
func buildGlyphFragment(f *Font, size float32, gid GlyphID, brush scene.Brush) *scene.Fragment {
	outline, ok := f.outline(gid)
	if !ok || len(outline.Segments) == 0 {
		return nil
	}
	p := scene.NewPath()
	for _, seg := range outline.Segments {
		a := seg.Args
		switch seg.Op {
		case opentype.SegmentOpMoveTo:
			if !p.IsEmpty() {
				p.Close()
			}
			p.MoveTo(a[0].X, a[0].Y)
		case opentype.SegmentOpLineTo:
			p.LineTo(a[0].X, a[0].Y)
		case opentype.SegmentOpQuadTo:
			p.QuadTo(a[0].X, a[0].Y, a[1].X, a[1].Y)
		case opentype.SegmentOpCubeTo:
			p.CubicTo(a[0].X, a[0].Y, a[1].X, a[1].Y, a[2].X, a[2].Y)
		}
	}
	if p.IsEmpty() {
		return nil
	}
	p.Close()

	s := size / f.Upem()
	sc := scene.NewScene()
	sc.Fill(scene.FillNonZero, scene.ScaleAffine(s, s), brush, nil, scene.NewPathShape(p))
	frag, err := scene.NewFragment(sc)
	if err != nil {
		return nil
	}
	return frag
}

package text

import (
	"testing"

	"github.com/gogpu/scenekit"
	"github.com/gogpu/scenekit/scene"
)

type recordedFragment struct {
	frag      *scene.Fragment
	transform scene.Affine
}

type recordingSink struct {
	got []recordedFragment
}

func (s *recordingSink) AppendFragment(f *scene.Fragment, t scene.Affine) {
	s.got = append(s.got, recordedFragment{f, t})
}

// stubSource resolves every glyph except those listed as missing.
type stubSource struct {
	frag    *scene.Fragment
	missing map[GlyphID]bool
}

func (s stubSource) Get(_ *Font, _ float32, gid GlyphID, _ scene.Brush) (*scene.Fragment, bool) {
	if s.missing[gid] {
		return nil, false
	}
	return s.frag, true
}

func stubFragment(t *testing.T) *scene.Fragment {
	t.Helper()
	s := scene.NewScene()
	s.Fill(scene.FillNonZero, scene.IdentityAffine(), scene.SolidBrush(scenekit.White), nil, scene.NewRectShape(0, 0, 1, 1))
	f, err := scene.NewFragment(s)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestRenderRunPlacement(t *testing.T) {
	src := stubSource{frag: stubFragment(t), missing: map[GlyphID]bool{2: true}}
	run := &GlyphRun{
		Size:     10,
		Offset:   5,
		Baseline: 20,
		Glyphs: []Glyph{
			{ID: 1, X: 2, Y: 3, Advance: 10},
			{ID: 2, Advance: 10},
			{ID: 3, Advance: 10},
		},
	}
	sink := &recordingSink{}
	outer := scene.TranslateAffine(100, 400)
	RenderRun(sink, src, outer, run)

	if len(sink.got) != 2 {
		t.Fatalf("appended %d fragments, want 2 (missing glyph skipped)", len(sink.got))
	}

	tests := []struct {
		name         string
		idx          int
		x, y         float32
		wantX, wantY float32
	}{
		{"first origin", 0, 0, 0, 107, 417},
		{"first y-up flipped", 0, 0, 1, 107, 416},
		{"cursor advanced past missing glyph", 1, 0, 0, 125, 420},
		{"x unchanged by flip", 1, 3, 0, 128, 420},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := sink.got[tt.idx].transform.TransformPoint(tt.x, tt.y)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("(%v,%v) -> (%v,%v), want (%v,%v)", tt.x, tt.y, x, y, tt.wantX, tt.wantY)
			}
		})
	}
	want := outer.Multiply(scene.TranslateAffine(7, 17)).Multiply(scene.FlipY())
	if sink.got[0].transform != want {
		t.Errorf("transform = %+v, want %+v", sink.got[0].transform, want)
	}
}

func TestRenderAllMissing(t *testing.T) {
	src := stubSource{missing: map[GlyphID]bool{1: true, 2: true}}
	layout := &Layout{Lines: []Line{{Runs: []GlyphRun{{
		Glyphs: []Glyph{{ID: 1, Advance: 4}, {ID: 2, Advance: 4}},
	}}}}}
	sink := &recordingSink{}
	Render(sink, src, scene.IdentityAffine(), layout)
	if len(sink.got) != 0 {
		t.Errorf("appended %d fragments, want 0", len(sink.got))
	}
	Render(sink, src, scene.IdentityAffine(), nil)
}

func TestRenderIntoScene(t *testing.T) {
	ctx := testContext(t)
	layout, err := ctx.NewBuilder("Hi there", 1).PushDefault(FontSize(24)).Build()
	if err != nil {
		t.Fatal(err)
	}
	cache := NewFragmentCache()
	s := scene.NewScene()
	Render(s, cache, scene.TranslateAffine(10, 10), layout)

	if got := s.Count(scene.KindAppendFragment); got != 7 {
		t.Errorf("AppendFragment commands = %d, want 7 (space has no outline)", got)
	}
	if err := s.Finish(); err != nil {
		t.Errorf("Finish() = %v", err)
	}
	// Glyphs sit above the baseline in scene space.
	b := s.Bounds()
	baseline := 10 + layout.Lines[0].Baseline
	if b.MinY >= baseline || b.MaxY > baseline+layout.Lines[0].Descent+1 {
		t.Errorf("glyph bounds %+v not around baseline %v", b, baseline)
	}
}

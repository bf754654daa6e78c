package text

import "github.com/gogpu/scenekit/scene"

// FragmentSink receives positioned glyph fragments. *scene.Scene satisfies
// it.
type FragmentSink interface {
	AppendFragment(f *scene.Fragment, transform scene.Affine)
}

// FragmentSource resolves a glyph to its fragment. *FragmentCache is the
// usual implementation.
type FragmentSource interface {
	Get(f *Font, size float32, gid GlyphID, brush scene.Brush) (*scene.Fragment, bool)
}

// Render appends every glyph of layout to sink, placed under outer.
//
// Each glyph fragment is appended under
//
//	outer · translate(cursor + g.X, baseline − g.Y) · flipY
//
// where cursor starts at the run offset and advances by every glyph's
// advance, including glyphs the source cannot resolve. The flip turns the
// y-up glyph outline into the y-down scene space.
func Render(sink FragmentSink, source FragmentSource, outer scene.Affine, layout *Layout) {
	if layout == nil {
		return
	}
	for run := range layout.Runs() {
		RenderRun(sink, source, outer, run)
	}
}

// RenderRun appends the glyphs of a single run. See Render.
func RenderRun(sink FragmentSink, source FragmentSource, outer scene.Affine, run *GlyphRun) {
	flip := scene.FlipY()
	cursor := run.Offset
	for _, g := range run.Glyphs {
		if frag, ok := source.Get(run.Font, run.Size, g.ID, run.Brush); ok {
			place := scene.TranslateAffine(cursor+g.X, run.Baseline-g.Y)
			sink.AppendFragment(frag, outer.Multiply(place).Multiply(flip))
		}
		cursor += g.Advance
	}
}

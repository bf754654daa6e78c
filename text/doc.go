// Package text turns styled strings into glyph fragments placed in a scene.
//
// The pipeline has three stages:
//
//   - Layout: a [Context] shapes text with HarfBuzz (go-text/typesetting)
//     into lines of [GlyphRun] values. Style properties ([FontSize],
//     [FontBrush], [FontFace], [Locale]) apply to byte ranges.
//   - Fragments: a [FragmentCache] converts each (font, size, glyph, brush)
//     into an immutable outline fragment, built once.
//   - Placement: [Render] appends one fragment per glyph under
//     outer · translate(cursor+x, baseline−y) · flipY.
//
// # Example usage
//
//	ctx, err := text.NewContext()
//	if err != nil {
//	    return err
//	}
//	cache := text.NewFragmentCache()
//
//	layout, err := ctx.NewBuilder("Hello", 1).
//	    PushDefault(text.FontSize(24)).
//	    PushDefault(text.FontBrush(scene.SolidBrush(scenekit.White))).
//	    Build()
//	if err != nil {
//	    return err
//	}
//	text.Render(s, cache, scene.TranslateAffine(100, 100), layout)
//
// Fonts, contexts and caches are owned by the render thread.
package text

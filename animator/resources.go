package animator

import (
	"fmt"

	"github.com/gogpu/scenekit/text"
)

// Resources is the state a composer borrows on every frame. It is owned by
// the render thread.
type Resources struct {
	Text      *text.Context
	Fragments *text.FragmentCache
	Font      *text.Font
}

// NewResources creates resources around font. A nil font selects
// text.DefaultFont. Cache options are passed to the fragment cache.
func NewResources(font *text.Font, opts ...text.FragmentCacheOption) (*Resources, error) {
	if font == nil {
		f, err := text.DefaultFont()
		if err != nil {
			return nil, fmt.Errorf("animator: default font: %w", err)
		}
		font = f
	}
	ctx, err := text.NewContext(font)
	if err != nil {
		return nil, fmt.Errorf("animator: text context: %w", err)
	}
	return &Resources{
		Text:      ctx,
		Fragments: text.NewFragmentCache(opts...),
		Font:      font,
	}, nil
}

// EndFrame runs per-frame cache maintenance. Call it after each frame has
// been composed.
func (r *Resources) EndFrame() {
	r.Fragments.Maintain()
}

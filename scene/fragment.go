package scene

import "iter"

// Fragment is an immutable, pre-built list of commands in its own local
// space. Fragments are built once and then shared by pointer: appending a
// fragment to a Scene records a reference, never a copy of its geometry.
type Fragment struct {
	cmds   []Command
	bounds Rect
}

// NewFragment freezes a finished scene into a fragment. The scene must be
// layer-balanced. The scene may be reused afterwards; the fragment keeps its
// own copy of the command list.
func NewFragment(s *Scene) (*Fragment, error) {
	if err := s.Finish(); err != nil {
		return nil, err
	}
	return &Fragment{
		cmds:   append([]Command(nil), s.cmds...),
		bounds: s.Bounds(),
	}, nil
}

// Len returns the number of commands in f.
func (f *Fragment) Len() int {
	return len(f.cmds)
}

// Bounds returns the local bounding box of f.
func (f *Fragment) Bounds() Rect {
	return f.bounds
}

// Commands iterates over the fragment's commands in local space.
func (f *Fragment) Commands() iter.Seq[Command] {
	return func(yield func(Command) bool) {
		for _, c := range f.cmds {
			if !yield(c) {
				return
			}
		}
	}
}

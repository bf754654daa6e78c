// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glfw

import (
	"github.com/gogpu/scenekit/surface"
)

// BackendName is the registry name of the GLFW backend.
const BackendName = "glfw"

// Backend presents targets in a Window. Targets are CPU staging images;
// Present uploads them and swaps the window's buffers.
type Backend struct {
	win   *Window
	pres  *presenter
	image *surface.ImageBackend
}

// NewBackend creates a backend drawing into w. It compiles the blit
// program, so the window's GL context must be current.
func NewBackend(w *Window) (*Backend, error) {
	p, err := newPresenter(w)
	if err != nil {
		return nil, err
	}
	return &Backend{
		win:   w,
		pres:  p,
		image: surface.NewImageBackend(p.present),
	}, nil
}

// Name implements surface.Backend.
func (b *Backend) Name() string { return BackendName }

// CreateTarget implements surface.Backend.
func (b *Backend) CreateTarget(width, height int) (surface.Target, error) {
	t, err := b.image.CreateTarget(width, height)
	if err != nil {
		return nil, err
	}
	b.pres.resize(width, height)
	return t, nil
}

// Release frees the GL objects. Targets created by b must not be presented
// afterwards.
func (b *Backend) Release() {
	b.pres.release()
}

func init() {
	surface.Register(BackendName, 100, func() (surface.Backend, error) {
		w := active.Load()
		if w == nil {
			return nil, &surface.BackendUnavailableError{Name: BackendName}
		}
		return NewBackend(w)
	}, func() bool {
		return active.Load() != nil
	})
}

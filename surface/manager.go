// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"log/slog"
	"math"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/scenekit"
)

// State is the lifecycle state of a Manager.
type State uint8

const (
	// StateUninitialized is the state before OnConnect.
	StateUninitialized State = iota
	// StateCreated means a target of the recorded size exists.
	StateCreated
	// StateDestroyed is terminal.
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateCreated:
		return "Created"
	case StateDestroyed:
		return "Destroyed"
	default:
		return "Unknown"
	}
}

// Insets are the pixels the platform reserves around the drawable area
// (title bars, system bars).
type Insets struct {
	Left, Top, Right, Bottom int
}

// Window is the host window a Manager connects to. Size and ScaleFactor
// come from gpucontext.WindowProvider; Insets are in physical pixels.
type Window interface {
	gpucontext.WindowProvider
	Insets() Insets
}

// FramebufferSizer is implemented by windows that know their drawable size
// in physical pixels exactly. ContentSize prefers it over scaling Size.
type FramebufferSizer interface {
	FramebufferSize() (width, height int)
}

// ContentSize returns the drawable size of w in physical pixels minus the
// insets. The drawable size is FramebufferSize when w implements
// FramebufferSizer, otherwise the window size scaled by its DPI factor.
func ContentSize(w Window) (width, height int) {
	if fb, ok := w.(FramebufferSizer); ok {
		width, height = fb.FramebufferSize()
	} else {
		lw, lh := w.Size()
		scale := w.ScaleFactor()
		width = int(math.Round(float64(lw) * scale))
		height = int(math.Round(float64(lh) * scale))
	}
	in := w.Insets()
	return width - in.Left - in.Right, height - in.Top - in.Bottom
}

// HeadlessWindow is a Window without a platform behind it.
type HeadlessWindow struct {
	gpucontext.NullWindowProvider
	ContentInsets Insets
}

// NewHeadlessWindow returns a window of width×height at scale 1.
func NewHeadlessWindow(width, height int) *HeadlessWindow {
	return &HeadlessWindow{NullWindowProvider: gpucontext.NullWindowProvider{W: width, H: height}}
}

// Insets implements Window.
func (w *HeadlessWindow) Insets() Insets { return w.ContentInsets }

// TransitionHook observes state changes. width and height are the size of
// the target entering or leaving the Created state.
type TransitionHook func(from, to State, width, height int)

// Option configures a Manager.
type Option func(*Manager)

// WithTransitionHook registers fn to run on every state change.
func WithTransitionHook(fn TransitionHook) Option {
	return func(m *Manager) {
		if fn != nil {
			m.hooks = append(m.hooks, fn)
		}
	}
}

// WithLogger sets the manager's logger. By default the package logger
// from scenekit.Logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		m.log = l
	}
}

// Manager owns the presentation target and keeps its size equal to the
// window's content size. It is the only component that creates or destroys
// targets.
//
// Transitions:
//
//	Uninitialized --OnConnect--> Created
//	Created --OnResize--> Destroyed --> Created   (full recreation)
//	any --OnDestroy--> Destroyed                  (terminal)
//
// Manager is driven from the window thread and is not safe for concurrent
// use.
type Manager struct {
	backend Backend
	state   State
	target  Target
	width   int
	height  int

	// size reported by OnResize before OnConnect
	pendingW, pendingH int

	hooks []TransitionHook
	log   *slog.Logger
}

// NewManager creates a manager in the Uninitialized state. It panics if
// backend is nil.
func NewManager(backend Backend, opts ...Option) *Manager {
	if backend == nil {
		panic("surface: nil backend")
	}
	m := &Manager{backend: backend}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *Manager) logger() *slog.Logger {
	if m.log != nil {
		return m.log
	}
	return scenekit.Logger()
}

// State returns the current state.
func (m *Manager) State() State { return m.state }

// Target returns the current target, or nil outside the Created state.
func (m *Manager) Target() Target { return m.target }

// Size returns the recorded target size.
func (m *Manager) Size() (width, height int) { return m.width, m.height }

// Backend returns the backend targets are allocated from.
func (m *Manager) Backend() Backend { return m.backend }

// OnConnect creates the first target, sized to the window's content size or
// to a size reported by an earlier OnResize.
func (m *Manager) OnConnect(w Window) error {
	switch m.state {
	case StateDestroyed:
		return &SurfaceClosedError{Op: "OnConnect"}
	case StateCreated:
		return ErrAlreadyConnected
	}

	width, height := ContentSize(w)
	if m.pendingW > 0 && m.pendingH > 0 {
		width, height = m.pendingW, m.pendingH
	}
	if err := validate(width, height); err != nil {
		return err
	}
	if err := m.create(width, height); err != nil {
		return err
	}
	m.pendingW, m.pendingH = 0, 0
	m.logger().Info("surface: connected", "backend", m.backend.Name(), "width", width, "height", height)
	return nil
}

// OnResize recreates the target at width×height. Dimensions are checked
// before anything is released. Before OnConnect the size is remembered for
// the first target.
//
// If the backend fails to create the new target the old one is already
// gone and the manager ends Destroyed; the returned *CreateError is fatal.
func (m *Manager) OnResize(width, height int) error {
	if m.state == StateDestroyed {
		return &SurfaceClosedError{Op: "OnResize"}
	}
	if err := validate(width, height); err != nil {
		return err
	}
	if m.state == StateUninitialized {
		m.pendingW, m.pendingH = width, height
		return nil
	}

	m.release()
	if err := m.create(width, height); err != nil {
		return err
	}
	m.logger().Debug("surface: resized", "width", width, "height", height)
	return nil
}

// OnDestroy releases the target and moves to the terminal Destroyed state.
// A second call returns a SurfaceClosedError.
func (m *Manager) OnDestroy() error {
	if m.state == StateDestroyed {
		return &SurfaceClosedError{Op: "OnDestroy"}
	}
	m.release()
	m.state = StateDestroyed
	m.logger().Info("surface: destroyed")
	return nil
}

// Recreate destroys and recreates the target at its current size, as after
// a lost device.
func (m *Manager) Recreate() error {
	switch m.state {
	case StateDestroyed:
		return &SurfaceClosedError{Op: "Recreate"}
	case StateUninitialized:
		return nil
	}
	return m.OnResize(m.width, m.height)
}

// release destroys the current target, passing through Destroyed.
func (m *Manager) release() {
	if m.target == nil {
		return
	}
	if err := m.target.Destroy(); err != nil {
		m.logger().Warn("surface: destroy target", "err", err)
	}
	m.target = nil
	m.transition(StateDestroyed, m.width, m.height)
}

func (m *Manager) create(width, height int) error {
	t, err := m.backend.CreateTarget(width, height)
	if err == nil && t == nil {
		err = ErrSurfaceCreate
	}
	if err != nil {
		m.logger().Error("surface: create target",
			"backend", m.backend.Name(), "width", width, "height", height, "err", err)
		return &CreateError{Backend: m.backend.Name(), Width: width, Height: height, Err: err}
	}
	m.target = t
	m.width, m.height = width, height
	m.transition(StateCreated, width, height)
	return nil
}

func (m *Manager) transition(to State, width, height int) {
	from := m.state
	m.state = to
	for _, h := range m.hooks {
		h(from, to, width, height)
	}
}

func validate(width, height int) error {
	if width <= 0 || height <= 0 {
		return &InvalidDimensionsError{Width: width, Height: height}
	}
	return nil
}

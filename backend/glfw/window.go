// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glfw

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/go-gl/gl/v4.1-core/gl"
	glfwlib "github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/scenekit"
	"github.com/gogpu/scenekit/render"
	"github.com/gogpu/scenekit/surface"
)

// ErrWindowOpen is returned by Open while another window is open.
var ErrWindowOpen = errors.New("glfw: a window is already open")

// Config describes the window to open.
type Config struct {
	Title  string
	Width  int // logical size
	Height int
	// VSync makes SwapBuffers wait for the display refresh.
	VSync bool
	// Insets are reserved pixels around the drawable area.
	Insets surface.Insets
}

// active is the open window, if any.
var active atomic.Pointer[Window]

// Window is a GLFW window with a current OpenGL context.
type Window struct {
	win    *glfwlib.Window
	insets surface.Insets

	redraw atomic.Bool
	token  atomic.Uint64
	served uint64

	onResize func(width, height int)
	onClose  func()
}

// Open initializes GLFW and opens a window. Only one window may be open.
func Open(cfg Config) (*Window, error) {
	if active.Load() != nil {
		return nil, ErrWindowOpen
	}
	if err := glfwlib.Init(); err != nil {
		return nil, fmt.Errorf("glfw: init: %w", err)
	}
	glfwlib.WindowHint(glfwlib.ContextVersionMajor, 4)
	glfwlib.WindowHint(glfwlib.ContextVersionMinor, 1)
	glfwlib.WindowHint(glfwlib.OpenGLProfile, glfwlib.OpenGLCoreProfile)
	glfwlib.WindowHint(glfwlib.OpenGLForwardCompatible, glfwlib.True)

	win, err := glfwlib.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfwlib.Terminate()
		return nil, fmt.Errorf("glfw: create window: %w", err)
	}
	win.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		win.Destroy()
		glfwlib.Terminate()
		return nil, fmt.Errorf("glfw: init OpenGL: %w", err)
	}
	if cfg.VSync {
		glfwlib.SwapInterval(1)
	} else {
		glfwlib.SwapInterval(0)
	}

	w := &Window{win: win, insets: cfg.Insets}
	win.SetFramebufferSizeCallback(func(_ *glfwlib.Window, width, height int) {
		if w.onResize != nil {
			w.onResize(width-w.insets.Left-w.insets.Right, height-w.insets.Top-w.insets.Bottom)
		}
		w.RequestRedraw()
	})
	win.SetRefreshCallback(func(*glfwlib.Window) {
		w.RequestRedraw()
	})
	win.SetCloseCallback(func(*glfwlib.Window) {
		if w.onClose != nil {
			w.onClose()
		}
	})
	active.Store(w)
	scenekit.Logger().Info("glfw: window opened",
		"version", gl.GoStr(gl.GetString(gl.VERSION)), "width", cfg.Width, "height", cfg.Height)
	return w, nil
}

// Close destroys the window and terminates GLFW.
func (w *Window) Close() {
	if !active.CompareAndSwap(w, nil) {
		return
	}
	w.win.Destroy()
	glfwlib.Terminate()
}

// OnResize sets the handler for framebuffer size changes. It receives the
// content size in physical pixels, insets already applied.
func (w *Window) OnResize(fn func(width, height int)) { w.onResize = fn }

// OnClose sets the handler for close requests.
func (w *Window) OnClose(fn func()) { w.onClose = fn }

// Size implements gpucontext.WindowProvider.
func (w *Window) Size() (width, height int) { return w.win.GetSize() }

// FramebufferSize implements surface.FramebufferSizer. It is the size
// OnResize reports before insets.
func (w *Window) FramebufferSize() (width, height int) { return w.win.GetFramebufferSize() }

// ScaleFactor implements gpucontext.WindowProvider as the ratio of
// framebuffer to window size, rounded to two decimals.
func (w *Window) ScaleFactor() float64 {
	fw, _ := w.win.GetFramebufferSize()
	ww, _ := w.win.GetSize()
	return scaleFactor(fw, ww)
}

// Insets implements surface.Window.
func (w *Window) Insets() surface.Insets { return w.insets }

// RequestRedraw implements render.InvalidateHost.
func (w *Window) RequestRedraw() {
	w.redraw.Store(true)
	glfwlib.PostEmptyEvent()
}

// ScheduleIdle implements render.IdleHost. The loop runs one frame per
// new token once the event queue is drained.
func (w *Window) ScheduleIdle(token uint64) {
	w.token.Store(token)
	glfwlib.PostEmptyEvent()
}

// Capabilities reports what the window offers for frame scheduling.
func (w *Window) Capabilities() render.Capabilities {
	return render.Capabilities{IdleCallbacks: true}
}

// ShouldClose reports whether the user asked to close the window.
func (w *Window) ShouldClose() bool { return w.win.ShouldClose() }

// Run processes window events and calls frame whenever a redraw or idle
// wakeup is pending. It returns when the window is asked to close, ctx is
// done or frame returns an error.
func (w *Window) Run(ctx context.Context, frame func() error) error {
	w.RequestRedraw()
	for !w.win.ShouldClose() {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if w.pending() {
			glfwlib.PollEvents()
		} else {
			// Wake up periodically to observe ctx.
			glfwlib.WaitEventsTimeout(0.1)
		}
		if !w.take() {
			continue
		}
		if err := frame(); err != nil {
			return err
		}
	}
	return nil
}

func (w *Window) pending() bool {
	return w.redraw.Load() || w.token.Load() != w.served
}

// take consumes one pending wakeup.
func (w *Window) take() bool {
	if t := w.token.Load(); t != w.served {
		w.served = t
		w.redraw.Store(false)
		return true
	}
	return w.redraw.Swap(false)
}

func (w *Window) swap() { w.win.SwapBuffers() }

func scaleFactor(framebuffer, window int) float64 {
	if window <= 0 || framebuffer <= 0 {
		return 1
	}
	return math.Round(float64(framebuffer)/float64(window)*100) / 100
}

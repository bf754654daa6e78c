// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gogpu/scenekit/scene"
	"github.com/gogpu/scenekit/surface"
)

func TestDriverFirstTickConnects(t *testing.T) {
	comp := &rectComposer{}
	r := &recordingRasterizer{}
	d, m, sched := newTestDriver(comp, r)

	if err := d.Tick(context.Background()); err != nil {
		t.Fatalf("Tick() = %v", err)
	}
	if m.State() != surface.StateCreated {
		t.Fatalf("manager state = %v, want Created", m.State())
	}
	if w, h := m.Size(); w != 800 || h != 600 {
		t.Errorf("surface size = %dx%d, want 800x600", w, h)
	}
	if r.calls != 1 || r.lastLen != 1 {
		t.Errorf("rasterizer calls=%d lastLen=%d, want 1 and 1", r.calls, r.lastLen)
	}
	if sched.n != 1 {
		t.Errorf("RequestNextFrame called %d times, want 1", sched.n)
	}
	if d.Frame() != 1 {
		t.Errorf("Frame() = %d, want 1", d.Frame())
	}
	if got := m.Target().(*surface.ImageTarget).Presented(); got != 1 {
		t.Errorf("Presented() = %d, want 1", got)
	}
}

func TestDriverFrameIndicesIncrease(t *testing.T) {
	comp := &rectComposer{}
	d, _, sched := newTestDriver(comp, &recordingRasterizer{})

	for i := 0; i < 5; i++ {
		if err := d.Tick(context.Background()); err != nil {
			t.Fatalf("Tick() #%d = %v", i, err)
		}
	}
	for i, fc := range comp.frames {
		if fc.Index != uint64(i) {
			t.Errorf("frame %d has index %d", i, fc.Index)
		}
		if !fc.HasTimestamp {
			t.Errorf("frame %d has no timestamp from ImageTarget", i)
		}
	}
	if sched.n != 5 {
		t.Errorf("RequestNextFrame called %d times, want 5", sched.n)
	}
}

func TestDriverSkipsUnbalancedFrame(t *testing.T) {
	bad := ComposeFunc(func(dst *scene.Scene, fc FrameContext) error {
		if fc.Index == 0 {
			dst.PushLayer(scene.BlendNormal, 1, scene.IdentityAffine(), nil)
		}
		return nil
	})
	r := &recordingRasterizer{}
	d, _, sched := newTestDriver(bad, r)

	err := d.Tick(context.Background())
	var fe *FrameError
	if !errors.As(err, &fe) || fe.Frame != 0 {
		t.Fatalf("Tick() = %v, want *FrameError for frame 0", err)
	}
	if !errors.Is(err, scene.ErrUnbalancedLayer) {
		t.Errorf("error %v does not wrap ErrUnbalancedLayer", err)
	}
	if IsFatal(err) {
		t.Error("skipped frame reported as fatal")
	}
	if r.calls != 0 {
		t.Errorf("rasterizer called %d times for a skipped frame", r.calls)
	}
	if sched.n != 1 {
		t.Errorf("skipped frame scheduled %d times, want 1", sched.n)
	}

	if err := d.Tick(context.Background()); err != nil {
		t.Fatalf("Tick() after skip = %v", err)
	}
	if d.Frame() != 2 {
		t.Errorf("Frame() = %d, want 2", d.Frame())
	}
}

func TestDriverSkipsComposeError(t *testing.T) {
	boom := errors.New("composer failed")
	d, _, sched := newTestDriver(ComposeFunc(func(*scene.Scene, FrameContext) error { return boom }), &recordingRasterizer{})

	err := d.Tick(context.Background())
	if !errors.Is(err, boom) || IsFatal(err) {
		t.Fatalf("Tick() = %v, want non-fatal error wrapping composer failure", err)
	}
	if sched.n != 1 {
		t.Errorf("RequestNextFrame called %d times, want 1", sched.n)
	}
}

func TestDriverCreateFailureIsFatal(t *testing.T) {
	m := surface.NewManager(failingBackend{})
	sched := &countingScheduler{}
	d := NewDriver(m, surface.NewHeadlessWindow(800, 600), &rectComposer{}, &recordingRasterizer{}, sched)

	err := d.Tick(context.Background())
	if !errors.Is(err, surface.ErrSurfaceCreate) {
		t.Fatalf("Tick() = %v, want ErrSurfaceCreate", err)
	}
	if !IsFatal(err) {
		t.Error("surface creation failure should be fatal")
	}
	if sched.n != 0 {
		t.Errorf("fatal tick scheduled %d frames", sched.n)
	}
	if m.State() != surface.StateUninitialized {
		t.Errorf("state = %v, want Uninitialized", m.State())
	}
}

func TestDriverZeroSizeWindowIsTransient(t *testing.T) {
	m := surface.NewManager(surface.NewImageBackend(nil))
	sched := &countingScheduler{}
	win := surface.NewHeadlessWindow(0, 0)
	d := NewDriver(m, win, &rectComposer{}, &recordingRasterizer{}, sched)

	err := d.Tick(context.Background())
	if !errors.Is(err, surface.ErrInvalidDimensions) {
		t.Fatalf("Tick() = %v, want ErrInvalidDimensions", err)
	}
	if IsFatal(err) {
		t.Error("zero-size window should not be fatal")
	}
	if sched.n != 1 {
		t.Errorf("RequestNextFrame called %d times, want 1", sched.n)
	}

	win.W, win.H = 320, 240
	if err := d.Tick(context.Background()); err != nil {
		t.Fatalf("Tick() after restore = %v", err)
	}
}

func TestDriverAfterDestroy(t *testing.T) {
	d, m, _ := newTestDriver(&rectComposer{}, &recordingRasterizer{})
	if err := d.Tick(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := d.Shutdown(); err != nil {
		t.Fatalf("Shutdown() = %v", err)
	}
	if m.State() != surface.StateDestroyed {
		t.Fatalf("state = %v, want Destroyed", m.State())
	}
	if err := d.Shutdown(); err != nil {
		t.Errorf("second Shutdown() = %v", err)
	}

	err := d.Tick(context.Background())
	if !errors.Is(err, surface.ErrSurfaceClosed) || !IsFatal(err) {
		t.Errorf("Tick() after destroy = %v, want fatal ErrSurfaceClosed", err)
	}
}

func TestDriverDeviceLoss(t *testing.T) {
	t.Run("fatal", func(t *testing.T) {
		r := &recordingRasterizer{err: ErrDeviceLost, failOnce: true}
		d, _, sched := newTestDriver(&rectComposer{}, r)

		err := d.Tick(context.Background())
		if !errors.Is(err, ErrDeviceLost) || !IsFatal(err) {
			t.Fatalf("Tick() = %v, want fatal ErrDeviceLost", err)
		}
		if sched.n != 0 {
			t.Errorf("scheduled %d frames after device loss", sched.n)
		}
	})

	t.Run("recovered", func(t *testing.T) {
		r := &recordingRasterizer{err: ErrDeviceLost, failOnce: true}
		d, m, _ := newTestDriver(&rectComposer{}, r, WithDeviceLossRecovery(true))
		if err := m.OnConnect(surface.NewHeadlessWindow(800, 600)); err != nil {
			t.Fatal(err)
		}
		before := m.Target()

		if err := d.Tick(context.Background()); err != nil {
			t.Fatalf("Tick() = %v, want recovery", err)
		}
		if r.calls != 2 {
			t.Errorf("rasterizer calls = %d, want 2", r.calls)
		}
		if m.Target() == before {
			t.Error("target was not recreated")
		}
	})

	t.Run("persistent", func(t *testing.T) {
		r := &recordingRasterizer{err: ErrDeviceLost}
		d, _, _ := newTestDriver(&rectComposer{}, r, WithDeviceLossRecovery(true))
		if err := d.Tick(context.Background()); !errors.Is(err, ErrDeviceLost) {
			t.Fatalf("Tick() = %v, want ErrDeviceLost", err)
		}
		if r.calls != 2 {
			t.Errorf("rasterizer calls = %d, want 2", r.calls)
		}
	})
}

func TestDriverUnsupportedBrushSkips(t *testing.T) {
	r := &recordingRasterizer{err: ErrUnsupportedBrush}
	d, _, sched := newTestDriver(&rectComposer{}, r)

	err := d.Tick(context.Background())
	var fe *FrameError
	if !errors.As(err, &fe) {
		t.Fatalf("Tick() = %v, want *FrameError", err)
	}
	if sched.n != 1 {
		t.Errorf("RequestNextFrame called %d times, want 1", sched.n)
	}
}

func TestDriverPacing(t *testing.T) {
	now := time.Unix(1000, 0)
	clock := func() time.Time { return now }
	d, _, _ := newTestDriver(&rectComposer{}, &recordingRasterizer{},
		WithPacing(PacingLimited(time.Hour)), WithClock(clock))

	if err := d.Tick(context.Background()); err != nil {
		t.Fatalf("first Tick() = %v", err)
	}

	// The second frame would wait an hour; cancellation must end the wait.
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := d.Tick(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("paced Tick() = %v, want DeadlineExceeded", err)
	}
}

func TestDriverCanceledContext(t *testing.T) {
	r := &recordingRasterizer{}
	d, _, _ := newTestDriver(&rectComposer{}, r)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := d.Tick(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Tick() = %v, want context.Canceled", err)
	}
	if r.calls != 0 {
		t.Errorf("rasterizer ran %d times on a canceled context", r.calls)
	}
}

func TestDriverRun(t *testing.T) {
	comp := &rectComposer{}
	d, _, _ := newTestDriver(comp, &recordingRasterizer{})

	if err := d.Run(context.Background(), 3); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if len(comp.frames) != 3 || d.Frame() != 3 {
		t.Errorf("composed %d frames, Frame() = %d, want 3", len(comp.frames), d.Frame())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := d.Run(ctx, 0); err != nil {
		t.Errorf("Run() on canceled context = %v, want nil", err)
	}
}

func TestDriverRunStopsOnFatal(t *testing.T) {
	m := surface.NewManager(failingBackend{})
	d := NewDriver(m, surface.NewHeadlessWindow(10, 10), &rectComposer{}, &recordingRasterizer{}, &countingScheduler{})
	if err := d.Run(context.Background(), 0); !errors.Is(err, surface.ErrSurfaceCreate) {
		t.Fatalf("Run() = %v, want ErrSurfaceCreate", err)
	}
}

type acquiringTarget struct {
	surface.Target
	acquired int
	err      error
}

func (a *acquiringTarget) Acquire(context.Context) error {
	a.acquired++
	return a.err
}

type acquiringBackend struct {
	target *acquiringTarget
}

func (b *acquiringBackend) Name() string { return "acquiring" }

func (b *acquiringBackend) CreateTarget(w, h int) (surface.Target, error) {
	inner, err := surface.NewImageBackend(nil).CreateTarget(w, h)
	if err != nil {
		return nil, err
	}
	b.target.Target = inner
	return b.target, nil
}

func TestDriverAcquire(t *testing.T) {
	at := &acquiringTarget{}
	m := surface.NewManager(&acquiringBackend{target: at})
	comp := &rectComposer{}
	d := NewDriver(m, surface.NewHeadlessWindow(16, 16), comp, &recordingRasterizer{}, &countingScheduler{})

	if err := d.Tick(context.Background()); err != nil {
		t.Fatalf("Tick() = %v", err)
	}
	if at.acquired != 1 {
		t.Errorf("Acquire called %d times, want 1", at.acquired)
	}
	if comp.frames[0].HasTimestamp {
		t.Error("target without Timestamper produced a timestamp")
	}

	at.err = errors.New("swapchain out of date")
	if err := d.Tick(context.Background()); !errors.Is(err, at.err) {
		t.Errorf("Tick() = %v, want acquire error", err)
	}
}

func TestNewDriverPanics(t *testing.T) {
	m := surface.NewManager(surface.NewImageBackend(nil))
	tests := []struct {
		name string
		fn   func()
	}{
		{"manager", func() { NewDriver(nil, nil, &rectComposer{}, &recordingRasterizer{}, &countingScheduler{}) }},
		{"composer", func() { NewDriver(m, nil, nil, &recordingRasterizer{}, &countingScheduler{}) }},
		{"rasterizer", func() { NewDriver(m, nil, &rectComposer{}, nil, &countingScheduler{}) }},
		{"scheduler", func() { NewDriver(m, nil, &rectComposer{}, &recordingRasterizer{}, nil) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("NewDriver did not panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"frame", &FrameError{Frame: 3, Err: scene.ErrUnbalancedLayer}, false},
		{"dims", &surface.InvalidDimensionsError{Width: 0, Height: 0}, false},
		{"closed", &surface.SurfaceClosedError{Op: "Tick"}, true},
		{"lost", ErrDeviceLost, true},
	}
	for _, tt := range tests {
		if got := IsFatal(tt.err); got != tt.want {
			t.Errorf("IsFatal(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

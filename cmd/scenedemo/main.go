// Command scenedemo renders the reference scenekit animation, either in a
// GLFW window or headless into a PNG file.
//
//	scenedemo -backend glfw -fps 60
//	scenedemo -backend headless -frames 120 -out frame.png
//
// With -config the animation is read from a TOML or YAML file and reloaded
// whenever the file changes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"os/signal"
	"runtime"

	"github.com/gogpu/scenekit"
	"github.com/gogpu/scenekit/animator"
	glfwhost "github.com/gogpu/scenekit/backend/glfw"
	"github.com/gogpu/scenekit/render"
	"github.com/gogpu/scenekit/scene"
	"github.com/gogpu/scenekit/surface"
)

func init() {
	// GLFW and OpenGL calls must stay on the main thread.
	runtime.LockOSThread()
}

type options struct {
	backend   string
	width     int
	height    int
	frames    uint64
	out       string
	config    string
	fps       float64
	scheduler string
}

func main() {
	var (
		opts    options
		verbose bool
	)
	flag.StringVar(&opts.backend, "backend", "glfw", "presentation backend: glfw or headless")
	flag.IntVar(&opts.width, "width", 1000, "window width")
	flag.IntVar(&opts.height, "height", 1000, "window height")
	flag.Uint64Var(&opts.frames, "frames", 0, "frames to render, 0 runs until closed (headless defaults to 1)")
	flag.StringVar(&opts.out, "out", "scenedemo.png", "PNG written by the headless backend")
	flag.StringVar(&opts.config, "config", "", "animation config (.toml, .yaml)")
	flag.Float64Var(&opts.fps, "fps", 0, "frame rate cap, 0 is uncapped")
	flag.StringVar(&opts.scheduler, "scheduler", "auto", "frame scheduling: auto, idle or invalidate")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	scenekit.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, logger); err != nil {
		logger.Error("scenedemo failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, logger *slog.Logger) error {
	cfg := animator.DefaultConfig()
	var reload <-chan animator.Config
	if opts.config != "" {
		c, err := animator.LoadConfig(opts.config)
		if err != nil {
			return err
		}
		cfg = c
		ch, err := watchConfig(ctx, opts.config, logger)
		if err != nil {
			return err
		}
		reload = ch
	}

	res, err := animator.NewResources(nil, animatorCacheOptions()...)
	if err != nil {
		return err
	}
	composer := frameComposer(animator.NewComposer(cfg), res, reload)

	switch opts.backend {
	case "headless":
		return runHeadless(ctx, opts, composer, logger)
	case "glfw":
		return runWindow(ctx, opts, composer, logger)
	default:
		return fmt.Errorf("unknown backend %q", opts.backend)
	}
}

// frameComposer adapts comp to the render driver. A config received on
// reload replaces the current one before the frame is composed and drops
// the cached glyph fragments, which the new text and styles would not reuse.
func frameComposer(comp *animator.Composer, res *animator.Resources, reload <-chan animator.Config) render.Composer {
	return render.ComposeFunc(func(dst *scene.Scene, fc render.FrameContext) error {
		select {
		case c := <-reload:
			comp.SetConfig(c)
			res.Fragments.Clear()
		default:
		}
		defer res.EndFrame()
		return comp.Compose(dst, fc.Index, res)
	})
}

func runHeadless(ctx context.Context, opts options, composer render.Composer, logger *slog.Logger) error {
	manager := surface.NewManager(surface.NewImageBackend(nil))
	window := surface.NewHeadlessWindow(opts.width, opts.height)
	// Driver.Run ticks back to back; nothing to wake up.
	sched := render.SchedulerFunc(func() {})
	d := render.NewDriver(manager, window, composer, render.NewSoftwareRasterizer(), sched,
		render.WithPacing(render.PacingFPS(opts.fps)), render.WithLogger(logger))
	defer func() { _ = d.Shutdown() }()

	frames := opts.frames
	if frames == 0 {
		frames = 1
	}
	if err := d.Run(ctx, frames); err != nil {
		return err
	}
	t := manager.Target()
	if t == nil {
		return errors.New("no frame rendered")
	}
	if err := writePNG(opts.out, t); err != nil {
		return err
	}
	logger.Info("frame written", "path", opts.out, "frames", d.Frame())
	return nil
}

func runWindow(ctx context.Context, opts options, composer render.Composer, logger *slog.Logger) error {
	win, err := glfwhost.Open(glfwhost.Config{
		Title:  "scenekit",
		Width:  opts.width,
		Height: opts.height,
		VSync:  opts.fps == 0,
	})
	if err != nil {
		return err
	}
	defer win.Close()

	backend, err := surface.NewBackend(glfwhost.BackendName)
	if err != nil {
		return err
	}
	if b, ok := backend.(*glfwhost.Backend); ok {
		defer b.Release()
	}
	manager := surface.NewManager(backend, surface.WithLogger(logger))

	sched, err := selectScheduler(win, opts.scheduler)
	if err != nil {
		return err
	}
	d := render.NewDriver(manager, win, composer, render.NewSoftwareRasterizer(), sched,
		render.WithPacing(render.PacingFPS(opts.fps)), render.WithLogger(logger))
	defer func() { _ = d.Shutdown() }()

	var fatal error
	win.OnResize(func(width, height int) {
		if manager.State() != surface.StateCreated {
			return
		}
		if err := manager.OnResize(width, height); render.IsFatal(err) {
			fatal = err
		}
	})
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	win.OnClose(cancel)

	err = win.Run(ctx, func() error {
		if fatal != nil {
			return fatal
		}
		err := d.Tick(ctx)
		if errors.Is(err, context.Canceled) || !render.IsFatal(err) {
			return nil
		}
		return err
	})
	if err != nil {
		return err
	}
	logger.Info("window closed", "frames", d.Frame())
	return nil
}

func selectScheduler(win *glfwhost.Window, mode string) (render.FrameScheduler, error) {
	switch mode {
	case "auto":
		return render.SelectScheduler(win, win.Capabilities())
	case "idle":
		return render.NewIdleScheduler(win), nil
	case "invalidate":
		return render.NewInvalidateScheduler(win), nil
	default:
		return nil, fmt.Errorf("unknown scheduler %q", mode)
	}
}

func writePNG(path string, t surface.Target) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, t.Image())
}

package main

import (
	"context"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gogpu/scenekit/animator"
	"github.com/gogpu/scenekit/render"
	"github.com/gogpu/scenekit/scene"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestRunHeadless(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frame.png")
	opts := options{
		backend:   "headless",
		width:     120,
		height:    90,
		frames:    3,
		out:       out,
		scheduler: "auto",
	}
	if err := run(context.Background(), opts, discardLogger()); err != nil {
		t.Fatalf("run() = %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 90 {
		t.Errorf("image is %dx%d, want 120x90", b.Dx(), b.Dy())
	}
	// The top-left corner is background gray.
	r, g, b, _ := img.At(1, 1).RGBA()
	if r>>8 != 128 || g>>8 != 128 || b>>8 != 128 {
		t.Errorf("background = (%d,%d,%d), want gray 128", r>>8, g>>8, b>>8)
	}
}

func TestRunUnknownBackend(t *testing.T) {
	if err := run(context.Background(), options{backend: "vulkan"}, discardLogger()); err == nil {
		t.Error("run() with unknown backend succeeded")
	}
}

func TestRunBadConfig(t *testing.T) {
	p := filepath.Join(t.TempDir(), "anim.json")
	if err := os.WriteFile(p, []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := run(context.Background(), options{backend: "headless", config: p}, discardLogger()); err == nil {
		t.Error("run() with .json config succeeded")
	}
}

func TestWatchConfigReload(t *testing.T) {
	p := filepath.Join(t.TempDir(), "anim.toml")
	if err := os.WriteFile(p, []byte("text = \"one\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := watchConfig(ctx, p, discardLogger())
	if err != nil {
		t.Fatalf("watchConfig() = %v", err)
	}
	if err := os.WriteFile(p, []byte("text = \"two\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	timeout := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-ch:
			if cfg.Text == "two" {
				return
			}
		case <-timeout:
			t.Fatal("no reload within 5s")
		}
	}
}

func TestFrameComposerReloadClearsFragments(t *testing.T) {
	res, err := animator.NewResources(nil)
	if err != nil {
		t.Fatal(err)
	}
	comp := animator.NewComposer(animator.DefaultConfig())
	reload := make(chan animator.Config, 1)
	composer := frameComposer(comp, res, reload)

	frame := func(i uint64) {
		t.Helper()
		s := scene.NewScene()
		s.Begin()
		if err := composer.Compose(s, render.FrameContext{Index: i}); err != nil {
			t.Fatalf("Compose(%d) = %v", i, err)
		}
	}
	frame(0)
	before := res.Fragments.Len()

	cfg := animator.DefaultConfig()
	cfg.Text = "a"
	reload <- cfg
	frame(1)

	if comp.Config().Text != "a" {
		t.Errorf("config text = %q, want reloaded %q", comp.Config().Text, "a")
	}
	if n := res.Fragments.Len(); n == 0 || n >= before {
		t.Errorf("cache holds %d entries after reload, want fewer than %d", n, before)
	}
}

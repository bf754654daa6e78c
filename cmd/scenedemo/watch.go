package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/scenekit/animator"
	"github.com/gogpu/scenekit/text"
)

// watchConfig reloads path whenever it changes and sends each config that
// parses. Only the newest config is kept until the render thread takes it.
// The parent directory is watched so editors that replace the file are
// followed.
func watchConfig(ctx context.Context, path string, logger *slog.Logger) (<-chan animator.Config, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch config: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch config: %w", err)
	}

	out := make(chan animator.Config, 1)
	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}
				cfg, err := animator.LoadConfig(abs)
				if err != nil {
					logger.Warn("config reload failed", "path", abs, "err", err)
					continue
				}
				select {
				case <-out:
				default:
				}
				out <- cfg
				logger.Info("config reloaded", "path", abs)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("config watcher", "err", err)
			}
		}
	}()
	return out, nil
}

// animatorCacheOptions evicts glyph fragments unused for ten seconds of
// frames at 60 fps, so reloaded texts do not pin old glyphs.
func animatorCacheOptions() []text.FragmentCacheOption {
	return []text.FragmentCacheOption{text.WithFrameLifetime(600)}
}

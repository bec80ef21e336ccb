// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/api2spec/api2model/internal/loader"
)

// watcher runs onChange once per burst of relevant file events: a change
// restarts the debounce period and onChange runs when it expires.
type watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	relevant func(path string) bool
	onChange func() error
	logger   *zap.Logger
}

// newWatcher watches the given directories.
func newWatcher(dirs []string, debounce time.Duration, logger *zap.Logger) (*watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		logger.Debug("watching", zap.String("dir", dir))
	}
	return &watcher{
		fs:       fw,
		debounce: debounce,
		relevant: func(string) bool { return true },
		onChange: func() error { return nil },
		logger:   logger,
	}, nil
}

// run handles events until ctx is done or the watcher is closed. Errors of
// onChange are logged and do not stop the loop.
func (w *watcher) run(ctx context.Context) error {
	defer w.fs.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			if !w.relevant(event.Name) {
				continue
			}
			w.logger.Debug("change detected", zap.String("file", event.Name), zap.String("op", event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := w.onChange(); err != nil {
				w.logger.Error("regeneration failed", zap.Error(err))
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", zap.Error(err))
		}
	}
}

// watchDirs returns the distinct directories holding the sources, plus the
// directory of the config file when there is one.
func watchDirs(sources []loader.Source, configFile string) []string {
	var dirs []string
	seen := map[string]bool{}
	add := func(dir string) {
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	for _, src := range sources {
		add(filepath.Dir(src.Path))
	}
	if configFile != "" {
		add(filepath.Dir(configFile))
	}
	return dirs
}

// isRelevant reports whether a change to path should trigger regeneration:
// the config file or a description document outside the output directory.
func isRelevant(path, configFile, outputDir string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if configFile != "" {
		if cfgAbs, err := filepath.Abs(configFile); err == nil && cfgAbs == abs {
			return true
		}
	}
	if out, err := filepath.Abs(outputDir); err == nil {
		if abs == out || strings.HasPrefix(abs, out+string(filepath.Separator)) {
			return false
		}
	}
	ext := strings.ToLower(filepath.Ext(abs))
	for _, e := range loader.DefaultExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

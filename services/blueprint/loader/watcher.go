// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package loader

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounceWindow is how long the watcher waits for further changes
// before invoking the rebuild handler. Editors often write several events
// per save; one rebuild per burst is enough.
const DefaultDebounceWindow = 250 * time.Millisecond

// RebuildHandler is called with the changed paths once a burst of file
// changes settles. It runs on the watcher goroutine; long rebuilds should
// hand off.
type RebuildHandler func(changed []string)

// Watcher watches a model directory and triggers debounced rebuilds when
// YAML files change.
//
// Thread Safety: safe for concurrent use; the handler is invoked from a
// single goroutine.
type Watcher struct {
	dir      string
	handler  RebuildHandler
	debounce time.Duration

	fsw      *fsnotify.Watcher
	done     chan struct{}
	stopOnce sync.Once
}

// NewWatcher creates a watcher over the given model directory. A
// debounce of 0 uses DefaultDebounceWindow.
func NewWatcher(dir string, debounce time.Duration, handler RebuildHandler) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounceWindow
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		dir:      dir,
		handler:  handler,
		debounce: debounce,
		fsw:      fsw,
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching. The watcher runs until Stop is called or the
// context is canceled.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.addRecursive(w.dir); err != nil {
		return err
	}
	go w.loop(ctx)
	return nil
}

// Stop shuts the watcher down. Idempotent.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.fsw.Close()
	})
}

// addRecursive registers dir and all non-hidden subdirectories.
func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != root {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}

// loop collects relevant events and fires the handler once a burst
// settles.
func (w *Watcher) loop(ctx context.Context) {
	var (
		pending map[string]struct{}
		timer   *time.Timer
		timerC  <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return

		case <-w.done:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !isModelFile(event.Name) {
				// New directories need to be watched as they appear.
				if event.Op.Has(fsnotify.Create) {
					_ = w.addRecursive(event.Name)
				}
				continue
			}
			if pending == nil {
				pending = make(map[string]struct{})
			}
			pending[event.Name] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-timerC:
			changed := make([]string, 0, len(pending))
			for path := range pending {
				changed = append(changed, path)
			}
			pending = nil
			timer = nil
			timerC = nil
			if len(changed) > 0 && w.handler != nil {
				w.handler(changed)
			}

		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			// fsnotify errors are transient here; the next event
			// re-synchronizes state.
		}
	}
}

func isModelFile(path string) bool {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

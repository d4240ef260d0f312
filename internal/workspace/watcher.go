// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package workspace provides the file index and incremental search engine
// that powers @ file mentions in the side panel.
package workspace

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// FILESYSTEM WATCHER
// =============================================================================

// watcher subscribes to create/modify/delete notifications under the
// workspace root. Its only externally visible effect is marking the
// engine's snapshot stale. Invalidation is an idempotent flag set, so a
// burst of events coalesces into a single pending rebuild for free; the
// rebuild itself is deferred to the next query and single-flighted there.
type watcher struct {
	engine *Engine
	root   string
	fsw    *fsnotify.Watcher
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// newWatcher starts watching root and all non-excluded subdirectories.
func newWatcher(e *Engine, root string) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &watcher{
		engine: e,
		root:   root,
		fsw:    fsw,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	if err := w.addRecursive(root); err != nil {
		cancel()
		fsw.Close()
		return nil, err
	}

	go w.processEvents()

	return w, nil
}

// addRecursive adds dir and every non-excluded subdirectory to the watch
// list. Individual add failures are skipped; the TTL covers anything the
// watcher misses.
func (w *watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}

		rel, relErr := filepath.Rel(w.root, p)
		if relErr == nil && rel != "." {
			if w.engine.excluded(d.Name(), filepath.ToSlash(rel)) {
				return filepath.SkipDir
			}
		}

		w.fsw.Add(p) // Non-fatal on error
		return nil
	})
}

// processEvents marks the snapshot stale for every relevant event and
// tracks newly created directories so the subscription stays recursive.
func (w *watcher) processEvents() {
	defer close(w.done)

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}

			if w.relevant(event.Name) {
				// Eager invalidation: a single change marks the whole
				// snapshot stale rather than patching it.
				w.engine.Invalidate()
			}

			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addRecursive(event.Name); err != nil {
						// Retry once; directory creation can race its
						// own readability.
						time.Sleep(50 * time.Millisecond)
						w.addRecursive(event.Name)
					}
				}
			}

		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			// Non-fatal; TTL still bounds staleness.
		}
	}
}

// relevant filters events under excluded paths.
func (w *watcher) relevant(p string) bool {
	rel, err := filepath.Rel(w.root, p)
	if err != nil || rel == "." {
		return true
	}
	rel = filepath.ToSlash(rel)
	return !w.engine.excluded(filepath.Base(p), rel)
}

// Close cancels the subscription and waits for the event goroutine to
// exit, so no watcher outlives engine disposal.
func (w *watcher) Close() error {
	w.cancel()
	err := w.fsw.Close()
	<-w.done
	return err
}

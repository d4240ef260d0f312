// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package workspace provides the file index and incremental search engine
// that powers @ file mentions in the side panel.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gobwas/glob"
	"golang.org/x/sync/singleflight"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrClosed      = errors.New("engine closed")
	ErrBadPattern  = errors.New("invalid exclusion pattern")
	ErrEnumeration = errors.New("workspace enumeration failed")
	ErrStaleRoot   = errors.New("workspace root changed during build")
)

// =============================================================================
// CONFIG
// =============================================================================

// Config holds engine configuration.
type Config struct {
	// Root is the workspace root directory. Empty means no workspace open,
	// which is a valid state: every query returns no results.
	Root string

	// TTL is how long a snapshot stays valid without a change signal.
	TTL time.Duration

	// MaxFiles caps the number of files a snapshot may hold. A build that
	// hits the cap marks the snapshot truncated, which enables the direct
	// listing fallback for directory browsing.
	MaxFiles int

	// MaxResults caps the number of entries a search returns. Truncation
	// is applied after ranking, never before.
	MaxResults int

	// ExcludePatterns are glob patterns matched against both path segment
	// names and full relative paths.
	ExcludePatterns []string

	// Watch enables filesystem change notifications for eager invalidation.
	Watch bool
}

// DefaultConfig returns default configuration for the given root.
func DefaultConfig(root string) *Config {
	return &Config{
		Root:       root,
		TTL:        30 * time.Second,
		MaxFiles:   10000,
		MaxResults: 50,
		ExcludePatterns: []string{
			".git", ".svn", ".hg",
			"node_modules", "__pycache__", ".venv", "venv",
			"vendor", "target", "dist", "build", "out",
			".idea", ".vscode", ".vs",
			"*.min.js", "*.min.css", "*.map",
		},
		Watch: true,
	}
}

// =============================================================================
// ENGINE
// =============================================================================

// Engine owns one workspace's snapshot and answers browse and search
// queries. All methods are safe for concurrent use.
type Engine struct {
	mu     sync.RWMutex
	root   string
	snap   *snapshot
	stale  atomic.Bool
	closed bool

	config  *Config
	exclude []glob.Glob

	// group serializes snapshot construction: concurrent queries during a
	// build attach to the same result instead of starting another walk.
	group singleflight.Group

	watcher *watcher

	// rebuilds counts completed build attempts. Tests use it to pin the
	// invalidation contract.
	rebuilds atomic.Int64
}

// NewEngine creates an engine for config.Root. The root is not required to
// exist; enumeration failures surface as empty query results, never as
// errors. The only constructor error is an uncompilable exclusion pattern.
func NewEngine(config *Config) (*Engine, error) {
	if config == nil {
		config = DefaultConfig("")
	}

	exclude, err := compilePatterns(config.ExcludePatterns)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		root:    config.Root,
		config:  config,
		exclude: exclude,
	}

	if config.Watch && config.Root != "" {
		// Watcher failure is non-fatal: TTL still bounds staleness.
		if w, err := newWatcher(e, config.Root); err == nil {
			e.watcher = w
		}
	}

	return e, nil
}

func compilePatterns(patterns []string) ([]glob.Glob, error) {
	compiled := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadPattern, err)
		}
		compiled = append(compiled, g)
	}
	return compiled, nil
}

// =============================================================================
// PUBLIC QUERY SURFACE
// =============================================================================

// Search answers a query against the workspace. An empty query lists the
// direct children of scope; a non-empty query performs a ranked substring
// search across the scope subtree. The returned slice is always a valid
// (possibly empty) ordered list; failures degrade to fewer results.
func (e *Engine) Search(ctx context.Context, query, scope string) []FileEntry {
	snap := e.currentSnapshot(ctx)
	if snap == nil {
		return nil
	}

	scope = normalizeRel(scope)

	if strings.TrimSpace(query) == "" {
		return e.browse(ctx, snap, scope)
	}
	return searchSnapshot(snap, query, scope, e.config.MaxResults)
}

// Invalidate marks the current snapshot stale. The next query triggers a
// rebuild. Safe to call from any goroutine, including watcher callbacks.
func (e *Engine) Invalidate() {
	e.stale.Store(true)
}

// WorkspaceRoot returns the current workspace root.
func (e *Engine) WorkspaceRoot() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.root
}

// SetWorkspaceRoot re-points the engine at a new root. The snapshot is
// dropped, not rebuilt; the next query rebuilds against the new root. The
// watcher is restarted for the new tree.
func (e *Engine) SetWorkspaceRoot(root string) {
	e.mu.Lock()
	if e.closed || e.root == root {
		e.mu.Unlock()
		return
	}
	e.root = root
	e.snap = nil
	oldWatcher := e.watcher
	e.watcher = nil
	e.mu.Unlock()

	// Detach later queries from any build still walking the old root, so
	// they start a fresh flight against the new one instead of receiving
	// the old root's result.
	e.group.Forget("build")

	e.stale.Store(false)

	if oldWatcher != nil {
		oldWatcher.Close()
	}
	if e.config.Watch && root != "" {
		if w, err := newWatcher(e, root); err == nil {
			e.mu.Lock()
			if e.closed {
				e.mu.Unlock()
				w.Close()
				return
			}
			e.watcher = w
			e.mu.Unlock()
		}
	}
}

// Close releases the watcher and drops the snapshot. The engine answers no
// further queries.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.snap = nil
	w := e.watcher
	e.watcher = nil
	e.mu.Unlock()

	if w != nil {
		return w.Close()
	}
	return nil
}

// =============================================================================
// SNAPSHOT LIFECYCLE
// =============================================================================

// currentSnapshot returns a valid snapshot, rebuilding if the current one
// is absent or stale. Returns nil when a rebuild was needed and failed.
func (e *Engine) currentSnapshot(ctx context.Context) *snapshot {
	e.mu.RLock()
	snap := e.snap
	closed := e.closed
	e.mu.RUnlock()

	if closed {
		return nil
	}

	if snap != nil && !e.stale.Load() && time.Since(snap.builtAt) < e.config.TTL {
		return snap
	}

	// Single-flight: every caller that finds the snapshot invalid during a
	// build observes that same build's result.
	v, err, _ := e.group.Do("build", func() (interface{}, error) {
		return e.rebuild(ctx)
	})
	if err != nil {
		return nil
	}
	return v.(*snapshot)
}

// rebuild enumerates the workspace and atomically installs a new snapshot.
// On enumeration failure the partial result is discarded and the snapshot
// left absent.
func (e *Engine) rebuild(ctx context.Context) (*snapshot, error) {
	e.mu.RLock()
	root := e.root
	e.mu.RUnlock()

	// Consume any pending invalidation before walking: a signal arriving
	// mid-walk must invalidate the snapshot we are about to produce.
	e.stale.Store(false)

	snap, err := buildSnapshot(ctx, root, e.exclude, e.config.MaxFiles)
	e.rebuilds.Add(1)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil, ErrClosed
	}
	if e.root != root {
		// The workspace moved while we walked; this snapshot describes
		// the previous root and must never be installed or served.
		return nil, ErrStaleRoot
	}
	if err != nil {
		e.snap = nil
		return nil, err
	}
	e.snap = snap
	return snap, nil
}

// Rebuilds returns the number of completed build attempts.
func (e *Engine) Rebuilds() int64 {
	return e.rebuilds.Load()
}

// =============================================================================
// STATS
// =============================================================================

// Stats describes the current snapshot.
type Stats struct {
	FileCount int
	Truncated bool
	BuiltAt   time.Time
	Rebuilds  int64
}

// Stats returns statistics for the current snapshot, if any.
func (e *Engine) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()

	s := Stats{Rebuilds: e.rebuilds.Load()}
	if e.snap != nil {
		s.FileCount = len(e.snap.files)
		s.Truncated = e.snap.truncated
		s.BuiltAt = e.snap.builtAt
	}
	return s
}

// excluded reports whether a path segment name or relative path matches an
// exclusion pattern.
func (e *Engine) excluded(name, rel string) bool {
	return matchesAny(e.exclude, name, rel)
}

func matchesAny(patterns []glob.Glob, name, rel string) bool {
	for _, g := range patterns {
		if g.Match(name) || (rel != "" && g.Match(rel)) {
			return true
		}
	}
	return false
}

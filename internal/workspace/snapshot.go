// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package workspace provides the file index and incremental search engine
// that powers @ file mentions in the side panel.
package workspace

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gobwas/glob"
)

// =============================================================================
// FILE ENTRY
// =============================================================================

// Kind distinguishes file entries from folder entries.
type Kind int

const (
	KindFile Kind = iota
	KindFolder
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	if k == KindFolder {
		return "folder"
	}
	return "file"
}

// FileEntry is a single browse or search result.
type FileEntry struct {
	// Name is the leaf name (file or folder).
	Name string

	// FullPath is the absolute path on disk.
	FullPath string

	// RelativePath is relative to the workspace root, always slash
	// separated regardless of platform.
	RelativePath string

	// Kind is file or folder.
	Kind Kind

	// Icon is a display hint keyed off the file extension.
	Icon string
}

// =============================================================================
// SNAPSHOT
// =============================================================================

// snapshot is an immutable point-in-time index of the workspace. Once
// built it is never mutated; a rebuild swaps in a whole new snapshot.
type snapshot struct {
	root string

	// files holds every discovered file in scan order.
	files []FileEntry

	// dirs maps a directory's relative path to the files directly inside
	// it. Every ancestor directory of every file has a key here, even when
	// its own file list is empty, so folders that contain only subfolders
	// still surface in browse mode. The workspace root is the empty key.
	dirs map[string][]FileEntry

	// fileSet allows O(1) suppression of folder candidates that collide
	// with an actual file path.
	fileSet map[string]struct{}

	builtAt   time.Time
	truncated bool
}

// emptySnapshot returns a valid snapshot with no files. Used for the
// "no workspace open" state.
func emptySnapshot(root string) *snapshot {
	return &snapshot{
		root:    root,
		dirs:    map[string][]FileEntry{"": nil},
		fileSet: map[string]struct{}{},
		builtAt: time.Now(),
	}
}

// =============================================================================
// SNAPSHOT BUILDER
// =============================================================================

// buildSnapshot enumerates every file under root, honoring the exclusion
// patterns and the file cap. An empty root yields an empty snapshot; a
// root that cannot be enumerated yields an error and no snapshot.
func buildSnapshot(ctx context.Context, root string, exclude []glob.Glob, maxFiles int) (*snapshot, error) {
	if root == "" {
		return emptySnapshot(root), nil
	}

	snap := emptySnapshot(root)

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return err
			}
			return nil // Unreadable subtree, skip
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if p == root {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if matchesAny(exclude, d.Name(), rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		if len(snap.files) >= maxFiles {
			snap.truncated = true
			return filepath.SkipAll
		}

		snap.addFile(FileEntry{
			Name:         d.Name(),
			FullPath:     p,
			RelativePath: rel,
			Kind:         KindFile,
			Icon:         IconForFile(d.Name()),
		})
		return nil
	})
	if err != nil {
		// Discard the partial result.
		return nil, fmt.Errorf("%w: %v", ErrEnumeration, err)
	}

	snap.builtAt = time.Now()
	return snap, nil
}

// addFile appends the entry to the flat list, records it under its parent
// directory, and back-fills an entry for every ancestor directory that
// does not have one yet.
func (s *snapshot) addFile(entry FileEntry) {
	s.files = append(s.files, entry)
	s.fileSet[entry.RelativePath] = struct{}{}

	dir := parentDir(entry.RelativePath)
	s.dirs[dir] = append(s.dirs[dir], entry)

	for dir != "" {
		dir = parentDir(dir)
		if _, ok := s.dirs[dir]; !ok {
			s.dirs[dir] = nil
		}
	}
}

// isFile reports whether rel is an indexed file path.
func (s *snapshot) isFile(rel string) bool {
	_, ok := s.fileSet[rel]
	return ok
}

// hasDir reports whether rel is a known directory.
func (s *snapshot) hasDir(rel string) bool {
	_, ok := s.dirs[rel]
	return ok
}

// =============================================================================
// PATH HELPERS
// =============================================================================

// parentDir returns the parent of a slash-relative path, with the
// workspace root represented as the empty string.
func parentDir(rel string) string {
	dir := path.Dir(rel)
	if dir == "." || dir == "/" {
		return ""
	}
	return dir
}

// normalizeRel canonicalizes a caller-supplied directory scope: slashes
// only, no leading or trailing separator, root as the empty string.
func normalizeRel(rel string) string {
	rel = filepath.ToSlash(strings.TrimSpace(rel))
	rel = strings.Trim(rel, "/")
	if rel == "." {
		return ""
	}
	return rel
}

// inScope reports whether rel sits strictly inside the scope subtree.
func inScope(rel, scope string) bool {
	if scope == "" {
		return rel != ""
	}
	return strings.HasPrefix(rel, scope+"/")
}

// joinRel joins a scope and a child name in relative-path convention.
func joinRel(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}

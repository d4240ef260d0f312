// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package workspace provides the file index and incremental search engine
// that powers @ file mentions in the side panel.
package workspace

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// =============================================================================
// DIRECTORY BROWSE
// =============================================================================

// browse returns the direct children of dir: the files recorded under the
// directory plus the distinct immediate subdirectory names derived from
// the flat file list. Folders sort before files; within each group names
// sort case-insensitively.
//
// When the snapshot cannot be trusted for this directory (the build hit
// the file cap, or the directory is unknown to the index), the engine
// falls back to a direct uncached listing of that one directory so that
// truncation never silently hides entries.
func (e *Engine) browse(ctx context.Context, snap *snapshot, dir string) []FileEntry {
	files, known := snap.dirs[dir]
	subdirs := snap.subdirsOf(dir)

	if snap.truncated || (!known && len(subdirs) == 0) {
		if listed, ok := e.listDirect(ctx, snap.root, dir); ok {
			return listed
		}
		// Fall through to whatever the snapshot knows.
	}

	entries := make([]FileEntry, 0, len(files)+len(subdirs))
	for _, name := range subdirs {
		entries = append(entries, snap.folderEntry(dir, name))
	}
	entries = append(entries, files...)

	sortBrowse(entries)
	return entries
}

// subdirsOf derives the distinct immediate subdirectory names of dir from
// the directory index. A candidate is suppressed when a file occupies the
// same relative path, preserving file/folder exclusivity.
func (s *snapshot) subdirsOf(dir string) []string {
	seen := make(map[string]struct{})
	for d := range s.dirs {
		if !inScope(d, dir) {
			continue
		}
		rest := d
		if dir != "" {
			rest = d[len(dir)+1:]
		}
		name := rest
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			name = rest[:i]
		}
		if name == "" {
			continue
		}
		if s.isFile(joinRel(dir, name)) {
			continue
		}
		seen[name] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// folderEntry synthesizes a folder entry for a subdirectory of dir.
func (s *snapshot) folderEntry(dir, name string) FileEntry {
	rel := joinRel(dir, name)
	return FileEntry{
		Name:         name,
		FullPath:     filepath.Join(s.root, filepath.FromSlash(rel)),
		RelativePath: rel,
		Kind:         KindFolder,
		Icon:         FolderIcon,
	}
}

// listDirect reads one directory straight from the filesystem, bypassing
// the snapshot. Used when the index may be incomplete for that directory.
func (e *Engine) listDirect(ctx context.Context, root, dir string) ([]FileEntry, bool) {
	if root == "" {
		return nil, false
	}

	select {
	case <-ctx.Done():
		return nil, false
	default:
	}

	full := filepath.Join(root, filepath.FromSlash(dir))
	dirents, err := os.ReadDir(full)
	if err != nil {
		return nil, false
	}

	entries := make([]FileEntry, 0, len(dirents))
	for _, d := range dirents {
		name := d.Name()
		rel := joinRel(dir, name)
		if e.excluded(name, rel) {
			continue
		}

		entry := FileEntry{
			Name:         name,
			FullPath:     filepath.Join(full, name),
			RelativePath: rel,
		}
		if d.IsDir() {
			entry.Kind = KindFolder
			entry.Icon = FolderIcon
		} else {
			entry.Kind = KindFile
			entry.Icon = IconForFile(name)
		}
		entries = append(entries, entry)
	}

	sortBrowse(entries)
	return entries, true
}

// sortBrowse orders entries folders-first, then case-insensitively by
// name, with the raw name and relative path as deterministic tie breaks.
func sortBrowse(entries []FileEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Kind != b.Kind {
			return a.Kind == KindFolder
		}
		al, bl := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if al != bl {
			return al < bl
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.RelativePath < b.RelativePath
	})
}

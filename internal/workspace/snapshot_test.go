// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package workspace

import (
	"context"
	"strings"
	"testing"
)

func buildTestSnapshot(t *testing.T, root string, mutate func(*Config)) *snapshot {
	t.Helper()
	cfg := DefaultConfig(root)
	if mutate != nil {
		mutate(cfg)
	}
	exclude, err := compilePatterns(cfg.ExcludePatterns)
	if err != nil {
		t.Fatalf("compilePatterns: %v", err)
	}
	snap, err := buildSnapshot(context.Background(), root, exclude, cfg.MaxFiles)
	if err != nil {
		t.Fatalf("buildSnapshot: %v", err)
	}
	return snap
}

// TestAncestorDirectoryInvariant verifies every ancestor of every file's
// relative path has a directory-index entry, including directories that
// hold only subfolders.
func TestAncestorDirectoryInvariant(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a/b/c/deep.go", "a/top.go", "solo/only/child.md")

	snap := buildTestSnapshot(t, root, nil)

	for _, f := range snap.files {
		dir := parentDir(f.RelativePath)
		for {
			if !snap.hasDir(dir) {
				t.Errorf("missing directory index entry for %q (ancestor of %q)", dir, f.RelativePath)
			}
			if dir == "" {
				break
			}
			dir = parentDir(dir)
		}
	}

	// "a/b" holds no direct files but must still browse.
	if !snap.hasDir("a/b") {
		t.Error("intermediate directory a/b missing from index")
	}
	if got := snap.subdirsOf("a/b"); len(got) != 1 || got[0] != "c" {
		t.Errorf("subdirsOf(a/b) = %v, want [c]", got)
	}
}

// TestFileFolderExclusivity verifies no relative path is both a file
// entry and a synthesized folder candidate.
func TestFileFolderExclusivity(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "src/main.go", "src/util/helper.go", "docs/guide.md")

	snap := buildTestSnapshot(t, root, nil)

	for d := range snap.dirs {
		if d == "" {
			continue
		}
		if snap.isFile(d) {
			t.Errorf("path %q is both a file and a directory", d)
		}
		for _, name := range snap.subdirsOf(d) {
			if snap.isFile(joinRel(d, name)) {
				t.Errorf("folder candidate %q collides with a file", joinRel(d, name))
			}
		}
	}
}

// TestExclusionPatterns verifies noise directories and minified assets
// never enter the snapshot.
func TestExclusionPatterns(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"src/app.ts",
		"node_modules/pkg/index.js",
		".git/HEAD",
		"dist/bundle.js",
		"assets/app.min.js",
	)

	snap := buildTestSnapshot(t, root, nil)

	for _, f := range snap.files {
		if strings.HasPrefix(f.RelativePath, "node_modules/") ||
			strings.HasPrefix(f.RelativePath, ".git/") ||
			strings.HasPrefix(f.RelativePath, "dist/") ||
			strings.HasSuffix(f.RelativePath, ".min.js") {
			t.Errorf("excluded path indexed: %q", f.RelativePath)
		}
	}
	if len(snap.files) != 1 || snap.files[0].RelativePath != "src/app.ts" {
		t.Errorf("snapshot files = %v, want [src/app.ts]", relPaths(snap.files))
	}
}

// TestExcludedOnlyTree covers a workspace whose only content is excluded:
// browsing returns an empty list, not an error.
func TestExcludedOnlyTree(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "node_modules/x.js")

	eng := newTestEngine(t, root, nil)
	got := eng.Search(context.Background(), "", "")
	if len(got) != 0 {
		t.Errorf("browse = %v, want empty", relPaths(got))
	}
}

// TestFileCap verifies the build stops at the cap and marks the snapshot
// truncated.
func TestFileCap(t *testing.T) {
	root := t.TempDir()
	var files []string
	for _, a := range "abcde" {
		for _, b := range "vwxyz" {
			files = append(files, "d/"+string(a)+string(b)+".txt")
		}
	}
	writeFiles(t, root, files...)

	snap := buildTestSnapshot(t, root, func(c *Config) { c.MaxFiles = 10 })

	if !snap.truncated {
		t.Error("snapshot not marked truncated at the file cap")
	}
	if len(snap.files) != 10 {
		t.Errorf("file count = %d, want 10", len(snap.files))
	}
}

// TestRelativePathSeparator verifies relative paths always use forward
// slashes.
func TestRelativePathSeparator(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a/b/c.txt")

	snap := buildTestSnapshot(t, root, nil)

	for _, f := range snap.files {
		if strings.Contains(f.RelativePath, "\\") {
			t.Errorf("relative path %q contains a backslash", f.RelativePath)
		}
	}
	for d := range snap.dirs {
		if strings.Contains(d, "\\") {
			t.Errorf("directory key %q contains a backslash", d)
		}
	}
}

// TestIconAssignment spot-checks the pure extension lookup.
func TestIconAssignment(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"main.go", "go"},
		{"app.TS", "typescript"},
		{"notes.md", "markdown"},
		{"photo.JPEG", "image"},
		{"Makefile", "file"},
		{"weird.xyz", "file"},
	}
	for _, tt := range tests {
		if got := IconForFile(tt.name); got != tt.want {
			t.Errorf("IconForFile(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

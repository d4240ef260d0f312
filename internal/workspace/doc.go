// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package workspace provides the file index and incremental search engine
// that powers @ file mentions in the side panel.
//
// The engine keeps a point-in-time snapshot of the workspace file tree
// (paths only, no content). Directory structure is derived on demand from
// the flat file list rather than maintained as a second mutable tree.
// Snapshots are immutable: a rebuild produces a new snapshot that replaces
// the old one atomically.
//
// # Key Types
//
//   - Engine: owns the snapshot, the freshness policy, and the watcher
//   - FileEntry: a single file or folder result
//   - Config: root, TTL, exclusion patterns, file cap
//
// # Freshness
//
// A snapshot is rebuilt lazily by the next query once its TTL elapses or a
// filesystem change is observed. A change notification invalidates the
// whole snapshot rather than patching it. At most one rebuild runs at a
// time; queries arriving during a rebuild attach to its result.
//
// # Usage
//
//	eng, err := workspace.NewEngine(workspace.DefaultConfig(root))
//	defer eng.Close()
//
//	entries := eng.Search(ctx, "", "")        // browse workspace root
//	entries = eng.Search(ctx, "handler", "src") // ranked substring search
package workspace

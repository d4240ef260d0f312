// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWatcherInvalidatesOnCreate verifies a filesystem change marks the
// snapshot stale so the next query rebuilds.
func TestWatcherInvalidatesOnCreate(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a.txt")

	cfg := DefaultConfig(root)
	cfg.TTL = time.Hour
	eng, err := NewEngine(cfg)
	require.NoError(t, err)
	defer eng.Close()

	ctx := context.Background()
	eng.Search(ctx, "", "")
	require.EqualValues(t, 1, eng.Rebuilds())

	writeFiles(t, root, "b.txt")

	// Delivery is asynchronous; poll until the change is observed.
	assert.Eventually(t, func() bool {
		return len(eng.Search(ctx, "", "")) == 2
	}, 3*time.Second, 20*time.Millisecond, "watcher never invalidated the snapshot")
}

// TestWatcherNewDirectory verifies directories created after startup get
// watched too.
func TestWatcherNewDirectory(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a.txt")

	cfg := DefaultConfig(root)
	cfg.TTL = time.Hour
	eng, err := NewEngine(cfg)
	require.NoError(t, err)
	defer eng.Close()

	ctx := context.Background()
	eng.Search(ctx, "", "")

	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755))

	assert.Eventually(t, func() bool {
		// The directory creation alone must have invalidated; once the
		// rebuild has run, a file added inside the new directory proves
		// the subscription followed it.
		writeFiles(t, root, "sub/inner.txt")
		results := eng.Search(ctx, "", "sub")
		return len(results) == 1 && results[0].RelativePath == "sub/inner.txt"
	}, 3*time.Second, 50*time.Millisecond)
}

// TestWatcherClosedOnDispose verifies disposal stops the watcher: changes
// after Close must not resurrect a snapshot.
func TestWatcherClosedOnDispose(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a.txt")

	cfg := DefaultConfig(root)
	eng, err := NewEngine(cfg)
	require.NoError(t, err)

	eng.Search(context.Background(), "", "")
	require.NoError(t, eng.Close())

	// Events after close must be ignored.
	writeFiles(t, root, "b.txt")
	time.Sleep(50 * time.Millisecond)

	assert.Nil(t, eng.Search(context.Background(), "", ""))
}

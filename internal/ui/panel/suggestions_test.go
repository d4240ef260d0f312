// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package panel

import (
	"testing"

	"github.com/jeranaias/sidepanel/internal/workspace"
)

// TestCommandQuery verifies slash-command popup triggering.
func TestCommandQuery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		query string
		ok    bool
	}{
		{"bare slash", "/", "", true},
		{"partial name", "/he", "he", true},
		{"full name", "/help", "help", true},
		{"space settles the command", "/terminal %1", "", false},
		{"plain text", "fix the bug", "", false},
		{"slash mid-input", "see /etc", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, ok := commandQuery(tt.input)
			if ok != tt.ok || query != tt.query {
				t.Errorf("commandQuery(%q) = (%q, %v), want (%q, %v)",
					tt.input, query, ok, tt.query, tt.ok)
			}
		})
	}
}

// TestMentionToken verifies @-token extraction at the typing position.
func TestMentionToken(t *testing.T) {
	tests := []struct {
		name  string
		input string
		token string
		at    int
		ok    bool
	}{
		{"bare at", "@", "", 0, true},
		{"simple token", "@read", "read", 0, true},
		{"after text", "fix @src/a", "src/a", 4, true},
		{"trailing slash", "@src/", "src/", 0, true},
		{"no mention", "fix the bug", "", 0, false},
		{"settled mention", "@a.go done", "", 0, false},
		{"email-like at", "user@host", "", 0, false},
		{"second mention", "@a.go and @b", "b", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, at, ok := mentionToken(tt.input, len(tt.input))
			if ok != tt.ok {
				t.Fatalf("mentionToken(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if !ok {
				return
			}
			if token != tt.token || at != tt.at {
				t.Errorf("mentionToken(%q) = (%q, %d), want (%q, %d)",
					tt.input, token, at, tt.token, tt.at)
			}
		})
	}
}

// TestSplitMention verifies scope/query splitting on the last slash.
func TestSplitMention(t *testing.T) {
	tests := []struct {
		token string
		scope string
		query string
	}{
		{"", "", ""},
		{"read", "", "read"},
		{"src/", "src", ""},
		{"src/comp", "src", "comp"},
		{"src/sub/b", "src/sub", "b"},
	}

	for _, tt := range tests {
		scope, query := splitMention(tt.token)
		if scope != tt.scope || query != tt.query {
			t.Errorf("splitMention(%q) = (%q, %q), want (%q, %q)",
				tt.token, scope, query, tt.scope, tt.query)
		}
	}
}

// TestInsertMention verifies token replacement for files and folders.
func TestInsertMention(t *testing.T) {
	file := workspace.FileEntry{RelativePath: "src/app.ts", Kind: workspace.KindFile}
	folder := workspace.FileEntry{RelativePath: "src/components", Kind: workspace.KindFolder}

	if got := insertMention("fix @src/a", 4, file); got != "fix @src/app.ts " {
		t.Errorf("file insert = %q", got)
	}
	if got := insertMention("fix @src/c", 4, folder); got != "fix @src/components/" {
		t.Errorf("folder insert = %q", got)
	}
}

// TestPopupNavigation verifies wrapping selection movement.
func TestPopupNavigation(t *testing.T) {
	p := popupState{mode: popupFile, files: make([]workspace.FileEntry, 3)}

	p.next()
	p.next()
	if p.selected != 2 {
		t.Errorf("selected = %d, want 2", p.selected)
	}
	p.next()
	if p.selected != 0 {
		t.Errorf("selected after wrap = %d, want 0", p.selected)
	}
	p.prev()
	if p.selected != 2 {
		t.Errorf("selected after prev wrap = %d, want 2", p.selected)
	}
}

// TestPopupWindow verifies the scrolling window keeps the selection
// visible.
func TestPopupWindow(t *testing.T) {
	tests := []struct {
		name     string
		selected int
		length   int
		start    int
		end      int
	}{
		{"fits entirely", 2, 5, 0, 5},
		{"selection at top", 0, 20, 0, 8},
		{"selection centered", 10, 20, 6, 14},
		{"selection at bottom", 19, 20, 12, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := popupWindow(tt.selected, tt.length, 8)
			if start != tt.start || end != tt.end {
				t.Errorf("popupWindow = (%d, %d), want (%d, %d)",
					start, end, tt.start, tt.end)
			}
			if tt.selected < start || tt.selected >= end {
				t.Errorf("selection %d outside window [%d, %d)", tt.selected, start, end)
			}
		})
	}
}

// TestTruncate verifies display-width truncation.
func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate short = %q", got)
	}
	if got := truncate("averylongfilename.txt", 10); got != "averylo..." {
		t.Errorf("truncate long = %q", got)
	}
	if got := truncate("anything", 0); got != "" {
		t.Errorf("truncate zero width = %q", got)
	}
}

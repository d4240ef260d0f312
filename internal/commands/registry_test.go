// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"testing"
)

func names(cmds []*Command) []string {
	out := make([]string, len(cmds))
	for i, c := range cmds {
		out[i] = c.Name
	}
	return out
}

// TestRegistryGet verifies lookup by name and alias.
func TestRegistryGet(t *testing.T) {
	r := NewRegistry()

	if cmd := r.Get("/help"); cmd == nil || cmd.Name != "/help" {
		t.Error("lookup by name failed")
	}
	if cmd := r.Get("/h"); cmd == nil || cmd.Name != "/help" {
		t.Error("lookup by alias failed")
	}
	if cmd := r.Get("/nope"); cmd != nil {
		t.Error("unknown command resolved")
	}
}

// TestFilter covers the substring capability the panel consumes.
func TestFilter(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name      string
		query     string
		wantFirst string
		wantMin   int
	}{
		{"empty returns all", "", "/help", 6},
		{"prefix match", "he", "/help", 1},
		{"prefix with slash", "/he", "/help", 1},
		{"mid-name substring", "fresh", "/refresh", 1},
		{"case insensitive", "HELP", "/help", 1},
		{"description substring", "index", "/refresh", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Filter(tt.query)
			if len(got) < tt.wantMin {
				t.Fatalf("Filter(%q) = %v, want at least %d", tt.query, names(got), tt.wantMin)
			}
			if got[0].Name != tt.wantFirst {
				t.Errorf("Filter(%q)[0] = %q, want %q", tt.query, got[0].Name, tt.wantFirst)
			}
		})
	}
}

// TestFilterNameBeforeDescription verifies ranking: a name match always
// precedes a description-only match.
func TestFilterNameBeforeDescription(t *testing.T) {
	r := NewRegistry()
	r.Register(&Command{Name: "/zoom", Description: "clear view"})

	got := r.Filter("clear")
	if len(got) < 2 {
		t.Fatalf("Filter(clear) = %v, want name and description matches", names(got))
	}
	if got[0].Name != "/clear" {
		t.Errorf("first = %q, want name match /clear", got[0].Name)
	}
	if got[len(got)-1].Name != "/zoom" {
		t.Errorf("last = %q, want description match /zoom", got[len(got)-1].Name)
	}
}

// TestFilterHidesHidden verifies hidden commands never surface.
func TestFilterHidesHidden(t *testing.T) {
	r := NewRegistry()
	r.Register(&Command{Name: "/debug", Description: "internal", Hidden: true})

	for _, cmd := range r.Filter("") {
		if cmd.Name == "/debug" {
			t.Error("hidden command surfaced in filter results")
		}
	}
	for _, cmd := range r.Filter("debug") {
		if cmd.Name == "/debug" {
			t.Error("hidden command surfaced in query results")
		}
	}
}

// TestFilterIdempotent verifies repeated calls return identical order.
func TestFilterIdempotent(t *testing.T) {
	r := NewRegistry()

	first := names(r.Filter("e"))
	second := names(r.Filter("e"))
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("order differs at %d: %q vs %q", i, first[i], second[i])
		}
	}
}

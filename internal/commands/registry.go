// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the side panel.
package commands

import (
	"sort"
	"strings"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Command represents a slash command available in the input box.
type Command struct {
	// Name is the primary command name (e.g., "/help")
	Name string

	// Aliases are alternative names (e.g., "/h", "/?")
	Aliases []string

	// Description is shown in the suggestion popup
	Description string

	// Usage shows argument syntax (e.g., "/terminal <pane>")
	Usage string

	// Hidden commands don't appear in suggestions
	Hidden bool
}

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry holds all registered commands.
type Registry struct {
	commands map[string]*Command
	aliases  map[string]*Command
	order    []string
}

// NewRegistry creates a registry with the built-in panel commands.
func NewRegistry() *Registry {
	r := &Registry{
		commands: make(map[string]*Command),
		aliases:  make(map[string]*Command),
	}
	r.registerBuiltins()
	return r
}

// Register adds a command to the registry.
func (r *Registry) Register(cmd *Command) {
	if _, exists := r.commands[cmd.Name]; !exists {
		r.order = append(r.order, cmd.Name)
	}
	r.commands[cmd.Name] = cmd
	for _, alias := range cmd.Aliases {
		r.aliases[alias] = cmd
	}
}

// Get retrieves a command by name or alias.
func (r *Registry) Get(name string) *Command {
	if cmd, ok := r.commands[name]; ok {
		return cmd
	}
	if cmd, ok := r.aliases[name]; ok {
		return cmd
	}
	return nil
}

// All returns every visible command in registration order.
func (r *Registry) All() []*Command {
	out := make([]*Command, 0, len(r.order))
	for _, name := range r.order {
		cmd := r.commands[name]
		if cmd.Hidden {
			continue
		}
		out = append(out, cmd)
	}
	return out
}

// registerBuiltins installs the built-in panel commands.
func (r *Registry) registerBuiltins() {
	r.Register(&Command{
		Name:        "/help",
		Aliases:     []string{"/h", "/?"},
		Description: "Show available commands",
	})
	r.Register(&Command{
		Name:        "/clear",
		Description: "Clear message history",
	})
	r.Register(&Command{
		Name:        "/history",
		Description: "Show recent messages",
	})
	r.Register(&Command{
		Name:        "/refresh",
		Description: "Rebuild the workspace file index",
	})
	r.Register(&Command{
		Name:        "/terminal",
		Usage:       "/terminal <pane>",
		Description: "Choose the terminal process to send to",
	})
	r.Register(&Command{
		Name:        "/quit",
		Aliases:     []string{"/q", "/exit"},
		Description: "Close the side panel",
	})
}

// =============================================================================
// FILTERING
// =============================================================================

// Filter returns visible commands whose name or description contains the
// query as a case-insensitive substring. Name matches rank before
// description-only matches; within each group registration order is kept.
// An empty query returns every visible command.
func (r *Registry) Filter(query string) []*Command {
	query = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(query, "/")))

	all := r.All()
	if query == "" {
		return all
	}

	var byName, byDesc []*Command
	for _, cmd := range all {
		name := strings.ToLower(strings.TrimPrefix(cmd.Name, "/"))
		switch {
		case strings.Contains(name, query):
			byName = append(byName, cmd)
		case strings.Contains(strings.ToLower(cmd.Description), query):
			byDesc = append(byDesc, cmd)
		default:
			if aliasMatches(cmd, query) {
				byName = append(byName, cmd)
			}
		}
	}

	// Prefix matches beat mid-name matches.
	sort.SliceStable(byName, func(i, j int) bool {
		a := strings.HasPrefix(strings.ToLower(strings.TrimPrefix(byName[i].Name, "/")), query)
		b := strings.HasPrefix(strings.ToLower(strings.TrimPrefix(byName[j].Name, "/")), query)
		return a && !b
	})

	return append(byName, byDesc...)
}

func aliasMatches(cmd *Command, query string) bool {
	for _, alias := range cmd.Aliases {
		if strings.Contains(strings.ToLower(strings.TrimPrefix(alias, "/")), query) {
			return true
		}
	}
	return false
}

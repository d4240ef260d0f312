// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package panel

import (
	"strings"

	"github.com/jeranaias/sidepanel/internal/commands"
	"github.com/jeranaias/sidepanel/internal/terminal"
	"github.com/jeranaias/sidepanel/internal/workspace"
)

// =============================================================================
// POPUP STATE
// =============================================================================

// popupMode identifies what the suggestion popup is showing.
type popupMode int

const (
	popupNone popupMode = iota
	popupCommand
	popupFile
	popupTerminal
)

// maxPopupRows is how many suggestion rows are visible at once.
const maxPopupRows = 8

// popupState holds the active suggestion popup. Exactly one of the
// candidate slices is populated, matching mode.
type popupState struct {
	mode     popupMode
	commands []*commands.Command
	files    []workspace.FileEntry
	procs    []terminal.Process
	selected int

	// at is the byte offset of the trigger character ("/" or "@") in
	// the input, so the selection can replace the typed token.
	at int
}

// length returns the number of candidates in the active popup.
func (p *popupState) length() int {
	switch p.mode {
	case popupCommand:
		return len(p.commands)
	case popupFile:
		return len(p.files)
	case popupTerminal:
		return len(p.procs)
	}
	return 0
}

// next moves the selection down, wrapping.
func (p *popupState) next() {
	if n := p.length(); n > 0 {
		p.selected = (p.selected + 1) % n
	}
}

// prev moves the selection up, wrapping.
func (p *popupState) prev() {
	if n := p.length(); n > 0 {
		p.selected = (p.selected - 1 + n) % n
	}
}

// clear hides the popup.
func (p *popupState) clear() {
	*p = popupState{}
}

// =============================================================================
// TOKEN EXTRACTION
// =============================================================================

// commandQuery reports whether the input is an in-progress slash command
// and returns the text after the slash. Once the user types a space the
// command name is settled and the popup closes.
func commandQuery(input string) (string, bool) {
	if !strings.HasPrefix(input, "/") {
		return "", false
	}
	if strings.ContainsAny(input, " \t\n") {
		return "", false
	}
	return input[1:], true
}

// mentionToken returns the active @-token ending at cursor and the byte
// offset of the "@". A mention starts at an "@" that opens a word; an
// "@" inside an email-like word does not trigger.
func mentionToken(input string, cursor int) (token string, at int, ok bool) {
	if cursor > len(input) {
		cursor = len(input)
	}
	for i := cursor - 1; i >= 0; i-- {
		c := input[i]
		if c == ' ' || c == '\t' || c == '\n' {
			return "", 0, false
		}
		if c == '@' {
			if i > 0 {
				prev := input[i-1]
				if prev != ' ' && prev != '\t' && prev != '\n' {
					return "", 0, false
				}
			}
			return input[i+1 : cursor], i, true
		}
	}
	return "", 0, false
}

// splitMention splits a mention token into a browse scope and the query
// typed after the last slash: "src/comp" is query "comp" inside "src",
// "src/" is a browse of "src", and "read" searches the whole workspace.
func splitMention(token string) (scope, query string) {
	if i := strings.LastIndex(token, "/"); i >= 0 {
		return token[:i], token[i+1:]
	}
	return "", token
}

// =============================================================================
// SELECTION INSERTION
// =============================================================================

// insertCommand replaces the typed slash prefix with the full command
// name and a trailing space for arguments.
func insertCommand(input string, cmd *commands.Command) string {
	return cmd.Name + " "
}

// insertMention replaces the token at "at" with the selected entry's
// relative path. Folders get a trailing slash so the popup reopens
// scoped to them; files get a space to settle the mention.
func insertMention(input string, at int, entry workspace.FileEntry) string {
	suffix := " "
	if entry.Kind == workspace.KindFolder {
		suffix = "/"
	}
	return input[:at] + "@" + entry.RelativePath + suffix
}

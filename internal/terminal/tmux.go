// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package terminal

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrNoMultiplexer = errors.New("tmux not available")
	ErrNoTarget      = errors.New("no terminal target selected")
	ErrSendFailed    = errors.New("send to terminal failed")
)

// commandTimeout bounds every tmux invocation.
const commandTimeout = 5 * time.Second

// =============================================================================
// PROCESS
// =============================================================================

// Process describes one visible terminal pane.
type Process struct {
	// ID is the tmux pane id (e.g., "%3"), usable as a send target.
	ID string

	// Title is the pane title.
	Title string

	// Command is the running command (e.g., "claude", "zsh").
	Command string

	// Active marks the currently focused pane.
	Active bool
}

// Label renders a short human-readable description for pickers.
func (p Process) Label() string {
	label := p.ID + " " + p.Command
	if p.Title != "" && p.Title != p.Command {
		label += " (" + p.Title + ")"
	}
	if p.Active {
		label += " *"
	}
	return label
}

// =============================================================================
// BRIDGE
// =============================================================================

// Bridge sends text to tmux panes. The zero value is not usable; call New.
type Bridge struct {
	// run is swappable for tests.
	run func(ctx context.Context, args ...string) (string, error)
}

// New creates a tmux bridge.
func New() *Bridge {
	return &Bridge{run: runTmux}
}

// runTmux executes one tmux command with a bounded context.
func runTmux(ctx context.Context, args ...string) (string, error) {
	if _, err := exec.LookPath("tmux"); err != nil {
		return "", ErrNoMultiplexer
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, commandTimeout)
		defer cancel()
	}

	out, err := exec.CommandContext(ctx, "tmux", args...).Output()
	if err != nil {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}
		return "", err
	}
	return string(out), nil
}

// List returns the visible tmux panes. When tmux is absent or no server
// is running, the list is empty and the error is nil: the panel treats
// "nothing to send to" as a state, not a failure.
func (b *Bridge) List(ctx context.Context) ([]Process, error) {
	out, err := b.run(ctx, "list-panes", "-a", "-F",
		"#{pane_id}\t#{pane_title}\t#{pane_current_command}\t#{?pane_active,1,0}")
	if err != nil {
		if errors.Is(err, ErrNoMultiplexer) {
			return nil, nil
		}
		// A running tmux binary with no server exits non-zero; same story.
		return nil, nil
	}

	var procs []Process
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, "\t", 4)
		if len(fields) < 4 {
			continue
		}
		procs = append(procs, Process{
			ID:      fields[0],
			Title:   fields[1],
			Command: fields[2],
			Active:  fields[3] == "1",
		})
	}
	return procs, nil
}

// Send delivers text to the target pane as literal keys followed by
// Enter, so the assistant receives it as one submitted line.
func (b *Bridge) Send(ctx context.Context, target, text string) error {
	if target == "" {
		return ErrNoTarget
	}

	// Literal mode first so slashes and semicolons survive untouched.
	if _, err := b.run(ctx, "send-keys", "-t", target, "-l", text); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	if _, err := b.run(ctx, "send-keys", "-t", target, "Enter"); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	return nil
}

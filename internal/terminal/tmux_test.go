// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package terminal

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakeRunner records tmux invocations and plays back canned output.
type fakeRunner struct {
	calls  [][]string
	output string
	err    error
}

func (f *fakeRunner) run(ctx context.Context, args ...string) (string, error) {
	f.calls = append(f.calls, args)
	return f.output, f.err
}

// TestListParsesPanes verifies pane parsing from tmux list-panes output.
func TestListParsesPanes(t *testing.T) {
	fake := &fakeRunner{output: "%0\tvim\tvim\t0\n%1\t\tclaude\t1\n"}
	b := &Bridge{run: fake.run}

	procs, err := b.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(procs) != 2 {
		t.Fatalf("len = %d, want 2", len(procs))
	}

	if procs[0].ID != "%0" || procs[0].Command != "vim" || procs[0].Active {
		t.Errorf("pane 0 = %+v", procs[0])
	}
	if procs[1].ID != "%1" || procs[1].Command != "claude" || !procs[1].Active {
		t.Errorf("pane 1 = %+v", procs[1])
	}
}

// TestListDegradesWithoutTmux verifies tmux absence yields an empty list,
// not an error.
func TestListDegradesWithoutTmux(t *testing.T) {
	fake := &fakeRunner{err: ErrNoMultiplexer}
	b := &Bridge{run: fake.run}

	procs, err := b.List(context.Background())
	if err != nil {
		t.Errorf("List without tmux = %v, want nil error", err)
	}
	if procs != nil {
		t.Errorf("procs = %v, want nil", procs)
	}
}

// TestSendLiteralThenEnter verifies text goes out in literal mode first
// and Enter is a separate key event.
func TestSendLiteralThenEnter(t *testing.T) {
	fake := &fakeRunner{}
	b := &Bridge{run: fake.run}

	if err := b.Send(context.Background(), "%1", "fix the /parser @src/main.go"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if len(fake.calls) != 2 {
		t.Fatalf("calls = %d, want 2", len(fake.calls))
	}

	first := strings.Join(fake.calls[0], " ")
	if first != "send-keys -t %1 -l fix the /parser @src/main.go" {
		t.Errorf("first call = %q", first)
	}
	second := strings.Join(fake.calls[1], " ")
	if second != "send-keys -t %1 Enter" {
		t.Errorf("second call = %q", second)
	}
}

// TestSendRequiresTarget verifies an unset target errors before any tmux
// call happens.
func TestSendRequiresTarget(t *testing.T) {
	fake := &fakeRunner{}
	b := &Bridge{run: fake.run}

	err := b.Send(context.Background(), "", "text")
	if !errors.Is(err, ErrNoTarget) {
		t.Errorf("err = %v, want ErrNoTarget", err)
	}
	if len(fake.calls) != 0 {
		t.Errorf("tmux invoked %d times despite missing target", len(fake.calls))
	}
}

// TestSendWrapsFailures verifies send errors carry the sentinel.
func TestSendWrapsFailures(t *testing.T) {
	fake := &fakeRunner{err: errors.New("no such pane")}
	b := &Bridge{run: fake.run}

	err := b.Send(context.Background(), "%9", "text")
	if !errors.Is(err, ErrSendFailed) {
		t.Errorf("err = %v, want ErrSendFailed", err)
	}
}

// TestProcessLabel spot-checks the picker label format.
func TestProcessLabel(t *testing.T) {
	p := Process{ID: "%2", Title: "repl", Command: "python", Active: true}
	want := "%2 python (repl) *"
	if got := p.Label(); got != want {
		t.Errorf("Label = %q, want %q", got, want)
	}
}

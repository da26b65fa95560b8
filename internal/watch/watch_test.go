// CLASSIFICATION: COMMUNITY
// Filename: watch_test.go v0.1
// Author: Lukas Bower
// Date Modified: 2026-10-16
package watch

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func quiet() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func waitFor(t *testing.T, events <-chan Event, path string) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev := <-events:
			if ev.Path == path {
				return
			}
		case <-deadline:
			t.Fatalf("no event for %s", path)
		}
	}
}

func TestSkipsDotDirectories(t *testing.T) {
	root := t.TempDir()
	for _, d := range []string{"grammar", "grammar/rules", ".git", ".git/objects"} {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	w, err := New(root, quiet())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer w.Close()
	if got := w.Watched(); got != 3 {
		t.Fatalf("expected 3 watched dirs, got %d", got)
	}
}

func TestMissingRoot(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "gone"), quiet()); err == nil {
		t.Fatalf("expected error for missing root")
	}
}

func TestReportsChanges(t *testing.T) {
	root := t.TempDir()
	w, err := New(root, quiet())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	events := make(chan Event, 64)
	w.OnEvent = func(e Event) { events <- e }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	if err := os.WriteFile(filepath.Join(root, "grammar.peg"), []byte("start = 'a'"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	waitFor(t, events, "grammar.peg")

	if err := os.Mkdir(filepath.Join(root, "sub"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	waitFor(t, events, "sub")
	deadline := time.Now().Add(5 * time.Second)
	for w.Watched() < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("new directory never watched")
		}
		time.Sleep(10 * time.Millisecond)
	}
	if err := os.WriteFile(filepath.Join(root, "sub", "b.txt"), []byte("b"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	waitFor(t, events, "sub/b.txt")

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

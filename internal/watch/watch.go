// CLASSIFICATION: COMMUNITY
// Filename: watch.go v0.2
// Author: Lukas Bower
// Date Modified: 2026-10-16
// License: SPDX-License-Identifier: MIT OR Apache-2.0

// Package watch reports changes under the served directory tree.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Event is a single observed change.
type Event struct {
	Path string
	Op   string
}

// Watcher logs file events for every directory below a root.
type Watcher struct {
	root    string
	log     logrus.FieldLogger
	fsw     *fsnotify.Watcher
	mu      sync.Mutex
	watched map[string]bool
	once    sync.Once

	// OnEvent, if set, is called for every event after it is logged.
	OnEvent func(Event)
}

// New registers root and its subdirectories. Dot directories are skipped,
// matching what the file server hides.
func New(root string, log logrus.FieldLogger) (*Watcher, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &Watcher{
		root:    root,
		log:     log.WithField("component", "watch"),
		fsw:     fsw,
		watched: make(map[string]bool),
	}
	if err := w.addTree(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == dir {
				return fmt.Errorf("walk %s: %w", p, err)
			}
			w.log.WithError(err).WithField("path", p).Debug("skipping")
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != w.root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.add(p)
	})
}

func (w *Watcher) add(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watched[dir] {
		return nil
	}
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.watched[dir] = true
	return nil
}

// Watched returns the number of directories being watched.
func (w *Watcher) Watched() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.watched)
}

// Run logs events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.Close()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("watch error")
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := w.addTree(ev.Name); err != nil {
				w.log.WithError(err).WithField("path", ev.Name).Warn("watch new directory")
			}
		}
	}
	if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
		w.mu.Lock()
		delete(w.watched, ev.Name)
		w.mu.Unlock()
	}

	e := Event{Path: ev.Name, Op: ev.Op.String()}
	if rel, err := filepath.Rel(w.root, ev.Name); err == nil {
		e.Path = filepath.ToSlash(rel)
	}
	w.log.WithFields(logrus.Fields{"path": e.Path, "op": e.Op}).Info("changed")
	if w.OnEvent != nil {
		w.OnEvent(e)
	}
}

// Close stops the underlying watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		err = w.fsw.Close()
	})
	return err
}

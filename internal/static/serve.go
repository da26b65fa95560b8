// CLASSIFICATION: COMMUNITY
// Filename: serve.go v0.2
// Author: Lukas Bower
// Date Modified: 2026-10-16
// License: SPDX-License-Identifier: MIT OR Apache-2.0

// Package static serves a read-only directory tree over HTTP.
//
// Request paths are always resolved inside the root: any path carrying a ".."
// segment is refused with 403 before the filesystem is consulted, and the
// filesystem itself is a BasePathFs that cannot open anything above its base.
// Directories are never listed; a directory answers with its index file or 404.
package static

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// IndexFile is served for requests that name a directory.
const IndexFile = "index.html"

// NewRootFs returns a read-only filesystem rooted at dir. dir must exist and be
// a directory.
func NewRootFs(dir string) (afero.Fs, string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, "", fmt.Errorf("resolve root %q: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, "", fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, "", fmt.Errorf("root %s is not a directory", abs)
	}
	return afero.NewReadOnlyFs(afero.NewBasePathFs(afero.NewOsFs(), abs)), abs, nil
}

// FileHandler returns an HTTP handler that serves files from fsys.
func FileHandler(fsys afero.Fs, log logrus.FieldLogger) http.Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &fileHandler{fs: fsys, log: log}
}

type fileHandler struct {
	fs  afero.Fs
	log logrus.FieldLogger
}

func (h *fileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}

	upath := r.URL.Path
	if !strings.HasPrefix(upath, "/") {
		upath = "/" + upath
	}
	if !safePath(upath) {
		http.Error(w, "403 forbidden", http.StatusForbidden)
		return
	}
	name := path.Clean(upath)
	if hidden(name) {
		http.NotFound(w, r)
		return
	}

	f, info, err := h.open(name)
	if err != nil {
		h.fail(w, r, name, err)
		return
	}
	defer f.Close()

	if info.IsDir() {
		if !strings.HasSuffix(upath, "/") {
			redirectToDir(w, r, name)
			return
		}
		index := path.Join(name, IndexFile)
		f, info, err = h.open(index)
		if err != nil {
			h.fail(w, r, index, err)
			return
		}
		defer f.Close()
		if info.IsDir() {
			http.NotFound(w, r)
			return
		}
	}

	w.Header().Set("Content-Type", ContentType(info.Name()))
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

func (h *fileHandler) open(name string) (afero.File, fs.FileInfo, error) {
	f, err := h.fs.Open(name)
	if err != nil {
		return nil, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return f, info, nil
}

func (h *fileHandler) fail(w http.ResponseWriter, r *http.Request, name string, err error) {
	switch {
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, syscall.ENOTDIR):
		http.NotFound(w, r)
	case errors.Is(err, fs.ErrPermission):
		h.log.WithError(err).WithField("path", name).Warn("permission denied")
		http.Error(w, "403 forbidden", http.StatusForbidden)
	default:
		h.log.WithError(err).WithField("path", name).Warn("serving file")
		http.Error(w, "500 internal server error", http.StatusInternalServerError)
	}
}

// redirectToDir sends a client that named a directory without the trailing
// slash to the slash form so relative links inside its index resolve.
func redirectToDir(w http.ResponseWriter, r *http.Request, name string) {
	target := name + "/"
	if q := r.URL.RawQuery; q != "" {
		target += "?" + q
	}
	w.Header().Set("Location", target)
	w.WriteHeader(http.StatusMovedPermanently)
}

// safePath reports whether p is free of ".." segments and NUL bytes. Both
// slash and backslash count as separators.
func safePath(p string) bool {
	if strings.IndexByte(p, 0) >= 0 {
		return false
	}
	if !strings.Contains(p, "..") {
		return true
	}
	for _, seg := range strings.FieldsFunc(p, isSlash) {
		if seg == ".." {
			return false
		}
	}
	return true
}

// hidden reports whether any segment of a cleaned path is a dotfile.
func hidden(name string) bool {
	for _, seg := range strings.Split(name, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}

func isSlash(r rune) bool { return r == '/' || r == '\\' }

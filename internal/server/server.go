// CLASSIFICATION: COMMUNITY
// Filename: server.go v0.2
// Author: Lukas Bower
// Date Modified: 2026-10-16
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"devserve/internal/static"
	"devserve/internal/watch"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultPort is the port the development server listens on.
	DefaultPort = 8080
	// DefaultRoot is served relative to the working directory: the project
	// tree one level above the server.
	DefaultRoot = ".."

	readHeaderTimeout = 10 * time.Second
)

// Config holds server configuration.
type Config struct {
	Bind    string
	Port    int
	Root    string
	LogFile string
	Watch   bool

	// Fs overrides the filesystem built from Root, useful for tests.
	Fs afero.Fs
	// Stdout receives the startup announcement. Defaults to os.Stdout.
	Stdout io.Writer
	Logger logrus.FieldLogger
}

// DefaultConfig returns the fixed development configuration.
func DefaultConfig() Config {
	return Config{Port: DefaultPort, Root: DefaultRoot}
}

// Validate checks the configuration for obvious mistakes.
func (c Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.Root == "" && c.Fs == nil {
		return errors.New("root directory required")
	}
	return nil
}

// Addr returns the listening address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Bind, strconv.Itoa(c.Port))
}

// Server wraps the HTTP server and router.
type Server struct {
	cfg       Config
	root      string
	router    *chi.Mux
	log       logrus.FieldLogger
	stdout    io.Writer
	accessLog io.Closer
	watcher   *watch.Watcher
}

// New returns an initialized server. The root directory is resolved once here
// and never changes afterwards.
func New(cfg Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	stdout := cfg.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	fsys, root := cfg.Fs, cfg.Root
	if fsys == nil {
		var err error
		fsys, root, err = static.NewRootFs(cfg.Root)
		if err != nil {
			return nil, err
		}
	}

	s := &Server{cfg: cfg, root: root, log: log, stdout: stdout}

	var access *logrus.Logger
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open access log: %w", err)
		}
		access = newAccessLogger(f)
		s.accessLog = f
	}

	if cfg.Watch {
		w, err := watch.New(root, log)
		if err != nil {
			s.close()
			return nil, err
		}
		s.watcher = w
	}

	s.router = routes(static.FileHandler(fsys, log), access)
	log.WithField("root", root).Debug("serving directory")
	return s, nil
}

// Router returns the underlying router, useful for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Root returns the absolute directory being served.
func (s *Server) Root() string {
	return s.root
}

// Addr returns the configured listening address.
func (s *Server) Addr() string {
	return s.cfg.Addr()
}

// Listen binds the configured address. A port that is already taken is an
// error; nothing retries.
func (s *Server) Listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", s.Addr())
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", s.Addr(), err)
	}
	return ln, nil
}

// Start binds the listener and serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	ln, err := s.Listen()
	if err != nil {
		s.close()
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve announces the port on stdout and serves requests from ln until ctx is
// done or the listener fails. Cancellation closes open connections at once.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer s.close()

	port := s.cfg.Port
	if addr, ok := ln.Addr().(*net.TCPAddr); ok {
		port = addr.Port
	}
	fmt.Fprintf(s.stdout, "Listening on port %d\n", port)

	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		return srv.Close()
	})
	if s.watcher != nil {
		g.Go(func() error {
			return s.watcher.Run(gctx)
		})
	}
	return g.Wait()
}

func (s *Server) close() {
	if s.watcher != nil {
		s.watcher.Close()
	}
	if s.accessLog != nil {
		s.accessLog.Close()
		s.accessLog = nil
	}
}

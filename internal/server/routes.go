// CLASSIFICATION: COMMUNITY
// Filename: routes.go v0.2
// Author: Lukas Bower
// Date Modified: 2026-10-16
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package server

import (
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

func routes(files http.Handler, access *logrus.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	if access != nil {
		r.Use(accessLogger(access))
	}

	// Every path maps onto the root; there are no other routes.
	r.Handle("/*", files)
	return r
}

func newAccessLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	return l
}

func accessLogger(l *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			l.WithFields(logrus.Fields{
				"remote":   r.RemoteAddr,
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   ww.Status(),
				"bytes":    ww.BytesWritten(),
				"duration": time.Since(start).String(),
			}).Info("request")
		})
	}
}

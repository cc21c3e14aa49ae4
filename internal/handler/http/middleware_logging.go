// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-desk-sync/internal/logger"
	"github.com/MKhiriev/go-desk-sync/models"
	"github.com/rs/zerolog"
)

// withLogging writes one access log entry per request. The entry level
// follows the status class; version probes from connectivity checks are
// logged at debug.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		start := time.Now()
		uri := r.RequestURI
		method := r.Method

		lw := &responseWriter{
			ResponseWriter: w,
		}

		next.ServeHTTP(lw, r)

		log.WithLevel(accessLogLevel(r, lw.status)).
			Str("uri", uri).
			Str("method", method).
			Str("session", r.Header.Get(models.HeaderSessionID)).
			Int("status", lw.status).
			Dur("duration", time.Since(start)).
			Int("size", lw.size).
			Send()
	})
}

func accessLogLevel(r *http.Request, status int) zerolog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zerolog.ErrorLevel
	case status >= http.StatusBadRequest:
		return zerolog.WarnLevel
	case r.URL.Path == "/api/version/":
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

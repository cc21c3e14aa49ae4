// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-desk-sync/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// withTraceID reuses the caller's X-Trace-ID or mints one, attaches a child
// logger carrying it to the request context and echoes it in the response.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		traceID := r.Header.Get(models.HeaderTraceID)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		l := h.logger.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})
		r = r.WithContext(l.WithContext(ctx))

		w.Header().Set(models.HeaderTraceID, traceID)
		next.ServeHTTP(w, r)
	})
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging)

	// routes without authorization
	router.Get("/api/version/", h.getServerVersion)

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Group(func(r chi.Router) {
			r.Use(withGZip)
			r.Put("/api/collections/{collection}/documents/{id}", h.saveDocument)
			r.Delete("/api/collections/{collection}/documents/{id}", h.deleteDocument)
			r.Get("/api/changes", h.getChanges)
			r.Get("/api/snapshots", h.listSnapshots)
		})

		// websocket upgrades need the raw connection
		r.Get("/api/subscribe", h.subscribe)

		// snapshot bodies are already compressed
		r.With(h.snapshotIntegrity).Post("/api/snapshots", h.createSnapshot)
		r.Get("/api/snapshots/latest", h.getLatestSnapshot)
		r.Get("/api/snapshots/{version}", h.getSnapshot)
		r.Delete("/api/snapshots/{version}", h.deleteSnapshot)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

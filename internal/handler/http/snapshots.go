// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/MKhiriev/go-desk-sync/internal/app"
	"github.com/MKhiriev/go-desk-sync/internal/logger"
	"github.com/MKhiriev/go-desk-sync/internal/service"
	"github.com/MKhiriev/go-desk-sync/internal/utils"
	"github.com/MKhiriev/go-desk-sync/models"
	"github.com/go-chi/chi/v5"
)

// createSnapshot handles POST /api/snapshots. The body is the compressed
// snapshot; its checksum was verified by snapshotIntegrity.
func (h *Handler) createSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	tenantID, err := tenantFromRequest(r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createSnapshot").Send()
		utils.WriteError(w, app.MsgNoTenantIDProvided, http.StatusUnauthorized)
		return
	}

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createSnapshot").Msg("failed to read request body")
		utils.WriteError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	meta, err := h.services.SnapshotService.Create(ctx, tenantID, payload, r.Header.Get(models.HeaderSnapshotChecksum))
	if err != nil {
		h.writeServiceError(w, r, "*Handler.createSnapshot", err)
		return
	}

	utils.WriteJSON(w, meta, http.StatusCreated)
}

func (h *Handler) listSnapshots(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	tenantID, err := tenantFromRequest(r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listSnapshots").Send()
		utils.WriteError(w, app.MsgNoTenantIDProvided, http.StatusUnauthorized)
		return
	}

	versions, err := h.services.SnapshotService.List(r.Context(), tenantID)
	if err != nil {
		h.writeServiceError(w, r, "*Handler.listSnapshots", err)
		return
	}

	utils.WriteJSON(w, versions, http.StatusOK)
}

func (h *Handler) getLatestSnapshot(w http.ResponseWriter, r *http.Request) {
	tenantID, err := tenantFromRequest(r)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getLatestSnapshot").Send()
		utils.WriteError(w, app.MsgNoTenantIDProvided, http.StatusUnauthorized)
		return
	}

	meta, payload, err := h.services.SnapshotService.Latest(r.Context(), tenantID)
	h.writeSnapshot(w, r, "*Handler.getLatestSnapshot", meta, payload, err)
}

func (h *Handler) getSnapshot(w http.ResponseWriter, r *http.Request) {
	tenantID, err := tenantFromRequest(r)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getSnapshot").Send()
		utils.WriteError(w, app.MsgNoTenantIDProvided, http.StatusUnauthorized)
		return
	}

	meta, payload, err := h.services.SnapshotService.Get(r.Context(), tenantID, chi.URLParam(r, "version"))
	h.writeSnapshot(w, r, "*Handler.getSnapshot", meta, payload, err)
}

func (h *Handler) deleteSnapshot(w http.ResponseWriter, r *http.Request) {
	tenantID, err := tenantFromRequest(r)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.deleteSnapshot").Send()
		utils.WriteError(w, app.MsgNoTenantIDProvided, http.StatusUnauthorized)
		return
	}

	if err = h.services.SnapshotService.Delete(r.Context(), tenantID, chi.URLParam(r, "version")); err != nil {
		h.writeServiceError(w, r, "*Handler.deleteSnapshot", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeSnapshot writes payload with its version headers. A stored payload
// that fails its checksum is a server fault, not a bad request.
func (h *Handler) writeSnapshot(w http.ResponseWriter, r *http.Request, fn string, meta models.VersionMeta, payload []byte, err error) {
	if errors.Is(err, service.ErrChecksumMismatch) {
		logger.FromRequest(r).Err(err).Str("func", fn).Msg("archived snapshot is corrupt")
		utils.WriteError(w, app.MsgInternalServerError, http.StatusInternalServerError)
		return
	}
	if err != nil {
		h.writeServiceError(w, r, fn, err)
		return
	}

	header := w.Header()
	header.Set("Content-Type", models.ContentTypeSnappy)
	header.Set("Content-Length", strconv.Itoa(len(payload)))
	header.Set(models.HeaderSnapshotChecksum, meta.Checksum)
	header.Set(models.HeaderSnapshotVersion, meta.VersionID)
	header.Set(models.HeaderSnapshotCreatedAt, meta.CreatedAt.UTC().Format(time.RFC3339Nano))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

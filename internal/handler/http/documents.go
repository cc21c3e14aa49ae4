// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-desk-sync/internal/app"
	"github.com/MKhiriev/go-desk-sync/internal/logger"
	"github.com/MKhiriev/go-desk-sync/internal/utils"
	"github.com/MKhiriev/go-desk-sync/models"
	"github.com/go-chi/chi/v5"
)

// maxDocumentSize bounds a single document body.
const maxDocumentSize = 1 << 20

// saveDocument handles PUT /api/collections/{collection}/documents/{id}. The
// body is the document itself.
func (h *Handler) saveDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	tenantID, err := tenantFromRequest(r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.saveDocument").Send()
		utils.WriteError(w, app.MsgNoTenantIDProvided, http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDocumentSize))
	if err != nil || !json.Valid(body) {
		log.Err(err).Str("func", "*Handler.saveDocument").Msg("Invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	n, err := h.services.DocumentService.Save(ctx, models.StoredDocument{
		TenantID:      tenantID,
		Collection:    chi.URLParam(r, "collection"),
		ID:            chi.URLParam(r, "id"),
		Data:          body,
		OriginSession: utils.GetSessionIDFromContext(ctx),
	})
	if err != nil {
		h.writeServiceError(w, r, "*Handler.saveDocument", err)
		return
	}

	utils.WriteJSON(w, n, http.StatusOK)
}

// deleteDocument handles DELETE /api/collections/{collection}/documents/{id}.
func (h *Handler) deleteDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	tenantID, err := tenantFromRequest(r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.deleteDocument").Send()
		utils.WriteError(w, app.MsgNoTenantIDProvided, http.StatusUnauthorized)
		return
	}

	err = h.services.DocumentService.Delete(ctx, tenantID,
		chi.URLParam(r, "collection"), chi.URLParam(r, "id"), utils.GetSessionIDFromContext(ctx))
	if err != nil {
		h.writeServiceError(w, r, "*Handler.deleteDocument", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// getChanges handles GET /api/changes?since=<RFC 3339>&after_collection=c&after_id=i&collections=a,b.
func (h *Handler) getChanges(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	tenantID, err := tenantFromRequest(r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getChanges").Send()
		utils.WriteError(w, app.MsgNoTenantIDProvided, http.StatusUnauthorized)
		return
	}

	since, err := parseCursor(r.URL.Query())
	if err != nil {
		log.Err(err).Str("func", "*Handler.getChanges").Msg("invalid since cursor")
		utils.WriteError(w, app.MsgInvalidCursor, http.StatusBadRequest)
		return
	}

	changes, err := h.services.DocumentService.ChangesSince(ctx, tenantID, scopeFromQuery(r), since)
	if err != nil {
		h.writeServiceError(w, r, "*Handler.getChanges", err)
		return
	}

	utils.WriteJSON(w, changes, http.StatusOK)
}

// parseCursor reads the paging cursor. A position without a timestamp is
// rejected.
func parseCursor(q url.Values) (*models.ChangeCursor, error) {
	raw := q.Get(models.QuerySince)
	if raw == "" {
		if q.Get(models.QueryAfterCollection) != "" || q.Get(models.QueryAfterID) != "" {
			return nil, errors.New("cursor position without since")
		}
		return nil, nil
	}
	since, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return nil, err
	}
	if since.IsZero() {
		return nil, errors.New("zero cursor")
	}
	return &models.ChangeCursor{
		At:         since,
		Collection: q.Get(models.QueryAfterCollection),
		ID:         q.Get(models.QueryAfterID),
	}, nil
}

func scopeFromQuery(r *http.Request) models.SubscriptionScope {
	raw := r.URL.Query().Get(models.QueryCollections)
	if raw == "" {
		return models.SubscriptionScope{}
	}

	var scope models.SubscriptionScope
	for _, c := range strings.Split(raw, ",") {
		if c = strings.TrimSpace(c); c != "" {
			scope.Collections = append(scope.Collections, c)
		}
	}
	return scope
}

// writeServiceError logs err and writes the mapped error response.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, fn string, err error) {
	resp := responseFromError(err)

	event := logger.FromRequest(r).Warn()
	if resp.status >= http.StatusInternalServerError {
		event = logger.FromRequest(r).Error()
	}
	event.Err(err).Str("func", fn).Int("status", resp.status).Send()

	utils.WriteError(w, resp.message, resp.status)
}

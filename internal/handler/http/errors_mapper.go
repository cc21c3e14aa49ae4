// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-desk-sync/internal/app"
	"github.com/MKhiriev/go-desk-sync/internal/service"
)

type errorResponse struct {
	status  int
	message string
}

// errorResponses is ordered; the first match wins.
var errorResponses = []struct {
	target error
	errorResponse
}{
	{service.ErrTokenIsExpiredOrInvalid, errorResponse{http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid}},
	{service.ErrNoTenantID, errorResponse{http.StatusUnauthorized, app.MsgNoTenantIDProvided}},
	{service.ErrDocumentIDMismatch, errorResponse{http.StatusBadRequest, app.MsgDocumentIDMismatch}},
	{service.ErrMissingDocumentID, errorResponse{http.StatusBadRequest, app.MsgInvalidDataProvided}},
	{service.ErrEmptyVersionID, errorResponse{http.StatusBadRequest, app.MsgInvalidDataProvided}},
	{service.ErrChecksumMismatch, errorResponse{http.StatusBadRequest, app.MsgChecksumMismatch}},
	{service.ErrInvalidSnapshot, errorResponse{http.StatusBadRequest, app.MsgInvalidSnapshot}},
	{service.ErrSnapshotTooLarge, errorResponse{http.StatusRequestEntityTooLarge, app.MsgSnapshotTooLarge}},
	{service.ErrSnapshotNotFound, errorResponse{http.StatusNotFound, app.MsgSnapshotNotFound}},
	{service.ErrInvalidDataProvided, errorResponse{http.StatusBadRequest, app.MsgInvalidDataProvided}},
}

func responseFromError(err error) errorResponse {
	for _, e := range errorResponses {
		if errors.Is(err, e.target) {
			return e.errorResponse
		}
	}
	return errorResponse{http.StatusInternalServerError, app.MsgInternalServerError}
}

func statusFromError(err error) int {
	return responseFromError(err).status
}

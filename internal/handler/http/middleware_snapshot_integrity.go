// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/MKhiriev/go-desk-sync/internal/app"
	"github.com/MKhiriev/go-desk-sync/internal/logger"
	"github.com/MKhiriev/go-desk-sync/internal/service"
	"github.com/MKhiriev/go-desk-sync/internal/utils"
	"github.com/MKhiriev/go-desk-sync/models"
)

// snapshotIntegrity reads a pushed snapshot body up to the archive limit and
// checks it against the X-Snapshot-Checksum header before the handler runs.
// The body is restored for the next handler.
func (h *Handler) snapshotIntegrity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		checksum := r.Header.Get(models.HeaderSnapshotChecksum)
		if checksum == "" {
			log.Error().Str("func", "*Handler.snapshotIntegrity").Msg("checksum header is missing")
			utils.WriteError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, int64(service.DefaultMaxSnapshotSize)))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				log.Err(err).Str("func", "*Handler.snapshotIntegrity").Msg("snapshot body is too large")
				utils.WriteError(w, app.MsgSnapshotTooLarge, http.StatusRequestEntityTooLarge)
				return
			}
			log.Err(err).Str("func", "*Handler.snapshotIntegrity").Msg("failed to read request body")
			utils.WriteError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
			return
		}
		if len(body) == 0 {
			utils.WriteError(w, app.MsgInvalidSnapshot, http.StatusBadRequest)
			return
		}

		if err = utils.VerifyChecksum(body, checksum); err != nil {
			log.Error().Str("func", "*Handler.snapshotIntegrity").
				Str("checksum from request", checksum).
				Str("checksum of body", utils.Checksum(body)).
				Msg("checksums are not equal")
			utils.WriteError(w, app.MsgChecksumMismatch, http.StatusBadRequest)
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}

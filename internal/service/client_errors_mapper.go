// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-desk-sync/internal/adapter"
	"github.com/MKhiriev/go-desk-sync/internal/app"
	"github.com/MKhiriev/go-desk-sync/internal/utils"
)

// mapAdapterError translates the adapter's transport error into a service
// business error. Unknown errors are returned unchanged.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	msg := extractMessage(err)

	switch {
	case errors.Is(err, adapter.ErrBadRequest):
		switch msg {
		case app.MsgChecksumMismatch:
			return ErrChecksumMismatch
		case app.MsgInvalidSnapshot:
			return ErrInvalidSnapshot
		case app.MsgSnapshotTooLarge:
			return ErrSnapshotTooLarge
		case app.MsgDocumentIDMismatch:
			return ErrDocumentIDMismatch
		}
		return ErrInvalidDataProvided

	case errors.Is(err, adapter.ErrUnauthorized):
		return ErrTokenIsExpiredOrInvalid

	case errors.Is(err, adapter.ErrNotFound):
		return ErrSnapshotNotFound

	case errors.Is(err, adapter.ErrEmptyVersionID):
		return ErrEmptyVersionID

	case errors.Is(err, utils.ErrChecksumMismatch):
		return fmt.Errorf("%w: downloaded payload", ErrChecksumMismatch)

	case errors.Is(err, adapter.ErrUnavailable), errors.Is(err, adapter.ErrBadGateway):
		return fmt.Errorf("%w: %s", ErrRemoteUnavailable, msg)
	}

	return err
}

// isRejectedWrite reports whether the remote store refused a write in a way
// that no retry can fix. Such writes are dropped rather than queued.
func isRejectedWrite(err error) bool {
	return errors.Is(err, adapter.ErrBadRequest) ||
		errors.Is(err, adapter.ErrForbidden) ||
		errors.Is(err, adapter.ErrMissingDocumentID) ||
		errors.Is(err, errUnknownEntryType)
}

// extractMessage returns the server message of an error of the form
// "bad request: <body>", decoding a JSON error body when there is one.
func extractMessage(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx != -1 {
		msg = msg[idx+2:]
	}

	var body utils.ErrorBody
	if json.Unmarshal([]byte(msg), &body) == nil && body.Error != "" {
		return body.Error
	}
	return msg
}

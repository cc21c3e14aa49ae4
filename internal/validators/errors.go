// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyTenantID        = errors.New("tenant id is required")
	ErrInvalidCollection    = errors.New("invalid collection name")
	ErrEmptyDocumentID      = errors.New("document id is required")
	ErrDocumentIDMismatch   = errors.New("document id does not match path")
	ErrEmptyData            = errors.New("data is required")
	ErrDataNotObject        = errors.New("data must be a JSON object")
	ErrEmptySessionID       = errors.New("origin session is required")
	ErrNilCollections       = errors.New("snapshot has no collections")
	ErrDuplicateDocumentID  = errors.New("duplicate document id in collection")
	ErrEmptyVersionID       = errors.New("version id is required")
	ErrInvalidSnapshotField = errors.New("invalid snapshot metadata")
)

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrInvalidDataProvided     = errors.New("invalid data provided")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrNoTenantID              = errors.New("no tenant ID")
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrVersionIsNotSpecified   = errors.New("app version is not specified")

	ErrMissingDocumentID  = errors.New("document has no id")
	ErrDocumentIDMismatch = errors.New("document id does not match path")
	ErrInvalidSnapshot    = errors.New("invalid snapshot payload")
	ErrSnapshotTooLarge   = errors.New("snapshot too large")
	ErrChecksumMismatch   = errors.New("snapshot checksum mismatch")
	ErrSnapshotNotFound   = errors.New("snapshot not found")

	ErrRemoteUnavailable = errors.New("remote service unavailable")
	ErrSyncInProgress    = errors.New("another sync operation is running")
	ErrEmptyVersionID    = errors.New("empty version id")
)

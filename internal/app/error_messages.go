// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used by the
// remote document service handlers and by the client when it interprets
// error responses.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails basic validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpiredOrInvalid is returned when a JWT bearer token is
	// either expired or cannot be verified (e.g. wrong signature).
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgNoTenantIDProvided is returned when a handler requires a tenant ID
	// from the JWT subject but none is present in the request context.
	MsgNoTenantIDProvided = "no tenant ID provided"

	// MsgDocumentIDMismatch is returned when the id inside a document body
	// differs from the id in the request path.
	MsgDocumentIDMismatch = "document id does not match path"

	// MsgInvalidCursor is returned when the since parameter of a changes
	// request is not an RFC 3339 timestamp.
	MsgInvalidCursor = "invalid since cursor"

	// MsgChecksumMismatch is returned when a pushed snapshot body does not
	// hash to the value in its checksum header.
	MsgChecksumMismatch = "snapshot checksum mismatch"

	// MsgInvalidSnapshot is returned when a pushed snapshot body is empty or
	// not a valid compressed payload.
	MsgInvalidSnapshot = "invalid snapshot payload"

	// MsgSnapshotTooLarge is returned when a pushed snapshot exceeds the
	// server limit.
	MsgSnapshotTooLarge = "snapshot too large"

	// MsgSnapshotNotFound is returned when the archive holds no version
	// matching the request.
	MsgSnapshotNotFound = "snapshot not found"

	// MsgSubscriptionFailed is returned when the websocket upgrade of a
	// subscribe request fails.
	MsgSubscriptionFailed = "subscription failed"
)

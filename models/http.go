// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Headers shared by the remote document service and its client.
const (
	// HeaderSessionID carries the Session Identifier of the writing process.
	HeaderSessionID = "X-Session-ID"

	// HeaderTraceID is set on every server response.
	HeaderTraceID = "X-Trace-ID"

	// HeaderSnapshotChecksum is the BLAKE2b-256 hex digest of the compressed
	// snapshot body.
	HeaderSnapshotChecksum = "X-Snapshot-Checksum"

	// HeaderSnapshotVersion is the archive version id of a pulled snapshot.
	HeaderSnapshotVersion = "X-Snapshot-Version"

	// HeaderSnapshotCreatedAt is the RFC 3339 archive timestamp of a pulled
	// snapshot.
	HeaderSnapshotCreatedAt = "X-Snapshot-Created-At"
)

// ContentTypeSnappy is the media type of snapshot bodies.
const ContentTypeSnappy = "application/x-snappy"

// Query parameters of a changes pull. since is the RFC 3339 timestamp of
// the cursor; the other two complete it when paging.
const (
	QuerySince           = "since"
	QueryAfterCollection = "after_collection"
	QueryAfterID         = "after_id"
	QueryCollections     = "collections"
)

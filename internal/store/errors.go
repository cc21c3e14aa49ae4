// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrKeyNotFound is returned by a [LocalStore] for a key that was never
	// written or was cleared.
	ErrKeyNotFound = errors.New("local store key not found")

	// ErrDocumentNotFound is returned when a tombstone targets a document
	// that does not exist or is already deleted.
	ErrDocumentNotFound = errors.New("document was not found")

	// ErrSnapshotNotFound is returned when a tenant has no snapshot with the
	// requested version (or no snapshots at all).
	ErrSnapshotNotFound = errors.New("snapshot was not found")

	// ErrSnapshotExists is returned when a version id is reused.
	ErrSnapshotExists = errors.New("snapshot version already exists")

	// ErrBlobNotFound is returned by a [BlobStore] for a missing key.
	ErrBlobNotFound = errors.New("snapshot blob was not found")
)

// Low-level database operation errors. These wrap the driver error when a
// SQL-level operation fails before any domain logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the driver cannot start a
	// new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing a transaction fails.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when an INSERT, UPDATE or DELETE
	// fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")
)

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-desk-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// DocumentRepository persists the server copy of every tenant document.
// Writes are last-write-wins; deletes leave a tombstone so catch-up pulls can
// see them.
type DocumentRepository interface {
	// Upsert stores doc and returns it with the timestamp the database
	// assigned. inserted is true when no live row existed before.
	Upsert(ctx context.Context, doc models.StoredDocument) (stored models.StoredDocument, inserted bool, err error)
	// Delete tombstones a live document or returns [ErrDocumentNotFound].
	Delete(ctx context.Context, tenantID, collection, id, originSession string) (models.StoredDocument, error)
	// ChangesSince lists rows after since in (updated_at, collection, id)
	// order. A nil since lists every live document. Empty collections means
	// all.
	ChangesSince(ctx context.Context, tenantID string, collections []string, since *models.ChangeCursor, limit uint64) ([]models.StoredDocument, error)
}

// SnapshotRepository persists snapshot metadata.
type SnapshotRepository interface {
	Create(ctx context.Context, snapshot models.StoredSnapshot) error
	Latest(ctx context.Context, tenantID string) (models.StoredSnapshot, error)
	List(ctx context.Context, tenantID string) ([]models.StoredSnapshot, error)
	Get(ctx context.Context, tenantID, versionID string) (models.StoredSnapshot, error)
	// Delete removes the metadata row and returns it so the caller can drop
	// the blob.
	Delete(ctx context.Context, tenantID, versionID string) (models.StoredSnapshot, error)
}

// BlobStore keeps compressed snapshot payloads.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte) error
	// Get returns the payload or [ErrBlobNotFound].
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete is idempotent.
	Delete(ctx context.Context, key string) error
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-desk-sync/models"
)

// DocumentService stores tenant documents and feeds the change stream.
type DocumentService interface {
	// Save upserts doc (last write wins) and publishes the change.
	Save(ctx context.Context, doc models.StoredDocument) (models.ChangeNotification, error)

	// Delete tombstones a document and publishes the change. Deleting a
	// missing document is not an error and publishes nothing.
	Delete(ctx context.Context, tenantID, collection, id, sessionID string) error

	// ChangesSince returns one page of changes after since, oldest first.
	// A nil since lists every live document. More is set on the result
	// when another page follows.
	ChangesSince(ctx context.Context, tenantID string, scope models.SubscriptionScope, since *models.ChangeCursor) (models.ChangeSet, error)

	// Subscribe registers a live change listener for tenantID.
	Subscribe(ctx context.Context, tenantID string, scope models.SubscriptionScope) (*Subscription, error)
}

// SnapshotService archives whole-state snapshots as immutable versions.
type SnapshotService interface {
	// Create verifies and stores a compressed snapshot payload and returns
	// the server-assigned version.
	Create(ctx context.Context, tenantID string, payload []byte, checksum string) (models.VersionMeta, error)

	// Latest returns the newest version and its payload.
	Latest(ctx context.Context, tenantID string) (models.VersionMeta, []byte, error)

	// Get returns one version and its payload.
	Get(ctx context.Context, tenantID, versionID string) (models.VersionMeta, []byte, error)

	// List returns every version, newest first.
	List(ctx context.Context, tenantID string) ([]models.VersionMeta, error)

	// Delete removes a version and its payload.
	Delete(ctx context.Context, tenantID, versionID string) error
}

type AuthService interface {
	CreateToken(ctx context.Context, tenantID string) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// DocumentServiceWrapper defines middleware composition for DocumentService.
// Implementations wrap an existing DocumentService to add behavior such as
// validation.
type DocumentServiceWrapper interface {
	Wrap(DocumentService) DocumentService
}

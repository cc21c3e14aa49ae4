// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of the remote document service.
//
// [RemoteDocumentClient] decouples the sync engine from the transport. The
// package ships an HTTP/REST implementation built on resty
// ([NewHTTPRemoteClient]) whose live subscription runs over a websocket, and
// a [HealthChecker] backed by the standard gRPC health service.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrNotFound] for 404, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-desk-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_client_mock.go -package=mock

// UnsubscribeFunc cancels a live subscription. It is safe to call more than
// once.
type UnsubscribeFunc func()

// RemoteDocumentClient is the remote document store as seen by the sync
// engine. Every call may fail transiently; implementations wrap transport
// failures so that [errors.Is] matches the sentinels in this package.
type RemoteDocumentClient interface {
	// Save upserts doc into collection. sessionID tags the write so the
	// writer can recognise its own echoed notification.
	Save(ctx context.Context, collection string, doc models.Document, sessionID string) error

	// Delete removes a document. Deleting a missing id is not an error.
	Delete(ctx context.Context, collection, id, sessionID string) error

	// Subscribe opens a live change feed limited to scope. ctx bounds only
	// the connection setup; the feed runs until the returned func is called
	// or the connection fails, in which case onError receives the cause once.
	Subscribe(ctx context.Context, scope models.SubscriptionScope, onChange func(models.ChangeNotification), onError func(error)) (UnsubscribeFunc, error)

	// ChangesSince returns one page of changes after since. A nil since
	// starts a full pull of every live document. The caller follows
	// [models.ChangeSet.More] with the cursor of the last change.
	ChangesSince(ctx context.Context, scope models.SubscriptionScope, since *models.ChangeCursor) (models.ChangeSet, error)

	// PushSnapshot archives snapshot as a new version and returns its
	// server-assigned metadata. onProgress may be nil.
	PushSnapshot(ctx context.Context, snapshot models.Snapshot, onProgress models.ProgressFunc) (models.VersionMeta, error)

	// PullSnapshot returns the newest version, or [ErrNotFound] when the
	// archive is empty.
	PullSnapshot(ctx context.Context) (models.Snapshot, error)

	// ListVersions returns version metadata, newest first.
	ListVersions(ctx context.Context) ([]models.VersionMeta, error)

	// PullVersion returns one archived version.
	PullVersion(ctx context.Context, versionID string) (models.Snapshot, error)

	// DeleteVersion removes one archived version.
	DeleteVersion(ctx context.Context, versionID string) error
}

// HealthChecker probes whether the remote service is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
	Close() error
}

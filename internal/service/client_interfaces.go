// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-desk-sync/models"
)

// SyncEngine is the surface the operator console and the client process use.
// [*Engine] implements it.
type SyncEngine interface {
	// StartLiveSync subscribes to remote changes and starts pushing local
	// edits. It is a no-op when live sync already runs.
	StartLiveSync(ctx context.Context) error

	// StopLiveSync cancels the subscription and moves unsent deltas to the
	// offline queue.
	StopLiveSync()

	// SyncPush archives a snapshot of the watched collections as a new
	// version. onProgress may be nil.
	SyncPush(ctx context.Context, onProgress models.ProgressFunc) (models.VersionMeta, error)

	// SyncPull overwrites the watched collections with the newest archived
	// version. Found is false when the archive is empty.
	SyncPull(ctx context.Context) (models.PullResult, error)

	// LoadVersions lists archived versions, newest first.
	LoadVersions(ctx context.Context) ([]models.VersionMeta, error)

	// RestoreVersion overwrites every watched collection with one version.
	RestoreVersion(ctx context.Context, versionID string) error

	// RemoveVersion deletes one archived version.
	RemoveVersion(ctx context.Context, versionID string) error

	// EnqueueOffline queues a write for later replay.
	EnqueueOffline(ctx context.Context, entry models.QueueEntry) error

	// DrainOfflineQueue replays queued writes when online.
	DrainOfflineQueue(ctx context.Context) (models.DrainResult, error)

	// Status returns the engine state for display.
	Status(ctx context.Context) models.SyncStatus
}

// ConnectivityTarget receives connectivity changes.
type ConnectivityTarget interface {
	SetOnline(ctx context.Context, online bool)
}

// ClientConnectivityJob defines the contract for the background worker that
// probes the remote service and reports connectivity changes.
type ClientConnectivityJob interface {
	// Start launches the probe goroutine. It probes every interval,
	// defaulting to 15 seconds if interval is zero or negative. Any
	// previously running job is stopped first.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the probe goroutine to exit and blocks until it has
	// fully terminated.
	Stop()
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/MKhiriev/go-desk-sync/internal/adapter"
	"github.com/MKhiriev/go-desk-sync/internal/logger"
	"github.com/MKhiriev/go-desk-sync/internal/store"
	"github.com/MKhiriev/go-desk-sync/models"
)

// pushSteps is the number of milestones Push reports: assembling happens in
// the caller, three steps belong to the transport, the last one records the
// sync time.
const pushSteps = 5

// BackupManager moves whole snapshots to and from the versioned remote
// archive. It never touches application state; callers decide what to do
// with a retrieved snapshot.
type BackupManager struct {
	remote adapter.RemoteDocumentClient
	store  store.LocalStore
	now    func() time.Time
	logger *logger.Logger
}

func NewBackupManager(remote adapter.RemoteDocumentClient, localStore store.LocalStore, logger *logger.Logger) *BackupManager {
	return &BackupManager{
		remote: remote,
		store:  localStore,
		now:    time.Now,
		logger: logger.WithComponent("backup"),
	}
}

// Push archives snapshot as a new version. On success the local "last sync"
// timestamp is updated and the server-assigned version is returned.
func (b *BackupManager) Push(ctx context.Context, snapshot models.Snapshot, onProgress models.ProgressFunc) (models.VersionMeta, error) {
	report := func(step int, label string) {
		if onProgress == nil {
			return
		}
		onProgress(models.Progress{
			Step:       step,
			TotalSteps: pushSteps,
			Label:      label,
			Percent:    float64(step) / pushSteps * 100,
		})
	}

	report(1, "assembling snapshot")
	meta, err := b.remote.PushSnapshot(ctx, snapshot, func(p models.Progress) {
		report(1+p.Step, p.Label)
	})
	if err != nil {
		return models.VersionMeta{}, fmt.Errorf("push snapshot: %w", mapAdapterError(err))
	}

	report(pushSteps, "recording sync time")
	if err = b.setLastSync(ctx, b.now()); err != nil {
		b.logger.Err(err).Str("func", "BackupManager.Push").Msg("persist last sync")
	}

	b.logger.Info().Str("func", "BackupManager.Push").
		Str("version", meta.VersionID).Int64("size", meta.Size).Msg("snapshot pushed")

	return meta, nil
}

// PullLatest retrieves the newest version. An empty archive is reported as
// Found=false, not as an error.
func (b *BackupManager) PullLatest(ctx context.Context) (models.PullResult, error) {
	snapshot, err := b.remote.PullSnapshot(ctx)
	if errors.Is(err, adapter.ErrNotFound) {
		return models.PullResult{Found: false}, nil
	}
	if err != nil {
		return models.PullResult{}, fmt.Errorf("pull latest snapshot: %w", mapAdapterError(err))
	}

	return models.PullResult{Found: true, Snapshot: snapshot}, nil
}

// ListVersions returns archived versions, newest first.
func (b *BackupManager) ListVersions(ctx context.Context) ([]models.VersionMeta, error) {
	versions, err := b.remote.ListVersions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", mapAdapterError(err))
	}

	slices.SortStableFunc(versions, func(x, y models.VersionMeta) int {
		if c := y.CreatedAt.Compare(x.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(y.VersionID, x.VersionID)
	})
	return versions, nil
}

// Fetch retrieves one version in full. A missing version maps to
// [ErrSnapshotNotFound].
func (b *BackupManager) Fetch(ctx context.Context, versionID string) (models.Snapshot, error) {
	if strings.TrimSpace(versionID) == "" {
		return models.Snapshot{}, ErrEmptyVersionID
	}

	snapshot, err := b.remote.PullVersion(ctx, versionID)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("pull version %s: %w", versionID, mapAdapterError(err))
	}
	return snapshot, nil
}

// Delete removes one version from the archive.
func (b *BackupManager) Delete(ctx context.Context, versionID string) error {
	if strings.TrimSpace(versionID) == "" {
		return ErrEmptyVersionID
	}

	if err := b.remote.DeleteVersion(ctx, versionID); err != nil {
		return fmt.Errorf("delete version %s: %w", versionID, mapAdapterError(err))
	}
	return nil
}

// LastSync returns the time of the last successful push or pull, or nil.
func (b *BackupManager) LastSync(ctx context.Context) (*time.Time, error) {
	var t time.Time
	found, err := store.GetJSON(ctx, b.store, lastSyncKey, &t)
	if err != nil || !found {
		return nil, err
	}
	return &t, nil
}

// MarkSynced records t as the last sync time.
func (b *BackupManager) MarkSynced(ctx context.Context) (time.Time, error) {
	t := b.now().UTC()
	return t, b.setLastSync(ctx, t)
}

func (b *BackupManager) setLastSync(ctx context.Context, t time.Time) error {
	return store.SetJSON(ctx, b.store, lastSyncKey, t.UTC())
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-desk-sync/internal/adapter"
	"github.com/MKhiriev/go-desk-sync/internal/logger"
	"github.com/MKhiriev/go-desk-sync/internal/store"
	"github.com/MKhiriev/go-desk-sync/models"
)

// EngineConfig configures a sync [Engine].
type EngineConfig struct {
	// SessionID is the process-lifetime Session Identifier.
	SessionID string
	// Collections lists the watched collections.
	Collections []string
	// Scope lists the collections subscribed live. Empty means all watched.
	Scope []string
	// PushTimeout bounds one remote write.
	PushTimeout time.Duration
}

// Engine is the synchronization engine facade. It owns the application
// state and wires the Live Sync Controller, the Offline Queue and the
// Backup/Version Manager around it.
type Engine struct {
	cfg    EngineConfig
	state  *AppState
	queue  *OfflineQueue
	live   *LiveSyncController
	backup *BackupManager
	logger *logger.Logger

	online atomic.Bool
	userOp sync.Mutex

	mu            sync.Mutex
	syncing       bool
	syncError     string
	lastSync      *time.Time
	versions      []models.VersionMeta
	cancelPersist func()
}

// NewEngine hydrates the application state from localStore and returns an
// engine with live sync stopped. The engine assumes it is online until told
// otherwise through SetOnline.
func NewEngine(ctx context.Context, localStore store.LocalStore, remote adapter.RemoteDocumentClient, cfg EngineConfig, logger *logger.Logger) (*Engine, error) {
	if cfg.SessionID == "" {
		return nil, fmt.Errorf("new engine: empty session id")
	}
	if len(cfg.Scope) == 0 {
		cfg.Scope = cfg.Collections
	}

	e := &Engine{
		cfg:    cfg,
		state:  NewAppState(cfg.Collections...),
		logger: logger.WithComponent("engine"),
	}
	e.online.Store(true)

	persister := NewStatePersister(localStore, logger)
	if err := persister.Load(ctx, e.state, cfg.Collections); err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}
	e.cancelPersist = e.state.Observe(persister.Observe)

	e.queue = NewOfflineQueue(localStore, remote, cfg.SessionID, e.Online, cfg.PushTimeout, logger)
	e.backup = NewBackupManager(remote, localStore, logger)
	e.live = NewLiveSyncController(e.state, remote, e.queue, localStore, LiveSyncConfig{
		SessionID:   cfg.SessionID,
		Watched:     cfg.Collections,
		Scope:       models.SubscriptionScope{Collections: cfg.Scope},
		PushTimeout: cfg.PushTimeout,
		Online:      e.Online,
		OnDisconnect: func() {
			e.SetOnline(context.Background(), false)
		},
	}, logger)

	lastSync, err := e.backup.LastSync(ctx)
	if err != nil {
		e.logger.Warn().Err(err).Str("func", "NewEngine").Msg("load last sync time")
	}
	e.lastSync = lastSync

	return e, nil
}

// State returns the application state the engine keeps in sync.
func (e *Engine) State() *AppState {
	return e.state
}

// Upsert records a local edit.
func (e *Engine) Upsert(collection string, docs ...models.Document) {
	e.state.Upsert(models.OriginLocal, collection, docs...)
}

// Remove records a local deletion.
func (e *Engine) Remove(collection string, ids ...string) {
	e.state.Remove(models.OriginLocal, collection, ids...)
}

// StartLiveSync starts the Live Sync Controller.
func (e *Engine) StartLiveSync(ctx context.Context) error {
	if err := e.live.Start(ctx); err != nil {
		e.setSyncError(err)
		return err
	}
	e.setSyncError(nil)
	return nil
}

// StopLiveSync stops the Live Sync Controller.
func (e *Engine) StopLiveSync() {
	e.live.Stop()
}

// SyncPush assembles a snapshot of the watched collections and archives it
// as a new version.
func (e *Engine) SyncPush(ctx context.Context, onProgress models.ProgressFunc) (meta models.VersionMeta, err error) {
	if err = e.beginUserOp(); err != nil {
		return models.VersionMeta{}, err
	}
	defer func() { e.endUserOp(err) }()

	snapshot := AssembleSnapshot(e.state.View(), e.cfg.Collections)
	meta, err = e.backup.Push(ctx, snapshot, onProgress)
	if err != nil {
		return models.VersionMeta{}, err
	}

	e.mu.Lock()
	now := time.Now().UTC()
	e.lastSync = &now
	if !slices.ContainsFunc(e.versions, func(v models.VersionMeta) bool { return v.VersionID == meta.VersionID }) {
		e.versions = append([]models.VersionMeta{meta}, e.versions...)
	}
	e.mu.Unlock()

	return meta, nil
}

// SyncPull retrieves the newest snapshot and overwrites the watched
// collections with it. The overwrite is applied with remote origin, so it is
// not pushed back. An empty archive yields Found=false and leaves the state
// untouched.
func (e *Engine) SyncPull(ctx context.Context) (result models.PullResult, err error) {
	if err = e.beginUserOp(); err != nil {
		return models.PullResult{}, err
	}
	defer func() { e.endUserOp(err) }()

	result, err = e.backup.PullLatest(ctx)
	if err != nil || !result.Found {
		return result, err
	}

	e.state.Replace(models.OriginRemote, restorableCollections(result.Snapshot, e.cfg.Collections), result.Snapshot.Settings)

	synced, markErr := e.backup.MarkSynced(ctx)
	if markErr != nil {
		e.logger.Err(markErr).Str("func", "Engine.SyncPull").Msg("persist last sync")
	}
	e.mu.Lock()
	e.lastSync = &synced
	e.mu.Unlock()

	return result, nil
}

// LoadVersions refreshes and returns the archived versions, newest first.
func (e *Engine) LoadVersions(ctx context.Context) (versions []models.VersionMeta, err error) {
	if err = e.beginUserOp(); err != nil {
		return nil, err
	}
	defer func() { e.endUserOp(err) }()

	versions, err = e.backup.ListVersions(ctx)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.versions = slices.Clone(versions)
	e.mu.Unlock()

	return versions, nil
}

// RestoreVersion overwrites every watched collection with the given version.
// This is destructive. State changes only after the version was retrieved
// and verified. The overwrite has local origin, so with live sync active it
// propagates to peers.
func (e *Engine) RestoreVersion(ctx context.Context, versionID string) (err error) {
	if err = e.beginUserOp(); err != nil {
		return err
	}
	defer func() { e.endUserOp(err) }()

	snapshot, err := e.backup.Fetch(ctx, versionID)
	if err != nil {
		return err
	}

	e.state.Replace(models.OriginLocal, restorableCollections(snapshot, e.cfg.Collections), snapshot.Settings)

	e.logger.Info().Str("func", "Engine.RestoreVersion").Str("version", versionID).Msg("version restored")
	return nil
}

// RemoveVersion deletes a version from the archive.
func (e *Engine) RemoveVersion(ctx context.Context, versionID string) (err error) {
	if err = e.beginUserOp(); err != nil {
		return err
	}
	defer func() { e.endUserOp(err) }()

	if err = e.backup.Delete(ctx, versionID); err != nil {
		return err
	}

	e.mu.Lock()
	e.versions = slices.DeleteFunc(e.versions, func(v models.VersionMeta) bool { return v.VersionID == versionID })
	e.mu.Unlock()

	return nil
}

// EnqueueOffline queues a write for later replay.
func (e *Engine) EnqueueOffline(ctx context.Context, entry models.QueueEntry) error {
	return e.queue.Enqueue(ctx, entry)
}

// DrainOfflineQueue replays queued writes.
func (e *Engine) DrainOfflineQueue(ctx context.Context) (models.DrainResult, error) {
	return e.queue.Drain(ctx)
}

// PendingWrites returns the offline queue contents.
func (e *Engine) PendingWrites(ctx context.Context) ([]models.QueueEntry, error) {
	return e.queue.Entries(ctx)
}

// Online reports the last known connectivity.
func (e *Engine) Online() bool {
	return e.online.Load()
}

// SetOnline is the connectivity-change hook. Going from offline to online
// drains the offline queue and re-opens a dropped live subscription.
func (e *Engine) SetOnline(ctx context.Context, online bool) {
	was := e.online.Swap(online)
	if was == online {
		return
	}

	e.logger.Info().Str("func", "Engine.SetOnline").Bool("online", online).Msg("connectivity changed")
	if !online {
		return
	}

	if _, err := e.queue.Drain(ctx); err != nil {
		e.logger.Err(err).Str("func", "Engine.SetOnline").Msg("drain offline queue")
	}
	if err := e.live.Reconnect(ctx); err != nil {
		e.logger.Warn().Err(err).Str("func", "Engine.SetOnline").Msg("reconnect live sync")
	}
}

// Status returns the engine state for display.
func (e *Engine) Status(ctx context.Context) models.SyncStatus {
	pending, err := e.queue.Len(ctx)
	if err != nil {
		e.logger.Err(err).Str("func", "Engine.Status").Msg("read offline queue")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	status := models.SyncStatus{
		Live:          e.live.State(),
		Online:        e.Online(),
		Syncing:       e.syncing,
		SyncError:     e.syncError,
		PendingWrites: pending,
		Versions:      slices.Clone(e.versions),
	}
	if e.lastSync != nil {
		t := *e.lastSync
		status.LastSync = &t
	}
	return status
}

// Close stops live sync, waits for its push worker and detaches the
// persistence observer.
func (e *Engine) Close() {
	e.live.Stop()
	e.live.Wait()
	if e.cancelPersist != nil {
		e.cancelPersist()
	}
}

func (e *Engine) beginUserOp() error {
	if !e.userOp.TryLock() {
		return ErrSyncInProgress
	}
	e.mu.Lock()
	e.syncing = true
	e.mu.Unlock()
	return nil
}

func (e *Engine) endUserOp(err error) {
	e.mu.Lock()
	e.syncing = false
	e.mu.Unlock()
	e.setSyncError(err)
	e.userOp.Unlock()
}

func (e *Engine) setSyncError(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err == nil {
		e.syncError = ""
		return
	}
	e.syncError = err.Error()
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-desk-sync/internal/logger"
	"github.com/MKhiriev/go-desk-sync/internal/store"
	"github.com/MKhiriev/go-desk-sync/models"
)

// Local Store keys owned by the engine.
const (
	collectionKeyPrefix = "collection:"
	settingsKey         = "settings"
	lastSyncKey         = "sync:lastSync"
	cursorKey           = "sync:cursor"
	offlineQueueKey     = "sync:offlineQueue"
)

func collectionKey(name string) string {
	return collectionKeyPrefix + name
}

// StatePersister mirrors the application state into the Local Store.
type StatePersister struct {
	store   store.LocalStore
	timeout time.Duration
	logger  *logger.Logger
}

func NewStatePersister(localStore store.LocalStore, logger *logger.Logger) *StatePersister {
	return &StatePersister{
		store:   localStore,
		timeout: 5 * time.Second,
		logger:  logger.WithComponent("state-persister"),
	}
}

// Load hydrates state with the persisted collections and settings. Missing
// keys leave the collection empty.
func (p *StatePersister) Load(ctx context.Context, state *AppState, names []string) error {
	collections := make(map[string][]models.Document, len(names))
	for _, name := range names {
		var docs []models.Document
		if _, err := store.GetJSON(ctx, p.store, collectionKey(name), &docs); err != nil {
			return fmt.Errorf("load collection %q: %w", name, err)
		}
		collections[name] = docs
	}

	var settings map[string]any
	if _, err := store.GetJSON(ctx, p.store, settingsKey, &settings); err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	state.hydrate(collections, settings)
	return nil
}

// Observe is a [StateObserver] that writes every changed collection, and the
// settings when they changed. Write failures are logged, the in-memory state
// stays authoritative.
func (p *StatePersister) Observe(change StateChange) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	for _, name := range change.Curr.Names() {
		curr := change.Curr.Collection(name)
		if curr == change.Prev.Collection(name) {
			continue
		}
		if err := p.SaveCollection(ctx, name, curr); err != nil {
			p.logger.Err(err).Str("func", "StatePersister.Observe").
				Str("collection", name).Msg("persist collection")
		}
	}

	if change.Curr.SettingsChanged(change.Prev) {
		if err := store.SetJSON(ctx, p.store, settingsKey, change.Curr.Settings()); err != nil {
			p.logger.Err(err).Str("func", "StatePersister.Observe").Msg("persist settings")
		}
	}
}

// SaveCollection writes one collection under its collection key.
func (p *StatePersister) SaveCollection(ctx context.Context, name string, c DocumentCollection) error {
	items := c.Items()
	if items == nil {
		items = []models.Document{}
	}
	return store.SetJSON(ctx, p.store, collectionKey(name), items)
}

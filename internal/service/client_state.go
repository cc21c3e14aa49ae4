// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"maps"
	"slices"
	"sync"

	"github.com/MKhiriev/go-desk-sync/models"
)

// DocumentCollection is the collection type the application state holds.
type DocumentCollection = *models.Collection[models.Document]

// StateView is an immutable picture of the application state. Two views
// share a collection pointer exactly when that collection did not change
// between them.
type StateView struct {
	collections map[string]DocumentCollection
	settings    map[string]any
	settingsRev uint64
}

// Collection returns the named collection, or nil when it does not exist.
func (v StateView) Collection(name string) DocumentCollection {
	return v.collections[name]
}

// Names lists collection names in lexical order.
func (v StateView) Names() []string {
	return slices.Sorted(maps.Keys(v.collections))
}

// Settings returns a copy of the scalar settings.
func (v StateView) Settings() map[string]any {
	return maps.Clone(v.settings)
}

// SettingsChanged reports whether settings differ between v and other.
func (v StateView) SettingsChanged(other StateView) bool {
	return v.settingsRev != other.settingsRev
}

// StateChange is delivered to observers after every mutation.
type StateChange struct {
	Origin models.ChangeOrigin
	Prev   StateView
	Curr   StateView
}

// StateObserver receives state changes synchronously, in mutation order.
// Observers must not mutate the state they observe from inside the call.
type StateObserver func(StateChange)

// AppState holds the named collections and scalar settings the sync engine
// keeps consistent. Every mutation names its origin so observers can tell
// genuine local edits from remote data being applied.
type AppState struct {
	// seq serialises mutate-and-notify so observers see changes in order.
	seq sync.Mutex

	mu        sync.RWMutex
	view      StateView
	observers map[uint64]StateObserver
	nextID    uint64
}

// NewAppState returns an empty state holding the given collections.
func NewAppState(names ...string) *AppState {
	s := &AppState{
		view:      StateView{collections: make(map[string]DocumentCollection, len(names))},
		observers: make(map[uint64]StateObserver),
	}
	for _, name := range names {
		s.view.collections[name] = models.NewCollection[models.Document]()
	}
	return s
}

// View returns the current state.
func (s *AppState) View() StateView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// Observe registers fn and returns a func that removes it.
func (s *AppState) Observe(fn StateObserver) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.observers[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.observers, id)
			s.mu.Unlock()
		})
	}
}

// Upsert inserts or replaces docs in collection by id.
func (s *AppState) Upsert(origin models.ChangeOrigin, collection string, docs ...models.Document) {
	s.mutate(origin, func(v *StateView) {
		v.setCollection(collection, v.collections[collection].Upsert(docs...))
	})
}

// Remove deletes ids from collection. Missing ids are ignored.
func (s *AppState) Remove(origin models.ChangeOrigin, collection string, ids ...string) {
	s.mutate(origin, func(v *StateView) {
		c := v.collections[collection]
		present := make([]string, 0, len(ids))
		for _, id := range ids {
			if _, ok := c.Get(id); ok {
				present = append(present, id)
			}
		}
		if len(present) > 0 {
			v.setCollection(collection, c.Remove(present...))
		}
	})
}

// ApplyDeltas merges deltas into their collections by id.
func (s *AppState) ApplyDeltas(origin models.ChangeOrigin, deltas []models.Delta) {
	if len(deltas) == 0 {
		return
	}
	s.mutate(origin, func(v *StateView) {
		seen := make(map[string]struct{})
		for _, d := range deltas {
			if _, ok := seen[d.Collection]; ok {
				continue
			}
			seen[d.Collection] = struct{}{}
			v.setCollection(d.Collection, ApplyDeltas(d.Collection, v.collections[d.Collection], deltas))
		}
	})
}

// Replace overwrites the state with collections and settings. Collections
// that exist now but are absent from the input become empty, so a total
// overwrite shows up as deletes to observers.
func (s *AppState) Replace(origin models.ChangeOrigin, collections map[string][]models.Document, settings map[string]any) {
	s.mutate(origin, func(v *StateView) {
		next := make(map[string]DocumentCollection, len(collections)+len(v.collections))
		for name := range v.collections {
			next[name] = models.NewCollection[models.Document]()
		}
		for name, docs := range collections {
			next[name] = models.NewCollection(docs...)
		}
		v.collections = next
		v.settings = maps.Clone(settings)
		v.settingsRev++
	})
}

// SetSettings replaces the scalar settings.
func (s *AppState) SetSettings(origin models.ChangeOrigin, settings map[string]any) {
	s.mutate(origin, func(v *StateView) {
		v.settings = maps.Clone(settings)
		v.settingsRev++
	})
}

// hydrate loads persisted data without notifying observers.
func (s *AppState) hydrate(collections map[string][]models.Document, settings map[string]any) {
	s.seq.Lock()
	defer s.seq.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	next := maps.Clone(s.view.collections)
	for name, docs := range collections {
		next[name] = models.NewCollection(docs...)
	}
	s.view = StateView{collections: next, settings: maps.Clone(settings), settingsRev: s.view.settingsRev + 1}
}

func (s *AppState) mutate(origin models.ChangeOrigin, fn func(v *StateView)) {
	s.seq.Lock()
	defer s.seq.Unlock()

	s.mu.Lock()
	prev := s.view
	next := StateView{
		collections: maps.Clone(prev.collections),
		settings:    prev.settings,
		settingsRev: prev.settingsRev,
	}
	fn(&next)
	s.view = next
	observers := make([]StateObserver, 0, len(s.observers))
	for _, id := range slices.Sorted(maps.Keys(s.observers)) {
		observers = append(observers, s.observers[id])
	}
	s.mu.Unlock()

	change := StateChange{Origin: origin, Prev: prev, Curr: next}
	for _, o := range observers {
		o(change)
	}
}

func (v *StateView) setCollection(name string, c DocumentCollection) {
	if v.collections == nil {
		v.collections = make(map[string]DocumentCollection)
	}
	v.collections[name] = c
}

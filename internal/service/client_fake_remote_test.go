// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/go-desk-sync/internal/adapter"
	"github.com/MKhiriev/go-desk-sync/models"
)

// fakeRemote is an in-memory remote store shared by several engines in a
// test. Writes get strictly increasing timestamps and are broadcast to every
// subscriber in order.
type fakeRemote struct {
	mu          sync.Mutex
	clock       time.Time
	docs        map[string]map[string]models.Document
	log         []models.ChangeNotification
	subscribers map[int]fakeSubscriber
	nextSub     int
	snapshots   []models.Snapshot
	saves       map[string]int

	// pageSize bounds one ChangesSince page when positive.
	pageSize int
}

type fakeSubscriber struct {
	scope    models.SubscriptionScope
	onChange func(models.ChangeNotification)
}

var _ adapter.RemoteDocumentClient = (*fakeRemote)(nil)

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		clock:       time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		docs:        make(map[string]map[string]models.Document),
		subscribers: make(map[int]fakeSubscriber),
		saves:       make(map[string]int),
	}
}

func (f *fakeRemote) tick() time.Time {
	f.clock = f.clock.Add(time.Millisecond)
	return f.clock
}

func (f *fakeRemote) Save(_ context.Context, collection string, doc models.Document, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := doc.RecordID()
	if f.docs[collection] == nil {
		f.docs[collection] = make(map[string]models.Document)
	}
	action := models.DeltaInsert
	if _, ok := f.docs[collection][id]; ok {
		action = models.DeltaUpdate
	}
	f.docs[collection][id] = doc.Clone()
	f.saves[sessionID]++

	f.publish(models.ChangeNotification{
		Origin: sessionID,
		Change: models.Delta{Collection: collection, Action: action, ID: id, Data: doc.Clone()},
		At:     f.tick(),
	})
	return nil
}

func (f *fakeRemote) Delete(_ context.Context, collection, id, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.docs[collection][id]; !ok {
		return adapter.ErrNotFound
	}
	delete(f.docs[collection], id)

	f.publish(models.ChangeNotification{
		Origin: sessionID,
		Change: models.Delta{Collection: collection, Action: models.DeltaDelete, ID: id},
		At:     f.tick(),
	})
	return nil
}

// publish records n and delivers it to subscribers. Callers hold mu.
func (f *fakeRemote) publish(n models.ChangeNotification) {
	f.log = append(f.log, n)
	ids := make([]int, 0, len(f.subscribers))
	for id := range f.subscribers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		sub := f.subscribers[id]
		if sub.scope.Includes(n.Change.Collection) {
			sub.onChange(n)
		}
	}
}

func (f *fakeRemote) Subscribe(_ context.Context, scope models.SubscriptionScope, onChange func(models.ChangeNotification), _ func(error)) (adapter.UnsubscribeFunc, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.nextSub
	f.nextSub++
	f.subscribers[id] = fakeSubscriber{scope: scope, onChange: onChange}

	return func() {
		f.mu.Lock()
		delete(f.subscribers, id)
		f.mu.Unlock()
	}, nil
}

func (f *fakeRemote) ChangesSince(_ context.Context, scope models.SubscriptionScope, since *models.ChangeCursor) (models.ChangeSet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.ChangeNotification
	more := false
	for _, n := range f.log {
		if since != nil && !n.Cursor().After(*since) {
			continue
		}
		if !scope.Includes(n.Change.Collection) {
			continue
		}
		if f.pageSize > 0 && len(out) == f.pageSize {
			more = true
			break
		}
		out = append(out, n)
	}
	return models.ChangeSet{Changes: out, Length: len(out), More: more}, nil
}

func (f *fakeRemote) PushSnapshot(_ context.Context, snapshot models.Snapshot, onProgress models.ProgressFunc) (models.VersionMeta, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	snapshot.VersionID = fmt.Sprintf("v%d", len(f.snapshots)+1)
	snapshot.CreatedAt = f.tick()
	f.snapshots = append(f.snapshots, snapshot)

	if onProgress != nil {
		for step, label := range []string{"encoding snapshot", "uploading snapshot", "snapshot archived"} {
			onProgress(models.Progress{Step: step + 1, TotalSteps: 3, Label: label})
		}
	}
	return models.VersionMeta{VersionID: snapshot.VersionID, CreatedAt: snapshot.CreatedAt}, nil
}

func (f *fakeRemote) PullSnapshot(_ context.Context) (models.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.snapshots) == 0 {
		return models.Snapshot{}, adapter.ErrNotFound
	}
	return f.snapshots[len(f.snapshots)-1], nil
}

func (f *fakeRemote) ListVersions(_ context.Context) ([]models.VersionMeta, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]models.VersionMeta, 0, len(f.snapshots))
	for _, s := range f.snapshots {
		out = append(out, models.VersionMeta{VersionID: s.VersionID, CreatedAt: s.CreatedAt})
	}
	return out, nil
}

func (f *fakeRemote) PullVersion(_ context.Context, versionID string) (models.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, s := range f.snapshots {
		if s.VersionID == versionID {
			return s, nil
		}
	}
	return models.Snapshot{}, adapter.ErrNotFound
}

func (f *fakeRemote) DeleteVersion(_ context.Context, versionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, s := range f.snapshots {
		if s.VersionID == versionID {
			f.snapshots = slices.Delete(f.snapshots, i, i+1)
			return nil
		}
	}
	return adapter.ErrNotFound
}

func (f *fakeRemote) doc(collection, id string) (models.Document, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.docs[collection][id]
	return d.Clone(), ok
}

func (f *fakeRemote) saveCount(sessionID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves[sessionID]
}

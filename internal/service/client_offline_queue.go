// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-desk-sync/internal/adapter"
	"github.com/MKhiriev/go-desk-sync/internal/logger"
	"github.com/MKhiriev/go-desk-sync/internal/store"
	"github.com/MKhiriev/go-desk-sync/models"
)

// maxReplayAttempts bounds how often one queued payload is replayed after
// transient failures before it is dropped.
const maxReplayAttempts = 5

var errUnknownEntryType = errors.New("unknown queue entry type")

// OfflineQueue is the durable, deduplicated backlog of remote writes. The
// queue lives in the Local Store under [offlineQueueKey]; every change is a
// read-modify-write under one mutex so enqueue and drain never lose entries.
type OfflineQueue struct {
	mu    sync.Mutex
	store store.LocalStore

	remote    adapter.RemoteDocumentClient
	sessionID string
	online    func() bool
	timeout   time.Duration

	draining atomic.Bool
	now      func() time.Time

	logger *logger.Logger
}

// NewOfflineQueue returns a queue that replays through remote, tagging writes
// with sessionID. online reports current connectivity; drain is a no-op while
// it returns false.
func NewOfflineQueue(localStore store.LocalStore, remote adapter.RemoteDocumentClient, sessionID string, online func() bool, timeout time.Duration, logger *logger.Logger) *OfflineQueue {
	return &OfflineQueue{
		store:     localStore,
		remote:    remote,
		sessionID: sessionID,
		online:    online,
		timeout:   timeout,
		now:       time.Now,
		logger:    logger.WithComponent("offline-queue"),
	}
}

// Enqueue removes any entry for the same (collection, id), then appends entry
// with a fresh timestamp and persists the queue.
func (q *OfflineQueue) Enqueue(ctx context.Context, entry models.QueueEntry) error {
	_, err := q.enqueue(ctx, entry, true)
	return err
}

// EnqueueIfAbsent queues entry only when nothing is queued for its key yet.
// It reports whether the entry was added.
func (q *OfflineQueue) EnqueueIfAbsent(ctx context.Context, entry models.QueueEntry) (bool, error) {
	return q.enqueue(ctx, entry, false)
}

func (q *OfflineQueue) enqueue(ctx context.Context, entry models.QueueEntry, replace bool) (bool, error) {
	if entry.CollectionName == "" || entry.ID == "" {
		return false, ErrInvalidDataProvided
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	entries, err := q.load(ctx)
	if err != nil {
		return false, err
	}

	rest := without(entries, entry.Key())
	if !replace && len(rest) != len(entries) {
		return false, nil
	}

	entry.Timestamp = q.now().UTC()
	entry.Attempts = 0
	return true, q.save(ctx, append(rest, entry))
}

// Dequeue removes the entry for (collection, id), if any.
func (q *OfflineQueue) Dequeue(ctx context.Context, collection, id string) error {
	_, err := q.dequeueIf(ctx, models.QueueKey{CollectionName: collection, ID: id}, func(models.QueueEntry) bool { return true })
	return err
}

// DequeueOlder removes the entry for key only when it was queued no later
// than at, so a newer write queued meanwhile survives.
func (q *OfflineQueue) DequeueOlder(ctx context.Context, key models.QueueKey, at time.Time) (bool, error) {
	return q.dequeueIf(ctx, key, func(e models.QueueEntry) bool { return !e.Timestamp.After(at) })
}

// Entries returns a copy of the queue, oldest first.
func (q *OfflineQueue) Entries(ctx context.Context) ([]models.QueueEntry, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.load(ctx)
}

// Len returns the number of pending entries.
func (q *OfflineQueue) Len(ctx context.Context) (int, error) {
	entries, err := q.Entries(ctx)
	return len(entries), err
}

// Drain replays a snapshot of the queue. Each entry that reaches the remote
// store is removed. An entry the remote store rejects is dropped, and so is
// one that has failed [maxReplayAttempts] times; other failures stay for the
// next call. Errors are logged per entry and never stop the pass. Drain is a
// no-op when the queue is empty, the engine is offline, or another drain is
// running.
func (q *OfflineQueue) Drain(ctx context.Context) (models.DrainResult, error) {
	if !q.online() {
		return q.skipped(ctx), nil
	}
	if !q.draining.CompareAndSwap(false, true) {
		return q.skipped(ctx), nil
	}
	defer q.draining.Store(false)

	entries, err := q.Entries(ctx)
	if err != nil {
		return models.DrainResult{}, err
	}
	if len(entries) == 0 {
		return models.DrainResult{Skipped: true}, nil
	}

	var result models.DrainResult
	for _, entry := range entries {
		deliverErr := q.deliver(ctx, entry)
		switch {
		case deliverErr == nil:
			if err = q.dequeueSame(ctx, entry); err != nil {
				q.logger.Err(err).Str("func", "OfflineQueue.Drain").Msg("dequeue delivered entry")
			}
			result.Delivered++

		case isRejectedWrite(deliverErr):
			q.logger.Error().Err(deliverErr).Str("func", "OfflineQueue.Drain").
				Str("collection", entry.CollectionName).Str("id", entry.ID).
				Msg("remote store rejected entry, dropped")
			if err = q.dequeueSame(ctx, entry); err != nil {
				q.logger.Err(err).Str("func", "OfflineQueue.Drain").Msg("dequeue rejected entry")
			}
			result.Dropped++

		default:
			dropped, err := q.recordFailure(ctx, entry)
			if err != nil {
				q.logger.Err(err).Str("func", "OfflineQueue.Drain").Msg("record failed replay")
			}
			if dropped {
				q.logger.Error().Err(deliverErr).Str("func", "OfflineQueue.Drain").
					Str("collection", entry.CollectionName).Str("id", entry.ID).
					Int("attempts", maxReplayAttempts).Msg("replay attempts exhausted, entry dropped")
				result.Dropped++
				continue
			}
			q.logger.Warn().Err(deliverErr).Str("func", "OfflineQueue.Drain").
				Str("collection", entry.CollectionName).Str("id", entry.ID).
				Msg("replay failed, entry stays queued")
			result.Failed++
		}
	}

	remaining, err := q.Len(ctx)
	if err != nil {
		return result, err
	}
	result.Remaining = remaining

	q.logger.Info().Str("func", "OfflineQueue.Drain").
		Int("delivered", result.Delivered).Int("failed", result.Failed).
		Int("dropped", result.Dropped).Int("remaining", result.Remaining).Msg("drain finished")

	return result, nil
}

func (q *OfflineQueue) deliver(ctx context.Context, entry models.QueueEntry) error {
	if q.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.timeout)
		defer cancel()
	}

	switch entry.Type {
	case models.QueueSave:
		return q.remote.Save(ctx, entry.CollectionName, withID(entry.Data, entry.ID), q.sessionID)
	case models.QueueDelete:
		err := q.remote.Delete(ctx, entry.CollectionName, entry.ID, q.sessionID)
		if errors.Is(err, adapter.ErrNotFound) {
			return nil
		}
		return err
	default:
		return fmt.Errorf("%w %q", errUnknownEntryType, entry.Type)
	}
}

// dequeueSame removes entry unless it was replaced while the call was in
// flight.
func (q *OfflineQueue) dequeueSame(ctx context.Context, entry models.QueueEntry) error {
	_, err := q.dequeueIf(ctx, entry.Key(), func(e models.QueueEntry) bool {
		return e.Timestamp.Equal(entry.Timestamp)
	})
	return err
}

// recordFailure bumps the attempt count of entry and drops it once the count
// reaches [maxReplayAttempts]. A replaced entry is left alone.
func (q *OfflineQueue) recordFailure(ctx context.Context, entry models.QueueEntry) (bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	entries, err := q.load(ctx)
	if err != nil {
		return false, err
	}

	for i, e := range entries {
		if e.Key() != entry.Key() || !e.Timestamp.Equal(entry.Timestamp) {
			continue
		}
		if e.Attempts+1 >= maxReplayAttempts {
			return true, q.save(ctx, without(entries, e.Key()))
		}
		entries[i].Attempts++
		return false, q.save(ctx, entries)
	}
	return false, nil
}

func (q *OfflineQueue) skipped(ctx context.Context) models.DrainResult {
	n, _ := q.Len(ctx)
	return models.DrainResult{Skipped: true, Remaining: n}
}

func (q *OfflineQueue) dequeueIf(ctx context.Context, key models.QueueKey, match func(models.QueueEntry) bool) (bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	entries, err := q.load(ctx)
	if err != nil {
		return false, err
	}

	for _, e := range entries {
		if e.Key() == key {
			if !match(e) {
				return false, nil
			}
			return true, q.save(ctx, without(entries, key))
		}
	}
	return false, nil
}

func (q *OfflineQueue) load(ctx context.Context) ([]models.QueueEntry, error) {
	var entries []models.QueueEntry
	if _, err := store.GetJSON(ctx, q.store, offlineQueueKey, &entries); err != nil {
		return nil, fmt.Errorf("load offline queue: %w", err)
	}
	return entries, nil
}

func (q *OfflineQueue) save(ctx context.Context, entries []models.QueueEntry) error {
	if entries == nil {
		entries = []models.QueueEntry{}
	}
	if err := store.SetJSON(ctx, q.store, offlineQueueKey, entries); err != nil {
		return fmt.Errorf("save offline queue: %w", err)
	}
	return nil
}

func without(entries []models.QueueEntry, key models.QueueKey) []models.QueueEntry {
	out := make([]models.QueueEntry, 0, len(entries))
	for _, e := range entries {
		if e.Key() != key {
			out = append(out, e)
		}
	}
	return out
}

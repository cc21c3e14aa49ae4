// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// QueueEntryType is the remote write an offline queue entry stands for.
type QueueEntryType string

const (
	QueueSave   QueueEntryType = "save"
	QueueDelete QueueEntryType = "delete"
)

// QueueEntry is one pending remote write. The offline queue holds at most one
// entry per (CollectionName, ID).
type QueueEntry struct {
	Type           QueueEntryType `json:"type"`
	CollectionName string         `json:"collectionName"`
	ID             string         `json:"id"`
	Data           Document       `json:"data,omitempty"`
	Timestamp      time.Time      `json:"timestamp"`

	// Attempts counts failed replays of this payload.
	Attempts int `json:"attempts,omitempty"`
}

// Key returns the deduplication key of the entry.
func (e QueueEntry) Key() QueueKey {
	return QueueKey{CollectionName: e.CollectionName, ID: e.ID}
}

// QueueKey identifies a record across collections.
type QueueKey struct {
	CollectionName string
	ID             string
}

// QueueEntryFromDelta converts a delta into the write that delivers it.
func QueueEntryFromDelta(d Delta) QueueEntry {
	entry := QueueEntry{CollectionName: d.Collection, ID: d.ID}
	if d.Action == DeltaDelete {
		entry.Type = QueueDelete
		return entry
	}
	entry.Type = QueueSave
	entry.Data = d.Data
	return entry
}

// DrainResult reports the outcome of one offline queue drain pass.
type DrainResult struct {
	// Delivered is the number of entries written remotely and removed.
	Delivered int `json:"delivered"`

	// Failed is the number of entries that stayed queued after an error.
	Failed int `json:"failed"`

	// Dropped is the number of entries removed without delivery, either
	// because the remote store rejected them or because they ran out of
	// attempts.
	Dropped int `json:"dropped"`

	// Remaining is the queue length after the pass.
	Remaining int `json:"remaining"`

	// Skipped is true when the pass did nothing because the queue was empty,
	// the engine was offline, or another drain was already running.
	Skipped bool `json:"skipped"`
}

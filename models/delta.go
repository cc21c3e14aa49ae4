// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// DeltaAction is the kind of per-record change carried by a [Delta].
type DeltaAction string

const (
	DeltaInsert DeltaAction = "insert"
	DeltaUpdate DeltaAction = "update"
	DeltaDelete DeltaAction = "delete"
)

// Delta is a single record-level change in one collection. Deltas are
// transient: they drive network writes and remote application, they are
// never stored as history.
type Delta struct {
	// Collection is the name of the collection the record belongs to.
	Collection string `json:"collection"`

	// Action is insert, update or delete.
	Action DeltaAction `json:"action"`

	// ID is the record identity.
	ID string `json:"id"`

	// Data is the full record for insert and update; nil for delete.
	Data Document `json:"data,omitempty"`
}

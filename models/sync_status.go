// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// LiveSyncState is the lifecycle state of the live sync controller.
type LiveSyncState string

const (
	LiveSyncStopped  LiveSyncState = "stopped"
	LiveSyncStarting LiveSyncState = "starting"
	LiveSyncActive   LiveSyncState = "active"
)

// SyncStatus is the engine state exposed to the UI.
type SyncStatus struct {
	Live          LiveSyncState `json:"live"`
	Online        bool          `json:"online"`
	Syncing       bool          `json:"syncing"`
	SyncError     string        `json:"syncError,omitempty"`
	LastSync      *time.Time    `json:"lastSync,omitempty"`
	PendingWrites int           `json:"pendingWrites"`
	Versions      []VersionMeta `json:"versions,omitempty"`
}

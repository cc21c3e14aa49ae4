// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Snapshot is a full point-in-time copy of every watched collection plus
// scalar settings. It is immutable once pushed.
type Snapshot struct {
	// VersionID is assigned by the archive on push; empty before that.
	VersionID string `json:"versionId,omitempty"`

	// CreatedAt is the archive timestamp of the version.
	CreatedAt time.Time `json:"createdAt"`

	// Collections maps collection name to its full contents.
	Collections map[string][]Document `json:"collections"`

	// Settings holds scalar configuration such as branding and feature
	// toggles.
	Settings map[string]any `json:"settings,omitempty"`
}

// VersionMeta describes one archived snapshot version.
type VersionMeta struct {
	VersionID string    `json:"versionId"`
	CreatedAt time.Time `json:"createdAt"`
	Size      int64     `json:"size"`
	Checksum  string    `json:"checksum"`
}

// Progress is reported at coarse milestones of a snapshot push.
type Progress struct {
	Step       int     `json:"step"`
	TotalSteps int     `json:"totalSteps"`
	Label      string  `json:"label"`
	Percent    float64 `json:"percent"`
}

// ProgressFunc receives push milestones. It may be nil.
type ProgressFunc func(Progress)

// PullResult is the outcome of pulling the latest snapshot. Found is false
// when the archive is empty; that is not an error.
type PullResult struct {
	Found    bool     `json:"found"`
	Snapshot Snapshot `json:"snapshot"`
}

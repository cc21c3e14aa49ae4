// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// StoredDocument is the server-side row of one document.
type StoredDocument struct {
	TenantID      string          `json:"-"`
	Collection    string          `json:"collection"`
	ID            string          `json:"id"`
	Data          json.RawMessage `json:"data,omitempty"`
	OriginSession string          `json:"origin"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	Deleted       bool            `json:"deleted"`
}

// StoredSnapshot is the server-side metadata of one archived snapshot.
type StoredSnapshot struct {
	TenantID  string
	VersionID string
	CreatedAt time.Time
	Size      int64
	Checksum  string
	BlobKey   string
}

// Meta returns the client-facing metadata.
func (s StoredSnapshot) Meta() VersionMeta {
	return VersionMeta{VersionID: s.VersionID, CreatedAt: s.CreatedAt, Size: s.Size, Checksum: s.Checksum}
}

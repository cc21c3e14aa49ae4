// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/go-desk-sync/internal/utils"
	"github.com/MKhiriev/go-desk-sync/models"
	"github.com/golang/snappy"
)

// encodeSnapshot returns the wire form of s: JSON compressed with snappy,
// plus the checksum of the compressed bytes.
func encodeSnapshot(s models.Snapshot) ([]byte, string, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, "", fmt.Errorf("encode snapshot: %w", err)
	}

	payload := snappy.Encode(nil, raw)
	return payload, utils.Checksum(payload), nil
}

// decodeSnapshot verifies payload against checksum before decompressing it,
// so a corrupt download never reaches the caller.
func decodeSnapshot(payload []byte, checksum string) (models.Snapshot, error) {
	if err := utils.VerifyChecksum(payload, checksum); err != nil {
		return models.Snapshot{}, fmt.Errorf("verify snapshot: %w", err)
	}

	raw, err := snappy.Decode(nil, payload)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("decompress snapshot: %w", err)
	}

	var s models.Snapshot
	if err = json.Unmarshal(raw, &s); err != nil {
		return models.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if s.Collections == nil {
		s.Collections = map[string][]models.Document{}
	}

	return s, nil
}

// applyVersionHeaders fills the archive-assigned fields the pushed body did
// not carry.
func applyVersionHeaders(s *models.Snapshot, versionID, createdAt string) {
	if versionID != "" {
		s.VersionID = versionID
	}
	if createdAt == "" {
		return
	}
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		s.CreatedAt = t
	}
}

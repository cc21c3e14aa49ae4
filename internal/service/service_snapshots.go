// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-desk-sync/internal/logger"
	"github.com/MKhiriev/go-desk-sync/internal/store"
	"github.com/MKhiriev/go-desk-sync/internal/utils"
	"github.com/MKhiriev/go-desk-sync/internal/validators"
	"github.com/MKhiriev/go-desk-sync/models"
	"github.com/golang/snappy"
)

// DefaultMaxSnapshotSize bounds a compressed snapshot payload.
const DefaultMaxSnapshotSize = 64 << 20

// maxExpansion bounds the decompressed size relative to the payload limit.
const maxExpansion = 8

type snapshotService struct {
	snapshotRepository store.SnapshotRepository
	blobs              store.BlobStore
	validator          validators.Validator
	ids                *utils.UUIDGenerator
	maxSize            int
	now                func() time.Time

	logger *logger.Logger
}

func NewSnapshotService(snapshotRepository store.SnapshotRepository, blobs store.BlobStore, maxSize int, logger *logger.Logger) SnapshotService {
	if maxSize <= 0 {
		maxSize = DefaultMaxSnapshotSize
	}
	return &snapshotService{
		snapshotRepository: snapshotRepository,
		blobs:              blobs,
		validator:          validators.NewSyncValidator(),
		ids:                utils.NewUUIDGenerator(),
		maxSize:            maxSize,
		now:                func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
		logger:             logger,
	}
}

// Create checks size, checksum and structure of payload before anything is
// stored. The blob is written first; if the metadata insert fails the blob
// is removed again.
func (s *snapshotService) Create(ctx context.Context, tenantID string, payload []byte, checksum string) (models.VersionMeta, error) {
	log := logger.FromContext(ctx)

	if tenantID == "" {
		return models.VersionMeta{}, ErrNoTenantID
	}
	if len(payload) > s.maxSize {
		return models.VersionMeta{}, ErrSnapshotTooLarge
	}
	if checksum == "" {
		return models.VersionMeta{}, fmt.Errorf("%w: missing checksum", ErrInvalidDataProvided)
	}
	if err := utils.VerifyChecksum(payload, checksum); err != nil {
		return models.VersionMeta{}, ErrChecksumMismatch
	}
	if err := s.validatePayload(ctx, payload); err != nil {
		return models.VersionMeta{}, err
	}

	versionID := s.ids.Generate()
	stored := models.StoredSnapshot{
		TenantID:  tenantID,
		VersionID: versionID,
		CreatedAt: s.now(),
		Size:      int64(len(payload)),
		Checksum:  checksum,
		BlobKey:   blobKey(tenantID, versionID),
	}

	if err := s.blobs.Put(ctx, stored.BlobKey, payload); err != nil {
		return models.VersionMeta{}, fmt.Errorf("store snapshot blob: %w", err)
	}

	if err := s.snapshotRepository.Create(ctx, stored); err != nil {
		if delErr := s.blobs.Delete(ctx, stored.BlobKey); delErr != nil {
			log.Err(delErr).Str("func", "snapshotService.Create").Str("blob_key", stored.BlobKey).Msg("orphaned snapshot blob")
		}
		return models.VersionMeta{}, fmt.Errorf("store snapshot metadata: %w", err)
	}

	log.Info().Str("func", "snapshotService.Create").Str("tenant_id", tenantID).
		Str("version", versionID).Int64("size", stored.Size).Msg("snapshot archived")

	return stored.Meta(), nil
}

func (s *snapshotService) Latest(ctx context.Context, tenantID string) (models.VersionMeta, []byte, error) {
	stored, err := s.snapshotRepository.Latest(ctx, tenantID)
	if err != nil {
		return models.VersionMeta{}, nil, mapSnapshotError(err)
	}
	return s.load(ctx, stored)
}

func (s *snapshotService) Get(ctx context.Context, tenantID, versionID string) (models.VersionMeta, []byte, error) {
	if versionID == "" {
		return models.VersionMeta{}, nil, ErrEmptyVersionID
	}

	stored, err := s.snapshotRepository.Get(ctx, tenantID, versionID)
	if err != nil {
		return models.VersionMeta{}, nil, mapSnapshotError(err)
	}
	return s.load(ctx, stored)
}

func (s *snapshotService) List(ctx context.Context, tenantID string) ([]models.VersionMeta, error) {
	rows, err := s.snapshotRepository.List(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}

	versions := make([]models.VersionMeta, 0, len(rows))
	for _, row := range rows {
		versions = append(versions, row.Meta())
	}
	return versions, nil
}

func (s *snapshotService) Delete(ctx context.Context, tenantID, versionID string) error {
	if versionID == "" {
		return ErrEmptyVersionID
	}

	stored, err := s.snapshotRepository.Delete(ctx, tenantID, versionID)
	if err != nil {
		return mapSnapshotError(err)
	}

	if err = s.blobs.Delete(ctx, stored.BlobKey); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "snapshotService.Delete").
			Str("blob_key", stored.BlobKey).Msg("orphaned snapshot blob")
	}
	return nil
}

// load reads the payload of stored and checks it against the recorded
// checksum.
func (s *snapshotService) load(ctx context.Context, stored models.StoredSnapshot) (models.VersionMeta, []byte, error) {
	payload, err := s.blobs.Get(ctx, stored.BlobKey)
	if errors.Is(err, store.ErrBlobNotFound) {
		return models.VersionMeta{}, nil, fmt.Errorf("%w: payload of %s is missing", ErrSnapshotNotFound, stored.VersionID)
	}
	if err != nil {
		return models.VersionMeta{}, nil, fmt.Errorf("read snapshot blob: %w", err)
	}

	if err = utils.VerifyChecksum(payload, stored.Checksum); err != nil {
		logger.FromContext(ctx).Error().Str("func", "snapshotService.load").
			Str("version", stored.VersionID).Msg("stored snapshot payload is corrupt")
		return models.VersionMeta{}, nil, fmt.Errorf("%w: stored payload of %s", ErrChecksumMismatch, stored.VersionID)
	}

	return stored.Meta(), payload, nil
}

func (s *snapshotService) validatePayload(ctx context.Context, payload []byte) error {
	n, err := snappy.DecodedLen(payload)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	if n > s.maxSize*maxExpansion {
		return ErrSnapshotTooLarge
	}

	raw, err := snappy.Decode(nil, payload)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}

	var snapshot models.Snapshot
	if err = json.Unmarshal(raw, &snapshot); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	if err = s.validator.Validate(ctx, snapshot); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	return nil
}

func blobKey(tenantID, versionID string) string {
	return tenantID + "/" + versionID + ".snappy"
}

func mapSnapshotError(err error) error {
	if errors.Is(err, store.ErrSnapshotNotFound) {
		return ErrSnapshotNotFound
	}
	return fmt.Errorf("snapshot repository: %w", err)
}

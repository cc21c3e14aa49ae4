// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-desk-sync/internal/config"
	"github.com/MKhiriev/go-desk-sync/internal/logger"
)

// Storages groups the server repositories.
type Storages struct {
	Documents DocumentRepository
	Snapshots SnapshotRepository
	Blobs     BlobStore

	db *DB
}

// NewStorages connects to Postgres, applies migrations and selects the
// snapshot blob backend.
func NewStorages(ctx context.Context, cfg *config.ServerConfig, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	blobs, err := newBlobStore(ctx, db, cfg.Archive, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Storages{
		Documents: NewDocumentRepository(db, logger),
		Snapshots: NewSnapshotRepository(db, logger),
		Blobs:     blobs,
		db:        db,
	}, nil
}

func newBlobStore(ctx context.Context, db *DB, cfg config.Archive, logger *logger.Logger) (BlobStore, error) {
	switch cfg.Backend {
	case config.ArchiveBackendS3:
		blobs, err := NewS3BlobStore(ctx, cfg.S3, logger)
		if err != nil {
			return nil, fmt.Errorf("s3 archive error: %w", err)
		}
		return blobs, nil
	default:
		return NewDBBlobStore(db), nil
	}
}

// Close releases the database connection.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

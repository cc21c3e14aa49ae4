// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-desk-sync/internal/config"
	"github.com/MKhiriev/go-desk-sync/internal/logger"
)

// ClientStorages groups the client-side storage into a single value that can
// be passed to the service layer.
type ClientStorages struct {
	// LocalStore holds collections, settings and engine bookkeeping.
	LocalStore LocalStore

	closer func() error
}

// NewClientStorages opens the Local Store selected by cfg:
//  1. a SQLite database when cfg.DSN is set (migrated on open);
//  2. otherwise a JSON file at cfg.LocalFile.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	if cfg.DSN != "" {
		db, err := NewConnectSQLite(ctx, cfg.DSN, logger)
		if err != nil {
			return nil, fmt.Errorf("sqlite connection error: %w", err)
		}

		if err := db.Migrate(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}

		return &ClientStorages{
			LocalStore: NewSQLiteLocalStore(db, logger),
			closer:     db.Close,
		}, nil
	}

	fileStore, err := NewFileLocalStore(cfg.LocalFile)
	if err != nil {
		return nil, fmt.Errorf("file store error: %w", err)
	}

	return &ClientStorages{LocalStore: fileStore}, nil
}

// Close releases the underlying database connection, if any.
func (s *ClientStorages) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-desk-sync/internal/logger"
)

// dbBlobStore keeps snapshot payloads in the "snapshot_blobs" table.
type dbBlobStore struct {
	*DB
}

// NewDBBlobStore returns a [BlobStore] over the server database.
func NewDBBlobStore(db *DB) BlobStore {
	return &dbBlobStore{DB: db}
}

func (s *dbBlobStore) Put(ctx context.Context, key string, data []byte) error {
	query, args, err := s.builder.Insert(snapshotBlobsTable).
		Columns("blob_key", "data").
		Values(key, data).
		Suffix("ON CONFLICT (blob_key) DO UPDATE SET data = EXCLUDED.data").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = withRetry(ctx, s.errorClassificator, func() error {
		_, execErr := s.DB.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "dbBlobStore.Put").Str("blob_key", key).Msg("failed to store blob")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (s *dbBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	query, args, err := s.builder.Select("data").From(snapshotBlobsTable).Where(sq.Eq{"blob_key": key}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var data []byte
	err = s.DB.QueryRowContext(ctx, query, args...).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "dbBlobStore.Get").Str("blob_key", key).Msg("failed to read blob")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return data, nil
}

func (s *dbBlobStore) Delete(ctx context.Context, key string) error {
	query, args, err := s.builder.Delete(snapshotBlobsTable).Where(sq.Eq{"blob_key": key}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.DB.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "dbBlobStore.Delete").Str("blob_key", key).Msg("failed to delete blob")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

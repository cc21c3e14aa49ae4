// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-desk-sync/internal/logger"
)

const kvTable = "kv"

// sqliteLocalStore is the [LocalStore] backed by the "kv" table of the
// client SQLite database.
type sqliteLocalStore struct {
	*DB
	logger *logger.Logger
}

// NewSQLiteLocalStore wraps an already migrated SQLite connection.
func NewSQLiteLocalStore(db *DB, logger *logger.Logger) LocalStore {
	return &sqliteLocalStore{DB: db, logger: logger}
}

func (s *sqliteLocalStore) Get(ctx context.Context, key string) ([]byte, error) {
	log := logger.FromContext(ctx)

	query, args, err := s.builder.Select("value").From(kvTable).Where("key = ?", key).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value []byte
	if err = s.DB.QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		log.Err(err).Str("func", "sqliteLocalStore.Get").Str("key", key).Msg("failed to read local value")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return value, nil
}

func (s *sqliteLocalStore) Set(ctx context.Context, key string, value []byte) error {
	log := logger.FromContext(ctx)

	query, args, err := s.builder.
		Insert(kvTable).
		Columns("key", "value", "updated_at").
		Values(key, value, time.Now().UTC()).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "sqliteLocalStore.Set").Str("key", key).Msg("failed to write local value")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sqliteLocalStore) Keys(ctx context.Context) ([]string, error) {
	log := logger.FromContext(ctx)

	query, args, err := s.builder.Select("key").From(kvTable).OrderBy("key").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "sqliteLocalStore.Keys").Msg("failed to list local keys")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	keys := make([]string, 0, 8)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return keys, nil
}

func (s *sqliteLocalStore) Clear(ctx context.Context) error {
	query, args, err := s.builder.Delete(kvTable).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.DB.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "sqliteLocalStore.Clear").Msg("failed to clear local store")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

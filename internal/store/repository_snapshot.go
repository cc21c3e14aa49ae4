// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"

	"github.com/MKhiriev/go-desk-sync/internal/logger"
	"github.com/MKhiriev/go-desk-sync/models"
)

type snapshotRepository struct {
	*DB
	logger *logger.Logger
}

// NewSnapshotRepository constructs a [SnapshotRepository] backed by db.
func NewSnapshotRepository(db *DB, logger *logger.Logger) SnapshotRepository {
	logger.Debug().Msg("creating snapshot repository")
	return &snapshotRepository{DB: db, logger: logger}
}

func (r *snapshotRepository) Create(ctx context.Context, snapshot models.StoredSnapshot) error {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertSnapshotQuery(r.builder, snapshot)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = withRetry(ctx, r.errorClassificator, func() error {
		_, execErr := r.DB.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).
			Str("func", "snapshotRepository.Create").
			Str("tenant_id", snapshot.TenantID).
			Str("version_id", snapshot.VersionID).
			Msg("failed to insert snapshot")

		if postgresError(err) == pgerrcode.UniqueViolation {
			return ErrSnapshotExists
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *snapshotRepository) Latest(ctx context.Context, tenantID string) (models.StoredSnapshot, error) {
	query, args, err := buildSelectSnapshotsQuery(r.builder, tenantID).Limit(1).ToSql()
	if err != nil {
		return models.StoredSnapshot{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryOne(ctx, "snapshotRepository.Latest", tenantID, query, args)
}

func (r *snapshotRepository) Get(ctx context.Context, tenantID, versionID string) (models.StoredSnapshot, error) {
	query, args, err := buildSelectSnapshotsQuery(r.builder, tenantID).
		Where("version_id = ?", versionID).
		ToSql()
	if err != nil {
		return models.StoredSnapshot{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryOne(ctx, "snapshotRepository.Get", tenantID, query, args)
}

func (r *snapshotRepository) Delete(ctx context.Context, tenantID, versionID string) (models.StoredSnapshot, error) {
	query, args, err := buildDeleteSnapshotQuery(r.builder, tenantID, versionID)
	if err != nil {
		return models.StoredSnapshot{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryOne(ctx, "snapshotRepository.Delete", tenantID, query, args)
}

func (r *snapshotRepository) List(ctx context.Context, tenantID string) ([]models.StoredSnapshot, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectSnapshotsQuery(r.builder, tenantID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "snapshotRepository.List").Str("tenant_id", tenantID).Msg("failed to list snapshots")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	snapshots := make([]models.StoredSnapshot, 0, 16)
	for rows.Next() {
		s := models.StoredSnapshot{TenantID: tenantID}
		if err := rows.Scan(&s.VersionID, &s.CreatedAt, &s.Size, &s.Checksum, &s.BlobKey); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return snapshots, nil
}

func (r *snapshotRepository) queryOne(ctx context.Context, funcName, tenantID, query string, args []any) (models.StoredSnapshot, error) {
	s := models.StoredSnapshot{TenantID: tenantID}
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(&s.VersionID, &s.CreatedAt, &s.Size, &s.Checksum, &s.BlobKey)
	if errors.Is(err, sql.ErrNoRows) {
		return models.StoredSnapshot{}, ErrSnapshotNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Str("tenant_id", tenantID).Msg("failed to read snapshot")
		return models.StoredSnapshot{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return s, nil
}

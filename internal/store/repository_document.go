// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-desk-sync/internal/logger"
	"github.com/MKhiriev/go-desk-sync/models"
)

// documentRepository is the PostgreSQL-backed implementation of
// [DocumentRepository] over the "documents" table.
type documentRepository struct {
	*DB
	logger *logger.Logger
}

// NewDocumentRepository constructs a [DocumentRepository] backed by db.
func NewDocumentRepository(db *DB, logger *logger.Logger) DocumentRepository {
	logger.Debug().Msg("creating document repository")
	return &documentRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *documentRepository) Upsert(ctx context.Context, doc models.StoredDocument) (models.StoredDocument, bool, error) {
	log := logger.FromContext(ctx)

	if len(doc.Data) == 0 {
		doc.Data = []byte("{}")
	}
	doc.Deleted = false

	query, args, err := buildUpsertDocumentQuery(r.builder, doc)
	if err != nil {
		return models.StoredDocument{}, false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var inserted bool
	err = withRetry(ctx, r.errorClassificator, func() error {
		return r.DB.QueryRowContext(ctx, query, args...).Scan(&inserted, &doc.UpdatedAt)
	})
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.Upsert").
			Str("tenant_id", doc.TenantID).
			Str("collection", doc.Collection).
			Str("id", doc.ID).
			Str("pg_code", postgresError(err)).
			Msg("failed to upsert document")
		return models.StoredDocument{}, false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	doc.UpdatedAt = doc.UpdatedAt.UTC()
	return doc, inserted, nil
}

func (r *documentRepository) Delete(ctx context.Context, tenantID, collection, id, originSession string) (models.StoredDocument, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildTombstoneDocumentQuery(r.builder, tenantID, collection, id, originSession)
	if err != nil {
		return models.StoredDocument{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var doc models.StoredDocument
	err = withRetry(ctx, r.errorClassificator, func() error {
		var scanErr error
		doc, scanErr = scanDocument(r.DB.QueryRowContext(ctx, query, args...), tenantID)
		return scanErr
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.StoredDocument{}, ErrDocumentNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.Delete").
			Str("tenant_id", tenantID).
			Str("collection", collection).
			Str("id", id).
			Msg("failed to tombstone document")
		return models.StoredDocument{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return doc, nil
}

func (r *documentRepository) ChangesSince(ctx context.Context, tenantID string, collections []string, since *models.ChangeCursor, limit uint64) ([]models.StoredDocument, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildChangesSinceQuery(r.builder, tenantID, collections, since, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.ChangesSince").
			Str("tenant_id", tenantID).
			Msg("failed to execute query for changes")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	docs := make([]models.StoredDocument, 0, 32)
	for rows.Next() {
		doc, err := scanDocument(rows, tenantID)
		if err != nil {
			log.Err(err).
				Str("func", "documentRepository.ChangesSince").
				Str("tenant_id", tenantID).
				Msg("failed to scan document row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).
			Str("func", "documentRepository.ChangesSince").
			Str("tenant_id", tenantID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return docs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanDocument reads one row selected with documentColumns. jsonb is scanned
// through []byte because drivers may hand it over as a string.
func scanDocument(row rowScanner, tenantID string) (models.StoredDocument, error) {
	doc := models.StoredDocument{TenantID: tenantID}
	var data []byte
	if err := row.Scan(&doc.Collection, &doc.ID, &data, &doc.OriginSession, &doc.UpdatedAt, &doc.Deleted); err != nil {
		return models.StoredDocument{}, err
	}
	doc.Data = data
	return doc, nil
}

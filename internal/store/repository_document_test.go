// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-desk-sync/internal/logger"
	"github.com/MKhiriev/go-desk-sync/migrations"
	"github.com/MKhiriev/go-desk-sync/models"
)

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// newDBFromSQL wraps a sqlmock connection as a Postgres DB.
func newDBFromSQL(db *sql.DB) *DB {
	return newDB(db, migrations.DialectPostgres, logger.Nop())
}

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestDocumentRepo(t *testing.T) (*documentRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newTestDB(t)
	repo := NewDocumentRepository(newDBFromSQL(db), logger.Nop()).(*documentRepository)
	return repo, mock
}

var documentRowColumns = []string{"collection", "id", "data", "origin_session", "updated_at", "deleted"}

// ── Upsert ───────────────────────────────────────────────────────────────────

func TestDocumentRepository_Upsert_Inserted(t *testing.T) {
	repo, mock := newTestDocumentRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO documents (tenant_id,collection,id,data,origin_session,updated_at,deleted) VALUES ($1,$2,$3,$4,$5,clock_timestamp(),$6)")).
		WithArgs("acme", "customers", "C-1", []byte(`{"id":"C-1"}`), "session-a", false).
		WillReturnRows(sqlmock.NewRows([]string{"inserted", "updated_at"}).AddRow(true, fixedNow))

	doc, inserted, err := repo.Upsert(testContext(), models.StoredDocument{
		TenantID:      "acme",
		Collection:    "customers",
		ID:            "C-1",
		Data:          []byte(`{"id":"C-1"}`),
		OriginSession: "session-a",
	})

	require.NoError(t, err)
	assert.True(t, inserted)
	assert.Equal(t, fixedNow, doc.UpdatedAt)
	assert.False(t, doc.Deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepository_Upsert_EmptyDataBecomesObject(t *testing.T) {
	repo, mock := newTestDocumentRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (tenant_id, collection, id) DO UPDATE")).
		WithArgs("acme", "customers", "C-1", []byte(`{}`), "", false).
		WillReturnRows(sqlmock.NewRows([]string{"inserted", "updated_at"}).AddRow(false, fixedNow))

	_, inserted, err := repo.Upsert(testContext(), models.StoredDocument{TenantID: "acme", Collection: "customers", ID: "C-1"})
	require.NoError(t, err)
	assert.False(t, inserted)
}

func TestDocumentRepository_Upsert_RetriesSerializationFailure(t *testing.T) {
	restore := retryDelays
	retryDelays = []time.Duration{time.Millisecond}
	t.Cleanup(func() { retryDelays = restore })

	repo, mock := newTestDocumentRepo(t)

	mock.ExpectQuery("INSERT INTO documents").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.SerializationFailure})
	mock.ExpectQuery("INSERT INTO documents").
		WillReturnRows(sqlmock.NewRows([]string{"inserted", "updated_at"}).AddRow(true, fixedNow))

	_, _, err := repo.Upsert(testContext(), models.StoredDocument{TenantID: "acme", Collection: "c", ID: "1"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepository_Upsert_NonRetryableFails(t *testing.T) {
	repo, mock := newTestDocumentRepo(t)

	mock.ExpectQuery("INSERT INTO documents").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.CheckViolation})

	_, _, err := repo.Upsert(testContext(), models.StoredDocument{TenantID: "acme", Collection: "c", ID: "1"})
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ── Delete ───────────────────────────────────────────────────────────────────

func TestDocumentRepository_Delete_Tombstones(t *testing.T) {
	repo, mock := newTestDocumentRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE documents SET deleted = $1, origin_session = $2, updated_at = clock_timestamp()")).
		WithArgs(true, "session-b", "customers", false, "C-1", "acme").
		WillReturnRows(sqlmock.NewRows(documentRowColumns).
			AddRow("customers", "C-1", []byte(`{"id":"C-1"}`), "session-b", fixedNow, true))

	doc, err := repo.Delete(testContext(), "acme", "customers", "C-1", "session-b")
	require.NoError(t, err)
	assert.True(t, doc.Deleted)
	assert.Equal(t, "acme", doc.TenantID)
	assert.Equal(t, "session-b", doc.OriginSession)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepository_Delete_Missing(t *testing.T) {
	repo, mock := newTestDocumentRepo(t)

	mock.ExpectQuery("UPDATE documents").WillReturnRows(sqlmock.NewRows(documentRowColumns))

	_, err := repo.Delete(testContext(), "acme", "customers", "nope", "s")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

// ── ChangesSince ─────────────────────────────────────────────────────────────

func TestDocumentRepository_ChangesSince_WithCursor(t *testing.T) {
	repo, mock := newTestDocumentRepo(t)
	since := models.ChangeCursor{At: fixedNow.Add(-time.Hour), Collection: "customers", ID: "C-0"}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT collection, id, data, origin_session, updated_at, deleted FROM documents WHERE tenant_id = $1 AND collection IN ($2,$3) AND (updated_at, collection COLLATE "C", id COLLATE "C") > ($4, $5, $6) ORDER BY updated_at, collection COLLATE "C", id COLLATE "C" LIMIT 100`)).
		WithArgs("acme", "customers", "invoices", since.At, "customers", "C-0").
		WillReturnRows(sqlmock.NewRows(documentRowColumns).
			AddRow("customers", "C-1", []byte(`{"id":"C-1"}`), "s1", fixedNow, false).
			AddRow("invoices", "I-9", []byte(`{}`), "s2", fixedNow, true))

	docs, err := repo.ChangesSince(testContext(), "acme", []string{"customers", "invoices"}, &since, 100)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "C-1", docs[0].ID)
	assert.JSONEq(t, `{"id":"C-1"}`, string(docs[0].Data))
	assert.True(t, docs[1].Deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepository_ChangesSince_FullPullSkipsTombstones(t *testing.T) {
	repo, mock := newTestDocumentRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE tenant_id = $1 AND deleted = $2 ORDER BY")).
		WithArgs("acme", false).
		WillReturnRows(sqlmock.NewRows(documentRowColumns))

	docs, err := repo.ChangesSince(testContext(), "acme", nil, nil, 0)
	require.NoError(t, err)
	assert.Empty(t, docs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepository_ChangesSince_QueryError(t *testing.T) {
	repo, mock := newTestDocumentRepo(t)

	mock.ExpectQuery("SELECT").WillReturnError(errors.New("boom"))

	_, err := repo.ChangesSince(testContext(), "acme", nil, nil, 0)
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

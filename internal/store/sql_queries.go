// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-desk-sync/models"
)

const (
	documentsTable     = "documents"
	snapshotsTable     = "snapshots"
	snapshotBlobsTable = "snapshot_blobs"
)

var documentColumns = []string{"collection", "id", "data", "origin_session", "updated_at", "deleted"}

var snapshotColumns = []string{"version_id", "created_at", "size", "checksum", "blob_key"}

// buildUpsertDocumentQuery stamps the row with clock_timestamp(). On conflict
// the stamp is taken again after the row lock is held, so the stored order of
// writes to one document matches their commit order.
func buildUpsertDocumentQuery(b sq.StatementBuilderType, doc models.StoredDocument) (string, []any, error) {
	return b.Insert(documentsTable).
		Columns("tenant_id", "collection", "id", "data", "origin_session", "updated_at", "deleted").
		Values(doc.TenantID, doc.Collection, doc.ID, []byte(doc.Data), doc.OriginSession, sq.Expr("clock_timestamp()"), false).
		Suffix(`ON CONFLICT (tenant_id, collection, id) DO UPDATE SET
			data = EXCLUDED.data,
			origin_session = EXCLUDED.origin_session,
			updated_at = clock_timestamp(),
			deleted = FALSE
		RETURNING (xmax = 0) AS inserted, updated_at`).
		ToSql()
}

func buildTombstoneDocumentQuery(b sq.StatementBuilderType, tenantID, collection, id, originSession string) (string, []any, error) {
	return b.Update(documentsTable).
		Set("deleted", true).
		Set("origin_session", originSession).
		Set("updated_at", sq.Expr("clock_timestamp()")).
		Where(sq.Eq{"tenant_id": tenantID, "collection": collection, "id": id, "deleted": false}).
		Suffix("RETURNING collection, id, data, origin_session, updated_at, deleted").
		ToSql()
}

// buildChangesSinceQuery pages through the change log in (updated_at,
// collection, id) order. Text columns compare with the "C" collation so the
// order matches byte-wise string comparison on the client.
func buildChangesSinceQuery(b sq.StatementBuilderType, tenantID string, collections []string, since *models.ChangeCursor, limit uint64) (string, []any, error) {
	query := b.Select(documentColumns...).
		From(documentsTable).
		Where(sq.Eq{"tenant_id": tenantID})

	if len(collections) > 0 {
		query = query.Where(sq.Eq{"collection": collections})
	}

	if since != nil {
		query = query.Where(sq.Expr(`(updated_at, collection COLLATE "C", id COLLATE "C") > (?, ?, ?)`,
			since.At, since.Collection, since.ID))
	} else {
		query = query.Where(sq.Eq{"deleted": false})
	}

	query = query.OrderBy("updated_at", `collection COLLATE "C"`, `id COLLATE "C"`)
	if limit > 0 {
		query = query.Limit(limit)
	}

	return query.ToSql()
}

func buildInsertSnapshotQuery(b sq.StatementBuilderType, s models.StoredSnapshot) (string, []any, error) {
	return b.Insert(snapshotsTable).
		Columns("tenant_id", "version_id", "created_at", "size", "checksum", "blob_key").
		Values(s.TenantID, s.VersionID, s.CreatedAt, s.Size, s.Checksum, s.BlobKey).
		ToSql()
}

func buildSelectSnapshotsQuery(b sq.StatementBuilderType, tenantID string) sq.SelectBuilder {
	return b.Select(snapshotColumns...).
		From(snapshotsTable).
		Where(sq.Eq{"tenant_id": tenantID}).
		OrderBy("created_at DESC", "version_id DESC")
}

func buildDeleteSnapshotQuery(b sq.StatementBuilderType, tenantID, versionID string) (string, []any, error) {
	return b.Delete(snapshotsTable).
		Where(sq.Eq{"tenant_id": tenantID, "version_id": versionID}).
		Suffix("RETURNING version_id, created_at, size, checksum, blob_key").
		ToSql()
}

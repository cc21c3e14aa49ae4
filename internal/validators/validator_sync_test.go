// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/MKhiriev/go-desk-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func validDocument() models.StoredDocument {
	return models.StoredDocument{
		TenantID:      "tenant-1",
		Collection:    "clients",
		ID:            "C-1",
		Data:          json.RawMessage(`{"id":"C-1","name":"Acme"}`),
		OriginSession: "session-a",
	}
}

func validSnapshot() models.Snapshot {
	return models.Snapshot{
		Collections: map[string][]models.Document{
			"clients": {{"id": "C-1"}, {"id": "C-2"}},
			"tickets": {},
		},
	}
}

// ---------------------------------------------------------------------------
// TestNewSyncValidator
// ---------------------------------------------------------------------------

func TestNewSyncValidator(t *testing.T) {
	v := NewSyncValidator()
	require.NotNil(t, v)
	_, ok := v.(*SyncValidator)
	assert.True(t, ok)
}

func TestSyncValidator_UnsupportedType(t *testing.T) {
	err := NewSyncValidator().Validate(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

// ---------------------------------------------------------------------------
// Documents
// ---------------------------------------------------------------------------

func TestSyncValidator_Document(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *models.StoredDocument)
		fields  []string
		wantErr error
	}{
		{name: "valid", mutate: func(*models.StoredDocument) {}},
		{name: "valid pointer", mutate: func(*models.StoredDocument) {}},
		{name: "no tenant", mutate: func(d *models.StoredDocument) { d.TenantID = "" }, wantErr: ErrEmptyTenantID},
		{name: "empty collection", mutate: func(d *models.StoredDocument) { d.Collection = "" }, wantErr: ErrInvalidCollection},
		{name: "collection with slash", mutate: func(d *models.StoredDocument) { d.Collection = "a/b" }, wantErr: ErrInvalidCollection},
		{name: "no id", mutate: func(d *models.StoredDocument) { d.ID = "" }, wantErr: ErrEmptyDocumentID},
		{name: "empty data", mutate: func(d *models.StoredDocument) { d.Data = nil }, wantErr: ErrEmptyData},
		{name: "array data", mutate: func(d *models.StoredDocument) { d.Data = json.RawMessage(`[1,2]`) }, wantErr: ErrDataNotObject},
		{name: "broken json", mutate: func(d *models.StoredDocument) { d.Data = json.RawMessage(`{"id":`) }, wantErr: ErrDataNotObject},
		{name: "id mismatch", mutate: func(d *models.StoredDocument) { d.Data = json.RawMessage(`{"id":"C-2"}`) }, wantErr: ErrDocumentIDMismatch},
		{name: "data without id", mutate: func(d *models.StoredDocument) { d.Data = json.RawMessage(`{"name":"x"}`) }},
		{name: "numeric id", mutate: func(d *models.StoredDocument) {
			d.ID = "7"
			d.Data = json.RawMessage(`{"id":7}`)
		}},
		{name: "no session", mutate: func(d *models.StoredDocument) { d.OriginSession = "" }, wantErr: ErrEmptySessionID},
		{
			name:   "scoped fields skip session",
			mutate: func(d *models.StoredDocument) { d.OriginSession = "" },
			fields: []string{FieldTenantID, FieldCollection, FieldDocumentID},
		},
		{
			name:    "unknown field",
			mutate:  func(*models.StoredDocument) {},
			fields:  []string{"colour"},
			wantErr: ErrUnknownField,
		},
	}

	v := NewSyncValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validDocument()
			tt.mutate(&doc)

			var err error
			if tt.name == "valid pointer" {
				err = v.Validate(context.Background(), &doc, tt.fields...)
			} else {
				err = v.Validate(context.Background(), doc, tt.fields...)
			}

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

// ---------------------------------------------------------------------------
// Snapshots
// ---------------------------------------------------------------------------

func TestSyncValidator_Snapshot(t *testing.T) {
	v := NewSyncValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, validSnapshot()))

	empty := models.Snapshot{Collections: map[string][]models.Document{}}
	assert.NoError(t, v.Validate(ctx, &empty))

	assert.ErrorIs(t, v.Validate(ctx, models.Snapshot{}), ErrNilCollections)

	dup := validSnapshot()
	dup.Collections["clients"] = append(dup.Collections["clients"], models.Document{"id": "C-1"})
	assert.ErrorIs(t, v.Validate(ctx, dup), ErrDuplicateDocumentID)

	noID := validSnapshot()
	noID.Collections["tickets"] = []models.Document{{"title": "x"}}
	assert.ErrorIs(t, v.Validate(ctx, noID), ErrEmptyDocumentID)

	badName := validSnapshot()
	badName.Collections["bad name"] = nil
	assert.ErrorIs(t, v.Validate(ctx, badName), ErrInvalidCollection)

	assert.ErrorIs(t, v.Validate(ctx, validSnapshot(), FieldVersionID), ErrEmptyVersionID)
}

func TestSyncValidator_StoredSnapshot(t *testing.T) {
	v := NewSyncValidator()
	ctx := context.Background()

	valid := models.StoredSnapshot{TenantID: "t", VersionID: "v1", Checksum: "abc", BlobKey: "t/v1"}
	assert.NoError(t, v.Validate(ctx, valid))

	noBlob := valid
	noBlob.BlobKey = ""
	assert.ErrorIs(t, v.Validate(ctx, &noBlob), ErrInvalidSnapshotField)

	noVersion := valid
	noVersion.VersionID = ""
	assert.ErrorIs(t, v.Validate(ctx, noVersion), ErrEmptyVersionID)
}

// ---------------------------------------------------------------------------
// Scopes
// ---------------------------------------------------------------------------

func TestSyncValidator_Scope(t *testing.T) {
	v := NewSyncValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.SubscriptionScope{}))
	assert.NoError(t, v.Validate(ctx, models.SubscriptionScope{Collections: []string{"clients", "tickets_2"}}))
	assert.ErrorIs(t, v.Validate(ctx, &models.SubscriptionScope{Collections: []string{"clients", ""}}), ErrInvalidCollection)
}

func TestIsValidCollectionName(t *testing.T) {
	assert.True(t, IsValidCollectionName("service-reports"))
	assert.False(t, IsValidCollectionName("../etc"))
	assert.False(t, IsValidCollectionName(string(make([]byte, 65))))
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/MKhiriev/go-desk-sync/models"
)

const (
	FieldTenantID      = "tenant_id"
	FieldCollection    = "collection"
	FieldDocumentID    = "id"
	FieldData          = "data"
	FieldOriginSession = "origin_session"

	FieldCollections = "collections"
	FieldVersionID   = "version_id"
	FieldChecksum    = "checksum"
	FieldBlobKey     = "blob_key"
)

var collectionNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// SyncValidator checks the documents, snapshots and subscription scopes that
// reach the remote document service.
type SyncValidator struct {
}

func NewSyncValidator() Validator {
	return &SyncValidator{}
}

func (v *SyncValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.StoredDocument:
		return v.validateDocument(ctx, value, fields...)
	case *models.StoredDocument:
		return v.validateDocument(ctx, *value, fields...)

	case models.Snapshot:
		return v.validateSnapshot(ctx, value, fields...)
	case *models.Snapshot:
		return v.validateSnapshot(ctx, *value, fields...)

	case models.StoredSnapshot:
		return v.validateStoredSnapshot(ctx, value, fields...)
	case *models.StoredSnapshot:
		return v.validateStoredSnapshot(ctx, *value, fields...)

	case models.SubscriptionScope:
		return v.validateScope(ctx, value)
	case *models.SubscriptionScope:
		return v.validateScope(ctx, *value)

	default:
		return ErrUnsupportedType
	}
}

// IsValidCollectionName reports whether name can be used as a collection.
func IsValidCollectionName(name string) bool {
	return collectionNamePattern.MatchString(name)
}

func (v *SyncValidator) validateDocument(_ context.Context, doc models.StoredDocument, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTenantID, FieldCollection, FieldDocumentID, FieldData, FieldOriginSession}
	}

	for _, f := range fields {
		switch f {
		case FieldTenantID:
			if doc.TenantID == "" {
				return ErrEmptyTenantID
			}
		case FieldCollection:
			if !IsValidCollectionName(doc.Collection) {
				return fmt.Errorf("%w: %q", ErrInvalidCollection, doc.Collection)
			}
		case FieldDocumentID:
			if doc.ID == "" {
				return ErrEmptyDocumentID
			}
		case FieldData:
			if err := validateDocumentData(doc.Data, doc.ID); err != nil {
				return err
			}
		case FieldOriginSession:
			if doc.OriginSession == "" {
				return ErrEmptySessionID
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	return nil
}

// validateDocumentData requires a JSON object whose "id", when present,
// equals id.
func validateDocumentData(data json.RawMessage, id string) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return ErrEmptyData
	}
	if trimmed[0] != '{' {
		return ErrDataNotObject
	}

	var doc models.Document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return fmt.Errorf("%w: %w", ErrDataNotObject, err)
	}
	if _, ok := doc[models.IDField]; ok && doc.RecordID() != id {
		return ErrDocumentIDMismatch
	}
	return nil
}

func (v *SyncValidator) validateSnapshot(_ context.Context, s models.Snapshot, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldCollections}
	}

	for _, f := range fields {
		switch f {
		case FieldCollections:
			if s.Collections == nil {
				return ErrNilCollections
			}
			for name, docs := range s.Collections {
				if !IsValidCollectionName(name) {
					return fmt.Errorf("%w: %q", ErrInvalidCollection, name)
				}
				seen := make(map[string]struct{}, len(docs))
				for _, doc := range docs {
					id := doc.RecordID()
					if id == "" {
						return fmt.Errorf("%w: collection %q", ErrEmptyDocumentID, name)
					}
					if _, dup := seen[id]; dup {
						return fmt.Errorf("%w: %s/%s", ErrDuplicateDocumentID, name, id)
					}
					seen[id] = struct{}{}
				}
			}
		case FieldVersionID:
			if s.VersionID == "" {
				return ErrEmptyVersionID
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	return nil
}

func (v *SyncValidator) validateStoredSnapshot(_ context.Context, s models.StoredSnapshot, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTenantID, FieldVersionID, FieldChecksum, FieldBlobKey}
	}

	for _, f := range fields {
		switch f {
		case FieldTenantID:
			if s.TenantID == "" {
				return ErrEmptyTenantID
			}
		case FieldVersionID:
			if s.VersionID == "" {
				return ErrEmptyVersionID
			}
		case FieldChecksum:
			if s.Checksum == "" {
				return fmt.Errorf("%w: checksum", ErrInvalidSnapshotField)
			}
		case FieldBlobKey:
			if s.BlobKey == "" {
				return fmt.Errorf("%w: blob key", ErrInvalidSnapshotField)
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	return nil
}

func (v *SyncValidator) validateScope(_ context.Context, scope models.SubscriptionScope) error {
	for _, name := range scope.Collections {
		if !IsValidCollectionName(name) {
			return fmt.Errorf("%w: %q", ErrInvalidCollection, name)
		}
	}
	return nil
}

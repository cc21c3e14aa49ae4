// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-desk-sync/internal/logger"
	"github.com/MKhiriev/go-desk-sync/internal/store"
	"github.com/MKhiriev/go-desk-sync/models"
)

// maxChangesPerPull bounds one changes page. When More is set, clients pull
// again from the cursor of the last change they received.
const maxChangesPerPull = 5000

type documentService struct {
	documentRepository store.DocumentRepository
	hub                *ChangeHub

	logger *logger.Logger
}

func NewDocumentService(documentRepository store.DocumentRepository, hub *ChangeHub, logger *logger.Logger) DocumentService {
	return &documentService{
		documentRepository: documentRepository,
		hub:                hub,
		logger:             logger,
	}
}

func (d *documentService) Save(ctx context.Context, doc models.StoredDocument) (models.ChangeNotification, error) {
	stored, inserted, err := d.documentRepository.Upsert(ctx, doc)
	if err != nil {
		return models.ChangeNotification{}, fmt.Errorf("save document: %w", err)
	}

	action := models.DeltaUpdate
	if inserted {
		action = models.DeltaInsert
	}

	n, err := notificationFromStored(stored, action)
	if err != nil {
		return models.ChangeNotification{}, err
	}
	d.hub.Publish(doc.TenantID, n)

	return n, nil
}

func (d *documentService) Delete(ctx context.Context, tenantID, collection, id, sessionID string) error {
	stored, err := d.documentRepository.Delete(ctx, tenantID, collection, id, sessionID)
	if errors.Is(err, store.ErrDocumentNotFound) {
		logger.FromContext(ctx).Debug().Str("func", "documentService.Delete").
			Str("collection", collection).Str("id", id).Msg("delete of missing document")
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	n, err := notificationFromStored(stored, models.DeltaDelete)
	if err != nil {
		return err
	}
	d.hub.Publish(tenantID, n)

	return nil
}

func (d *documentService) ChangesSince(ctx context.Context, tenantID string, scope models.SubscriptionScope, since *models.ChangeCursor) (models.ChangeSet, error) {
	// one extra row tells whether another page follows
	rows, err := d.documentRepository.ChangesSince(ctx, tenantID, scope.Collections, since, maxChangesPerPull+1)
	if err != nil {
		return models.ChangeSet{}, fmt.Errorf("changes since: %w", err)
	}

	more := len(rows) > maxChangesPerPull
	if more {
		rows = rows[:maxChangesPerPull]
	}

	changes := make([]models.ChangeNotification, 0, len(rows))
	for _, row := range rows {
		action := models.DeltaUpdate
		switch {
		case row.Deleted:
			action = models.DeltaDelete
		case since == nil:
			action = models.DeltaInsert
		}

		n, err := notificationFromStored(row, action)
		if err != nil {
			return models.ChangeSet{}, err
		}
		changes = append(changes, n)
	}

	return models.ChangeSet{Changes: changes, Length: len(changes), More: more}, nil
}

func (d *documentService) Subscribe(_ context.Context, tenantID string, scope models.SubscriptionScope) (*Subscription, error) {
	return d.hub.Subscribe(tenantID, scope), nil
}

// notificationFromStored converts a repository row into the wire change.
// Tombstones carry no data.
func notificationFromStored(doc models.StoredDocument, action models.DeltaAction) (models.ChangeNotification, error) {
	change := models.Delta{Collection: doc.Collection, Action: action, ID: doc.ID}

	if action != models.DeltaDelete && len(doc.Data) > 0 {
		var data models.Document
		if err := json.Unmarshal(doc.Data, &data); err != nil {
			return models.ChangeNotification{}, fmt.Errorf("decode stored document %s/%s: %w", doc.Collection, doc.ID, err)
		}
		change.Data = data
	}

	return models.ChangeNotification{
		Origin: doc.OriginSession,
		Change: change,
		At:     doc.UpdatedAt,
	}, nil
}

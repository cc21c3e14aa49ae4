// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-desk-sync/internal/validators"
	"github.com/MKhiriev/go-desk-sync/models"
)

// DocumentValidationService checks every request before the wrapped
// DocumentService sees it.
type DocumentValidationService struct {
	inner     DocumentService
	validator validators.Validator
}

func NewDocumentValidationService() DocumentServiceWrapper {
	return &DocumentValidationService{
		validator: validators.NewSyncValidator(),
	}
}

func (v *DocumentValidationService) Save(ctx context.Context, doc models.StoredDocument) (models.ChangeNotification, error) {
	if err := v.validator.Validate(ctx, doc); err != nil {
		return models.ChangeNotification{}, validationError(err)
	}
	return v.inner.Save(ctx, doc)
}

func (v *DocumentValidationService) Delete(ctx context.Context, tenantID, collection, id, sessionID string) error {
	doc := models.StoredDocument{TenantID: tenantID, Collection: collection, ID: id, OriginSession: sessionID}
	err := v.validator.Validate(ctx, doc,
		validators.FieldTenantID, validators.FieldCollection, validators.FieldDocumentID, validators.FieldOriginSession)
	if err != nil {
		return validationError(err)
	}
	return v.inner.Delete(ctx, tenantID, collection, id, sessionID)
}

func (v *DocumentValidationService) ChangesSince(ctx context.Context, tenantID string, scope models.SubscriptionScope, since *models.ChangeCursor) (models.ChangeSet, error) {
	if tenantID == "" {
		return models.ChangeSet{}, ErrNoTenantID
	}
	if err := v.validator.Validate(ctx, scope); err != nil {
		return models.ChangeSet{}, validationError(err)
	}
	return v.inner.ChangesSince(ctx, tenantID, scope, since)
}

func (v *DocumentValidationService) Subscribe(ctx context.Context, tenantID string, scope models.SubscriptionScope) (*Subscription, error) {
	if tenantID == "" {
		return nil, ErrNoTenantID
	}
	if err := v.validator.Validate(ctx, scope); err != nil {
		return nil, validationError(err)
	}
	return v.inner.Subscribe(ctx, tenantID, scope)
}

func (v *DocumentValidationService) Wrap(wrapped DocumentService) DocumentService {
	v.inner = wrapped
	return v
}

// validationError maps validator errors to service errors, keeping the
// validator message for the response body.
func validationError(err error) error {
	switch {
	case errors.Is(err, validators.ErrEmptyTenantID):
		return ErrNoTenantID
	case errors.Is(err, validators.ErrDocumentIDMismatch):
		return ErrDocumentIDMismatch
	case errors.Is(err, validators.ErrEmptyDocumentID):
		return fmt.Errorf("%w: %w", ErrMissingDocumentID, err)
	}
	return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
}

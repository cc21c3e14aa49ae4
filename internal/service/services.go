// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"

	"github.com/MKhiriev/go-desk-sync/internal/config"
	"github.com/MKhiriev/go-desk-sync/internal/logger"
	"github.com/MKhiriev/go-desk-sync/internal/store"
)

// Services aggregates the server-side services.
type Services struct {
	AuthService     AuthService
	DocumentService DocumentService
	SnapshotService SnapshotService
	AppInfoService  AppInfoService
	ChangeHub       *ChangeHub
}

func NewServices(storages *store.Storages, cfg *config.ServerConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("app info service: %w", err)
	}

	hub := NewChangeHub(defaultSubscriberBuffer, logger)
	documents := NewDocumentValidationService().Wrap(NewDocumentService(storages.Documents, hub, logger))

	return &Services{
		AuthService:     NewAuthService(cfg.App, logger),
		DocumentService: documents,
		SnapshotService: NewSnapshotService(storages.Snapshots, storages.Blobs, DefaultMaxSnapshotSize, logger),
		AppInfoService:  appInfo,
		ChangeHub:       hub,
	}, nil
}

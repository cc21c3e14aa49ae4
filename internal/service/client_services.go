// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-desk-sync/internal/adapter"
	"github.com/MKhiriev/go-desk-sync/internal/config"
	"github.com/MKhiriev/go-desk-sync/internal/logger"
	"github.com/MKhiriev/go-desk-sync/internal/store"
	"github.com/MKhiriev/go-desk-sync/internal/utils"
)

// ClientServices aggregates the client-side services.
type ClientServices struct {
	SessionID    string
	Engine       *Engine
	Connectivity ClientConnectivityJob
}

// NewClientServices generates the Session Identifier for this process and
// builds the sync engine and the connectivity job around it.
func NewClientServices(ctx context.Context, storages *store.ClientStorages, remote adapter.RemoteDocumentClient, health adapter.HealthChecker, cfg config.ClientSync, logger *logger.Logger) (*ClientServices, error) {
	sessionID := utils.NewSessionID()

	engine, err := NewEngine(ctx, storages.LocalStore, remote, EngineConfig{
		SessionID:   sessionID,
		Collections: cfg.Collections,
		Scope:       cfg.Scope,
		PushTimeout: cfg.PushTimeout,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("client services: %w", err)
	}

	logger.Info().Str("session", sessionID).Strs("collections", cfg.Collections).Msg("client services created")

	return &ClientServices{
		SessionID:    sessionID,
		Engine:       engine,
		Connectivity: NewConnectivityJob(health, engine),
	}, nil
}

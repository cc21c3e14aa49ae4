// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui implements the operator console of the sync client.
package tui

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-desk-sync/internal/logger"
	"github.com/MKhiriev/go-desk-sync/internal/service"
	"github.com/MKhiriev/go-desk-sync/models"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUserQuit = errors.New("user quit")

type TUI struct {
	engine    service.SyncEngine
	sessionID string
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

func New(services *service.ClientServices, buildInfo models.AppBuildInfo, logger *logger.Logger) (*TUI, error) {
	if services == nil || services.Engine == nil {
		return nil, errors.New("tui: client services are not initialized")
	}
	return &TUI{
		engine:    services.Engine,
		sessionID: services.SessionID,
		buildInfo: buildInfo,
		logger:    logger.WithComponent("tui"),
	}, nil
}

// Run shows the console until the operator quits or ctx is cancelled.
func (t *TUI) Run(ctx context.Context) error {
	model := newConsoleModel(ctx, t.engine, t.sessionID, t.buildInfo, t.logger)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if runErr != nil {
		if errors.Is(runErr, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return runErr
	}

	if _, ok := finalModel.(consoleModel); !ok {
		return tea.ErrProgramKilled
	}
	return ErrUserQuit
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-desk-sync/internal/logger"
	"github.com/MKhiriev/go-desk-sync/internal/service"
	"github.com/gorilla/websocket"
)

const (
	// pingPeriod must stay below the client's pong wait.
	pingPeriod = 30 * time.Second
	writeWait  = 10 * time.Second
)

type Handler struct {
	services *service.Services

	upgrader   websocket.Upgrader
	pingPeriod time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// clients are desktop processes, not browsers
			CheckOrigin: func(*http.Request) bool { return true },
		},
		pingPeriod: pingPeriod,
		logger:     logger,
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package grpc implements the gRPC transport of the remote document service.
// It currently serves the standard health protocol that clients use as their
// connectivity probe.
package grpc

import (
	"github.com/MKhiriev/go-desk-sync/internal/logger"
	"github.com/MKhiriev/go-desk-sync/internal/service"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health entry of the document service.
const ServiceName = "desksync.DocumentService"

// Handler is the root gRPC transport handler.
//
// A handler instance is created once at startup and shared by the gRPC server.
type Handler struct {
	// services provides access to all application business operations.
	services *service.Services

	health *health.Server

	// logger is used for request-scoped and diagnostic log output.
	logger *logger.Logger
}

// NewHandler constructs a [Handler] with the provided service container and
// logger. Health starts as NOT_SERVING until [Handler.Register] runs.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")

	h := &Handler{
		services: services,
		health:   health.NewServer(),
		logger:   logger,
	}
	h.setServing(false)
	return h
}

// Register attaches every gRPC service of the handler to server and marks it
// serving.
func (h *Handler) Register(server *grpc.Server) {
	healthpb.RegisterHealthServer(server, h.health)
	h.setServing(true)
}

// Shutdown reports NOT_SERVING to all watchers and refuses further updates.
func (h *Handler) Shutdown() {
	h.logger.Info().Msg("gRPC health: shutting down")
	h.health.Shutdown()
}

func (h *Handler) setServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	// empty name is the overall server status
	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
}

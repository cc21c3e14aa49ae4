// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-desk-sync/internal/config"
	"github.com/MKhiriev/go-desk-sync/internal/logger"
	"github.com/MKhiriev/go-desk-sync/internal/utils"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const defaultProbeTimeout = 5 * time.Second

type grpcHealthChecker struct {
	conn    *grpc.ClientConn
	client  healthpb.HealthClient
	timeout time.Duration
}

// NewHealthChecker returns a gRPC health probe when adapterCfg.GRPCAddress is
// set and falls back to GET /api/version/ over HTTP otherwise.
func NewHealthChecker(adapterCfg config.ClientAdapter, logger *logger.Logger) (HealthChecker, error) {
	timeout := adapterCfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}

	if adapterCfg.GRPCAddress == "" {
		baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
		if err != nil {
			return nil, fmt.Errorf("invalid adapter http address: %w", err)
		}
		logger.Debug().Msg("no gRPC address configured, probing over HTTP")
		return &httpHealthChecker{
			client: utils.NewHTTPClient(utils.WithBaseURL(baseURL), utils.WithTimeout(timeout)),
		}, nil
	}

	conn, err := grpc.NewClient(adapterCfg.GRPCAddress, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("grpc health client: %w", err)
	}

	return &grpcHealthChecker{
		conn:    conn,
		client:  healthpb.NewHealthClient(conn),
		timeout: timeout,
	}, nil
}

// Ping implements [HealthChecker]. Anything but SERVING is reported as
// [ErrUnavailable].
func (g *grpcHealthChecker) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("%w: status %s", ErrUnavailable, resp.GetStatus())
	}

	return nil
}

func (g *grpcHealthChecker) Close() error {
	return g.conn.Close()
}

type httpHealthChecker struct {
	client *utils.HTTPClient
}

func (h *httpHealthChecker) Ping(ctx context.Context) error {
	resp, err := h.client.R().SetContext(ctx).Get("/api/version/")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return mapHTTPError(resp)
}

func (h *httpHealthChecker) Close() error {
	return nil
}

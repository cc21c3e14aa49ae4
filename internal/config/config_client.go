// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the remote document service.
	HTTPAddress string
	// GRPCAddress is the gRPC health endpoint address.
	GRPCAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
	// Token is the bearer token attached to every request.
	Token string
}

// ClientStorage selects the client Local Store backend. DSN wins over
// LocalFile when both are set.
type ClientStorage struct {
	DSN       string
	LocalFile string
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	ConnectivityInterval time.Duration
}

// ClientSync configures the live sync engine.
type ClientSync struct {
	Collections []string
	Scope       []string
	PushTimeout time.Duration
}

// ClientConfig is the client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
	Sync    ClientSync
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	scope := cfg.Sync.Scope
	if len(scope) == 0 {
		scope = cfg.Sync.Collections
	}

	return &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			GRPCAddress:    cfg.Adapter.GRPCAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			Token:          cfg.Adapter.Token,
		},
		Storage: ClientStorage{
			DSN:       cfg.Storage.DB.DSN,
			LocalFile: cfg.Storage.LocalFile,
		},
		Workers: ClientWorkers{ConnectivityInterval: cfg.Workers.ConnectivityInterval},
		Sync: ClientSync{
			Collections: cfg.Sync.Collections,
			Scope:       scope,
			PushTimeout: cfg.Sync.PushTimeout,
		},
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// Archive backends.
const (
	ArchiveBackendDB = "db"
	ArchiveBackendS3 = "s3"
)

// ServerConfig is the server configuration assembled from [StructuredConfig].
type ServerConfig struct {
	App     App
	Server  Server
	DB      DB
	Archive Archive
}

// GetServerConfig builds and validates the server config view.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := newServerConfig(cfg)
	return serverCfg, serverCfg.validate()
}

func newServerConfig(cfg *StructuredConfig) *ServerConfig {
	archive := cfg.Storage.Archive
	if archive.Backend == "" {
		archive.Backend = ArchiveBackendDB
	}
	requestTimeout := cfg.Server.RequestTimeout
	if requestTimeout == 0 {
		requestTimeout = 30 * time.Second
	}

	return &ServerConfig{
		App: cfg.App,
		Server: Server{
			HTTPAddress:    cfg.Server.HTTPAddress,
			GRPCAddress:    cfg.Server.GRPCAddress,
			RequestTimeout: requestTimeout,
		},
		DB:      cfg.Storage.DB,
		Archive: archive,
	}
}

// GetTokenConfig returns the token parameters used to issue tenant tokens
// outside the server process.
func GetTokenConfig() (*App, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}
	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" {
		return nil, ErrInvalidAppConfigs
	}
	return &cfg.App, nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// validate checks the merged [StructuredConfig]. Process-specific rules live
// on [ClientConfig] and [ServerConfig].
func (cfg *StructuredConfig) validate() error {
	if b := cfg.Storage.Archive.Backend; b != "" && b != ArchiveBackendDB && b != ArchiveBackendS3 {
		return fmt.Errorf("%w: unknown archive backend %q", ErrInvalidStorageConfigs, b)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DSN == "" && cfg.Storage.LocalFile == "" {
		return ErrInvalidStorageConfigs
	}
	if strings.Contains(cfg.Storage.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.ConnectivityInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	if len(cfg.Sync.Collections) == 0 {
		return ErrInvalidSyncConfigs
	}
	watched := make(map[string]struct{}, len(cfg.Sync.Collections))
	for _, c := range cfg.Sync.Collections {
		watched[c] = struct{}{}
	}
	for _, c := range cfg.Sync.Scope {
		if _, ok := watched[c]; !ok {
			return fmt.Errorf("%w: scope collection %q is not watched", ErrInvalidSyncConfigs, c)
		}
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Archive.Backend == ArchiveBackendS3 && cfg.Archive.S3.Bucket == "" {
		return fmt.Errorf("%w: s3 archive requires a bucket", ErrInvalidStorageConfigs)
	}

	return nil
}

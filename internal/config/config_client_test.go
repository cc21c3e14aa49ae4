// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validStructuredClientConfig() *StructuredConfig {
	return &StructuredConfig{
		Storage: Storage{DB: DB{DSN: "desk.db"}},
		Adapter: Adapter{HTTPAddress: "http://localhost:8080", RequestTimeout: 5 * time.Second},
		Workers: Workers{ConnectivityInterval: 10 * time.Second},
		Sync:    Sync{Collections: []string{"customers", "invoices"}},
	}
}

func TestNewClientConfig_ScopeDefaultsToWatched(t *testing.T) {
	cfg := newClientConfig(validStructuredClientConfig())

	require.NoError(t, cfg.validate())
	assert.Equal(t, []string{"customers", "invoices"}, cfg.Sync.Scope)
}

func TestClientConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{"valid", func(*StructuredConfig) {}, nil},
		{"local file only", func(c *StructuredConfig) { c.Storage.DB.DSN = ""; c.Storage.LocalFile = "state.json" }, nil},
		{"no storage", func(c *StructuredConfig) { c.Storage.DB.DSN = "" }, ErrInvalidStorageConfigs},
		{"in-memory dsn", func(c *StructuredConfig) { c.Storage.DB.DSN = ":memory:" }, ErrInvalidStorageConfigs},
		{"no address", func(c *StructuredConfig) { c.Adapter.HTTPAddress = "" }, ErrInvalidAdapterConfigs},
		{"no timeout", func(c *StructuredConfig) { c.Adapter.RequestTimeout = 0 }, ErrInvalidAdapterConfigs},
		{"no interval", func(c *StructuredConfig) { c.Workers.ConnectivityInterval = 0 }, ErrInvalidWorkerConfigs},
		{"no collections", func(c *StructuredConfig) { c.Sync.Collections = nil }, ErrInvalidSyncConfigs},
		{"scope outside watched", func(c *StructuredConfig) { c.Sync.Scope = []string{"orders"} }, ErrInvalidSyncConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			structured := validStructuredClientConfig()
			tt.mutate(structured)

			err := newClientConfig(structured).validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestServerConfig_Validate(t *testing.T) {
	valid := func() *StructuredConfig {
		return &StructuredConfig{
			App:     App{TokenSignKey: "k", TokenIssuer: "desk"},
			Server:  Server{HTTPAddress: "localhost:8080"},
			Storage: Storage{DB: DB{DSN: "postgres://localhost/desk"}},
		}
	}

	cfg := newServerConfig(valid())
	require.NoError(t, cfg.validate())
	assert.Equal(t, ArchiveBackendDB, cfg.Archive.Backend)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)

	noKey := valid()
	noKey.App.TokenSignKey = ""
	assert.ErrorIs(t, newServerConfig(noKey).validate(), ErrInvalidAppConfigs)

	noDSN := valid()
	noDSN.Storage.DB.DSN = ""
	assert.ErrorIs(t, newServerConfig(noDSN).validate(), ErrInvalidStorageConfigs)

	noAddr := valid()
	noAddr.Server.HTTPAddress = ""
	assert.ErrorIs(t, newServerConfig(noAddr).validate(), ErrInvalidServerConfigs)

	s3NoBucket := valid()
	s3NoBucket.Storage.Archive.Backend = ArchiveBackendS3
	assert.ErrorIs(t, newServerConfig(s3NoBucket).validate(), ErrInvalidStorageConfigs)
}

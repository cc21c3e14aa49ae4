// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-desk-sync/internal/config"
	"github.com/MKhiriev/go-desk-sync/internal/logger"
)

func newTestSQLiteStore(t *testing.T) LocalStore {
	t.Helper()

	storages, err := NewClientStorages(context.Background(), config.ClientStorage{
		DSN: filepath.Join(t.TempDir(), "desk.db"),
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	return storages.LocalStore
}

func TestSQLiteLocalStore_SetGetOverwrite(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)

	_, err := s.Get(ctx, "settings")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, s.Set(ctx, "settings", []byte(`{"v":1}`)))
	require.NoError(t, s.Set(ctx, "settings", []byte(`{"v":2}`)))

	got, err := s.Get(ctx, "settings")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(got))
}

func TestSQLiteLocalStore_KeysAndClear(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)

	require.NoError(t, s.Set(ctx, "sync:cursor", []byte(`"2026-01-01T00:00:00Z"`)))
	require.NoError(t, s.Set(ctx, "collection:invoices", []byte(`[]`)))

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"collection:invoices", "sync:cursor"}, keys)

	require.NoError(t, s.Clear(ctx))
	keys, err = s.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestNewClientStorages_FallsBackToFileStore(t *testing.T) {
	storages, err := NewClientStorages(context.Background(), config.ClientStorage{
		LocalFile: filepath.Join(t.TempDir(), "state.json"),
	}, logger.Nop())
	require.NoError(t, err)
	defer storages.Close()

	_, ok := storages.LocalStore.(*fileLocalStore)
	assert.True(t, ok)
}

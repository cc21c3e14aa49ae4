// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLocalStore_SetGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryLocalStore()

	_, err := s.Get(ctx, "settings")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, s.Set(ctx, "settings", []byte(`{"brand":"Acme"}`)))
	got, err := s.Get(ctx, "settings")
	require.NoError(t, err)
	assert.JSONEq(t, `{"brand":"Acme"}`, string(got))
}

func TestFileLocalStore_RejectsInvalidJSON(t *testing.T) {
	s := NewMemoryLocalStore()
	assert.Error(t, s.Set(context.Background(), "k", []byte("{nope")))
}

func TestFileLocalStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "state.json")

	s, err := NewFileLocalStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "collection:customers", []byte(`[{"id":"C-1"}]`)))
	require.NoError(t, s.Set(ctx, "settings", []byte(`{}`)))

	reopened, err := NewFileLocalStore(path)
	require.NoError(t, err)

	keys, err := reopened.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"collection:customers", "settings"}, keys)

	got, err := reopened.Get(ctx, "collection:customers")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"C-1"}]`, string(got))
}

func TestFileLocalStore_Clear(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")

	s, err := NewFileLocalStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "a", []byte(`1`)))
	require.NoError(t, s.Clear(ctx))

	reopened, err := NewFileLocalStore(path)
	require.NoError(t, err)
	keys, err := reopened.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestGetJSON_SetJSON(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryLocalStore()

	var missing []string
	found, err := GetJSON(ctx, s, "sync:cursor", &missing)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, s, "list", []string{"a", "b"}))

	var got []string
	found, err = GetJSON(ctx, s, "list", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"a", "b"}, got)

	var wrongType map[string]int
	found, err = GetJSON(ctx, s, "list", &wrongType)
	assert.True(t, found)
	assert.Error(t, err)
}

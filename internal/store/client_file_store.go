// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// fileLocalStore keeps every key in memory and rewrites a single JSON file on
// each mutation. The path ":memory:" disables persistence.
type fileLocalStore struct {
	path     string
	inMemory bool

	mu    sync.RWMutex
	items map[string]json.RawMessage
}

type filePersistedState struct {
	Items map[string]json.RawMessage `json:"items"`
}

// NewFileLocalStore opens (or creates on first write) the JSON file at path.
func NewFileLocalStore(path string) (LocalStore, error) {
	if path == "" {
		path = ":memory:"
	}

	s := &fileLocalStore{
		path:     path,
		inMemory: path == ":memory:",
		items:    make(map[string]json.RawMessage),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewMemoryLocalStore returns a non-persistent store.
func NewMemoryLocalStore() LocalStore {
	return &fileLocalStore{path: ":memory:", inMemory: true, items: make(map[string]json.RawMessage)}
}

func (s *fileLocalStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.items[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *fileLocalStore) Set(_ context.Context, key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("value for %q is not valid JSON", key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.items[key]
	stored := make(json.RawMessage, len(value))
	copy(stored, value)
	s.items[key] = stored

	if err := s.persist(); err != nil {
		if had {
			s.items[key] = prev
		} else {
			delete(s.items, key)
		}
		return err
	}
	return nil
}

func (s *fileLocalStore) Keys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *fileLocalStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[string]json.RawMessage)
	return s.persist()
}

func (s *fileLocalStore) load() error {
	if s.inMemory {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read local storage file: %w", err)
	}

	var st filePersistedState
	if err = json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("decode local storage file: %w", err)
	}
	if st.Items != nil {
		s.items = st.Items
	}

	return nil
}

// persist replaces the file through a rename of a temp sibling.
func (s *fileLocalStore) persist() error {
	if s.inMemory {
		return nil
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create local storage dir: %w", err)
		}
	}

	payload, err := json.MarshalIndent(filePersistedState{Items: s.items}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode local storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err = os.WriteFile(tmp, payload, 0o600); err != nil {
		return fmt.Errorf("write local storage file: %w", err)
	}
	if err = os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace local storage file: %w", err)
	}

	return nil
}

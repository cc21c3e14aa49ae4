// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// GetJSON decodes the value under key into dst. found is false when the key
// is missing, in which case dst is untouched.
func GetJSON(ctx context.Context, s LocalStore, key string, dst any) (found bool, err error) {
	raw, err := s.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return true, fmt.Errorf("decode local value %q: %w", key, err)
	}
	return true, nil
}

// SetJSON encodes value and stores it under key.
func SetJSON(ctx context.Context, s LocalStore, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode local value %q: %w", key, err)
	}
	return s.Set(ctx, key, raw)
}

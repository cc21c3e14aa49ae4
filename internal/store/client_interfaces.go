// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// LocalStore is the persistent key/value store on the client device. Values
// are opaque JSON documents; the store never interprets them.
//
// The store is owned by a single process. Implementations must still be safe
// for concurrent use because the live sync worker and the console touch it
// from different goroutines.
type LocalStore interface {
	// Get returns the value stored under key or [ErrKeyNotFound].
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Keys lists every stored key in lexical order.
	Keys(ctx context.Context) ([]string, error)
	// Clear removes every key.
	Clear(ctx context.Context) error
}

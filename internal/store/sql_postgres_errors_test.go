// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPostgresErrorClassifier_Classify(t *testing.T) {
	c := NewPostgresErrorClassifier()

	tests := []struct {
		name string
		err  error
		want ErrorClassification
	}{
		{"nil", nil, NonRetryable},
		{"plain error", errors.New("x"), NonRetryable},
		{"deadlock", &pgconn.PgError{Code: pgerrcode.DeadlockDetected}, Retryable},
		{"wrapped serialization failure", fmt.Errorf("wrap: %w", &pgconn.PgError{Code: pgerrcode.SerializationFailure}), Retryable},
		{"connection failure", &pgconn.PgError{Code: pgerrcode.ConnectionFailure}, Retryable},
		{"unique violation", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, NonRetryable},
		{"undefined table", &pgconn.PgError{Code: pgerrcode.UndefinedTable}, NonRetryable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.err))
		})
	}
}

func TestWithRetry_StopsOnContextCancel(t *testing.T) {
	restore := retryDelays
	retryDelays = []time.Duration{time.Hour}
	t.Cleanup(func() { retryDelays = restore })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := withRetry(ctx, NewPostgresErrorClassifier(), func() error {
		calls++
		return &pgconn.PgError{Code: pgerrcode.DeadlockDetected}
	})

	assert.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_GivesUpAfterBudget(t *testing.T) {
	restore := retryDelays
	retryDelays = []time.Duration{time.Millisecond, time.Millisecond}
	t.Cleanup(func() { retryDelays = restore })

	calls := 0
	err := withRetry(context.Background(), NewPostgresErrorClassifier(), func() error {
		calls++
		return &pgconn.PgError{Code: pgerrcode.CannotConnectNow}
	})

	assert.Error(t, err)
	assert.Equal(t, 3, calls)
}

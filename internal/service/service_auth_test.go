// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-desk-sync/internal/config"
	"github.com/MKhiriev/go-desk-sync/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthConfig() config.App {
	return config.App{TokenSignKey: "secret", TokenIssuer: "desk-sync", TokenDuration: time.Hour}
}

func TestAuthService_CreateAndParse(t *testing.T) {
	svc := NewAuthService(testAuthConfig(), logger.Nop())
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, "tenant-1")
	require.NoError(t, err)
	assert.Equal(t, "tenant-1", token.TenantID)
	assert.NotEmpty(t, token.String())

	parsed, err := svc.ParseToken(ctx, token.String())
	require.NoError(t, err)
	assert.Equal(t, "tenant-1", parsed.TenantID)
}

func TestAuthService_CreateTokenErrors(t *testing.T) {
	_, err := NewAuthService(testAuthConfig(), logger.Nop()).CreateToken(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoTenantID)

	noKey := testAuthConfig()
	noKey.TokenSignKey = ""
	_, err = NewAuthService(noKey, logger.Nop()).CreateToken(context.Background(), "tenant-1")
	assert.ErrorIs(t, err, ErrTokenCreationFailed)
}

func TestAuthService_ParseTokenRejects(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(testAuthConfig(), logger.Nop())

	other := testAuthConfig()
	other.TokenIssuer = "someone-else"
	foreign, err := NewAuthService(other, logger.Nop()).CreateToken(ctx, "tenant-1")
	require.NoError(t, err)

	for name, raw := range map[string]string{
		"garbage":      "not-a-jwt",
		"empty":        "",
		"wrong issuer": foreign.String(),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ParseToken(ctx, raw)
			assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
		})
	}
}

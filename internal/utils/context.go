// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides general-purpose helper utilities used across the
// client and the server: context keys, identifiers, checksums, canonical JSON,
// HTTP response writing, HTTP client initialization and JWT handling.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
type contextKey string

// String implements fmt.Stringer.
func (c contextKey) String() string {
	return string(c)
}

// TenantIDCtxKey is the key used to store the authenticated tenant id in the
// request context.
var TenantIDCtxKey = contextKey("tenantID")

// SessionIDCtxKey is the key used to store the origin session id of a write.
var SessionIDCtxKey = contextKey("sessionID")

// WithTenantID returns a copy of ctx carrying tenantID.
func WithTenantID(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, TenantIDCtxKey, tenantID)
}

// GetTenantIDFromContext retrieves the tenant id from the context. ok is
// false when the value is missing, empty or has an unexpected type.
func GetTenantIDFromContext(ctx context.Context) (string, bool) {
	tenantID, ok := ctx.Value(TenantIDCtxKey).(string)
	return tenantID, ok && tenantID != ""
}

// WithSessionID returns a copy of ctx carrying the origin session id.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, SessionIDCtxKey, sessionID)
}

// GetSessionIDFromContext retrieves the origin session id, or "".
func GetSessionIDFromContext(ctx context.Context) string {
	sessionID, _ := ctx.Value(SessionIDCtxKey).(string)
	return sessionID
}

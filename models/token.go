// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT token with convenience accessors for authentication flows.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing)
// and [jwt.RegisteredClaims] for standard claim access (subject, expiry, etc.).
//
// TenantID is a cached copy of the "sub" (subject) claim. Every document and
// snapshot on the server is scoped by it.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides access to the standard JWT claim set.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// TenantID is the workspace identifier extracted from the "sub" claim.
	TenantID string `json:"-"`
}

// GetTenantID extracts the tenant identifier from the "sub" claim.
// Returns an error if the subject claim is missing or empty.
func (t *Token) GetTenantID() (string, error) {
	sub, err := t.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error extracting TenantID from token: %w", err)
	}
	if sub == "" {
		return "", fmt.Errorf("error extracting TenantID from token: empty subject")
	}
	return sub, nil
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}

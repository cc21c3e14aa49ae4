// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-desk-sync/internal/app"
	"github.com/MKhiriev/go-desk-sync/internal/logger"
	"github.com/MKhiriev/go-desk-sync/internal/utils"
	"github.com/MKhiriev/go-desk-sync/models"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It extracts the bearer token from the "Authorization" header, validates it
// via [service.AuthService.ParseToken] and stores the tenant id from the
// token subject in the request context. The writer's Session Identifier is
// copied from the X-Session-ID header when present.
//
// Requests without a usable token are rejected with 401 Unauthorized.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			utils.WriteError(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Send()
			utils.WriteError(w, ErrInvalidAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("error occurred during parsing token")
			utils.WriteError(w, app.MsgTokenIsExpiredOrInvalid, http.StatusUnauthorized)
			return
		}

		ctx = utils.WithTenantID(ctx, token.TenantID)
		if sessionID := r.Header.Get(models.HeaderSessionID); sessionID != "" {
			ctx = utils.WithSessionID(ctx, sessionID)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// tenantFromRequest returns the tenant stored by auth.
func tenantFromRequest(r *http.Request) (string, error) {
	tenantID, ok := utils.GetTenantIDFromContext(r.Context())
	if !ok || tenantID == "" {
		return "", errNoTenantInContext
	}
	return tenantID, nil
}

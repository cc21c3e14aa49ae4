// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-desk-sync/internal/logger"
	"github.com/MKhiriev/go-desk-sync/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHandler(t *testing.T) {
	svc := &service.Services{}
	log := logger.Nop()

	h := NewHandler(svc, log)

	require.NotNil(t, h)
	assert.Equal(t, svc, h.services)
	assert.Equal(t, log, h.logger)
	assert.Equal(t, pingPeriod, h.pingPeriod)
	assert.True(t, h.upgrader.CheckOrigin(httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.NotSame(t, h, NewHandler(svc, log))
}

func TestGetServerVersion(t *testing.T) {
	for _, version := range []string{"1.2.3", "", "v2.0.0-rc.1+build.7"} {
		t.Run(version, func(t *testing.T) {
			h := NewHandler(&service.Services{AppInfoService: &mockAppInfoSvc{version: version}}, logger.Nop())

			rr := httptest.NewRecorder()
			h.getServerVersion(rr, httptest.NewRequest(http.MethodGet, "/api/version/", nil))

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, version, rr.Body.String())
			assert.Equal(t, "text/plain", rr.Header().Get("Content-Type"))
		})
	}
}

func TestResponseFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
		{service.ErrSnapshotNotFound, http.StatusNotFound},
		{service.ErrSnapshotTooLarge, http.StatusRequestEntityTooLarge},
		{service.ErrDocumentIDMismatch, http.StatusBadRequest},
		{assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFromError(tt.err), tt.err.Error())
	}
}

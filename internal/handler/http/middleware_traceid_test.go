// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-desk-sync/internal/logger"
	"github.com/MKhiriev/go-desk-sync/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeWithTraceID(h *Handler, traceID string) (*httptest.ResponseRecorder, *http.Request) {
	var captured *http.Request
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if traceID != "" {
		req.Header.Set(models.HeaderTraceID, traceID)
	}

	rr := httptest.NewRecorder()
	h.withTraceID(next).ServeHTTP(rr, req)
	return rr, captured
}

func TestWithTraceID_ReusesRequestHeader(t *testing.T) {
	h, _ := newTestHandler(t)

	rr, req := executeWithTraceID(h, "my-custom-trace-id")

	require.NotNil(t, req)
	assert.Equal(t, "my-custom-trace-id", rr.Header().Get(models.HeaderTraceID))
}

func TestWithTraceID_GeneratesUUID(t *testing.T) {
	h, _ := newTestHandler(t)

	rr1, _ := executeWithTraceID(h, "")
	rr2, _ := executeWithTraceID(h, "")

	id1 := rr1.Header().Get(models.HeaderTraceID)
	_, err := uuid.Parse(id1)
	require.NoError(t, err)
	assert.NotEqual(t, id1, rr2.Header().Get(models.HeaderTraceID))
}

func TestWithTraceID_LoggerInContextCarriesTraceID(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}

	_, req := executeWithTraceID(h, "trace-123")
	require.NotNil(t, req)

	logger.FromRequest(req).Info().Msg("hello")
	assert.Contains(t, buf.String(), `"trace_id":"trace-123"`)
}

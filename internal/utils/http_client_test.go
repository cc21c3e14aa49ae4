// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient_NotNil(t *testing.T) {
	client := NewHTTPClient()
	require.NotNil(t, client)
	assert.NotNil(t, client.Client)
}

func TestNewHTTPClient_IndependentInstances(t *testing.T) {
	a, b := NewHTTPClient(), NewHTTPClient()
	assert.NotSame(t, a.Client, b.Client)
}

func TestNewHTTPClient_Options(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewHTTPClient(WithBaseURL(srv.URL), WithTimeout(time.Second), WithAuthToken("tok"))
	assert.Equal(t, time.Second, client.GetClient().Timeout)

	resp, err := client.R().Get("/ping")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode())
	assert.Equal(t, "Bearer tok", gotAuth)
}

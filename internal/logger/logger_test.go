// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	return entry
}

func bufferedLogger(role string) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := NewLogger(role)
	l.Logger = l.Output(&buf)
	return l, &buf
}

func TestNewLogger_EntryShape(t *testing.T) {
	l, buf := bufferedLogger("desk-sync-server")

	l.Info().Str("tenant", "acme").Msg("document saved")

	entry := decodeEntry(t, buf.Bytes())
	assert.Equal(t, "desk-sync-server", entry["role"])
	assert.Equal(t, "acme", entry["tenant"])
	assert.Equal(t, "document saved", entry["message"])
	assert.Contains(t, entry, "time")

	assert.Equal(t, "func", zerolog.CallerFieldName)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	require.NotNil(t, l)
	l.Logger = l.Output(&buf)

	l.Error().Msg("dropped")

	assert.Empty(t, buf.String())
}

func TestChildLoggers(t *testing.T) {
	tests := []struct {
		name      string
		derive    func(*Logger) *Logger
		component any
	}{
		{name: "child", derive: (*Logger).GetChildLogger, component: nil},
		{name: "component", derive: func(l *Logger) *Logger { return l.WithComponent("offline-queue") }, component: "offline-queue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parent, buf := bufferedLogger("desk-sync-client")

			child := tt.derive(parent)
			assert.NotSame(t, parent, child)
			child.Info().Msg("x")

			entry := decodeEntry(t, buf.Bytes())
			assert.Equal(t, "desk-sync-client", entry["role"])
			assert.Equal(t, tt.component, entry["component"])
		})
	}
}

func TestFromContextAndRequest(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("trace_id", "t-1").Logger()
	ctx := zl.WithContext(context.Background())

	FromContext(ctx).Info().Msg("ctx")
	assert.Equal(t, "t-1", decodeEntry(t, buf.Bytes())["trace_id"])

	buf.Reset()
	req := httptest.NewRequest(http.MethodGet, "/api/changes", nil).WithContext(ctx)
	FromRequest(req).Info().Msg("req")
	assert.Equal(t, "t-1", decodeEntry(t, buf.Bytes())["trace_id"])

	assert.NotNil(t, FromContext(context.Background()), "a bare context still yields a logger")
}

func TestNewClientLogger_WritesToLogsFile(t *testing.T) {
	dir := t.TempDir()
	l := NewClientLogger("desk-sync-client", dir)
	require.NotNil(t, l)

	l.Info().Msg("to file")

	data, err := os.ReadFile(filepath.Join(dir, "logs"))
	require.NoError(t, err)

	entry := decodeEntry(t, data)
	assert.Equal(t, "desk-sync-client", entry["role"])
	assert.Equal(t, "to file", entry["message"])
}

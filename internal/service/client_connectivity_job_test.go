// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-desk-sync/internal/adapter"
	"github.com/MKhiriev/go-desk-sync/internal/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// spyTarget records every connectivity report.
type spyTarget struct {
	mu      sync.Mutex
	reports []bool
}

func (s *spyTarget) SetOnline(_ context.Context, online bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append(s.reports, online)
}

func (s *spyTarget) snapshot() []bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]bool(nil), s.reports...)
}

// ── NewConnectivityJob ──────────────────────────────────────────────────────

func TestNewConnectivityJob_ReturnsInterface(t *testing.T) {
	ctrl := gomock.NewController(t)
	job := NewConnectivityJob(mock.NewMockHealthChecker(ctrl), &spyTarget{})
	require.NotNil(t, job)

	var _ ClientConnectivityJob = job
}

// ── Start / Stop ────────────────────────────────────────────────────────────

func TestConnectivityJob_ProbesImmediatelyAndOnTicker(t *testing.T) {
	ctrl := gomock.NewController(t)
	health := mock.NewMockHealthChecker(ctrl)
	health.EXPECT().Ping(gomock.Any()).Return(nil).MinTimes(3)

	target := &spyTarget{}
	job := NewConnectivityJob(health, target)

	job.Start(context.Background(), 10*time.Millisecond)
	require.Eventually(t, func() bool { return len(target.snapshot()) >= 3 }, waitFor, pollEvery)
	job.Stop()

	for _, online := range target.snapshot() {
		assert.True(t, online)
	}
}

func TestConnectivityJob_ReportsOffline(t *testing.T) {
	ctrl := gomock.NewController(t)
	health := mock.NewMockHealthChecker(ctrl)
	health.EXPECT().Ping(gomock.Any()).Return(adapter.ErrUnavailable).MinTimes(1)

	target := &spyTarget{}
	job := NewConnectivityJob(health, target)

	// a long interval leaves only the immediate probe
	job.Start(context.Background(), time.Hour)
	require.Eventually(t, func() bool { return len(target.snapshot()) == 1 }, waitFor, pollEvery)
	job.Stop()

	assert.Equal(t, []bool{false}, target.snapshot())
}

func TestConnectivityJob_StopStopsGoroutine(t *testing.T) {
	ctrl := gomock.NewController(t)
	health := mock.NewMockHealthChecker(ctrl)
	health.EXPECT().Ping(gomock.Any()).Return(nil).AnyTimes()

	target := &spyTarget{}
	job := NewConnectivityJob(health, target)

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	after := len(target.snapshot())
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, len(target.snapshot()))
}

func TestConnectivityJob_StopBeforeStartNoPanic(t *testing.T) {
	ctrl := gomock.NewController(t)
	job := NewConnectivityJob(mock.NewMockHealthChecker(ctrl), &spyTarget{})

	assert.NotPanics(t, func() { job.Stop() })
}

func TestConnectivityJob_RestartReplacesRunningJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	health := mock.NewMockHealthChecker(ctrl)
	health.EXPECT().Ping(gomock.Any()).Return(nil).AnyTimes()

	target := &spyTarget{}
	job := NewConnectivityJob(health, target)

	job.Start(context.Background(), time.Hour)
	job.Start(context.Background(), time.Hour)
	require.Eventually(t, func() bool { return len(target.snapshot()) >= 1 }, waitFor, pollEvery)
	job.Stop()

	// the first job may be cancelled before it reports
	assert.LessOrEqual(t, len(target.snapshot()), 2)
}

func TestConnectivityJob_ContextCancelStopsJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	health := mock.NewMockHealthChecker(ctrl)
	health.EXPECT().Ping(gomock.Any()).Return(nil).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	job := NewConnectivityJob(health, &spyTarget{})
	job.Start(ctx, 10*time.Millisecond)
	cancel()

	done := make(chan struct{})
	go func() {
		job.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(waitFor):
		t.Fatal("job did not exit after context cancel")
	}
}

func TestConnectivityJob_DefaultInterval(t *testing.T) {
	ctrl := gomock.NewController(t)
	health := mock.NewMockHealthChecker(ctrl)
	health.EXPECT().Ping(gomock.Any()).Return(nil).AnyTimes()

	target := &spyTarget{}
	job := NewConnectivityJob(health, target)

	job.Start(context.Background(), 0)
	require.Eventually(t, func() bool { return len(target.snapshot()) == 1 }, waitFor, pollEvery)
	job.Stop()
}

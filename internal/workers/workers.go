// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/go-desk-sync/internal/logger"
	"github.com/MKhiriev/go-desk-sync/internal/service"
)

type Workers struct {
	workers []Worker

	mu      sync.Mutex
	started []Worker

	logger *logger.Logger
}

func NewWorkers(logger *logger.Logger, workers ...Worker) *Workers {
	return &Workers{workers: workers, logger: logger}
}

// Start starts every worker in order. A worker that fails to start is logged
// and skipped; the others still run.
func (w *Workers) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, worker := range w.workers {
		if err := worker.Start(ctx); err != nil {
			w.logger.Err(err).Str("func", "Workers.Start").Str("worker", worker.Name()).Msg("worker did not start")
			continue
		}
		w.started = append(w.started, worker)
		w.logger.Debug().Str("worker", worker.Name()).Msg("worker started")
	}
}

// Stop stops the started workers in reverse order.
func (w *Workers) Stop() {
	w.mu.Lock()
	started := w.started
	w.started = nil
	w.mu.Unlock()

	for _, worker := range slices.Backward(started) {
		worker.Stop()
		w.logger.Debug().Str("worker", worker.Name()).Msg("worker stopped")
	}
}

type connectivityWorker struct {
	job      service.ClientConnectivityJob
	interval time.Duration
}

// NewConnectivityWorker runs job every interval.
func NewConnectivityWorker(job service.ClientConnectivityJob, interval time.Duration) Worker {
	return &connectivityWorker{job: job, interval: interval}
}

func (c *connectivityWorker) Name() string { return "connectivity" }

func (c *connectivityWorker) Start(ctx context.Context) error {
	c.job.Start(ctx, c.interval)
	return nil
}

func (c *connectivityWorker) Stop() { c.job.Stop() }

// LiveSync is the part of the sync engine the live sync worker drives.
type LiveSync interface {
	StartLiveSync(ctx context.Context) error
	StopLiveSync()
}

type liveSyncWorker struct {
	engine LiveSync
}

// NewLiveSyncWorker starts live sync with the process and stops it, moving
// unsent deltas to the offline queue, on shutdown.
func NewLiveSyncWorker(engine LiveSync) Worker {
	return &liveSyncWorker{engine: engine}
}

func (l *liveSyncWorker) Name() string { return "live-sync" }

func (l *liveSyncWorker) Start(ctx context.Context) error {
	return l.engine.StartLiveSync(ctx)
}

func (l *liveSyncWorker) Stop() { l.engine.StopLiveSync() }

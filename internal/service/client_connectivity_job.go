// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-desk-sync/internal/adapter"
)

const defaultConnectivityInterval = 15 * time.Second

type connectivityJob struct {
	health adapter.HealthChecker
	target ConnectivityTarget

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewConnectivityJob creates a job that probes health on a ticker and reports
// the result to target. The job is idle until Start is called.
func NewConnectivityJob(health adapter.HealthChecker, target ConnectivityTarget) ClientConnectivityJob {
	return &connectivityJob{health: health, target: target}
}

// Start implements ClientConnectivityJob. It stops any previously running
// job, probes once right away, then probes every interval. If interval is
// zero or negative it defaults to 15 seconds. The goroutine exits when ctx is
// cancelled or Stop is called.
func (j *connectivityJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultConnectivityInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()

		j.probe(jobCtx)

		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.probe(jobCtx)
			}
		}
	}()
}

func (j *connectivityJob) probe(ctx context.Context) {
	err := j.health.Ping(ctx)
	if ctx.Err() != nil {
		return
	}
	j.target.SetOnline(ctx, err == nil)
}

// Stop implements ClientConnectivityJob. It cancels the background
// goroutine's context and blocks until the goroutine has fully exited. Safe
// to call when the job is not running (no-op in that case).
func (j *connectivityJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

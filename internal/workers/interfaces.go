// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the background jobs of the client process as one
// unit. It defines the Worker interface and a Workers aggregate that starts
// them in order and stops them in reverse order.
package workers

import "context"

// Worker is a background job with an explicit lifecycle.
//
// Start must not block; long-running work belongs in a goroutine bound to
// ctx. Stop blocks until that work has ended and is safe to call on a worker
// that never started.
type Worker interface {
	Name() string
	Start(ctx context.Context) error
	Stop()
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/go-desk-sync/internal/logger"
	"github.com/MKhiriev/go-desk-sync/internal/tui"
)

// Closer releases a resource owned by the app, such as the sync engine or
// the local store. Closers run in reverse registration order.
type Closer func() error

type App struct {
	ui      UI
	workers Background
	closers []Closer
	logger  *logger.Logger
}

func NewApp(ui UI, workers Background, logger *logger.Logger, closers ...Closer) (*App, error) {
	if ui == nil {
		return nil, errors.New("client app: ui is nil")
	}
	if workers == nil {
		return nil, errors.New("client app: workers are nil")
	}
	return &App{ui: ui, workers: workers, closers: closers, logger: logger}, nil
}

// Run starts the background workers, shows the UI and tears everything
// down once the UI returns. Quitting from the UI is a clean exit.
func (a *App) Run(ctx context.Context) (err error) {
	a.logger.Info().Str("func", "App.Run").Msg("client starting")

	a.workers.Start(ctx)
	defer func() {
		a.workers.Stop()
		if closeErr := a.close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
		a.logger.Info().Str("func", "App.Run").Msg("client stopped")
	}()

	if err = a.ui.Run(ctx); err != nil && !errors.Is(err, tui.ErrUserQuit) {
		return fmt.Errorf("ui: %w", err)
	}
	return nil
}

func (a *App) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// CloserOf adapts an [io.Closer].
func CloserOf(c io.Closer) Closer {
	return c.Close
}

// CloserFunc adapts a function without an error result.
func CloserFunc(f func()) Closer {
	return func() error {
		f()
		return nil
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-desk-sync/internal/adapter"
	"github.com/MKhiriev/go-desk-sync/internal/client"
	"github.com/MKhiriev/go-desk-sync/internal/config"
	"github.com/MKhiriev/go-desk-sync/internal/logger"
	"github.com/MKhiriev/go-desk-sync/internal/service"
	"github.com/MKhiriev/go-desk-sync/internal/store"
	"github.com/MKhiriev/go-desk-sync/internal/tui"
	"github.com/MKhiriev/go-desk-sync/internal/workers"
	"github.com/MKhiriev/go-desk-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(buildInfo)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	log := logger.NewClientLogger("desk-sync-client", "")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	remote, err := adapter.NewHTTPRemoteClient(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create remote client")
	}

	health, err := adapter.NewHealthChecker(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create health checker")
	}

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	services, err := service.NewClientServices(ctx, storages, remote, health, cfg.Sync, log)
	if err != nil {
		_ = storages.Close()
		log.Fatal().Err(err).Msg("create client services")
	}

	ui, err := tui.New(services, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	background := workers.NewWorkers(log,
		workers.NewConnectivityWorker(services.Connectivity, cfg.Workers.ConnectivityInterval),
		workers.NewLiveSyncWorker(services.Engine),
	)

	app, err := client.NewApp(ui, background, log,
		client.CloserOf(storages),
		client.CloserFunc(services.Engine.Close),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Fatal().Err(err).Msg("client run error")
	}
}

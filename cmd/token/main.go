// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command token issues a bearer token for a tenant, signed with the same
// key and issuer as the document server.
//
//	token [flags] <tenant-id>
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/MKhiriev/go-desk-sync/internal/config"
	"github.com/MKhiriev/go-desk-sync/internal/logger"
	"github.com/MKhiriev/go-desk-sync/internal/service"
)

func main() {
	log := logger.NewLogger("desk-sync-token")

	cfg, err := config.GetTokenConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	tenantID := flag.Arg(0)
	if tenantID == "" {
		fmt.Fprintln(os.Stderr, "usage: token [flags] <tenant-id>")
		os.Exit(2)
	}

	token, err := service.NewAuthService(*cfg, log).CreateToken(context.Background(), tenantID)
	if err != nil {
		log.Fatal().Err(err).Str("tenant", tenantID).Msg("error creating token")
	}

	fmt.Println(token.String())
}

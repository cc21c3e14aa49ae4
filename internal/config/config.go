// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// desk-sync client and server. It is populated by merging values from
// environment variables, command-line flags and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token parameters and the application version.
	App App `envPrefix:"APP_"`

	// Storage holds the database, local file store and snapshot archive
	// settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP and
	// gRPC servers.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the client's view of the remote document service.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds configuration for client background jobs.
	Workers Workers `envPrefix:"WORKERS_"`

	// Sync holds the live sync engine settings.
	Sync Sync `envPrefix:"SYNC_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	// DB holds the database connection settings: Postgres on the server,
	// a SQLite file path on the client.
	DB DB `envPrefix:"DB_"`

	// LocalFile is the path of the JSON file used as the client Local Store
	// when no SQLite database is configured.
	// Env: STORAGE_LOCAL_FILE
	LocalFile string `env:"LOCAL_FILE"`

	// Archive selects where the server keeps snapshot payloads.
	Archive Archive `envPrefix:"ARCHIVE_"`
}

// App holds token lifecycle and versioning values.
type App struct {
	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a JWT token remains valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Version is exposed via the /api/version/ endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address the HTTP server listens on.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the TCP address the gRPC health server listens on.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is a Postgres connection string on the server and a SQLite file
	// path on the client.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Archive selects and configures the snapshot blob store.
type Archive struct {
	// Backend is "db" (snapshot_blobs table) or "s3".
	// Env: STORAGE_ARCHIVE_BACKEND
	Backend string `env:"BACKEND"`

	S3 S3 `envPrefix:"S3_"`
}

// S3 configures the S3 snapshot blob store.
type S3 struct {
	Bucket          string `env:"BUCKET"`
	Region          string `env:"REGION"`
	Endpoint        string `env:"ENDPOINT"`
	Prefix          string `env:"PREFIX"`
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`
	UsePathStyle    bool   `env:"USE_PATH_STYLE"`
}

// Adapter holds the client's outbound transport settings.
type Adapter struct {
	// HTTPAddress is the base URL of the remote document service.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the address of the gRPC health endpoint used for
	// connectivity probes.
	// Env: ADAPTER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds every outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Token is the bearer token sent with every request.
	// Env: ADAPTER_TOKEN
	Token string `env:"TOKEN"`
}

// Workers holds configuration for client background jobs.
type Workers struct {
	// ConnectivityInterval is how often the connectivity job probes the
	// remote service.
	// Env: WORKERS_CONNECTIVITY_INTERVAL
	ConnectivityInterval time.Duration `env:"CONNECTIVITY_INTERVAL"`
}

// Sync configures the live sync engine.
type Sync struct {
	// Collections lists the watched collection names.
	// Env: SYNC_COLLECTIONS (comma separated)
	Collections []string `env:"COLLECTIONS"`

	// Scope lists the collections subscribed live. Empty means all watched.
	// Env: SYNC_SCOPE (comma separated)
	Scope []string `env:"SCOPE"`

	// PushTimeout bounds a single remote write issued by the push worker.
	// Env: SYNC_PUSH_TIMEOUT
	PushTimeout time.Duration `env:"PUSH_TIMEOUT"`
}

// GetStructuredConfig loads and merges the configuration from all available
// sources. Earlier sources take priority for non-zero fields:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}

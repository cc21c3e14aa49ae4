// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags from the process command line.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-grpc-address grpc server address in format [host]:[port]
//	-d database DSN (Postgres on the server, SQLite file on the client)
//	-local-file JSON local store path (client)
//	-c/-config json file path with configs
//	-token-sign-key, -token-issuer, -token-duration JWT settings
//	-request-timeout server request timeout
//	-archive-backend snapshot blob store: db or s3
//	-remote remote document service URL (client)
//	-remote-grpc remote gRPC health address (client)
//	-remote-timeout outbound request timeout (client)
//	-token bearer token (client)
//	-connectivity-interval connectivity probe interval (client)
//	-collections comma separated watched collections (client)
//	-scope comma separated live subscription scope (client)
//	-push-timeout single remote write timeout (client)
func ParseFlags() (*StructuredConfig, error) {
	return parseFlags(flag.CommandLine, os.Args[1:])
}

func parseFlags(fs *flag.FlagSet, args []string) (*StructuredConfig, error) {
	var serverAddress, grpcServerAddress NetAddress
	var databaseDSN, localFile, jsonConfigPath string
	var tokenSignKey, tokenIssuer string
	var tokenDuration, requestTimeout time.Duration
	var archiveBackend string
	var remoteAddress, remoteGRPC, token string
	var remoteTimeout, connectivityInterval, pushTimeout time.Duration
	var collections, scope string

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&grpcServerAddress, "grpc-address", "Net grpc server address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&localFile, "local-file", "", "JSON local store path")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&archiveBackend, "archive-backend", "", "Snapshot blob store: db or s3")
	fs.StringVar(&remoteAddress, "remote", "", "Remote document service URL")
	fs.StringVar(&remoteGRPC, "remote-grpc", "", "Remote gRPC health address")
	fs.DurationVar(&remoteTimeout, "remote-timeout", 0, "Outbound request timeout")
	fs.StringVar(&token, "token", "", "Bearer token")
	fs.DurationVar(&connectivityInterval, "connectivity-interval", 0, "Connectivity probe interval")
	fs.StringVar(&collections, "collections", "", "Watched collections, comma separated")
	fs.StringVar(&scope, "scope", "", "Live subscription scope, comma separated")
	fs.DurationVar(&pushTimeout, "push-timeout", 0, "Remote write timeout")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
		},
		Storage: Storage{
			DB:        DB{DSN: databaseDSN},
			LocalFile: localFile,
			Archive:   Archive{Backend: archiveBackend},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			GRPCAddress:    grpcServerAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    remoteAddress,
			GRPCAddress:    remoteGRPC,
			RequestTimeout: remoteTimeout,
			Token:          token,
		},
		Workers: Workers{ConnectivityInterval: connectivityInterval},
		Sync: Sync{
			Collections: splitList(collections),
			Scope:       splitList(scope),
			PushTimeout: pushTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// splitList splits a comma separated list, dropping blanks.
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// String returns a canonical host:port string for a NetAddress.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config provides configuration loading, merging, and validation
// for the desk-sync client and server.
//
// Configuration is assembled from multiple sources. Earlier sources take
// priority for fields they set:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// [GetClientConfig] and [GetServerConfig] map the merged [StructuredConfig]
// to process-specific views and validate them.
package config

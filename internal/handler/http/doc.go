// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the HTTP transport of the remote document service.
//
// It exposes route wiring, request handlers, and middleware for the REST API
// and the websocket change stream. Authentication, request tracing, access
// logging and response compression are handled in this package before
// requests are delegated to the service layer.
package http

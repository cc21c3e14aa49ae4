// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It wires the operator console, the sync engine and the background workers
// (connectivity probe, live sync) into a single process lifecycle.
package client

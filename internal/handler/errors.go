// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// errNoHandlersAreCreated means the server config enables neither HTTP nor
// gRPC.
var errNoHandlersAreCreated = errors.New("no handlers are created")

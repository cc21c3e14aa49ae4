// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")
	ErrUnavailable         = errors.New("remote service unavailable")

	ErrMissingDocumentID = errors.New("document has no id")
	ErrEmptyVersionID    = errors.New("empty version id")
	ErrSubscriptionEnded = errors.New("subscription ended")
)

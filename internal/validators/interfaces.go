// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks the shape of documents, snapshots and
// subscription scopes before the services act on them.
package validators

import "context"

// Validator validates one value. fields narrows the check to the named
// parts of the value; no fields means every rule applies.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}

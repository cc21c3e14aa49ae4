// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// IDField is the key under which a [Document] stores its identity.
const IDField = "id"

// Record is any application entity with a stable, collection-unique identity.
// The sync engine never assigns identities; callers own them.
type Record interface {
	RecordID() string
}

// Document is an opaque JSON-like record. The only field the engine reads is
// [IDField]; everything else is carried through untouched.
type Document map[string]any

// RecordID implements [Record]. Non-string ids are formatted with %v so that
// numeric ids decoded from JSON still produce a stable key.
func (d Document) RecordID() string {
	switch v := d[IDField].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Clone returns a shallow copy of the document.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

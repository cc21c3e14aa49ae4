// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"bytes"
	"encoding/json"
)

// CanonicalJSON serializes v so that equal values produce equal bytes:
// encoding/json sorts map keys, and numbers are normalized by a decode/encode
// round trip through json.Number.
func CanonicalJSON(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var generic any
	if err = dec.Decode(&generic); err != nil {
		return nil, err
	}

	return json.Marshal(generic)
}

// JSONEqual reports whether a and b have the same canonical JSON form.
// Values that cannot be serialized are never equal.
func JSONEqual(a, b any) bool {
	ca, err := CanonicalJSON(a)
	if err != nil {
		return false
	}
	cb, err := CanonicalJSON(b)
	if err != nil {
		return false
	}
	return bytes.Equal(ca, cb)
}

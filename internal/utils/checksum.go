// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/blake2b"
)

// ErrChecksumMismatch is returned by VerifyChecksum when data does not hash to
// the expected value.
var ErrChecksumMismatch = errors.New("checksum mismatch")

// Checksum returns the hex-encoded BLAKE2b-256 digest of data.
func Checksum(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// VerifyChecksum compares the digest of data with expected. An empty expected
// value is accepted, so versions archived without a checksum stay readable.
func VerifyChecksum(data []byte, expected string) error {
	if expected == "" {
		return nil
	}
	if Checksum(data) != expected {
		return ErrChecksumMismatch
	}
	return nil
}

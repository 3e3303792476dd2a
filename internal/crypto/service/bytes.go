// Package service implements the per-principal encryption engine: a SHA-256
// counter-mode keystream, an authenticated stream cipher with a fixed
// envelope framing, key derivation through the external signing oracle, and
// the derived-key cache with its clearing janitor.
package service

import (
	"crypto/subtle"
	"encoding/binary"
	"fmt"
)

// bigEndianUint64 encodes n into 8 bytes, most-significant byte first.
// Used for the keystream block counter.
func bigEndianUint64(n uint64) [8]byte {
	var out [8]byte
	binary.BigEndian.PutUint64(out[:], n)
	return out
}

// xorBytes returns the element-wise XOR of two equal-length byte sequences.
// Unequal lengths are a caller bug and panic immediately.
func xorBytes(a, b []byte) []byte {
	if len(a) != len(b) {
		panic(fmt.Sprintf("xorBytes: length mismatch (%d != %d)", len(a), len(b)))
	}
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// constantTimeEqual compares two byte sequences without early exit on
// content. A length mismatch returns false immediately; lengths are not
// secret here, only contents are.
func constantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}

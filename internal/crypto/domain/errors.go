package domain

import (
	"github.com/agentvault/agentvault/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors
// to provide context for cryptographic failures. All errors are mapped to
// appropriate HTTP status codes by the error handling layer.
var (
	// ErrInvalidKeySize indicates the cryptographic key size is invalid.
	//
	// All derived keys must be exactly 32 bytes (256 bits). This error is
	// returned at cipher construction and indicates a caller bug rather than
	// bad user input; it is never retried.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrDecryptionFailed indicates a decryption operation failed.
	//
	// This error can occur due to:
	//   - Envelope shorter than the fixed header
	//   - Wrong decryption key used
	//   - Ciphertext or tag has been tampered with (authentication failure)
	//
	// For security reasons, the specific cause is not disclosed: a truncated
	// envelope and a tag mismatch are indistinguishable to the caller.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")

	// ErrOracleUnavailable indicates the external signing oracle call failed
	// or timed out during key derivation. The failure is scoped to the single
	// request that triggered it; retry policy belongs to the caller.
	//
	// HTTP Status: 503 Service Unavailable
	ErrOracleUnavailable = errors.Wrap(errors.ErrUnavailable, "signing oracle unavailable")
)

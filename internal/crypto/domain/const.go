// Package domain defines the core types and errors for per-principal
// authenticated encryption. Keys are derived per caller identity through an
// external signing oracle and used with a hash-based stream cipher.
package domain

// KeySize is the size in bytes of every symmetric key in the system.
// Keys of any other length are a programming error and are rejected
// at cipher construction.
const KeySize = 32

// NonceSize is the size in bytes of the per-encryption nonce carried in
// every ciphertext envelope.
const NonceSize = 8

// TagSize is the size in bytes of the truncated authentication tag in the
// authenticated envelope format.
const TagSize = 16

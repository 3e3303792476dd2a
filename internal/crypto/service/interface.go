package service

import (
	"context"
	"time"

	cryptodomain "github.com/agentvault/agentvault/internal/crypto/domain"
)

// Cipher encrypts plaintexts into self-contained envelopes and opens them
// again. Implementations are keyed to a single caller identity.
type Cipher interface {
	// Encrypt encrypts plaintext and returns the ciphertext envelope.
	Encrypt(plaintext []byte) ([]byte, error)

	// Decrypt opens an envelope produced by Encrypt.
	Decrypt(envelope []byte) ([]byte, error)
}

// KeyDeriver derives the 32-byte symmetric key for a caller identity.
// Derivation is deterministic: the same identity always yields the same key
// for a given oracle environment.
type KeyDeriver interface {
	DeriveKey(ctx context.Context, identity cryptodomain.Identity) ([]byte, error)
}

// KeyProvider supplies per-identity keys, normally backed by the cache.
type KeyProvider interface {
	GetOrDerive(ctx context.Context, identity cryptodomain.Identity) ([]byte, error)
}

// CacheStateRepository persists the key cache's last-clear timestamp so the
// clearing period survives process restarts.
type CacheStateRepository interface {
	// LastCleared returns the persisted last-clear time, or the zero time if
	// the cache has never been cleared.
	LastCleared(ctx context.Context) (time.Time, error)

	// SetLastCleared records when the cache was last cleared.
	SetLastCleared(ctx context.Context, clearedAt time.Time) error
}

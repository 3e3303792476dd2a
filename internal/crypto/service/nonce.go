package service

import (
	"sync/atomic"
	"time"

	cryptodomain "github.com/agentvault/agentvault/internal/crypto/domain"
)

// NonceSource produces 8-byte nonces that are strictly increasing for the
// lifetime of the process.
//
// Nonce reuse under the same key breaks keystream secrecy, so the policy
// biases entirely toward a monotonic counter: the counter is seeded from the
// wall clock in nanoseconds at construction and incremented atomically per
// call. The nanosecond seed keeps nonces unique across restarts as well: a
// restarted process resumes far ahead of wherever the previous one stopped,
// without mixing in identity or time per call, which can collide within one
// time resolution. Nonces are not secret and not unpredictable, only unique.
type NonceSource struct {
	counter atomic.Uint64
}

// NewNonceSource creates a nonce source seeded from the current time.
func NewNonceSource() *NonceSource {
	s := &NonceSource{}
	s.counter.Store(uint64(time.Now().UnixNano()))
	return s
}

// Next returns the next nonce in strictly increasing order. Safe for
// concurrent use.
func (s *NonceSource) Next() [cryptodomain.NonceSize]byte {
	return bigEndianUint64(s.counter.Add(1))
}

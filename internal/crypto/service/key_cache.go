package service

import (
	"bytes"
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	cryptodomain "github.com/agentvault/agentvault/internal/crypto/domain"
)

// KeyCache maps caller identities to their derived keys.
//
// Entries are added lazily on first use per identity and the whole cache is
// dropped at once by Clear; there is no partial eviction. Concurrent misses
// for the same identity are collapsed into one oracle call via singleflight;
// this is purely a cost optimization, since derivation is deterministic and
// redundant derivations would agree on the key anyway.
type KeyCache struct {
	deriver KeyDeriver

	mu    sync.RWMutex
	keys  map[cryptodomain.Identity][]byte
	group singleflight.Group
}

// NewKeyCache creates an empty cache backed by the given deriver.
func NewKeyCache(deriver KeyDeriver) *KeyCache {
	return &KeyCache{
		deriver: deriver,
		keys:    make(map[cryptodomain.Identity][]byte),
	}
}

// GetOrDerive returns the cached key for identity, deriving and caching it on
// first use. Derivation failures are returned to the caller and leave the
// cache unchanged. The returned slice is a copy: callers may zero it.
func (c *KeyCache) GetOrDerive(
	ctx context.Context,
	identity cryptodomain.Identity,
) ([]byte, error) {
	// Clone while the lock is held: Clear zeroes cached slices in place, so a
	// reference taken out of the map is only safe to read under the lock.
	c.mu.RLock()
	key, ok := c.keys[identity]
	if ok {
		key = bytes.Clone(key)
	}
	c.mu.RUnlock()
	if ok {
		return key, nil
	}

	derived, err, _ := c.group.Do(string(identity), func() (any, error) {
		// Re-check: another caller may have populated the entry between the
		// read miss and this flight.
		c.mu.RLock()
		if key, ok := c.keys[identity]; ok {
			key = bytes.Clone(key)
			c.mu.RUnlock()
			return key, nil
		}
		c.mu.RUnlock()

		key, err := c.deriver.DeriveKey(ctx, identity)
		if err != nil {
			return nil, err
		}

		// The map holds its own copy so that Clear zeroing it cannot touch
		// the slice handed back to flight callers.
		c.mu.Lock()
		c.keys[identity] = bytes.Clone(key)
		c.mu.Unlock()
		return key, nil
	})
	if err != nil {
		return nil, err
	}

	return bytes.Clone(derived.([]byte)), nil
}

// Clear unconditionally drops every entry. Key material is zeroed before the
// map is released.
func (c *KeyCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range c.keys {
		cryptodomain.Zero(key)
	}
	c.keys = make(map[cryptodomain.Identity][]byte)
}

// Size returns the number of cached keys. Observability only.
func (c *KeyCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.keys)
}

package service

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey() []byte {
	// 32 ascending bytes: 0x00..0x1f.
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	return key
}

func testNonce() []byte {
	return []byte{1, 2, 3, 4, 5, 6, 7, 8}
}

func TestKeystreamBlock(t *testing.T) {
	key := testKey()
	nonce := testNonce()

	t.Run("matches SHA-256 of key, nonce and counter", func(t *testing.T) {
		counter := bigEndianUint64(7)
		input := append(append(append([]byte{}, key...), nonce...), counter[:]...)
		want := sha256.Sum256(input)

		assert.Equal(t, want, keystreamBlock(key, nonce, 7))
	})

	t.Run("deterministic", func(t *testing.T) {
		b1 := keystreamBlock(key, nonce, 0)
		b2 := keystreamBlock(key, nonce, 0)
		assert.Equal(t, b1, b2)
	})

	t.Run("counters produce distinct blocks", func(t *testing.T) {
		b0 := keystreamBlock(key, nonce, 0)
		b1 := keystreamBlock(key, nonce, 1)
		assert.NotEqual(t, b0, b1)
	})
}

func TestKeystream(t *testing.T) {
	key := testKey()
	nonce := testNonce()

	t.Run("zero length yields empty output", func(t *testing.T) {
		out := keystream(key, nonce, 0)
		assert.Empty(t, out)
	})

	t.Run("deterministic", func(t *testing.T) {
		s1 := keystream(key, nonce, 100)
		s2 := keystream(key, nonce, 100)
		assert.Equal(t, s1, s2)
	})

	t.Run("is the concatenation of blocks", func(t *testing.T) {
		b0 := keystreamBlock(key, nonce, 0)
		b1 := keystreamBlock(key, nonce, 1)
		want := append(append([]byte{}, b0[:]...), b1[:]...)

		assert.Equal(t, want, keystream(key, nonce, 64))
	})

	t.Run("final block is truncated", func(t *testing.T) {
		full := keystream(key, nonce, 64)
		short := keystream(key, nonce, 50)

		require.Len(t, short, 50)
		assert.Equal(t, full[:50], short)
	})

	t.Run("exact lengths", func(t *testing.T) {
		for _, length := range []int{1, 31, 32, 33, 63, 64, 65, 1000} {
			assert.Len(t, keystream(key, nonce, length), length)
		}
	})

	t.Run("different nonces produce different keystreams", func(t *testing.T) {
		n2 := []byte{8, 7, 6, 5, 4, 3, 2, 1}
		assert.NotEqual(t, keystream(key, nonce, 64), keystream(key, n2, 64))
	})

	t.Run("different keys produce different keystreams", func(t *testing.T) {
		k2 := testKey()
		k2[0] ^= 1
		assert.NotEqual(t, keystream(key, nonce, 64), keystream(k2, nonce, 64))
	})
}

package service

import (
	"crypto/hmac"
	"crypto/sha256"

	cryptodomain "github.com/agentvault/agentvault/internal/crypto/domain"
)

// Envelope layout: nonce(8) ∥ tag(16) ∥ ciphertext(n). The legacy
// unauthenticated layout omits the tag.
const (
	authenticatedHeaderSize = cryptodomain.NonceSize + cryptodomain.TagSize
	legacyHeaderSize        = cryptodomain.NonceSize
)

// StreamCipher encrypts and decrypts byte sequences under a single 32-byte
// key using the SHA-256 counter-mode keystream.
//
// The production construction is authenticated: every envelope carries a
// 16-byte HMAC-SHA256 tag over nonce ∥ ciphertext, verified in constant time
// before any keystream is generated on decrypt. Decrypting with the wrong key
// or a tampered envelope fails explicitly instead of returning garbage.
//
// The cipher instance is safe for concurrent use; nonce uniqueness is
// guaranteed by the shared NonceSource.
type StreamCipher struct {
	key           []byte
	nonces        *NonceSource
	authenticated bool
}

// NewStreamCipher creates an authenticated stream cipher for the given
// 32-byte key. Returns ErrInvalidKeySize for any other key length; a key of
// the wrong size is a caller bug, not recoverable input.
func NewStreamCipher(key []byte, nonces *NonceSource) (*StreamCipher, error) {
	return newStreamCipher(key, nonces, true)
}

// NewLegacyStreamCipher creates the unauthenticated predecessor construction:
// envelope nonce(8) ∥ ciphertext, no integrity tag.
//
// INSECURE: decrypting under the wrong key silently returns plausible-looking
// garbage, and tampering is undetectable. This variant exists only to read
// envelopes written before authentication was introduced and must never be
// used on an encryption path for new data.
func NewLegacyStreamCipher(key []byte, nonces *NonceSource) (*StreamCipher, error) {
	return newStreamCipher(key, nonces, false)
}

func newStreamCipher(key []byte, nonces *NonceSource, authenticated bool) (*StreamCipher, error) {
	if len(key) != cryptodomain.KeySize {
		return nil, cryptodomain.ErrInvalidKeySize
	}

	k := make([]byte, cryptodomain.KeySize)
	copy(k, key)

	return &StreamCipher{
		key:           k,
		nonces:        nonces,
		authenticated: authenticated,
	}, nil
}

// Encrypt encrypts plaintext into a self-contained envelope. Empty plaintext
// produces a header-only envelope without generating any keystream.
func (c *StreamCipher) Encrypt(plaintext []byte) ([]byte, error) {
	nonce := c.nonces.Next()

	ciphertext := []byte{}
	if len(plaintext) > 0 {
		ciphertext = xorBytes(plaintext, keystream(c.key, nonce[:], len(plaintext)))
	}

	if !c.authenticated {
		return append(nonce[:], ciphertext...), nil
	}

	tag := c.tag(nonce[:], ciphertext)
	envelope := make([]byte, 0, authenticatedHeaderSize+len(ciphertext))
	envelope = append(envelope, nonce[:]...)
	envelope = append(envelope, tag...)
	envelope = append(envelope, ciphertext...)
	return envelope, nil
}

// Decrypt opens an envelope produced by Encrypt. Truncated envelopes are
// rejected before any hashing; in the authenticated variant the tag is
// verified before keystream generation, and a mismatch is reported exactly
// like a truncated envelope so callers cannot distinguish which check failed.
func (c *StreamCipher) Decrypt(envelope []byte) ([]byte, error) {
	if !c.authenticated {
		return c.decryptLegacy(envelope)
	}

	if len(envelope) < authenticatedHeaderSize {
		return nil, cryptodomain.ErrDecryptionFailed
	}

	nonce := envelope[:cryptodomain.NonceSize]
	tag := envelope[cryptodomain.NonceSize:authenticatedHeaderSize]
	ciphertext := envelope[authenticatedHeaderSize:]

	if !constantTimeEqual(tag, c.tag(nonce, ciphertext)) {
		return nil, cryptodomain.ErrDecryptionFailed
	}

	if len(ciphertext) == 0 {
		return []byte{}, nil
	}
	return xorBytes(ciphertext, keystream(c.key, nonce, len(ciphertext))), nil
}

// decryptLegacy opens an unauthenticated envelope. There is no integrity
// check: a wrong key yields garbage of the correct length, not an error.
func (c *StreamCipher) decryptLegacy(envelope []byte) ([]byte, error) {
	if len(envelope) < legacyHeaderSize {
		return nil, cryptodomain.ErrDecryptionFailed
	}

	nonce := envelope[:cryptodomain.NonceSize]
	ciphertext := envelope[legacyHeaderSize:]

	if len(ciphertext) == 0 {
		return []byte{}, nil
	}
	return xorBytes(ciphertext, keystream(c.key, nonce, len(ciphertext))), nil
}

// tag computes the truncated HMAC-SHA256 authentication tag over
// nonce ∥ ciphertext.
func (c *StreamCipher) tag(nonce, ciphertext []byte) []byte {
	mac := hmac.New(sha256.New, c.key)
	mac.Write(nonce)
	mac.Write(ciphertext)
	return mac.Sum(nil)[:cryptodomain.TagSize]
}

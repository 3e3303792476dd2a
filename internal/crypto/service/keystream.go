package service

import (
	"crypto/sha256"
)

// keystreamBlock computes one 32-byte keystream block as
// SHA-256(key ∥ nonce ∥ bigEndian(counter)). Deterministic and stateless:
// identical inputs always yield identical output.
//
// This is a counter-mode PRF construction over a hash function rather than a
// purpose-built stream cipher. It is slower than a dedicated cipher but the
// payloads here (provider API keys) are short, and it keeps the envelope
// format free of any cipher-specific parameters.
func keystreamBlock(key, nonce []byte, counter uint64) [sha256.Size]byte {
	h := sha256.New()
	h.Write(key)
	h.Write(nonce)
	c := bigEndianUint64(counter)
	h.Write(c[:])

	var out [sha256.Size]byte
	h.Sum(out[:0])
	return out
}

// keystream produces length bytes of keystream by concatenating blocks for
// counters 0, 1, 2, … and truncating the final block. A zero length returns
// an empty slice without invoking the hash at all.
func keystream(key, nonce []byte, length int) []byte {
	if length == 0 {
		return []byte{}
	}

	out := make([]byte, 0, length+sha256.Size)
	for counter := uint64(0); len(out) < length; counter++ {
		block := keystreamBlock(key, nonce, counter)
		out = append(out, block[:]...)
	}
	return out[:length]
}

package oracle

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"
)

// LocalOracle is a deterministic in-process signer for local and test
// environments, standing in for the remote threshold-signing service.
//
// It mimics the one property derivation depends on: the same message,
// derivation path and key name always produce the same signature. It provides
// no actual threshold security and must never be configured in staging or
// production.
type LocalOracle struct {
	seed []byte
}

// NewLocalOracle creates a local signer keyed from the given seed.
func NewLocalOracle(seed []byte) (*LocalOracle, error) {
	if len(seed) == 0 {
		return nil, fmt.Errorf("local oracle seed is required")
	}
	s := make([]byte, len(seed))
	copy(s, seed)
	return &LocalOracle{seed: s}, nil
}

// Sign produces HMAC-SHA256(seed, encode(req)). Each request field is
// length-prefixed so distinct requests can never collide on concatenation.
func (o *LocalOracle) Sign(ctx context.Context, req SignRequest) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSigningFailed, err)
	}

	mac := hmac.New(sha256.New, o.seed)
	writeLenPrefixed(mac, []byte(req.KeyID.Algorithm))
	writeLenPrefixed(mac, []byte(req.KeyID.Name))
	for _, p := range req.DerivationPath {
		writeLenPrefixed(mac, p)
	}
	writeLenPrefixed(mac, req.Message)

	return mac.Sum(nil), nil
}

func writeLenPrefixed(w io.Writer, b []byte) {
	var l [8]byte
	binary.BigEndian.PutUint64(l[:], uint64(len(b)))
	w.Write(l[:])
	w.Write(b)
}

package service

import (
	"context"
	"crypto/sha256"
	"fmt"

	cryptodomain "github.com/agentvault/agentvault/internal/crypto/domain"
	"github.com/agentvault/agentvault/internal/oracle"
)

// derivationMessage is the fixed domain-separation message every derivation
// signs. Changing it changes every derived key in the system.
var derivationMessage = []byte("agentvault/api-key-encryption/v1")

// KeyDerivationService derives per-identity symmetric keys from the external
// signing oracle.
//
// The oracle signs the fixed derivation message under a derivation path of
// [identity bytes]; the 32-byte key is SHA-256 of the raw signature. Because
// the signature scheme is deterministic for a fixed message and path, the
// same identity always derives the same key for a given environment and
// oracle state. The oracle call is the single suspension point and is billed
// externally, so callers should reach this service through the key cache.
type KeyDerivationService struct {
	oracle oracle.Oracle
	keyID  oracle.KeyID
}

// NewKeyDerivationService creates a derivation service addressing the oracle
// root key for the given deployment environment.
func NewKeyDerivationService(o oracle.Oracle, env oracle.Environment) *KeyDerivationService {
	return &KeyDerivationService{
		oracle: o,
		keyID: oracle.KeyID{
			Algorithm: oracle.ECDSASecp256k1,
			Name:      env.KeyName(),
		},
	}
}

// DeriveKey derives the 32-byte key for identity. Oracle failures propagate
// as ErrOracleUnavailable; a default key is never substituted.
func (s *KeyDerivationService) DeriveKey(
	ctx context.Context,
	identity cryptodomain.Identity,
) ([]byte, error) {
	req := oracle.SignRequest{
		Message:        derivationMessage,
		DerivationPath: [][]byte{identity.Bytes()},
		KeyID:          s.keyID,
	}

	signature, err := s.oracle.Sign(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptodomain.ErrOracleUnavailable, err)
	}

	key := sha256.Sum256(signature)
	return key[:], nil
}

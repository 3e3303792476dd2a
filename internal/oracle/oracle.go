// Package oracle provides clients for the external threshold-signing service.
//
// The oracle is consumed as a black box: given a fixed message and a
// derivation path it produces a deterministic signature under a named key.
// The crypto layer never inspects signature internals beyond hashing the raw
// bytes, so any signature scheme with deterministic output works.
package oracle

import (
	"context"
	"fmt"

	"github.com/agentvault/agentvault/internal/errors"
)

// ErrSigningFailed indicates the oracle could not produce a signature.
var ErrSigningFailed = errors.Wrap(errors.ErrUnavailable, "oracle signing failed")

// SignatureAlgorithm identifies the signature scheme requested from the oracle.
type SignatureAlgorithm string

// ECDSASecp256k1 is the fixed scheme used for key derivation. Derivation
// relies on the scheme producing the same signature for the same message and
// derivation path.
const ECDSASecp256k1 SignatureAlgorithm = "ecdsa-secp256k1"

// KeyID addresses one of the oracle's root keys.
type KeyID struct {
	Algorithm SignatureAlgorithm `json:"algorithm"`
	Name      string             `json:"name"`
}

// SignRequest is a request for a signature over Message under the root key
// identified by KeyID, steered by DerivationPath.
type SignRequest struct {
	Message        []byte   `json:"message"`
	DerivationPath [][]byte `json:"derivation_path"`
	KeyID          KeyID    `json:"key_id"`
}

// Oracle is an asynchronous signing service. Sign blocks until the oracle
// responds or ctx is done; it is the single suspension point of key
// derivation. Calls are fallible and possibly costly (remote and metered).
type Oracle interface {
	Sign(ctx context.Context, req SignRequest) ([]byte, error)
}

// Environment is the deployment environment of the service. It selects which
// of the oracle's root keys derivation addresses; it is purely configuration
// and never changes derivation behavior beyond the key name.
type Environment string

const (
	EnvLocal      Environment = "local"
	EnvTest       Environment = "test"
	EnvStaging    Environment = "staging"
	EnvProduction Environment = "production"
)

// ParseEnvironment converts a configuration string into an Environment.
func ParseEnvironment(s string) (Environment, error) {
	switch Environment(s) {
	case EnvLocal, EnvTest, EnvStaging, EnvProduction:
		return Environment(s), nil
	default:
		return "", fmt.Errorf(
			"invalid oracle environment: %s (valid options: local, test, staging, production)", s,
		)
	}
}

// KeyName returns the oracle root key name for the environment. Local and
// test share the throwaway key; staging and production each have their own.
func (e Environment) KeyName() string {
	switch e {
	case EnvLocal, EnvTest:
		return "test-key-1"
	case EnvStaging:
		return "staging-key-1"
	case EnvProduction:
		return "key-1"
	default:
		return "test-key-1"
	}
}

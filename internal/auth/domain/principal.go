// Package domain defines the principal model used for authentication and the
// admin allow-list.
//
// A principal is a caller of the API. It authenticates with a bearer token and
// carries an admin flag that gates the administrative surface. The principal's
// UUID is also the identity under which per-caller encryption keys are derived.
package domain

import (
	"time"

	"github.com/google/uuid"

	cryptodomain "github.com/agentvault/agentvault/internal/crypto/domain"
)

// Principal represents an authenticated caller of the API.
type Principal struct {
	ID        uuid.UUID // Unique identifier (UUIDv7)
	Name      string    // Human-readable principal name
	TokenHash string    // SHA-256 hex hash of the bearer token (never plaintext)
	IsAdmin   bool      // Whether the principal may use admin endpoints
	IsActive  bool      // Whether the principal can authenticate
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Identity returns the caller identity used for key derivation and cache
// keying: the canonical string form of the principal's UUID.
func (p *Principal) Identity() cryptodomain.Identity {
	return cryptodomain.Identity(p.ID.String())
}

// CreatePrincipalInput contains the parameters for creating a new principal.
// The bearer token is generated server-side and cannot be chosen by the caller.
type CreatePrincipalInput struct {
	Name    string // Human-readable name for identifying the principal
	IsAdmin bool   // Whether the principal starts on the admin allow-list
}

// CreatePrincipalOutput contains the result of creating a principal.
// The PlainToken is only returned once and must be securely transmitted
// to the caller. It is never retrievable again after this response.
type CreatePrincipalOutput struct {
	ID         uuid.UUID // Unique identifier for the created principal (UUIDv7)
	PlainToken string    // Plain text bearer token (transmit securely, never log)
}

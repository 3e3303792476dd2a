package domain

import (
	"time"

	"github.com/google/uuid"
)

// APIKey is a per-principal, per-provider API key stored as an encrypted
// envelope. The plaintext never touches the database.
type APIKey struct {
	ID          uuid.UUID `json:"id"`
	PrincipalID uuid.UUID `json:"principal_id"`
	Provider    Provider  `json:"provider"`
	Envelope    []byte    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

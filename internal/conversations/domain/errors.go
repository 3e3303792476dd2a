package domain

import (
	"github.com/agentvault/agentvault/internal/errors"
)

// Conversation log errors.
var (
	// ErrEntryNotFound indicates a conversation entry was not found.
	ErrEntryNotFound = errors.Wrap(errors.ErrNotFound, "conversation entry not found")

	// ErrInvalidRole indicates the role is not one of user, assistant, or system.
	ErrInvalidRole = errors.Wrap(errors.ErrInvalidInput, "invalid conversation role")

	// ErrAgentInactive indicates the referenced agent exists but is deactivated.
	ErrAgentInactive = errors.Wrap(errors.ErrInvalidInput, "agent is inactive")
)

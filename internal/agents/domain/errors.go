package domain

import (
	"github.com/agentvault/agentvault/internal/errors"
)

// Agent management errors.
var (
	// ErrAgentNotFound indicates an agent with the specified ID was not found.
	ErrAgentNotFound = errors.Wrap(errors.ErrNotFound, "agent not found")

	// ErrAgentAlreadyExists indicates an agent with the same name already exists.
	ErrAgentAlreadyExists = errors.Wrap(errors.ErrConflict, "agent already exists")
)

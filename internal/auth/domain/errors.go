package domain

import (
	"github.com/agentvault/agentvault/internal/errors"
)

// Authentication and allow-list errors.
var (
	// ErrPrincipalNotFound indicates a principal with the specified ID was not found.
	ErrPrincipalNotFound = errors.Wrap(errors.ErrNotFound, "principal not found")

	// ErrPrincipalAlreadyExists indicates a principal with the same name already exists.
	ErrPrincipalAlreadyExists = errors.Wrap(errors.ErrConflict, "principal already exists")

	// ErrPrincipalInactive indicates the principal exists but cannot authenticate.
	ErrPrincipalInactive = errors.Wrap(errors.ErrForbidden, "principal is inactive")
)

package domain

import (
	"github.com/agentvault/agentvault/internal/errors"
)

// API key storage errors.
var (
	// ErrAPIKeyNotFound indicates no key is stored for the principal and provider.
	ErrAPIKeyNotFound = errors.Wrap(errors.ErrNotFound, "api key not found")

	// ErrUnknownProvider indicates the provider is not in the supported set.
	ErrUnknownProvider = errors.Wrap(errors.ErrInvalidInput, "unknown provider")
)

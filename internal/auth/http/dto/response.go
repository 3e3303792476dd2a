// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	authDomain "github.com/agentvault/agentvault/internal/auth/domain"
)

// CreatePrincipalResponse contains the result of creating a new principal.
// SECURITY: The token is only returned once and must be saved securely.
type CreatePrincipalResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"` //nolint:gosec // returned once on creation
}

// PrincipalResponse represents a principal in API responses (excludes token hash).
type PrincipalResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsAdmin   bool      `json:"is_admin"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MapPrincipalToResponse converts a domain principal to an API response.
func MapPrincipalToResponse(principal *authDomain.Principal) PrincipalResponse {
	return PrincipalResponse{
		ID:        principal.ID.String(),
		Name:      principal.Name,
		IsAdmin:   principal.IsAdmin,
		IsActive:  principal.IsActive,
		CreatedAt: principal.CreatedAt,
		UpdatedAt: principal.UpdatedAt,
	}
}

// ListPrincipalsResponse represents a paginated list of principals in API responses.
type ListPrincipalsResponse struct {
	Data []PrincipalResponse `json:"data"`
}

// MapPrincipalsToListResponse converts a slice of domain principals to a list API response.
func MapPrincipalsToListResponse(principals []*authDomain.Principal) ListPrincipalsResponse {
	principalResponses := make([]PrincipalResponse, 0, len(principals))
	for _, principal := range principals {
		principalResponses = append(principalResponses, MapPrincipalToResponse(principal))
	}
	return ListPrincipalsResponse{
		Data: principalResponses,
	}
}

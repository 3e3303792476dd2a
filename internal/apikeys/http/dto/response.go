// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	apikeysDomain "github.com/agentvault/agentvault/internal/apikeys/domain"
)

// APIKeyResponse represents a stored API key in API responses.
// The envelope and plaintext are never included.
type APIKeyResponse struct {
	ID        string    `json:"id"`
	Provider  string    `json:"provider"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MapAPIKeyToResponse converts a domain API key to an API response.
func MapAPIKeyToResponse(apiKey *apikeysDomain.APIKey) APIKeyResponse {
	return APIKeyResponse{
		ID:        apiKey.ID.String(),
		Provider:  string(apiKey.Provider),
		Label:     apiKey.Provider.Label(),
		CreatedAt: apiKey.CreatedAt,
		UpdatedAt: apiKey.UpdatedAt,
	}
}

// ListAPIKeysResponse represents a principal's configured providers in API responses.
type ListAPIKeysResponse struct {
	Data []APIKeyResponse `json:"data"`
}

// MapAPIKeysToListResponse converts a slice of domain API keys to a list API response.
func MapAPIKeysToListResponse(apiKeys []*apikeysDomain.APIKey) ListAPIKeysResponse {
	apiKeyResponses := make([]APIKeyResponse, 0, len(apiKeys))
	for _, apiKey := range apiKeys {
		apiKeyResponses = append(apiKeyResponses, MapAPIKeyToResponse(apiKey))
	}
	return ListAPIKeysResponse{
		Data: apiKeyResponses,
	}
}

// RevealAPIKeyResponse carries a decrypted API key back to its owner.
type RevealAPIKeyResponse struct {
	Provider string `json:"provider"`
	Key      string `json:"key"`
}

// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/agentvault/agentvault/internal/validation"
)

// AppendEntryRequest contains the parameters for appending a conversation entry.
type AppendEntryRequest struct {
	AgentID string `json:"agent_id"`
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Validate checks if the append entry request is valid.
func (r *AppendEntryRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.AgentID,
			validation.Required,
			validation.Length(36, 36),
		),
		validation.Field(&r.Role,
			validation.Required,
			validation.In("user", "assistant", "system"),
		),
		validation.Field(&r.Content,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 65535),
		),
	)
}

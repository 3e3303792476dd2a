// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/agentvault/agentvault/internal/validation"
)

// SetAdminRequest contains the parameters for changing a principal's admin flag.
type SetAdminRequest struct {
	IsAdmin bool `json:"is_admin"`
}

// CreatePrincipalRequest contains the parameters for creating a new principal.
type CreatePrincipalRequest struct {
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
}

// Validate checks if the create principal request is valid.
func (r *CreatePrincipalRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NoWhitespace,
			validation.Length(1, 255),
		),
	)
}

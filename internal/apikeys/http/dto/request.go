// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/agentvault/agentvault/internal/validation"
)

// StoreAPIKeyRequest contains the plaintext key to encrypt and store.
type StoreAPIKeyRequest struct {
	Key string `json:"key"`
}

// Validate checks if the store API key request is valid.
func (r *StoreAPIKeyRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Key,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NoWhitespace,
			validation.Length(1, 4096),
		),
	)
}

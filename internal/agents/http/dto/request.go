// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	agentsDomain "github.com/agentvault/agentvault/internal/agents/domain"
	customValidation "github.com/agentvault/agentvault/internal/validation"
)

// CreateAgentRequest contains the parameters for registering a new agent.
type CreateAgentRequest struct {
	Name         string  `json:"name"`
	Provider     string  `json:"provider"`
	Model        string  `json:"model"`
	SystemPrompt string  `json:"system_prompt"`
	Temperature  float64 `json:"temperature"`
}

// Validate checks if the create agent request is valid.
func (r *CreateAgentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NoWhitespace,
			validation.Length(1, 255),
		),
		validation.Field(&r.Provider,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 64),
		),
		validation.Field(&r.Model,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.SystemPrompt,
			customValidation.Printable,
		),
		validation.Field(&r.Temperature,
			validation.Min(0.0),
			validation.Max(2.0),
		),
	)
}

// ToCreateAgentInput converts the request into a domain input.
func (r *CreateAgentRequest) ToCreateAgentInput() *agentsDomain.CreateAgentInput {
	return &agentsDomain.CreateAgentInput{
		Name:         r.Name,
		Provider:     r.Provider,
		Model:        r.Model,
		SystemPrompt: r.SystemPrompt,
		Temperature:  r.Temperature,
	}
}

// UpdateAgentRequest contains the mutable agent fields. Omitted fields leave
// the stored value unchanged.
type UpdateAgentRequest struct {
	Provider     *string  `json:"provider"`
	Model        *string  `json:"model"`
	SystemPrompt *string  `json:"system_prompt"`
	Temperature  *float64 `json:"temperature"`
	IsActive     *bool    `json:"is_active"`
}

// Validate checks if the update agent request is valid.
func (r *UpdateAgentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Provider,
			validation.NilOrNotEmpty,
			validation.Length(1, 64),
		),
		validation.Field(&r.Model,
			validation.NilOrNotEmpty,
			validation.Length(1, 255),
		),
		validation.Field(&r.Temperature,
			validation.Min(0.0),
			validation.Max(2.0),
		),
	)
}

// ToUpdateAgentInput converts the request into a domain input.
func (r *UpdateAgentRequest) ToUpdateAgentInput() *agentsDomain.UpdateAgentInput {
	return &agentsDomain.UpdateAgentInput{
		Provider:     r.Provider,
		Model:        r.Model,
		SystemPrompt: r.SystemPrompt,
		Temperature:  r.Temperature,
		IsActive:     r.IsActive,
	}
}

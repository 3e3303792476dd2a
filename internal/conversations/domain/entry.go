// Package domain defines the core types for per-principal conversation logs.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a conversation entry.
type Role string

// Supported conversation roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// ParseRole validates and converts a string into a Role.
func ParseRole(value string) (Role, error) {
	switch Role(value) {
	case RoleUser:
		return RoleUser, nil
	case RoleAssistant:
		return RoleAssistant, nil
	case RoleSystem:
		return RoleSystem, nil
	default:
		return "", ErrInvalidRole
	}
}

// Entry is a single message in a principal's conversation log.
type Entry struct {
	ID          uuid.UUID `json:"id"`
	PrincipalID uuid.UUID `json:"principal_id"`
	AgentID     uuid.UUID `json:"agent_id"`
	Role        Role      `json:"role"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
}

// AppendEntryInput contains the parameters for appending a conversation entry.
type AppendEntryInput struct {
	PrincipalID uuid.UUID
	AgentID     uuid.UUID
	Role        Role
	Content     string
}

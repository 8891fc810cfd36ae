package domain

import (
	"errors"
	"fmt"
)

// Role identifies the speaker of a conversation turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"

	// roleAssistant is a legacy label still produced by some clients.
	// It is accepted on input and normalized to RoleModel.
	roleAssistant = "assistant"
)

var ErrInvalidRole = errors.New("role must be 'user', 'assistant', or 'model'")

// NormalizeRole maps a raw role label onto one of the two canonical roles.
func NormalizeRole(role string) (Role, error) {
	switch role {
	case string(RoleUser):
		return RoleUser, nil
	case string(RoleModel), roleAssistant:
		return RoleModel, nil
	default:
		return "", fmt.Errorf("%w, got %q", ErrInvalidRole, role)
	}
}

// Turn is one utterance in the conversation. Immutable once created;
// ordering is insertion order.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

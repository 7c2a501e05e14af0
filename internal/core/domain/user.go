package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is the session mode resolved at login. The ledger itself performs no
// access control beyond gating merchant-mode operations on this role.
type Role string

const (
	RoleConsumer Role = "consumer"
	RoleMerchant Role = "merchant"
)

// ParseRole validates a role value.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleConsumer, RoleMerchant:
		return Role(s), nil
	}
	return "", &UnknownEnumError{Kind: "role", Value: s}
}

// User is a registered account holder.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

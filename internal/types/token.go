package types

import (
	"github.com/google/uuid"
)

// TokenClaims is the authenticated identity extracted from a bearer token
type TokenClaims struct {
	UserID  uuid.UUID `json:"user_id"`
	IsAdmin bool      `json:"is_admin"`
}

package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/andresrodas/puntoventa-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	CustomerID uuid.UUID
	Role       enums.AccountRole
	JTI        string
}

// AccessTokenClaims represents the typed JWT issued to clients. The customer
// id doubles as the registered subject so standard tooling can read it.
type AccessTokenClaims struct {
	CustomerID uuid.UUID         `json:"customer_id"`
	Role       enums.AccountRole `json:"role"`
	jwt.RegisteredClaims
}

// IsAdmin reports whether the bearer may access privileged listings.
func (c *AccessTokenClaims) IsAdmin() bool {
	return c != nil && c.Role == enums.AccountRoleAdmin
}

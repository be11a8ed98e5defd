package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims represents the claims in a write-access token.
type TokenClaims struct {
	jwt.RegisteredClaims
	Scope string `json:"scope"`
}

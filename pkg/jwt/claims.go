package jwt

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims represents JWT custom claims for API clients
type Claims struct {
	ClientID string `json:"client_id"`
	jwt.RegisteredClaims
}

package token

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the bearer token payload. Roles are embedded at issue time and
// are not re-fetched per request; revoked roles stay valid until expiry
// unless the deny-list is consulted.
type Claims struct {
	Roles []string            `json:"roles,omitempty"`
	Clm   map[string][]string `json:"clm,omitempty"`
	jwt.RegisteredClaims
}

package models

import "github.com/golang-jwt/jwt/v5"

// Roles
const (
	RoleUser      = "user"
	RoleTherapist = "therapist"
	RoleAdmin     = "admin"
)

// UserClaims are the claims of the bearer tokens issued by the auth module.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role"`
}

// HasRole reports whether the claims carry one of the given roles.
// Admins pass every role check.
func (c *UserClaims) HasRole(roles ...string) bool {
	if c.Role == RoleAdmin {
		return true
	}
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}
	return false
}

package helpers

import "github.com/golang-jwt/jwt/v5"

// CustomClaims is the verified identity the auth middleware injects onto
// each request. Subject carries the user ID; Name is the display name the
// media pipeline prefixes file names with.
type CustomClaims struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

func (c *CustomClaims) UserID() string {
	return c.Subject
}

func (c *CustomClaims) DisplayName() string {
	if c.Name == "" {
		return c.Subject
	}
	return c.Name
}

func (c *CustomClaims) IsOwner(userID string) bool {
	return c.Subject == userID
}

package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrInvalidClaim = errors.New("invalid token claims")
)

// ViewerClaims are the bearer token claims the portal reads for display.
// The backend is the only party that verifies the signature.
type ViewerClaims struct {
	UserID string `json:"id,omitempty"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// UserKey returns the most stable user identifier present in the token
func (c *ViewerClaims) UserKey() string {
	if c.RegisteredClaims.Subject != "" {
		return c.RegisteredClaims.Subject
	}
	return c.UserID
}

// Expired reports whether the token carries an expiry that has passed
func (c *ViewerClaims) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(c.ExpiresAt.Time)
}

// InspectToken decodes the claims of a bearer token without verifying its signature.
// Only use the result for presentation and cache partitioning, never for authorization.
func InspectToken(token string) (*ViewerClaims, error) {
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	if token == "" {
		return nil, ErrInvalidToken
	}

	claims := &ViewerClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.UserKey() == "" {
		return nil, ErrInvalidClaim
	}

	return claims, nil
}

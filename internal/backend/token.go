package backend

import (
	"context"
	"strings"
)

type tokenKey struct{}

// WithToken attaches the viewer's bearer token to ctx for outgoing backend calls
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, strings.TrimSpace(strings.TrimPrefix(token, "Bearer ")))
}

// TokenFrom returns the bearer token carried by ctx, or ""
func TokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

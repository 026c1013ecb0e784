// Package auth provides bearer-token validation and scope-based
// authorization. Tokens are HMAC-signed JWTs verified against a single shared
// secret; a validated token yields an immutable Claims value that lives for
// one request.
package auth

import (
	"context"
	"time"
)

// Claims is the identity asserted by a validated token: the subject, the
// token expiry, and the granted scopes. Claims are immutable once
// constructed and are never shared across requests.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
	Scopes    []string
}

// HasScope reports whether the claims carry the given scope.
// Scopes are case-sensitive exact-match strings.
func (c Claims) HasScope(scope string) bool {
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// claimsKey is the private context key for validated claims. Using an
// unexported struct type keeps the claims out of reach of any other package's
// context values.
type claimsKey struct{}

// NewContext returns a copy of ctx carrying the validated claims.
// The auth middleware calls this once per authenticated request.
func NewContext(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// FromContext extracts the validated claims attached by the auth middleware.
// The second return value is false when the request never passed the gate.
func FromContext(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(Claims)
	return claims, ok
}

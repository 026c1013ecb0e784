package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when a token is malformed, carries an
	// unexpected signing method, fails signature verification, or is
	// missing required claims.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired is returned when a structurally valid token has an
	// expiry in the past. It also maps to an unauthorized response.
	ErrTokenExpired = errors.New("token expired")
)

// tokenClaims is the raw JWT claim set the service accepts.
type tokenClaims struct {
	Scopes []string `json:"scopes"`
	jwt.RegisteredClaims
}

// TokenValidator verifies bearer tokens against the single shared secret.
//
// The signing algorithm is fixed to HS256 and is not negotiable per token: a
// token declaring any other algorithm is rejected rather than trusted.
// Validation is pure with respect to application state; it depends only on
// the secret and the current clock.
type TokenValidator struct {
	secret []byte
	now    func() time.Time
}

// NewTokenValidator creates a validator for tokens signed with the given
// shared secret.
func NewTokenValidator(secret string) *TokenValidator {
	return NewTokenValidatorWithClock(secret, time.Now)
}

// NewTokenValidatorWithClock creates a validator with an injectable clock.
// Tests use this to exercise expiry behavior deterministically.
func NewTokenValidatorWithClock(secret string, now func() time.Time) *TokenValidator {
	return &TokenValidator{
		secret: []byte(secret),
		now:    now,
	}
}

// Validate parses and verifies a raw bearer token and extracts its claims.
//
// A token is accepted only when all of the following hold:
//   - it is signed with HS256 and the signature verifies against the secret
//   - the exp claim is present and in the future
//   - the sub claim is present and non-empty
//
// Returns ErrTokenExpired for an expired token and ErrInvalidToken for every
// other failure; both wrap the underlying cause.
func (v *TokenValidator) Validate(rawToken string) (Claims, error) {
	token, err := jwt.ParseWithClaims(rawToken, &tokenClaims{},
		func(token *jwt.Token) (any, error) {
			return v.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, fmt.Errorf("%w: %v", ErrTokenExpired, err)
		}
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return Claims{}, fmt.Errorf("%w: unexpected claims type", ErrInvalidToken)
	}

	if claims.Subject == "" {
		return Claims{}, fmt.Errorf("%w: missing sub claim", ErrInvalidToken)
	}

	scopes := claims.Scopes
	if scopes == nil {
		scopes = []string{}
	}

	return Claims{
		Subject:   claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
		Scopes:    scopes,
	}, nil
}

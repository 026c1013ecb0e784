package auth

import (
	"errors"
	"fmt"
)

// Scopes required by the order operations.
const (
	ScopeOrdersRead  = "orders.read"
	ScopeOrdersWrite = "orders.write"
)

// ErrMissingScope classifies authorization failures. Use errors.Is against
// this sentinel; the concrete *MissingScopeError names the first scope the
// claims lack.
var ErrMissingScope = errors.New("missing required scope")

// MissingScopeError reports the first required scope absent from a claim
// set.
type MissingScopeError struct {
	Scope string
}

func (e *MissingScopeError) Error() string {
	return fmt.Sprintf("missing required scope: %s", e.Scope)
}

func (e *MissingScopeError) Unwrap() error {
	return ErrMissingScope
}

// CheckScopes verifies that the claims carry every required scope.
//
// The check is conjunctive: all required scopes must be present, there is no
// "any of" semantics. On failure the first missing scope in declaration
// order is named, so identical inputs always produce identical errors.
// CheckScopes has no side effects and does not touch the store.
func CheckScopes(claims Claims, required ...string) error {
	for _, scope := range required {
		if !claims.HasScope(scope) {
			return &MissingScopeError{Scope: scope}
		}
	}
	return nil
}

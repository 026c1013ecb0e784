// Package middleware holds the echo middleware composed in front of the API
// handlers.
package middleware

import (
	"strings"

	"orders/internal/adapters/in/http/problems"
	"orders/internal/pkg/auth"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// exemptPaths are matched exactly, not by prefix. Everything else requires a
// bearer token.
var exemptPaths = map[string]struct{}{
	"/":             {},
	"/healthz":      {},
	"/readyz":       {},
	"/openapi.json": {},
}

// AuthGate authenticates every non-exempt request. It extracts the bearer
// token, validates it, and attaches the resulting claims to the request
// context for the handlers. Scope checks happen per operation in the
// handlers, not here.
func AuthGate(validator *auth.TokenValidator, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, exempt := exemptPaths[c.Request().URL.Path]; exempt {
				return next(c)
			}

			rawToken, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return problems.Render(c, problems.Unauthorized("missing or invalid authorization header"))
			}

			claims, err := validator.Validate(rawToken)
			if err != nil {
				logger.Debug("token rejected",
					zap.String("path", c.Request().URL.Path),
					zap.Error(err),
				)
				return problems.Render(c, problems.Unauthorized("invalid token"))
			}

			ctx := auth.NewContext(c.Request().Context(), claims)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively per RFC 6750.
func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "

	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return "", false
	}

	return token, true
}

package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"orders/internal/adapters/in/http/middleware"
	"orders/internal/adapters/in/http/problems"
	"orders/internal/pkg/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const gateSecret = "test-secret"

func signGateToken(t *testing.T, scopes []string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":    "user-1",
		"exp":    time.Now().Add(time.Hour).Unix(),
		"scopes": scopes,
	})

	signed, err := token.SignedString([]byte(gateSecret))
	require.NoError(t, err)

	return signed
}

// newGatedEcho wires the gate in front of a probe handler that reports
// whether claims reached the request context.
func newGatedEcho() *echo.Echo {
	e := echo.New()
	e.Use(middleware.AuthGate(auth.NewTokenValidator(gateSecret), zap.NewNop()))

	probe := func(c echo.Context) error {
		claims, ok := auth.FromContext(c.Request().Context())
		if !ok {
			return c.JSON(http.StatusOK, map[string]any{"claims": false})
		}
		return c.JSON(http.StatusOK, map[string]any{"claims": true, "sub": claims.Subject})
	}

	e.GET("/", probe)
	e.GET("/healthz", probe)
	e.GET("/readyz", probe)
	e.GET("/openapi.json", probe)
	e.GET("/orders", probe)
	e.GET("/orders/:id", probe)

	return e
}

func TestAuthGate_ExemptPaths(t *testing.T) {
	e := newGatedEcho()

	for _, path := range []string{"/", "/healthz", "/readyz", "/openapi.json"} {
		t.Run("should pass "+path+" without token", func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), `"claims":false`)
		})
	}
}

func TestAuthGate_ProtectedPaths(t *testing.T) {
	e := newGatedEcho()

	decodeProblem := func(t *testing.T, rec *httptest.ResponseRecorder) problems.Problem {
		t.Helper()

		var p problems.Problem
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
		return p
	}

	t.Run("should attach claims with valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/orders", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+signGateToken(t, []string{auth.ScopeOrdersRead}))
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"sub":"user-1"`)
	})

	t.Run("should reject request without authorization header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/orders", nil)
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, problems.ContentType, rec.Header().Get(echo.HeaderContentType))

		p := decodeProblem(t, rec)
		assert.Equal(t, "unauthorized", p.Type)
		assert.Equal(t, "missing or invalid authorization header", p.Detail)
	})

	t.Run("should reject non-bearer scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/orders", nil)
		req.Header.Set(echo.HeaderAuthorization, "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "missing or invalid authorization header", decodeProblem(t, rec).Detail)
	})

	t.Run("should reject empty bearer token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/orders", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer ")
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("should reject garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/orders", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-jwt")
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "invalid token", decodeProblem(t, rec).Detail)
	})

	t.Run("should reject expired token", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub":    "user-1",
			"exp":    time.Now().Add(-time.Hour).Unix(),
			"scopes": []string{auth.ScopeOrdersRead},
		})
		signed, err := token.SignedString([]byte(gateSecret))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/orders", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+signed)
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "invalid token", decodeProblem(t, rec).Detail)
	})

	t.Run("should accept lowercase bearer scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/orders", nil)
		req.Header.Set(echo.HeaderAuthorization, "bearer "+signGateToken(t, []string{auth.ScopeOrdersRead}))
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("should not exempt prefixed lookalike path", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/orders/healthz", nil)
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

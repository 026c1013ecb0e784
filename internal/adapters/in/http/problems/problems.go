// Package problems renders API errors as RFC 7807 problem details. Every
// error path at the HTTP boundary goes through this package so the wire
// shape stays uniform.
package problems

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ContentType is the media type of problem responses.
const ContentType = "application/problem+json"

// Problem is the RFC 7807 payload. Type carries a stable machine-readable
// slug rather than a resolvable URI.
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

// Validation is a 400 problem for malformed or invalid request input.
func Validation(detail string) Problem {
	return Problem{
		Type:   "validation_error",
		Title:  "Validation Error",
		Status: http.StatusBadRequest,
		Detail: detail,
	}
}

// Unauthorized is a 401 problem for missing or failed authentication.
func Unauthorized(detail string) Problem {
	return Problem{
		Type:   "unauthorized",
		Title:  "Unauthorized",
		Status: http.StatusUnauthorized,
		Detail: detail,
	}
}

// Forbidden is a 403 problem for authenticated callers lacking a scope.
func Forbidden(detail string) Problem {
	return Problem{
		Type:   "forbidden",
		Title:  "Forbidden",
		Status: http.StatusForbidden,
		Detail: detail,
	}
}

// NotFound is a 404 problem for an unknown resource.
func NotFound(detail string) Problem {
	return Problem{
		Type:   "not_found",
		Title:  "Not Found",
		Status: http.StatusNotFound,
		Detail: detail,
	}
}

// Conflict is a 409 problem for operations rejected by resource state, such
// as an illegal order status transition.
func Conflict(detail string) Problem {
	return Problem{
		Type:   "conflict",
		Title:  "Conflict",
		Status: http.StatusConflict,
		Detail: detail,
	}
}

// Internal is a 500 problem. It carries no detail so internal failures do
// not leak through the API.
func Internal() Problem {
	return Problem{
		Type:   "internal_error",
		Title:  "Internal Server Error",
		Status: http.StatusInternalServerError,
	}
}

// Render writes the problem to the response with the problem+json media
// type and the problem's status code. The request path is recorded as the
// problem instance.
func Render(c echo.Context, p Problem) error {
	if p.Instance == "" {
		p.Instance = c.Request().URL.Path
	}

	c.Response().Header().Set(echo.HeaderContentType, ContentType)
	c.Response().WriteHeader(p.Status)

	return json.NewEncoder(c.Response()).Encode(p)
}

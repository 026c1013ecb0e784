package http

import (
	"github.com/go-playground/validator/v10"
)

// RequestValidator adapts go-playground/validator to echo's Validator
// interface so handlers can call Context.Validate on bound DTOs.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates the validator installed on the echo instance.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate checks the struct tags on a bound request DTO.
func (v *RequestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

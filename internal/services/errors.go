package services

import (
	"errors"
	"strings"

	"foodlog/internal/forms"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidDate        = errors.New("date must be YYYY-MM-DD")
	ErrLogNotFound        = errors.New("log not found")
	ErrNotOwner           = errors.New("log belongs to another user")
	ErrFoodNotFound       = errors.New("food not found")
	ErrEntryNotFound      = errors.New("entry not found in log")
)

// ValidationError carries per-field messages for form redisplay.
type ValidationError struct {
	Fields forms.Errors
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func invalid(errs forms.Errors) error {
	if errs.Valid() {
		return nil
	}
	return &ValidationError{Fields: errs}
}

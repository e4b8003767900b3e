package models

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports one or more invalid input fields. The calculator
// never invokes a backend when normalization fails.
type ValidationError struct {
	Fields []FieldError
}

// FieldError names one invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "invalid birth data: " + strings.Join(parts, "; ")
}

// NewValidationError builds a ValidationError from field problems.
func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

// EphemerisError indicates a backend failed to produce positions.
type EphemerisError struct {
	Backend string
	Err     error
}

func (e *EphemerisError) Error() string {
	return fmt.Sprintf("ephemeris %s: %v", e.Backend, e.Err)
}

func (e *EphemerisError) Unwrap() error { return e.Err }

// HouseCalculationError indicates house cusps could not be derived even
// with the equal-house fallback.
type HouseCalculationError struct {
	Latitude float64
	Reason   string
}

func (e *HouseCalculationError) Error() string {
	return fmt.Sprintf("house calculation failed at latitude %.4f: %s", e.Latitude, e.Reason)
}

// ErrPolarLatitude marks a Placidus iteration breakdown near the poles.
// Callers fall back to equal houses on it.
var ErrPolarLatitude = errors.New("placidus undefined at this latitude")

// ErrAllBackendsFailed marks exhaustion of the backend chain. The usecase
// converts it into a graceful unavailable result rather than a 5xx.
var ErrAllBackendsFailed = errors.New("all ephemeris backends failed")

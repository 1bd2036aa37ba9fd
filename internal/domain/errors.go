package domain

import (
	"errors"
	"fmt"
)

// ErrModelUnavailable is returned when a prediction is requested while no
// fitted scoring model is loaded. Serving must refuse rather than guess.
var ErrModelUnavailable = errors.New("scoring model not available")

// ValidationError represents input validation errors
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}

// AttributionError represents an internal inconsistency detected while
// attributing risk factors, such as a feature vector that does not align
// with the model weights. Serving omits factors instead of failing the
// whole prediction when this occurs.
type AttributionError struct {
	Reason   string `json:"reason"`
	Features int    `json:"features"`
	Weights  int    `json:"weights"`
}

// Error implements the error interface
func (e *AttributionError) Error() string {
	return fmt.Sprintf("attribution error: %s (features=%d, weights=%d)", e.Reason, e.Features, e.Weights)
}

// NewAttributionError creates a new AttributionError
func NewAttributionError(reason string, features, weights int) *AttributionError {
	return &AttributionError{
		Reason:   reason,
		Features: features,
		Weights:  weights,
	}
}

package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		message string
		value   interface{}
	}{
		{
			name:    "Age out of range",
			field:   "age",
			message: "must be between 15 and 50 years",
			value:   10,
		},
		{
			name:    "Hemoglobin out of range",
			field:   "hemoglobin",
			message: "must be between 5.0 and 18.0 g/dL",
			value:   3.2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValidationError(tt.field, tt.message, tt.value)

			if err.Field != tt.field {
				t.Errorf("Expected field %s, got %s", tt.field, err.Field)
			}

			if err.Message != tt.message {
				t.Errorf("Expected message %s, got %s", tt.message, err.Message)
			}

			if err.Value != tt.value {
				t.Errorf("Expected value %v, got %v", tt.value, err.Value)
			}

			// Test Error() method
			expectedError := "validation error for field '" + tt.field + "': " + tt.message
			if err.Error() != expectedError {
				t.Errorf("Expected error string %s, got %s", expectedError, err.Error())
			}
		})
	}
}

func TestValidationErrorAsTarget(t *testing.T) {
	var validationErr *ValidationError

	wrapped := fmt.Errorf("prediction rejected: %w", NewValidationError("age", "must be between 15 and 50 years", 10))

	if !errors.As(wrapped, &validationErr) {
		t.Fatal("Expected errors.As to unwrap *ValidationError")
	}

	if validationErr.Field != "age" {
		t.Errorf("Expected field age, got %s", validationErr.Field)
	}
}

func TestAttributionError(t *testing.T) {
	err := NewAttributionError("feature vector does not match model weights", 20, 9)

	if err.Features != 20 {
		t.Errorf("Expected features 20, got %d", err.Features)
	}

	if err.Weights != 9 {
		t.Errorf("Expected weights 9, got %d", err.Weights)
	}

	expected := "attribution error: feature vector does not match model weights (features=20, weights=9)"
	if err.Error() != expected {
		t.Errorf("Expected error string %q, got %q", expected, err.Error())
	}
}

func TestErrModelUnavailable(t *testing.T) {
	wrapped := fmt.Errorf("predict: %w", ErrModelUnavailable)

	if !errors.Is(wrapped, ErrModelUnavailable) {
		t.Error("Expected errors.Is to match ErrModelUnavailable through wrapping")
	}
}

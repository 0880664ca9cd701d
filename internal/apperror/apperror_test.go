package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected int
	}{
		{"Validation maps to 422", Validation("invalid input", nil), http.StatusUnprocessableEntity},
		{"NotFound maps to 404", NotFound("resource not found"), http.StatusNotFound},
		{"Authentication maps to 401", Authentication("missing token"), http.StatusUnauthorized},
		{"Authorization maps to 403", Authorization("insufficient permissions"), http.StatusForbidden},
		{"Database maps to 500", Database("query failed", errors.New("boom")), http.StatusInternalServerError},
		{"Unknown kind falls back to 500", &Error{Kind: Kind("mystery"), Message: "?"}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.StatusCode(); got != tt.expected {
				t.Errorf("Expected status %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestFromError_PassesThroughKnownKinds(t *testing.T) {
	original := NotFound("resource not found")

	got := FromError(original)
	if got != original {
		t.Error("Expected FromError to return the same *Error instance")
	}

	// Wrapped with %w it must still be recognized / Encapsulée avec %w, elle doit rester reconnue
	wrapped := fmt.Errorf("handler: %w", original)
	got = FromError(wrapped)
	if got.Kind != KindNotFound {
		t.Errorf("Expected KindNotFound through wrapping, got %s", got.Kind)
	}
}

func TestFromError_CoercesUnknownToDatabase(t *testing.T) {
	cause := errors.New("driver: connection reset")

	got := FromError(cause)
	if got.Kind != KindDatabase {
		t.Errorf("Expected KindDatabase, got %s", got.Kind)
	}
	if got.Message != "internal server error" {
		t.Errorf("Expected generic message, got '%s'", got.Message)
	}
	if !errors.Is(got, cause) {
		t.Error("Expected coerced error to keep its cause for errors.Is")
	}
}

func TestValidation_CarriesFieldErrors(t *testing.T) {
	fields := FieldErrors{"name": "name must not be empty"}
	err := Validation("invalid input", fields)

	if err.Fields["name"] != "name must not be empty" {
		t.Errorf("Expected field error to be preserved, got %v", err.Fields)
	}
}

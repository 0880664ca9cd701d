// Package apperror defines the closed set of error kinds the API can surface,
// each bound to a single HTTP status code. Errors are built via factory
// functions and inspected with errors.As at the transport boundary; anything
// that does not carry a kind is coerced to KindDatabase before serialization.
package apperror

import (
	"errors"
	"net/http"
)

// Kind identifies an error category / Identifie une catégorie d'erreur
type Kind string

const (
	KindValidation     Kind = "validation_error"     // Input failed shape or semantic constraints / Entrée invalide
	KindNotFound       Kind = "not_found_error"      // Requested id does not exist / L'id demandé n'existe pas
	KindAuthentication Kind = "authentication_error" // Caller identity missing or invalid / Identité absente ou invalide
	KindAuthorization  Kind = "authorization_error"  // Caller lacks permission / Permissions insuffisantes
	KindDatabase       Kind = "database_error"       // Persistence operation failed unexpectedly / Échec inattendu de la persistance
)

// statusByKind binds every kind to exactly one HTTP status / Associe chaque catégorie à un statut HTTP unique
var statusByKind = map[Kind]int{
	KindValidation:     http.StatusUnprocessableEntity,
	KindNotFound:       http.StatusNotFound,
	KindAuthentication: http.StatusUnauthorized,
	KindAuthorization:  http.StatusForbidden,
	KindDatabase:       http.StatusInternalServerError,
}

// FieldErrors maps a field path to a human-readable message / Associe un champ à un message lisible
type FieldErrors map[string]string

// Error is the single domain error type / Le type d'erreur unique du domaine
type Error struct {
	Kind    Kind
	Message string
	Fields  FieldErrors // Per-field details, validation errors only / Détails par champ, validation uniquement
	cause   error
}

// Error implements the error interface / Implémente l'interface error
func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the wrapped cause for errors.Is/As / Expose la cause pour errors.Is/As
func (e *Error) Unwrap() error {
	return e.cause
}

// StatusCode returns the HTTP status mapped to the kind / Retourne le statut HTTP associé à la catégorie
func (e *Error) StatusCode() int {
	if status, ok := statusByKind[e.Kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Validation builds a 422 error / Construit une erreur 422
func Validation(message string, fields FieldErrors) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// NotFound builds a 404 error / Construit une erreur 404
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Authentication builds a 401 error / Construit une erreur 401
func Authentication(message string) *Error {
	return &Error{Kind: KindAuthentication, Message: message}
}

// Authorization builds a 403 error / Construit une erreur 403
func Authorization(message string) *Error {
	return &Error{Kind: KindAuthorization, Message: message}
}

// Database builds a 500 error wrapping the store failure / Construit une erreur 500 encapsulant l'échec du store
func Database(message string, cause error) *Error {
	return &Error{Kind: KindDatabase, Message: message, cause: cause}
}

// FromError returns err as an *Error, coercing unknown errors to KindDatabase.
// Unknown errors keep their cause but get a generic message so internal
// details never reach the client.
// Retourne err comme *Error, en convertissant les erreurs inconnues en KindDatabase.
func FromError(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Database("internal server error", err)
}

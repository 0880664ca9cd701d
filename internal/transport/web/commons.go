package web

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	"github.com/mkhoa1412/code-challenge-sub003/internal/app"
	"github.com/mkhoa1412/code-challenge-sub003/internal/apperror"
	"github.com/mkhoa1412/code-challenge-sub003/internal/pagination"
)

// Handler is a container for application dependencies that are required by HTTP handlers.
// By embedding the application's dependency injection container, it provides handlers
// with access to services, repositories, and configuration.
type Handler struct {
	container *app.Container
}

// NewHandler creates and returns a new Handler instance.
// It takes the application's dependency injection container as a parameter,
// making it available to all HTTP handlers attached to this Handler.
func NewHandler(container *app.Container) *Handler {
	return &Handler{container: container}
}

// envelope is the standard shape of every successful JSON response.
type envelope struct {
	Success    bool             `json:"success"`
	Data       any              `json:"data,omitempty"`
	Message    string           `json:"message,omitempty"`
	Pagination *pagination.Meta `json:"pagination,omitempty"`
}

// errorEnvelope is the standard shape of every failure response. The error
// message sits at the top level; fields and stack are optional siblings.
type errorEnvelope struct {
	Success bool                 `json:"success"`
	Error   string               `json:"error"`
	Fields  apperror.FieldErrors `json:"fields,omitempty"`
	Stack   string               `json:"stack,omitempty"`
}

// jsonResponse is a helper function for sending standardized JSON responses.
// It sets the "Content-Type" header to "application/json", writes the status
// code, and encodes the provided envelope into the response body.
func jsonResponse(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// respond wraps data in the success envelope / Enveloppe les données dans la réponse de succès
func respond(w http.ResponseWriter, status int, data any) {
	jsonResponse(w, status, envelope{Success: true, Data: data})
}

// respondPage wraps a collection plus its pagination metadata
// Enveloppe une collection plus ses métadonnées de pagination
func respondPage(w http.ResponseWriter, status int, data any, meta pagination.Meta) {
	jsonResponse(w, status, envelope{Success: true, Data: data, Pagination: &meta})
}

// respondMessage wraps a bare confirmation message / Enveloppe un simple message de confirmation
func respondMessage(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, envelope{Success: true, Message: message})
}

// WriteError maps any error onto the response envelope. Typed errors keep
// their status and fields; anything else becomes an opaque 500. The stack is
// only included outside production so internals never leak to clients.
func (h *Handler) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperror.FromError(err)

	body := errorEnvelope{
		Error:  appErr.Message,
		Fields: appErr.Fields,
	}

	if appErr.Kind == apperror.KindDatabase && !h.container.Config.IsProduction() {
		body.Stack = string(debug.Stack())
	}

	jsonResponse(w, appErr.StatusCode(), body)
}

// handle adapts an error-returning handler into http.HandlerFunc, funnelling
// every failure through WriteError so all endpoints share one error shape.
func (h *Handler) handle(fn func(w http.ResponseWriter, r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			h.WriteError(w, r, err)
		}
	}
}

// limitRequestBody wraps a request body with MaxBytesReader to limit its size.
// This prevents resource exhaustion via oversized payloads.
func limitRequestBody(w http.ResponseWriter, r *http.Request, maxBytes int64) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
}

// Package dto declares the request/response shapes of the resource API and
// the pure validation functions that turn raw input into normalized payloads.
// Validation never throws: each ValidateX returns the payload plus a
// FieldErrors map collecting every violation; the transport layer converts a
// non-empty map into a 422 response.
package dto

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mkhoa1412/code-challenge-sub003/internal/apperror"
	"github.com/mkhoa1412/code-challenge-sub003/internal/domain"
)

const (
	maxNameLength     = 255
	maxCategoryLength = 100
)

// rule checks a string value and returns a message when violated, "" otherwise
// Vérifie une valeur chaîne et retourne un message en cas de violation, "" sinon
type rule func(s string) string

// notBlank rejects strings that are empty after trimming / Rejette les chaînes vides après trim
func notBlank(s string) string {
	if strings.TrimSpace(s) == "" {
		return "must not be empty"
	}
	return ""
}

// maxLen builds a rule bounding the string length / Construit une règle bornant la longueur
func maxLen(n int) rule {
	return func(s string) string {
		if len(s) > n {
			return fmt.Sprintf("must be %d characters or less", n)
		}
		return ""
	}
}

// runRules applies all rules, recording the first violation per field.
// All fields are checked; nothing short-circuits across fields.
// Applique toutes les règles, en enregistrant la première violation par champ.
func runRules(errs apperror.FieldErrors, field, value string, rules ...rule) {
	for _, r := range rules {
		if msg := r(value); msg != "" {
			errs[field] = field + " " + msg
			return
		}
	}
}

// CreateResourceInput is the raw create request body / Le corps brut de la requête de création
type CreateResourceInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	IsActive    *bool   `json:"isActive"`
}

// CreateResourcePayload is a validated, normalized create request / Requête de création validée et normalisée
type CreateResourcePayload struct {
	Name        string
	Description string
	Category    string
	IsActive    bool
}

// UpdateResourceInput is the raw update request body / Le corps brut de la requête de mise à jour
type UpdateResourceInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	IsActive    *bool   `json:"isActive"`
}

// QueryFilters is a validated list request / Requête de liste validée
type QueryFilters struct {
	Filters domain.ResourceFilters
	Limit   int // 0 when absent, defaulted downstream / 0 si absent, valeur par défaut en aval
	Offset  int
}

// ValidateCreate validates a create request. Requires name (1-255 chars after
// trimming) and description (non-empty after trimming); category is optional
// (max 100 chars); isActive defaults to true when absent.
// Valide une requête de création.
func ValidateCreate(in CreateResourceInput) (CreateResourcePayload, apperror.FieldErrors) {
	errs := apperror.FieldErrors{}

	if in.Name == nil {
		errs["name"] = "name is required"
	} else {
		runRules(errs, "name", *in.Name, notBlank, maxLen(maxNameLength))
	}

	if in.Description == nil {
		errs["description"] = "description is required"
	} else {
		runRules(errs, "description", *in.Description, notBlank)
	}

	if in.Category != nil {
		runRules(errs, "category", *in.Category, maxLen(maxCategoryLength))
	}

	if len(errs) > 0 {
		return CreateResourcePayload{}, errs
	}

	payload := CreateResourcePayload{
		Name:        strings.TrimSpace(*in.Name),
		Description: strings.TrimSpace(*in.Description),
		IsActive:    true,
	}
	if in.Category != nil {
		payload.Category = strings.TrimSpace(*in.Category)
	}
	if in.IsActive != nil {
		payload.IsActive = *in.IsActive
	}

	return payload, nil
}

// ValidateUpdate validates a partial update. Every field is optional but the
// same per-field constraints apply when present. When all fields are absent a
// single synthetic error is returned; that check only runs when no individual
// field failed, which with all fields absent is trivially true.
// Valide une mise à jour partielle.
func ValidateUpdate(in UpdateResourceInput) (domain.ResourcePatch, apperror.FieldErrors) {
	errs := apperror.FieldErrors{}

	if in.Name != nil {
		runRules(errs, "name", *in.Name, notBlank, maxLen(maxNameLength))
	}
	if in.Description != nil {
		runRules(errs, "description", *in.Description, notBlank)
	}
	if in.Category != nil {
		runRules(errs, "category", *in.Category, maxLen(maxCategoryLength))
	}

	if in.Name == nil && in.Description == nil && in.Category == nil && in.IsActive == nil {
		errs["_"] = "at least one field must be provided"
	}

	if len(errs) > 0 {
		return domain.ResourcePatch{}, errs
	}

	patch := domain.ResourcePatch{IsActive: in.IsActive}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		patch.Name = &name
	}
	if in.Description != nil {
		description := strings.TrimSpace(*in.Description)
		patch.Description = &description
	}
	if in.Category != nil {
		category := strings.TrimSpace(*in.Category)
		patch.Category = &category
	}

	return patch, nil
}

// ValidateQuery validates list query parameters. isActive is coerced from the
// strings "true"/"false"; limit must be an integer >= 1 and offset >= 0.
// Valide les paramètres de requête de liste.
func ValidateQuery(values url.Values) (QueryFilters, apperror.FieldErrors) {
	errs := apperror.FieldErrors{}
	q := QueryFilters{}

	q.Filters.Name = strings.TrimSpace(values.Get("name"))
	q.Filters.Category = strings.TrimSpace(values.Get("category"))

	if raw := values.Get("isActive"); raw != "" {
		switch raw {
		case "true":
			active := true
			q.Filters.IsActive = &active
		case "false":
			active := false
			q.Filters.IsActive = &active
		default:
			errs["isActive"] = "isActive must be \"true\" or \"false\""
		}
	}

	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			errs["limit"] = "limit must be an integer greater than or equal to 1"
		} else {
			q.Limit = limit
		}
	}

	if raw := values.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			errs["offset"] = "offset must be an integer greater than or equal to 0"
		} else {
			q.Offset = offset
		}
	}

	if len(errs) > 0 {
		return QueryFilters{}, errs
	}

	return q, nil
}

// ResourceDTO is the wire representation of a resource / La représentation réseau d'une ressource
type ResourceDTO struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ResourceToDTO converts domain.Resource to ResourceDTO / Convertit domain.Resource en ResourceDTO
func ResourceToDTO(r *domain.Resource) *ResourceDTO {
	return &ResourceDTO{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// ResourcesToDTO converts a slice of resources / Convertit une liste de ressources
func ResourcesToDTO(resources []*domain.Resource) []*ResourceDTO {
	dtos := make([]*ResourceDTO, len(resources))
	for i, r := range resources {
		dtos[i] = ResourceToDTO(r)
	}
	return dtos
}

// TokenRequestDTO is the credential exchange request body / Le corps de la requête d'échange d'identifiants
type TokenRequestDTO struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// TokenResponseDTO carries an issued access token / Transporte un token d'accès émis
type TokenResponseDTO struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

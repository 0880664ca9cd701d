package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/mkhoa1412/code-challenge-sub003/internal/apperror"
	"github.com/mkhoa1412/code-challenge-sub003/internal/dto"
	"github.com/mkhoa1412/code-challenge-sub003/internal/pagination"
)

const maxBodySize = 1 << 20 // 1MB

// parseID extracts and validates the {id} path value / Extrait et valide le segment {id}
func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.Validation("validation failed", apperror.FieldErrors{
			"id": "id must be a positive integer",
		})
	}
	return id, nil
}

// decodeBody decodes a JSON request body into dst / Décode le corps JSON de la requête dans dst
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	limitRequestBody(w, r, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.Validation("invalid request body", nil)
	}
	return nil
}

// CreateResource handles POST /api/resources.
// Returns 201 with the stored resource, or 422 when the payload is invalid.
func (h *Handler) CreateResource(w http.ResponseWriter, r *http.Request) error {
	var input dto.CreateResourceInput
	if err := decodeBody(w, r, &input); err != nil {
		h.container.Metrics.RecordValidationFailure("create")
		return err
	}

	payload, fields := dto.ValidateCreate(input)
	if len(fields) > 0 {
		h.container.Metrics.RecordValidationFailure("create")
		return apperror.Validation("validation failed", fields)
	}

	resource, err := h.container.ResourceService.Create(r.Context(), payload)
	if err != nil {
		h.container.Metrics.RecordResourceOperation("create", "error")
		return err
	}

	h.container.Metrics.RecordResourceOperation("create", "success")
	respond(w, http.StatusCreated, dto.ResourceToDTO(resource))
	return nil
}

// GetResource handles GET /api/resources/{id}.
func (h *Handler) GetResource(w http.ResponseWriter, r *http.Request) error {
	id, err := parseID(r)
	if err != nil {
		return err
	}

	resource, err := h.container.ResourceService.Get(r.Context(), id)
	if err != nil {
		h.container.Metrics.RecordResourceOperation("get", "error")
		return err
	}

	h.container.Metrics.RecordResourceOperation("get", "success")
	respond(w, http.StatusOK, dto.ResourceToDTO(resource))
	return nil
}

// ListResources handles GET /api/resources with optional name, category,
// isActive, limit and offset query parameters. The response always carries
// pagination metadata computed against the unwindowed total.
func (h *Handler) ListResources(w http.ResponseWriter, r *http.Request) error {
	query, fields := dto.ValidateQuery(r.URL.Query())
	if len(fields) > 0 {
		h.container.Metrics.RecordValidationFailure("list")
		return apperror.Validation("validation failed", fields)
	}

	page := pagination.Normalize(query.Limit, query.Offset)

	resources, total, err := h.container.ResourceService.List(r.Context(), query.Filters, page.Limit, page.Offset)
	if err != nil {
		h.container.Metrics.RecordResourceOperation("list", "error")
		return err
	}

	h.container.Metrics.RecordResourceOperation("list", "success")
	respondPage(w, http.StatusOK, dto.ResourcesToDTO(resources), pagination.NewMeta(page, total))
	return nil
}

// ListCategories handles GET /api/resources/categories.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) error {
	categories, err := h.container.ResourceService.Categories(r.Context())
	if err != nil {
		h.container.Metrics.RecordResourceOperation("categories", "error")
		return err
	}

	if categories == nil {
		categories = []string{}
	}

	h.container.Metrics.RecordResourceOperation("categories", "success")
	respond(w, http.StatusOK, categories)
	return nil
}

// UpdateResource handles PUT /api/resources/{id}. The payload is a partial
// patch: absent fields keep their stored value, but at least one field must
// be present.
func (h *Handler) UpdateResource(w http.ResponseWriter, r *http.Request) error {
	id, err := parseID(r)
	if err != nil {
		return err
	}

	var input dto.UpdateResourceInput
	if err := decodeBody(w, r, &input); err != nil {
		h.container.Metrics.RecordValidationFailure("update")
		return err
	}

	patch, fields := dto.ValidateUpdate(input)
	if len(fields) > 0 {
		h.container.Metrics.RecordValidationFailure("update")
		return apperror.Validation("validation failed", fields)
	}

	resource, err := h.container.ResourceService.Update(r.Context(), id, patch)
	if err != nil {
		h.container.Metrics.RecordResourceOperation("update", "error")
		return err
	}

	h.container.Metrics.RecordResourceOperation("update", "success")
	respond(w, http.StatusOK, dto.ResourceToDTO(resource))
	return nil
}

// DeleteResource handles DELETE /api/resources/{id}. Deleting an id that does
// not exist returns 404, so a repeated delete is not a silent no-op.
func (h *Handler) DeleteResource(w http.ResponseWriter, r *http.Request) error {
	id, err := parseID(r)
	if err != nil {
		return err
	}

	if err := h.container.ResourceService.Delete(r.Context(), id); err != nil {
		h.container.Metrics.RecordResourceOperation("delete", "error")
		return err
	}

	h.container.Metrics.RecordResourceOperation("delete", "success")
	respondMessage(w, http.StatusOK, "resource deleted")
	return nil
}

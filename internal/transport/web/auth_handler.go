package web

import (
	"net/http"

	"github.com/mkhoa1412/code-challenge-sub003/internal/apperror"
	"github.com/mkhoa1412/code-challenge-sub003/internal/dto"
)

// IssueToken handles POST /api/auth/token. It exchanges configured client
// credentials for a signed bearer token. When authentication is disabled the
// endpoint reports 404 so the surface matches the running configuration.
func (h *Handler) IssueToken(w http.ResponseWriter, r *http.Request) error {
	if !h.container.Config.Auth.Enabled {
		return apperror.NotFound("not found")
	}

	var req dto.TokenRequestDTO
	if err := decodeBody(w, r, &req); err != nil {
		return err
	}

	if req.ClientID == "" || req.ClientSecret == "" {
		return apperror.Validation("validation failed", apperror.FieldErrors{
			"client_id": "client_id and client_secret are required",
		})
	}

	token, err := h.container.AuthService.IssueToken(r.Context(), req.ClientID, req.ClientSecret)
	if err != nil {
		h.container.Metrics.RecordTokenIssued("failure")
		return err
	}

	h.container.Metrics.RecordTokenIssued("success")
	respond(w, http.StatusOK, dto.TokenResponseDTO{
		AccessToken: token.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   token.ExpiresAt,
	})
	return nil
}

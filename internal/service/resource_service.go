package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mkhoa1412/code-challenge-sub003/internal/apperror"
	"github.com/mkhoa1412/code-challenge-sub003/internal/domain"
	"github.com/mkhoa1412/code-challenge-sub003/internal/dto"
	"github.com/mkhoa1412/code-challenge-sub003/internal/ports"
	"github.com/mkhoa1412/code-challenge-sub003/internal/repository"
)

// ResourceService handles resource management operations / Gère les opérations de gestion des ressources
type ResourceService struct {
	reader ports.ResourceReader
	writer ports.ResourceWriter
}

// ResourceMetricsRecorder records resource metrics / Enregistre les métriques de ressources
type ResourceMetricsRecorder interface {
	RecordResourceOperation(operation, status string)
}

// NewResourceService creates resource management service instance / Crée une instance de service de gestion des ressources
func NewResourceService(repo ports.ResourceRepository) *ResourceService {
	return &ResourceService{
		reader: repo,
		writer: repo,
	}
}

// Create stores a new resource from a validated payload / Stocke une nouvelle ressource depuis un payload validé
func (s *ResourceService) Create(ctx context.Context, payload dto.CreateResourcePayload) (*domain.Resource, error) {
	resource, err := s.writer.Create(ctx, payload.Name, payload.Description, payload.Category, payload.IsActive)
	if err != nil {
		if errors.Is(err, repository.ErrDup) {
			return nil, apperror.Validation("validation failed", apperror.FieldErrors{
				"name": "a resource with this name already exists",
			})
		}
		slog.Error("failed to create resource", "name", payload.Name, "err", err)
		return nil, apperror.Database("failed to create resource", err)
	}
	return resource, nil
}

// Get retrieves a resource by its ID / Récupère une ressource par son ID
func (s *ResourceService) Get(ctx context.Context, id int64) (*domain.Resource, error) {
	resource, err := s.reader.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, apperror.NotFound("resource not found")
		}
		slog.Error("failed to get resource", "id", id, "err", err)
		return nil, apperror.Database("failed to retrieve resource", err)
	}
	return resource, nil
}

// List retrieves the filtered resource page plus the unwindowed total
// Récupère la page de ressources filtrée plus le total hors fenêtre
func (s *ResourceService) List(ctx context.Context, filters domain.ResourceFilters, limit, offset int) ([]*domain.Resource, int, error) {
	resources, total, err := s.reader.List(ctx, filters, limit, offset)
	if err != nil {
		slog.Error("failed to list resources", "err", err, "limit", limit, "offset", offset)
		return nil, 0, apperror.Database("failed to retrieve resources", err)
	}
	return resources, total, nil
}

// Categories returns distinct categories of active resources / Retourne les catégories distinctes des ressources actives
func (s *ResourceService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.reader.Categories(ctx)
	if err != nil {
		slog.Error("failed to list categories", "err", err)
		return nil, apperror.Database("failed to retrieve categories", err)
	}
	return categories, nil
}

// Update applies a partial patch to an existing resource / Applique un patch partiel à une ressource existante
func (s *ResourceService) Update(ctx context.Context, id int64, patch domain.ResourcePatch) (*domain.Resource, error) {
	// Validation catches this upstream; keep a backstop so an empty
	// patch can never reach the UPDATE statement
	// La validation l'attrape en amont ; garde-fou pour qu'un patch
	// vide n'atteigne jamais la requête UPDATE
	if patch.IsEmpty() {
		return nil, apperror.Validation("validation failed", apperror.FieldErrors{
			"_": "at least one field must be provided",
		})
	}

	resource, err := s.writer.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, apperror.NotFound("resource not found")
		}
		slog.Error("failed to update resource", "id", id, "err", err)
		return nil, apperror.Database("failed to update resource", err)
	}
	return resource, nil
}

// Delete permanently removes a resource / Supprime définitivement une ressource
func (s *ResourceService) Delete(ctx context.Context, id int64) error {
	if err := s.writer.Delete(ctx, id); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return apperror.NotFound("resource not found")
		}
		slog.Error("failed to delete resource", "id", id, "err", err)
		return apperror.Database("failed to delete resource", err)
	}
	return nil
}

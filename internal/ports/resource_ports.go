package ports

import (
	"context"
	"errors"

	"github.com/mkhoa1412/code-challenge-sub003/internal/domain"
)

// ErrNotFound returned when resource not found / Retourné quand la ressource n'est pas trouvée
var ErrNotFound = errors.New("not found")

// ResourceReader reads resource data / Lit les données des ressources
type ResourceReader interface {
	// GetByID retrieves resource by unique ID / Récupère la ressource par ID unique
	GetByID(ctx context.Context, id int64) (*domain.Resource, error)

	// List retrieves the window [offset, offset+limit) of resources matching
	// the filters, ordered by created_at descending, plus the total count
	// ignoring the window.
	// Récupère la fenêtre de ressources correspondant aux filtres, plus le total.
	List(ctx context.Context, filters domain.ResourceFilters, limit, offset int) ([]*domain.Resource, int, error)

	// Categories returns distinct non-empty categories of active resources
	// Retourne les catégories distinctes non vides des ressources actives
	Categories(ctx context.Context) ([]string, error)
}

// ResourceWriter creates and mutates resources / Crée et modifie les ressources
type ResourceWriter interface {
	// Create inserts a new resource, assigning id and timestamps
	// Insère une nouvelle ressource, en assignant l'id et les horodatages
	Create(ctx context.Context, name, description, category string, isActive bool) (*domain.Resource, error)

	// Update applies only the supplied patch fields and refreshes updated_at;
	// returns ErrNotFound if the id is absent.
	// Applique seulement les champs fournis du patch ; ErrNotFound si l'id est absent.
	Update(ctx context.Context, id int64, patch domain.ResourcePatch) (*domain.Resource, error)

	// Delete removes the row; returns ErrNotFound if the id is absent.
	// A second delete of the same id is an error, not a no-op.
	// Supprime la ligne ; ErrNotFound si l'id est absent. Non idempotent.
	Delete(ctx context.Context, id int64) error
}

// ResourceRepository is the full persistence gateway for resources
// Le point d'accès complet à la persistance des ressources
type ResourceRepository interface {
	ResourceReader
	ResourceWriter

	// WithTx returns a repository bound to the given transaction / Retourne un repository lié à la transaction
	WithTx(dbtx DBTX) ResourceRepository
}

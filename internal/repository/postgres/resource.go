package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mkhoa1412/code-challenge-sub003/internal/domain"
	"github.com/mkhoa1412/code-challenge-sub003/internal/ports"
)

var _ ports.ResourceRepository = (*resourceRepository)(nil)

// resourceRepository implements ResourceRepository for PostgreSQL / Implémente ResourceRepository pour PostgreSQL
type resourceRepository struct {
	db ports.DBTX
}

// NewResourceRepository creates resource repository / Crée le repository de ressources
func NewResourceRepository(db *sql.DB) ports.ResourceRepository {
	return &resourceRepository{db: db}
}

// WithTx returns repository bound to transaction / Retourne le repository lié à la transaction
func (r *resourceRepository) WithTx(dbtx ports.DBTX) ports.ResourceRepository {
	return &resourceRepository{db: dbtx}
}

const resourceColumns = `id, name, description, category, is_active, created_at, updated_at`

func scanResource(scan func(dest ...any) error) (*domain.Resource, error) {
	resource := &domain.Resource{}
	var category sql.NullString
	err := scan(
		&resource.ID,
		&resource.Name,
		&resource.Description,
		&category,
		&resource.IsActive,
		&resource.CreatedAt,
		&resource.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	resource.Category = category.String
	return resource, nil
}

func nullableCategory(category string) sql.NullString {
	return sql.NullString{String: category, Valid: category != ""}
}

// Create inserts a new resource / Insère une nouvelle ressource
func (r *resourceRepository) Create(ctx context.Context, name, description, category string, isActive bool) (*domain.Resource, error) {
	now := time.Now().UTC()

	// lib/pq has no LastInsertId, use RETURNING instead / lib/pq n'a pas LastInsertId, RETURNING à la place
	query := `INSERT INTO resources (name, description, category, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING ` + resourceColumns
	resource, err := scanResource(r.db.QueryRowContext(ctx, query, name, description, nullableCategory(category), isActive, now, now).Scan)
	if err != nil {
		return nil, handleError(err)
	}
	return resource, nil
}

// GetByID retrieves resource by ID / Récupère la ressource par ID
func (r *resourceRepository) GetByID(ctx context.Context, id int64) (*domain.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE id = $1`
	resource, err := scanResource(r.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		return nil, handleError(err)
	}
	return resource, nil
}

// buildFilters renders filter predicates with numbered placeholders
// Rend les prédicats de filtre avec des placeholders numérotés
func buildFilters(filters domain.ResourceFilters) (string, []any) {
	var clauses []string
	var args []any

	if filters.Name != "" {
		args = append(args, "%"+filters.Name+"%")
		clauses = append(clauses, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if filters.Category != "" {
		args = append(args, filters.Category)
		clauses = append(clauses, fmt.Sprintf("category = $%d", len(args)))
	}
	if filters.IsActive != nil {
		args = append(args, *filters.IsActive)
		clauses = append(clauses, fmt.Sprintf("is_active = $%d", len(args)))
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// List retrieves the filtered page plus the total ignoring the window
// Récupère la page filtrée plus le total sans tenir compte de la fenêtre
func (r *resourceRepository) List(ctx context.Context, filters domain.ResourceFilters, limit, offset int) ([]*domain.Resource, int, error) {
	where, args := buildFilters(filters)

	var total int
	countQuery := `SELECT COUNT(*) FROM resources` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, handleError(err)
	}

	query := fmt.Sprintf(`SELECT `+resourceColumns+` FROM resources`+where+`
	          ORDER BY created_at DESC, id DESC
	          LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	rows, err := r.db.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, handleError(err)
	}
	defer rows.Close()

	var resources []*domain.Resource
	for rows.Next() {
		resource, err := scanResource(rows.Scan)
		if err != nil {
			return nil, 0, handleError(err)
		}
		resources = append(resources, resource)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, handleError(err)
	}

	return resources, total, nil
}

// Categories returns distinct non-null categories of active resources
// Retourne les catégories distinctes non nulles des ressources actives
func (r *resourceRepository) Categories(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT category FROM resources
	          WHERE category IS NOT NULL AND is_active = TRUE
	          ORDER BY category`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, handleError(err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, handleError(err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, handleError(err)
	}

	return categories, nil
}

// Update applies only the supplied fields and refreshes updated_at
// Applique seulement les champs fournis et rafraîchit updated_at
func (r *resourceRepository) Update(ctx context.Context, id int64, patch domain.ResourcePatch) (*domain.Resource, error) {
	args := []any{time.Now().UTC()}
	set := []string{"updated_at = $1"}

	appendSet := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		appendSet("name", *patch.Name)
	}
	if patch.Description != nil {
		appendSet("description", *patch.Description)
	}
	if patch.Category != nil {
		appendSet("category", nullableCategory(*patch.Category))
	}
	if patch.IsActive != nil {
		appendSet("is_active", *patch.IsActive)
	}

	query := fmt.Sprintf(`UPDATE resources SET %s WHERE id = $%d RETURNING `+resourceColumns,
		strings.Join(set, ", "), len(args)+1)
	resource, err := scanResource(r.db.QueryRowContext(ctx, query, append(args, id)...).Scan)
	if err != nil {
		return nil, handleError(err)
	}
	return resource, nil
}

// Delete removes the row; a missing id is an error, not a no-op
// Supprime la ligne ; un id absent est une erreur, pas un no-op
func (r *resourceRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM resources WHERE id = $1`, id)
	if err != nil {
		return handleError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return handleError(err)
	}
	if affected == 0 {
		return ports.ErrNotFound
	}

	return nil
}

package sqlite

import (
	"database/sql"

	"github.com/mkhoa1412/code-challenge-sub003/internal/ports"
)

// Factory creates SQLite-backed repositories / Crée les repositories SQLite
type Factory struct{}

// NewResourceRepository creates resource repository / Crée le repository de ressources
func (f *Factory) NewResourceRepository(db *sql.DB) ports.ResourceRepository {
	return NewResourceRepository(db)
}

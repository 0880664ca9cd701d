package mysql

import (
	"database/sql"

	"github.com/mkhoa1412/code-challenge-sub003/internal/ports"
)

// Factory creates MySQL-backed repositories / Crée les repositories MySQL
type Factory struct{}

// NewResourceRepository creates resource repository / Crée le repository de ressources
func (f *Factory) NewResourceRepository(db *sql.DB) ports.ResourceRepository {
	return NewResourceRepository(db)
}

package postgres

import (
	"database/sql"

	"github.com/mkhoa1412/code-challenge-sub003/internal/ports"
)

// Factory builds PostgreSQL-backed repositories / Construit les repositories adossés à PostgreSQL
type Factory struct{}

func (f *Factory) NewResourceRepository(db *sql.DB) ports.ResourceRepository {
	return NewResourceRepository(db)
}

package repository

import (
	"database/sql"

	"github.com/mkhoa1412/code-challenge-sub003/internal/ports"
	"github.com/mkhoa1412/code-challenge-sub003/internal/repository/sqlite"
)

// NewSQLiteResource creates SQLite resource repository for tests / Crée un repository de ressources SQLite pour les tests
func NewSQLiteResource(database *sql.DB) ports.ResourceRepository {
	return sqlite.NewResourceRepository(database)
}

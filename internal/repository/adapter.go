package repository

import (
	"database/sql"
	"strings"

	"github.com/mkhoa1412/code-challenge-sub003/internal/ports"
	"github.com/mkhoa1412/code-challenge-sub003/internal/repository/mysql"
	"github.com/mkhoa1412/code-challenge-sub003/internal/repository/postgres"
	"github.com/mkhoa1412/code-challenge-sub003/internal/repository/sqlite"
)

// Compile-time checks to ensure all Factory implementations satisfy DatabaseFactory interface
// If a Factory doesn't implement all methods, the code won't compile
// Vérifications à la compilation pour s'assurer que toutes les implémentations de Factory satisfont l'interface DatabaseFactory
// Si une Factory n'implémente pas toutes les méthodes, le code ne compilera pas
var (
	_ DatabaseFactory = (*sqlite.Factory)(nil)
	_ DatabaseFactory = (*mysql.Factory)(nil)
	_ DatabaseFactory = (*postgres.Factory)(nil)
)

// factoryRegistry holds all database factories / Registre de toutes les factories de BD
// No switch statements - just a map lookup / Pas de switch - juste une recherche dans la map
var factoryRegistry = map[string]DatabaseFactory{
	"sqlite":     &sqlite.Factory{},
	"sqlite3":    &sqlite.Factory{},
	"mysql":      &mysql.Factory{},
	"postgres":   &postgres.Factory{},
	"postgresql": &postgres.Factory{},
}

// Adapter adapts database connection to repositories / Adapte la connexion BD vers les repositories
type Adapter struct {
	db      *sql.DB
	factory DatabaseFactory
}

// NewAdapter creates repository adapter / Crée l'adapteur de repositories
func NewAdapter(db *sql.DB, driver string) *Adapter {
	// Lookup factory from registry (no switch needed)
	// Recherche la factory dans le registre (pas de switch nécessaire)
	factory := factoryRegistry[strings.ToLower(driver)]
	if factory == nil {
		factory = &sqlite.Factory{} // default fallback
	}

	return &Adapter{
		db:      db,
		factory: factory,
	}
}

// ResourceRepository returns appropriate resource repository / Retourne le repository de ressources approprié
func (a *Adapter) ResourceRepository() ports.ResourceRepository {
	return a.factory.NewResourceRepository(a.db)
}

package db

// DatabaseType identifies a supported database engine / Identifie un moteur de BD supporté
type DatabaseType string

const (
	SQLite     DatabaseType = "sqlite"   // Embedded default / Valeur par défaut embarquée
	MySQL      DatabaseType = "mysql"    // MySQL / MariaDB
	PostgreSQL DatabaseType = "postgres" // PostgreSQL
)

// String returns the type name / Retourne le nom du type
func (t DatabaseType) String() string {
	return string(t)
}

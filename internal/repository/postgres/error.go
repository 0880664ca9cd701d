package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/mkhoa1412/code-challenge-sub003/internal/ports"
	"github.com/mkhoa1412/code-challenge-sub003/internal/repository/db"
)

var ErrDup = db.ErrDuplicateKey // Duplicate unique key / Clé unique dupliquée

// handleError translates PostgreSQL errors to typed errors / Traduit les erreurs PostgreSQL en erreurs typées
func handleError(err error) error {
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ports.ErrNotFound
		}
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505": // unique_violation
				return ErrDup
			}
		}
	}
	return err
}

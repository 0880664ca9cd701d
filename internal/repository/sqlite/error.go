package sqlite

import (
	"database/sql"
	"errors"
	"log/slog"

	"github.com/mkhoa1412/code-challenge-sub003/internal/ports"
	"github.com/mkhoa1412/code-challenge-sub003/internal/repository/db"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	ErrDup    = db.ErrDuplicateKey              // Duplicate unique key / Clé unique dupliquée
	ErrBusy   = errors.New("database is busy")   // Database busy / Base de données occupée
	ErrLocked = errors.New("database is locked") // Database locked / Base de données verrouillée
)

// handleError translates DB errors to typed errors / Traduit les erreurs DB en erreurs typées
func handleError(err error) error {
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ports.ErrNotFound
		}
		if liteErr, ok := err.(*sqlite.Error); ok {
			code := liteErr.Code()
			switch code {
			case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
				return ErrDup
			case sqlite3.SQLITE_BUSY:
				slog.Warn("database is busy", "err", liteErr.Error())
				return ErrBusy
			case sqlite3.SQLITE_LOCKED:
				slog.Warn("database is locked", "err", liteErr.Error())
				return ErrLocked
			}
			slog.Error("sqlite error", "code", code, "err", liteErr.Error())
		}
	}
	return err
}

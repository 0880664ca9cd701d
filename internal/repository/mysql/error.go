package mysql

import (
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/mkhoa1412/code-challenge-sub003/internal/ports"
	"github.com/mkhoa1412/code-challenge-sub003/internal/repository/db"
)

var ErrDup = db.ErrDuplicateKey // Duplicate unique key / Clé unique dupliquée

// handleError translates MySQL errors to typed errors / Traduit les erreurs MySQL en erreurs typées
func handleError(err error) error {
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ports.ErrNotFound
		}
		if mysqlErr, ok := err.(*mysql.MySQLError); ok {
			switch mysqlErr.Number {
			case 1062: // ER_DUP_ENTRY
				return ErrDup
			}
		}
	}
	return err
}

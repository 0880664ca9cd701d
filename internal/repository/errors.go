package repository

import (
	"github.com/mkhoa1412/code-challenge-sub003/internal/ports"
	"github.com/mkhoa1412/code-challenge-sub003/internal/repository/db"
	"github.com/mkhoa1412/code-challenge-sub003/internal/repository/sqlite"
)

// Re-export common errors for backward compatibility and convenience
var (
	// Common database errors
	ErrNotFound     = ports.ErrNotFound
	ErrDuplicateKey = db.ErrDuplicateKey

	// SQLite-specific errors from sqlite package
	ErrDup    = sqlite.ErrDup
	ErrBusy   = sqlite.ErrBusy
	ErrLocked = sqlite.ErrLocked
)

package db

import "errors"

// Common database errors
var (
	ErrDuplicateKey = errors.New("record already exists")
)

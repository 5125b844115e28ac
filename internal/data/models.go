// Package data provides the database-backed models for the catalog API.
// Books live in memory (see package catalog); users are stored in PostgreSQL.
package data

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// queryTimeout bounds every statement issued by the models.
const queryTimeout = 3 * time.Second

var (
	// ErrRecordNotFound is returned when a query finds no matching row.
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateEmail and ErrDuplicateUsername are returned when an insert
	// violates the corresponding unique constraint.
	ErrDuplicateEmail    = errors.New("duplicate email")
	ErrDuplicateUsername = errors.New("duplicate username")
)

// Models groups the database model types so they can be handed to the
// application in one value.
type Models struct {
	Users UserModel
}

// NewModels constructs a Models value wired up to the given connection pool.
func NewModels(db *sql.DB) Models {
	return Models{
		Users: UserModel{DB: db},
	}
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, queryTimeout)
}

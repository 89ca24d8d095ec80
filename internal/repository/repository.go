// Package repository provides typed Postgres access for users, the
// service catalog, builds, and password-reset verifications.
package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Common errors for repository operations.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailExists          = errors.New("email already exists")
	ErrBuildNotFound        = errors.New("build not found")
	ErrVerificationNotFound = errors.New("verification not found")
)

// Repository wraps a pgx connection pool
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a Repository backed by the given pool
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

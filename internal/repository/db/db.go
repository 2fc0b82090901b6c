// Package db is the hand-written data access layer over pgx. It follows the
// Queries/Params/Querier shape so services can run the same methods against a
// pool or inside a transaction, and so tests can mock the Querier interface.
//
// Duplicate-key violations are expected control flow for this store (the
// content-hash barrier, the global source_url barrier); callers inspect
// Postgres error codes via IsUniqueViolation rather than treating them as
// failures.
package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of pgx shared by *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Queries executes the store's statements against a DBTX.
type Queries struct {
	db DBTX
}

// New returns a Queries bound to the given pool or transaction.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a Queries bound to tx.
func (q *Queries) WithTx(tx pgx.Tx) *Queries {
	return &Queries{db: tx}
}

// ErrNoRows is re-exported so callers don't import pgx for the sentinel.
var ErrNoRows = pgx.ErrNoRows

// Postgres error codes used as control flow.
const (
	codeUniqueViolation = "23505"
	codeRaiseException  = "P0001" // validation trigger rejections
)

// IsUniqueViolation reports whether err is a unique-constraint violation,
// optionally on a specific constraint name.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != codeUniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// IsValidationRejection reports whether err came from the unified validation
// trigger, and returns the trigger's message when it did.
func IsValidationRejection(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeRaiseException {
		return pgErr.Message, true
	}
	return "", false
}

// Constraint names referenced by the services.
const (
	ConstraintContentHash = "incidents_content_hash_key"
	ConstraintSourceURL   = "incident_sources_source_url_key"
)

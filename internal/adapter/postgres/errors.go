package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/cognet-graph/internal/domain"
)

// MapError converts pgx/pgconn errors to domain errors, prefixing op.
// The driver error stays in the chain next to the domain sentinel.
// context.DeadlineExceeded and context.Canceled are NOT mapped, only prefixed.
func MapError(err error, op string) error {
	if err == nil {
		return nil
	}

	// context errors keep their identity
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}

	// pgx.ErrNoRows → domain.ErrNotFound
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}

	// PgError codes
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505": // unique_violation
			return fmt.Errorf("%s: %w: %w", op, domain.ErrAlreadyExists, err)
		case pgErr.Code == "23502", pgErr.Code == "23514": // not_null_violation, check_violation
			return fmt.Errorf("%s: %w: %w", op, domain.ErrValidation, err)
		case len(pgErr.Code) == 5 && pgErr.Code[:2] == "22": // data_exception class
			return fmt.Errorf("%s: %w: %w", op, domain.ErrValidation, err)
		}
	}

	// Everything else: wrap with context
	return fmt.Errorf("%s: %w", op, err)
}

package infra

import (
	"errors"
	"log/slog"

	"mokka-api/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

type RepositoryErrorKind string

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

func NewRepoErr(kind RepositoryErrorKind, msg string, err error) error {
	if err != nil {
		err = errs.Wrap(err, msg)
	}
	return RepositoryError{Kind: kind, msg: msg, err: err}
}

func WrapRepoErr(slogger *slog.Logger, kind RepositoryErrorKind, msg string, err error) error {
	slogger.Error("Repository error: "+msg, slog.String("kind", string(kind)))
	return NewRepoErr(kind, msg, err)
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Infrastructure-specific error kinds
const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
	// KindConflict marks a conditional update that matched no row because the
	// guard (remaining capacity, active-booking uniqueness) did not hold.
	KindConflict RepositoryErrorKind = "CONFLICT"
	// KindInvariantViolated marks a state the schema forbids (reserved below
	// zero or above capacity). It aborts the enclosing transaction.
	KindInvariantViolated RepositoryErrorKind = "INVARIANT_VIOLATED"
)

const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
	pgErrCodeCheckViolation      = "23514"
)

// ClassifyPgErr translates low-level postgres errors into repository kinds.
// The constraint name is preserved inside the wrapped error so callers can
// distinguish, e.g., a reservation-code collision from an active-booking
// uniqueness violation via ConstraintName.
func ClassifyPgErr(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrCodeUniqueViolation:
			return NewRepoErr(KindDuplicateKey, msg+": "+pgErr.ConstraintName, err)
		case pgErrCodeForeignKeyViolation:
			return NewRepoErr(KindForeignKeyViolated, msg, err)
		case pgErrCodeCheckViolation:
			return NewRepoErr(KindInvariantViolated, msg+": "+pgErr.ConstraintName, err)
		}
	}
	return NewRepoErr(KindDBFailure, msg, err)
}

// ConstraintName extracts the violated constraint from a classified error,
// empty when the error did not originate from a named constraint.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

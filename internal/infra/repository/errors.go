package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/agendafacil/backend/internal/httperr"
)

// Postgres SQLSTATE codes for constraint failures.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// SQLite only reports the constraint kind in the message text.
func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		pgCode(err) == pgUniqueViolation ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated) ||
		pgCode(err) == pgForeignKeyViolation ||
		strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func isCheckViolation(err error) bool {
	return pgCode(err) == pgCheckViolation ||
		strings.Contains(err.Error(), "violates check constraint") ||
		strings.Contains(err.Error(), "CHECK constraint failed")
}

// translation maps storage failures of one operation onto business errors.
// Nil fields leave the matching failure untouched.
type translation struct {
	notFound  error
	duplicate error
	reference error
}

func (t translation) apply(err error) error {
	if err == nil {
		return nil
	}

	var be httperr.BusinessError
	if errors.As(err, &be) {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound) && t.notFound != nil:
		return t.notFound
	case isUniqueViolation(err) && t.duplicate != nil:
		return t.duplicate
	case isForeignKeyViolation(err) && t.reference != nil:
		return t.reference
	case isCheckViolation(err):
		return httperr.Validation("constraint_violation", "Registro viola uma regra de integridade.")
	}
	return err
}

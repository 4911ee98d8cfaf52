package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func IsDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func IsForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}

// FromDB maps storage errors onto business errors when the cause is a
// constraint the caller can act on. Other errors are returned unchanged.
func FromDB(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound(entity+"_not_found", "El registro solicitado no existe.")
	case IsDuplicateKey(err):
		return Conflict(entity+"_duplicated", "Ya existe un registro con esos datos.")
	case IsForeignKeyViolation(err):
		return Integrity(entity+"_has_dependents", "El registro tiene turnos asociados y no puede eliminarse.")
	}
	return err
}

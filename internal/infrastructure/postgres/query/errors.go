package query

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/users-api/internal/domain"
)

// uniqueViolation SQLSTATE de unique_violation.
const uniqueViolation = "23505"

// asUniqueViolation devuelve el PgError si err es una violación de unicidad (23505).
func asUniqueViolation(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return pgErr, true
	}
	return nil, false
}

func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// classify traduce un error de pgx a una variante de domain.Error.
// Nunca registra los valores de los argumentos.
func (ex *Executor) classify(err error, stmt Fragment) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.NewNotFoundError(ex.resource, err)
	}

	if pgErr, ok := asUniqueViolation(err); ok {
		fields, ok := MapUniqueViolation(pgErr.ConstraintName)
		ev := ex.log.Warn().
			Str("constraint", pgErr.ConstraintName).
			Str("table", pgErr.TableName).
			Str("detail", pgErr.Detail)
		if !ok {
			ev.Msg("restricción única no reconocida")
			return domain.NewUnrecognizedConstraintError(err)
		}
		ev.Msg("violación de restricción única")
		return domain.NewFieldConstraintError(fields, err)
	}

	ex.log.Error().
		Err(err).
		Str("query", stmt.SQL).
		Str("sqlstate", sqlState(err)).
		Int("args", len(stmt.Args)).
		Msg("error de base de datos")
	return domain.NewStorageError(err)
}

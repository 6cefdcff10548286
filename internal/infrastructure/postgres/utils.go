package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgCode extrae el código SQLSTATE de un error de pgx, o "" si no es un
// error de PostgreSQL.
func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// mapInsertError traduce una violación de constraint único (23505) al
// error de dominio dado (ErrDuplicate, ErrEmailAlreadyExists); cualquier
// otro error se envuelve con el nombre de la operación.
func mapInsertError(err error, op string, onUnique error) error {
	if pgCode(err) == "23505" {
		return onUnique
	}
	return fmt.Errorf("%s: %w", op, err)
}

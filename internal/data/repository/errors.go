package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"

	ticketSeatConstraint = "tickets_flight_row_seat_key"
)

func pgError(err error, code string) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == code {
		return pgErr, true
	}
	return nil, false
}

func isUniqueViolation(err error, constraint string) bool {
	pgErr, ok := pgError(err, codeUniqueViolation)
	return ok && (constraint == "" || pgErr.ConstraintName == constraint)
}

func isForeignKeyViolation(err error) bool {
	_, ok := pgError(err, codeForeignKeyViolation)
	return ok
}

func isCheckViolation(err error) bool {
	_, ok := pgError(err, codeCheckViolation)
	return ok
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

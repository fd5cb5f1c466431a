package postgres

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// isExclusionViolation reports whether err is the bookings_no_overlap
// constraint firing.
func isExclusionViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation
}

// translate maps the not-found and duplicate-key cases onto domain errors and
// passes everything else through.
func translate(err, notFound, duplicate error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound) && notFound != nil:
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey) && duplicate != nil:
		return duplicate
	}
	return err
}

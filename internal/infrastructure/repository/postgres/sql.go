package postgres

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/outletfc/club-treasury/internal/domain/calendar"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqCheckViolation      = "23514"
)

// isConstraintViolation reports whether postgres rejected a row on a unique,
// foreign key or check constraint.
func isConstraintViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch string(pqErr.Code) {
	case pqUniqueViolation, pqForeignKeyViolation, pqCheckViolation:
		return true
	default:
		return false
	}
}

// periodOf rebuilds a month from its year/month columns. The schema's check
// constraints keep them in range.
func periodOf(year, month int) calendar.Month {
	return calendar.Month{Year: year, Month: time.Month(month)}
}

func nullInt64ToIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	out := int(v.Int64)
	return &out
}

func emptyToNullString(v string) sql.NullString {
	v = strings.TrimSpace(v)
	if v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}

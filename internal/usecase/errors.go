package usecase

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/outletfc/club-treasury/internal/domain/attendance"
	"github.com/outletfc/club-treasury/internal/domain/calendar"
	"github.com/outletfc/club-treasury/internal/domain/fee"
	"github.com/outletfc/club-treasury/internal/domain/monthlystatus"
	"github.com/outletfc/club-treasury/internal/domain/payment"
	"github.com/outletfc/club-treasury/internal/domain/ranking"
	"github.com/outletfc/club-treasury/internal/domain/treasury"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

var validationErrors = []error{
	calendar.ErrInvalidMonth,
	fee.ErrValidation,
	monthlystatus.ErrValidation,
	payment.ErrValidation,
	treasury.ErrValidation,
	ranking.ErrInvalidEventID,
	ranking.ErrNotPardonable,
}

var notFoundErrors = []error{
	payment.ErrNotFound,
	attendance.ErrNotFound,
}

var dependencyErrors = []error{
	context.DeadlineExceeded,
	driver.ErrBadConn,
}

// classify maps domain sentinels onto the usecase error taxonomy. Other errors
// are wrapped with op unchanged.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return fmt.Errorf("%w: %s: %w", ErrInvalidInput, op, err)
		}
	}
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return fmt.Errorf("%w: %s: %w", ErrNotFound, op, err)
		}
	}
	for _, target := range dependencyErrors {
		if errors.Is(err, target) {
			return fmt.Errorf("%w: %s: %w", ErrDependencyUnavailable, op, err)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

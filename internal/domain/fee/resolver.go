package fee

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/outletfc/club-treasury/internal/domain/calendar"
)

type scheduleKey struct {
	category Category
	month    int
}

// Resolver answers fee lookups over a fixed schedule snapshot.
type Resolver struct {
	amounts map[scheduleKey]decimal.Decimal
}

// NewResolver indexes entries; a later entry for the same key replaces an earlier one.
func NewResolver(entries []Entry) *Resolver {
	amounts := make(map[scheduleKey]decimal.Decimal, len(entries))
	for _, e := range entries {
		amounts[scheduleKey{category: e.Category, month: e.Month.Index()}] = e.Amount
	}
	return &Resolver{amounts: amounts}
}

// Resolve returns the configured fee, or zero when the month has no entry for the category.
func (r *Resolver) Resolve(category Category, month calendar.Month) (decimal.Decimal, error) {
	if err := category.Validate(); err != nil {
		return decimal.Zero, err
	}
	if err := month.Validate(); err != nil {
		return decimal.Zero, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if r == nil {
		return decimal.Zero, nil
	}
	amount, ok := r.amounts[scheduleKey{category: category, month: month.Index()}]
	if !ok {
		return decimal.Zero, nil
	}
	return amount, nil
}

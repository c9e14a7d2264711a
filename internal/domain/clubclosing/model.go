package clubclosing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/outletfc/club-treasury/internal/domain/calendar"
)

// Closing is the finalized record of what the team paid the club for a month.
// CollectedTotal and Savings are snapshots taken at finalization time.
type Closing struct {
	ID             string
	Month          calendar.Month
	AmountPaid     decimal.Decimal
	CollectedTotal decimal.Decimal
	Savings        decimal.Decimal
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Find returns the closing recorded for month, if any.
func Find(closings []Closing, month calendar.Month) (Closing, bool) {
	for _, c := range closings {
		if c.Month == month {
			return c, true
		}
	}
	return Closing{}, false
}

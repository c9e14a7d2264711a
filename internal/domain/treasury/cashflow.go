package treasury

import (
	"fmt"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"

	"github.com/outletfc/club-treasury/internal/domain/calendar"
	"github.com/outletfc/club-treasury/internal/domain/clubclosing"
	"github.com/outletfc/club-treasury/internal/domain/fee"
	"github.com/outletfc/club-treasury/internal/domain/payment"
)

// ClubDiscountThreshold is the paying headcount from which the club waives one activo fee.
const ClubDiscountThreshold = 16

// MonthlyClubStats is the team's cash position with the club for one month.
type MonthlyClubStats struct {
	Month            calendar.Month
	TotalCollected   decimal.Decimal
	TotalFinanced    decimal.Decimal
	PaidCount        int
	ActiveFee        decimal.Decimal
	SuggestedClubFee decimal.Decimal
	AmountPaidToClub decimal.Decimal
	HasClosed        bool
	Savings          decimal.Decimal
	Notes            string
}

// SuggestedClubFee is what the team owes the club for paidCount paying players.
func SuggestedClubFee(paidCount int, activeFee decimal.Decimal) decimal.Decimal {
	if paidCount <= 0 {
		return decimal.Zero
	}
	total := activeFee.Mul(decimal.NewFromInt(int64(paidCount)))
	if paidCount < ClubDiscountThreshold {
		return total
	}
	return total.Sub(activeFee)
}

// ComputeMonth aggregates the month's payments. A recorded closing replaces the
// live estimate for the amount paid and savings.
func ComputeMonth(month calendar.Month, payments []payment.Payment, fees *fee.Resolver, closings []clubclosing.Closing) (MonthlyClubStats, error) {
	if err := month.Validate(); err != nil {
		return MonthlyClubStats{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	stats := MonthlyClubStats{
		Month:          month,
		TotalCollected: decimal.Zero,
		TotalFinanced:  decimal.Zero,
	}

	payers := make(map[string]struct{})
	for _, p := range payments {
		if p.Month != month {
			continue
		}
		stats.TotalCollected = stats.TotalCollected.Add(p.AmountTotal)
		if p.IsFinancedByTeam {
			stats.TotalFinanced = stats.TotalFinanced.Add(p.AmountTotal)
		}
		if p.AmountTotal.IsPositive() {
			payers[p.PlayerID] = struct{}{}
		}
	}
	stats.PaidCount = len(payers)

	activeFee, err := fees.Resolve(fee.CategoryActive, month)
	if err != nil {
		return MonthlyClubStats{}, fmt.Errorf("resolve activo fee %s: %w", month, err)
	}
	stats.ActiveFee = activeFee
	stats.SuggestedClubFee = SuggestedClubFee(stats.PaidCount, activeFee)

	if closing, ok := clubclosing.Find(closings, month); ok {
		stats.HasClosed = true
		stats.AmountPaidToClub = closing.AmountPaid
		stats.Savings = closing.CollectedTotal.Sub(stats.TotalFinanced).Sub(closing.AmountPaid)
		stats.Notes = closing.Notes
		return stats, nil
	}

	stats.AmountPaidToClub = stats.SuggestedClubFee
	stats.Savings = stats.TotalCollected.Sub(stats.TotalFinanced).Sub(stats.SuggestedClubFee)
	return stats, nil
}

// NewClosing snapshots stats into a closing record for amountPaid.
func NewClosing(stats MonthlyClubStats, amountPaid decimal.Decimal, notes string) (clubclosing.Closing, error) {
	if err := stats.Month.Validate(); err != nil {
		return clubclosing.Closing{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if amountPaid.IsNegative() {
		return clubclosing.Closing{}, crerr.Wrapf(ErrValidation, "amount paid must be >= 0, got %s", amountPaid)
	}

	return clubclosing.Closing{
		Month:          stats.Month,
		AmountPaid:     amountPaid,
		CollectedTotal: stats.TotalCollected,
		Savings:        stats.TotalCollected.Sub(stats.TotalFinanced).Sub(amountPaid),
		Notes:          strings.TrimSpace(notes),
	}, nil
}

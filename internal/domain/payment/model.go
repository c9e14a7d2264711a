package payment

import (
	"fmt"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"

	"github.com/outletfc/club-treasury/internal/domain/calendar"
)

var (
	ErrValidation = crerr.New("payment validation failed")
	ErrNotFound   = crerr.New("payment not found")
)

// DefaultPardonReason is stored when a pardon arrives without a reason.
const DefaultPardonReason = "Indultado por el DT"

// Payment is money a player handed over for a given month.
//
// IsFinancedByTeam marks payments the team fronted on the player's behalf;
// ReimbursedToTeam flips once the player pays the team back.
type Payment struct {
	ID               string
	PlayerID         string
	Month            calendar.Month
	AmountTotal      decimal.Decimal
	PaymentDate      time.Time
	IsFinancedByTeam bool
	ReimbursedToTeam bool
	IsPardoned       bool
	PardonReason     string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// OutstandingFinance reports whether the team is still owed for this payment.
func (p Payment) OutstandingFinance() bool {
	return p.IsFinancedByTeam && !p.ReimbursedToTeam
}

func (p Payment) Validate() error {
	if p.PlayerID == "" {
		return crerr.Wrap(ErrValidation, "player id is required")
	}
	if err := p.Month.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if p.AmountTotal.IsNegative() {
		return crerr.Wrapf(ErrValidation, "amount must be >= 0, got %s", p.AmountTotal)
	}
	return nil
}

// Filter narrows a payment listing. Nil fields match everything.
type Filter struct {
	PlayerID   *string
	Month      *calendar.Month
	Year       *int
	Financed   *bool
	Reimbursed *bool
}

func (f Filter) Matches(p Payment) bool {
	if f.PlayerID != nil && p.PlayerID != *f.PlayerID {
		return false
	}
	if f.Month != nil && p.Month != *f.Month {
		return false
	}
	if f.Year != nil && p.Month.Year != *f.Year {
		return false
	}
	if f.Financed != nil && p.IsFinancedByTeam != *f.Financed {
		return false
	}
	if f.Reimbursed != nil && p.ReimbursedToTeam != *f.Reimbursed {
		return false
	}
	return true
}

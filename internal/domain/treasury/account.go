package treasury

import (
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"

	"github.com/outletfc/club-treasury/internal/domain/calendar"
	"github.com/outletfc/club-treasury/internal/domain/fee"
	"github.com/outletfc/club-treasury/internal/domain/monthlystatus"
	"github.com/outletfc/club-treasury/internal/domain/payment"
	"github.com/outletfc/club-treasury/internal/domain/player"
)

var ErrValidation = crerr.New("treasury validation failed")

// MaxReconcileMonths bounds the month walk to ten years.
const MaxReconcileMonths = 120

type MonthState string

const (
	MonthFinanced MonthState = "financed"
	MonthPaid     MonthState = "paid"
	MonthDebt     MonthState = "debt"
)

// MonthStatus is one billed month of a player's account.
type MonthStatus struct {
	Month        calendar.Month
	Category     fee.Category
	Expected     decimal.Decimal
	Paid         decimal.Decimal
	Status       MonthState
	IsFinanced   bool
	FinancedDebt decimal.Decimal
}

// Account is a player's reconciled standing. Months are chronological.
type Account struct {
	PlayerID      string
	TotalExpected decimal.Decimal
	TotalPaid     decimal.Decimal
	TotalDebt     decimal.Decimal
	FinancedDebt  decimal.Decimal
	Months        []MonthStatus
	Truncated     bool
}

// LatestFirst returns the billed months in presentation order.
func (a Account) LatestFirst() []MonthStatus {
	out := make([]MonthStatus, len(a.Months))
	for i, m := range a.Months {
		out[len(a.Months)-1-i] = m
	}
	return out
}

func (a Account) InDebt() bool {
	return a.TotalDebt.IsPositive()
}

type AccountInput struct {
	Player      player.Player
	Fees        *fee.Resolver
	Statuses    *monthlystatus.Resolver
	Payments    []payment.Payment
	SeasonStart calendar.Month
	AsOf        calendar.Month
}

// ComputeAccount walks SeasonStart..AsOf and reconciles expected dues against payments.
// Months with nothing expected are left out of the output and the expected and
// paid totals; their outstanding financing still counts toward FinancedDebt.
func ComputeAccount(in AccountInput) (Account, error) {
	if in.Player.ID == "" {
		return Account{}, crerr.Wrap(ErrValidation, "player id is required")
	}
	if err := in.SeasonStart.Validate(); err != nil {
		return Account{}, fmt.Errorf("%w: season start: %w", ErrValidation, err)
	}
	if err := in.AsOf.Validate(); err != nil {
		return Account{}, fmt.Errorf("%w: as of: %w", ErrValidation, err)
	}

	byMonth := make(map[calendar.Month][]payment.Payment)
	for _, p := range in.Payments {
		if p.PlayerID != in.Player.ID {
			continue
		}
		byMonth[p.Month] = append(byMonth[p.Month], p)
	}

	account := Account{
		PlayerID:      in.Player.ID,
		TotalExpected: decimal.Zero,
		TotalPaid:     decimal.Zero,
		TotalDebt:     decimal.Zero,
		FinancedDebt:  decimal.Zero,
	}

	months := calendar.Between(in.SeasonStart, in.AsOf, MaxReconcileMonths)
	if len(months) == MaxReconcileMonths && months[len(months)-1] != in.AsOf {
		account.Truncated = true
	}

	for _, month := range months {
		category, err := in.Statuses.Resolve(in.Player, month)
		if err != nil {
			return Account{}, fmt.Errorf("resolve category %s: %w", month, err)
		}
		expected, err := in.Fees.Resolve(category, month)
		if err != nil {
			return Account{}, fmt.Errorf("resolve fee %s: %w", month, err)
		}
		if in.Player.IsDirector() {
			surcharge, err := in.Fees.Resolve(fee.CategoryDirector, month)
			if err != nil {
				return Account{}, fmt.Errorf("resolve director fee %s: %w", month, err)
			}
			expected = expected.Add(surcharge)
		}

		paid := decimal.Zero
		financedDebt := decimal.Zero
		isFinanced := false
		for _, p := range byMonth[month] {
			paid = paid.Add(p.AmountTotal)
			if p.IsFinancedByTeam {
				isFinanced = true
			}
			if p.OutstandingFinance() {
				financedDebt = financedDebt.Add(p.AmountTotal)
			}
		}
		// the team is owed back its financing even in months with no fee
		account.FinancedDebt = account.FinancedDebt.Add(financedDebt)
		if expected.IsZero() {
			continue
		}

		status := MonthDebt
		switch {
		case isFinanced:
			status = MonthFinanced
		case paid.GreaterThanOrEqual(expected):
			status = MonthPaid
		}

		account.Months = append(account.Months, MonthStatus{
			Month:        month,
			Category:     category,
			Expected:     expected,
			Paid:         paid,
			Status:       status,
			IsFinanced:   isFinanced,
			FinancedDebt: financedDebt,
		})
		account.TotalExpected = account.TotalExpected.Add(expected)
		account.TotalPaid = account.TotalPaid.Add(paid)
	}

	if account.TotalExpected.GreaterThan(account.TotalPaid) {
		account.TotalDebt = account.TotalExpected.Sub(account.TotalPaid)
	}

	return account, nil
}

package treasury

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/outletfc/club-treasury/internal/domain/calendar"
	"github.com/outletfc/club-treasury/internal/domain/fee"
	"github.com/outletfc/club-treasury/internal/domain/payment"
)

// Overview summarizes the treasury across every player.
type Overview struct {
	Month               calendar.Month
	TotalDebt           decimal.Decimal
	OutstandingFinanced decimal.Decimal
	IsGroupPayment      bool
	MonthlySavings      decimal.Decimal
	Debtors             int
}

// ComputeOverview sums debt over accounts and outstanding financing over all payments.
// Group-payment months save one activo fee.
func ComputeOverview(month calendar.Month, accounts []Account, payments []payment.Payment, setting fee.MonthlySetting, fees *fee.Resolver) (Overview, error) {
	out := Overview{
		Month:               month,
		TotalDebt:           decimal.Zero,
		OutstandingFinanced: decimal.Zero,
		MonthlySavings:      decimal.Zero,
		IsGroupPayment:      setting.IsGroupPayment,
	}

	for _, acc := range accounts {
		out.TotalDebt = out.TotalDebt.Add(acc.TotalDebt)
		if acc.InDebt() {
			out.Debtors++
		}
	}
	for _, p := range payments {
		if p.OutstandingFinance() {
			out.OutstandingFinanced = out.OutstandingFinanced.Add(p.AmountTotal)
		}
	}

	if setting.IsGroupPayment {
		activeFee, err := fees.Resolve(fee.CategoryActive, month)
		if err != nil {
			return Overview{}, fmt.Errorf("resolve activo fee %s: %w", month, err)
		}
		out.MonthlySavings = activeFee
	}

	return out, nil
}

package treasury

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/outletfc/club-treasury/internal/domain/calendar"
	"github.com/outletfc/club-treasury/internal/domain/clubclosing"
	"github.com/outletfc/club-treasury/internal/domain/fee"
	"github.com/outletfc/club-treasury/internal/domain/payment"
)

func paymentsForPlayers(m calendar.Month, count int, each int64) []payment.Payment {
	out := make([]payment.Payment, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, payment.Payment{
			ID:          fmt.Sprintf("pay-%d", i),
			PlayerID:    fmt.Sprintf("p%d", i),
			Month:       m,
			AmountTotal: amount(each),
		})
	}
	return out
}

func TestSuggestedClubFee_Threshold(t *testing.T) {
	activeFee := amount(1000)
	tests := []struct {
		paidCount int
		want      int64
	}{
		{paidCount: 0, want: 0},
		{paidCount: 1, want: 1000},
		{paidCount: 15, want: 15000},
		{paidCount: 16, want: 15000},
		{paidCount: 17, want: 16000},
	}
	for _, tc := range tests {
		got := SuggestedClubFee(tc.paidCount, activeFee)
		require.True(t, got.Equal(amount(tc.want)), "paidCount=%d expected %d got %s", tc.paidCount, tc.want, got)
	}
}

func TestComputeMonth_LiveEstimate(t *testing.T) {
	mar := month(2025, time.March)
	fees := fee.NewResolver([]fee.Entry{{Category: fee.CategoryActive, Month: mar, Amount: amount(1000)}})

	payments := paymentsForPlayers(mar, 17, 1000)
	payments[0].IsFinancedByTeam = true
	payments[1].IsFinancedByTeam = true
	payments[1].ReimbursedToTeam = true
	payments = append(payments,
		payment.Payment{ID: "extra", PlayerID: "p0", Month: mar, AmountTotal: amount(500)},
		payment.Payment{ID: "zero", PlayerID: "p99", Month: mar, AmountTotal: decimal.Zero},
		payment.Payment{ID: "other-month", PlayerID: "p50", Month: mar.Next(), AmountTotal: amount(9999)},
	)

	stats, err := ComputeMonth(mar, payments, fees, nil)
	require.NoError(t, err)
	require.Equal(t, 17, stats.PaidCount)
	require.True(t, stats.TotalCollected.Equal(amount(17500)))
	require.True(t, stats.TotalFinanced.Equal(amount(2000)), "financed counts regardless of reimbursement")
	require.True(t, stats.SuggestedClubFee.Equal(amount(16000)))
	require.True(t, stats.AmountPaidToClub.Equal(amount(16000)))
	require.False(t, stats.HasClosed)
	require.True(t, stats.Savings.Equal(amount(17500-2000-16000)))
}

func TestComputeMonth_ClosingOverridesEstimate(t *testing.T) {
	mar := month(2025, time.March)
	fees := fee.NewResolver([]fee.Entry{{Category: fee.CategoryActive, Month: mar, Amount: amount(1000)}})
	payments := paymentsForPlayers(mar, 16, 1000)
	payments[0].IsFinancedByTeam = true

	closings := []clubclosing.Closing{{
		Month:          mar,
		AmountPaid:     amount(14000),
		CollectedTotal: amount(15000),
		Savings:        amount(0),
		Notes:          "paid in cash",
	}}

	stats, err := ComputeMonth(mar, payments, fees, closings)
	require.NoError(t, err)
	require.True(t, stats.HasClosed)
	require.True(t, stats.SuggestedClubFee.Equal(amount(15000)))
	require.True(t, stats.AmountPaidToClub.Equal(amount(14000)))
	require.True(t, stats.Savings.Equal(amount(15000-1000-14000)))
	require.Equal(t, "paid in cash", stats.Notes)
}

func TestComputeMonth_NoPayers(t *testing.T) {
	mar := month(2025, time.March)
	stats, err := ComputeMonth(mar, nil, fee.NewResolver(nil), nil)
	require.NoError(t, err)
	require.Zero(t, stats.PaidCount)
	require.True(t, stats.SuggestedClubFee.IsZero())
	require.True(t, stats.Savings.IsZero())
}

func TestComputeMonth_InvalidMonth(t *testing.T) {
	_, err := ComputeMonth(month(2025, 13), nil, nil, nil)
	require.True(t, errors.Is(err, ErrValidation))
}

func TestNewClosing_SnapshotIsImmutable(t *testing.T) {
	mar := month(2025, time.March)
	fees := fee.NewResolver([]fee.Entry{{Category: fee.CategoryActive, Month: mar, Amount: amount(1000)}})
	ledger := payment.NewLedger(nil, paymentsForPlayers(mar, 15, 1000)...)

	stats, err := ComputeMonth(mar, ledger.List(payment.Filter{}), fees, nil)
	require.NoError(t, err)
	closing, err := NewClosing(stats, amount(15000), " ")
	require.NoError(t, err)
	require.True(t, closing.CollectedTotal.Equal(amount(15000)))
	require.True(t, closing.Savings.IsZero())
	require.Equal(t, "", closing.Notes)

	_, err = ledger.Record(payment.Payment{ID: "late", PlayerID: "p-late", Month: mar, AmountTotal: amount(1000)})
	require.NoError(t, err)

	live, err := ComputeMonth(mar, ledger.List(payment.Filter{}), fees, nil)
	require.NoError(t, err)
	require.True(t, live.TotalCollected.Equal(amount(16000)))
	require.True(t, closing.CollectedTotal.Equal(amount(15000)), "stored snapshot must not follow later payments")

	closed, err := ComputeMonth(mar, ledger.List(payment.Filter{}), fees, []clubclosing.Closing{closing})
	require.NoError(t, err)
	require.True(t, closed.AmountPaidToClub.Equal(amount(15000)))
	require.True(t, closed.Savings.Equal(closing.Savings))
}

func TestNewClosing_RejectsNegativeAmount(t *testing.T) {
	_, err := NewClosing(MonthlyClubStats{Month: month(2025, time.March)}, amount(-1), "")
	require.True(t, errors.Is(err, ErrValidation))
}

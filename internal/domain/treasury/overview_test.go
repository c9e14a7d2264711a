package treasury

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/outletfc/club-treasury/internal/domain/fee"
	"github.com/outletfc/club-treasury/internal/domain/payment"
)

func TestComputeOverview(t *testing.T) {
	mar := month(2025, time.March)
	fees := fee.NewResolver([]fee.Entry{{Category: fee.CategoryActive, Month: mar, Amount: amount(1000)}})
	accounts := []Account{
		{PlayerID: "a", TotalDebt: amount(300)},
		{PlayerID: "b", TotalDebt: amount(0)},
		{PlayerID: "c", TotalDebt: amount(200)},
	}
	payments := []payment.Payment{
		{ID: "1", PlayerID: "a", Month: mar, AmountTotal: amount(1000), IsFinancedByTeam: true},
		{ID: "2", PlayerID: "b", Month: month(2025, time.February), AmountTotal: amount(500), IsFinancedByTeam: true},
		{ID: "3", PlayerID: "c", Month: mar, AmountTotal: amount(700), IsFinancedByTeam: true, ReimbursedToTeam: true},
	}

	t.Run("group payment saves one fee", func(t *testing.T) {
		got, err := ComputeOverview(mar, accounts, payments, fee.MonthlySetting{Month: mar, IsGroupPayment: true}, fees)
		require.NoError(t, err)
		require.True(t, got.TotalDebt.Equal(amount(500)))
		require.Equal(t, 2, got.Debtors)
		require.True(t, got.OutstandingFinanced.Equal(amount(1500)))
		require.True(t, got.MonthlySavings.Equal(amount(1000)))
	})

	t.Run("individual payment saves nothing", func(t *testing.T) {
		got, err := ComputeOverview(mar, accounts, payments, fee.MonthlySetting{Month: mar}, fees)
		require.NoError(t, err)
		require.False(t, got.IsGroupPayment)
		require.True(t, got.MonthlySavings.IsZero())
	})
}

package usecase

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/outletfc/club-treasury/internal/domain/calendar"
	"github.com/outletfc/club-treasury/internal/domain/fee"
	"github.com/outletfc/club-treasury/internal/domain/payment"
	"github.com/outletfc/club-treasury/internal/domain/player"
	"github.com/outletfc/club-treasury/internal/domain/treasury"
	"github.com/outletfc/club-treasury/internal/infrastructure/repository/memory"
	"github.com/outletfc/club-treasury/internal/platform/logging"
)

type sequenceIDGenerator struct {
	prefix string
	next   int
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	g.next++
	return fmt.Sprintf("%s-%d", g.prefix, g.next), nil
}

type treasuryFixture struct {
	service  *TreasuryService
	payments *memory.PaymentRepository
	closings *memory.ClubClosingRepository
	fees     *memory.FeeRepository
}

// newTreasuryFixture wires the service over seeded memory repositories with
// the clock frozen in March 2025.
func newTreasuryFixture(t *testing.T) treasuryFixture {
	t.Helper()

	payments := memory.NewPaymentRepository(memory.SeedPayments())
	closings := memory.NewClubClosingRepository(nil)
	fees := memory.NewFeeRepository(memory.SeedFees())

	svc := NewTreasuryService(
		memory.NewPlayerRepository(memory.SeedPlayers()),
		fees,
		memory.NewMonthlyStatusRepository(nil),
		payments,
		closings,
		&sequenceIDGenerator{prefix: "gen"},
		TreasuryConfig{SeasonStart: memory.SeedMonth, Workers: 2},
		logging.NewNop(),
	)
	svc.now = func() time.Time { return time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC) }

	return treasuryFixture{service: svc, payments: payments, closings: closings, fees: fees}
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

var (
	jan2025 = calendar.Month{Year: 2025, Month: time.January}
	feb2025 = calendar.Month{Year: 2025, Month: time.February}
	mar2025 = calendar.Month{Year: 2025, Month: time.March}
)

func TestTreasuryService_GetPlayerAccount_ReconcilesSeason(t *testing.T) {
	fx := newTreasuryFixture(t)

	got, err := fx.service.GetPlayerAccount(t.Context(), memory.PlayerIDCaptain, calendar.Month{})
	if err != nil {
		t.Fatalf("get player account: %v", err)
	}

	acc := got.Account
	if len(acc.Months) != 3 {
		t.Fatalf("unexpected month count: %d", len(acc.Months))
	}
	if !acc.TotalExpected.Equal(dec(15000)) {
		t.Fatalf("unexpected total expected: %s", acc.TotalExpected)
	}
	if !acc.TotalPaid.Equal(dec(10000)) {
		t.Fatalf("unexpected total paid: %s", acc.TotalPaid)
	}
	if !acc.TotalDebt.Equal(dec(5000)) {
		t.Fatalf("unexpected total debt: %s", acc.TotalDebt)
	}
	if !acc.FinancedDebt.Equal(dec(5000)) {
		t.Fatalf("unexpected financed debt: %s", acc.FinancedDebt)
	}

	want := []treasury.MonthState{treasury.MonthPaid, treasury.MonthFinanced, treasury.MonthDebt}
	for i, m := range acc.Months {
		if m.Status != want[i] {
			t.Fatalf("month %s: got status %s want %s", m.Month, m.Status, want[i])
		}
	}
}

func TestTreasuryService_GetPlayerAccount_DirectorSurcharge(t *testing.T) {
	fx := newTreasuryFixture(t)

	got, err := fx.service.GetPlayerAccount(t.Context(), memory.PlayerIDDirector, jan2025)
	if err != nil {
		t.Fatalf("get player account: %v", err)
	}
	if len(got.Account.Months) != 1 {
		t.Fatalf("unexpected month count: %d", len(got.Account.Months))
	}
	if !got.Account.Months[0].Expected.Equal(dec(6000)) {
		t.Fatalf("expected activo plus dt fee, got %s", got.Account.Months[0].Expected)
	}
	if got.Account.Months[0].Status != treasury.MonthPaid {
		t.Fatalf("unexpected status: %s", got.Account.Months[0].Status)
	}
}

func TestTreasuryService_GetPlayerAccount_UnknownPlayer(t *testing.T) {
	fx := newTreasuryFixture(t)

	_, err := fx.service.GetPlayerAccount(t.Context(), "ghost", calendar.Month{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTreasuryService_GetPlayerAccount_InvalidAsOf(t *testing.T) {
	fx := newTreasuryFixture(t)

	_, err := fx.service.GetPlayerAccount(t.Context(), memory.PlayerIDCaptain, calendar.Month{Year: 2025, Month: 13})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTreasuryService_ListAccounts_AllPlayers(t *testing.T) {
	fx := newTreasuryFixture(t)

	got, err := fx.service.ListAccounts(t.Context(), calendar.Month{})
	if err != nil {
		t.Fatalf("list accounts: %v", err)
	}
	if len(got) != len(memory.SeedPlayers()) {
		t.Fatalf("unexpected account count: %d", len(got))
	}
	for _, item := range got {
		if item.Account.PlayerID != item.Player.ID {
			t.Fatalf("account %s paired with player %s", item.Account.PlayerID, item.Player.ID)
		}
	}
}

func TestTreasuryService_RecordPayment_SettlesMonth(t *testing.T) {
	fx := newTreasuryFixture(t)

	saved, err := fx.service.RecordPayment(t.Context(), RecordPaymentInput{
		PlayerID: memory.PlayerIDWinger,
		Month:    feb2025,
		Amount:   dec(3000),
	})
	if err != nil {
		t.Fatalf("record payment: %v", err)
	}
	if saved.ID != "gen-1" {
		t.Fatalf("expected generated id, got %q", saved.ID)
	}
	if saved.PaymentDate.IsZero() {
		t.Fatalf("expected payment date defaulted to now")
	}

	got, err := fx.service.GetPlayerAccount(t.Context(), memory.PlayerIDWinger, feb2025)
	if err != nil {
		t.Fatalf("get player account: %v", err)
	}
	if !got.Account.TotalDebt.IsZero() {
		t.Fatalf("expected no debt after payment, got %s", got.Account.TotalDebt)
	}
	if got.Account.Months[1].Status != treasury.MonthPaid {
		t.Fatalf("unexpected february status: %s", got.Account.Months[1].Status)
	}
}

func TestTreasuryService_RecordPayment_EditKeepsCreatedAt(t *testing.T) {
	fx := newTreasuryFixture(t)

	before, found, err := fx.payments.GetByID(t.Context(), "seed-pay-3")
	if err != nil || !found {
		t.Fatalf("seed payment missing: found=%v err=%v", found, err)
	}

	saved, err := fx.service.RecordPayment(t.Context(), RecordPaymentInput{
		ID:       "seed-pay-3",
		PlayerID: memory.PlayerIDWinger,
		Month:    jan2025,
		Amount:   dec(2500),
	})
	if err != nil {
		t.Fatalf("edit payment: %v", err)
	}
	if !saved.AmountTotal.Equal(dec(2500)) {
		t.Fatalf("unexpected amount: %s", saved.AmountTotal)
	}
	if !saved.CreatedAt.Equal(before.CreatedAt) {
		t.Fatalf("created at changed: %s -> %s", before.CreatedAt, saved.CreatedAt)
	}
}

func TestTreasuryService_RecordPayment_Rejections(t *testing.T) {
	fx := newTreasuryFixture(t)

	cases := []struct {
		name  string
		input RecordPaymentInput
		want  error
	}{
		{
			name:  "negative amount",
			input: RecordPaymentInput{PlayerID: memory.PlayerIDCaptain, Month: mar2025, Amount: dec(-1)},
			want:  ErrInvalidInput,
		},
		{
			name:  "invalid month",
			input: RecordPaymentInput{PlayerID: memory.PlayerIDCaptain, Month: calendar.Month{Year: 2025, Month: 0}, Amount: dec(1)},
			want:  ErrInvalidInput,
		},
		{
			name:  "missing player id",
			input: RecordPaymentInput{Month: mar2025, Amount: dec(1)},
			want:  ErrInvalidInput,
		},
		{
			name:  "unknown player",
			input: RecordPaymentInput{PlayerID: "ghost", Month: mar2025, Amount: dec(1)},
			want:  ErrNotFound,
		},
		{
			name:  "unknown payment id",
			input: RecordPaymentInput{ID: "missing", PlayerID: memory.PlayerIDCaptain, Month: mar2025, Amount: dec(1)},
			want:  ErrNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fx.service.RecordPayment(t.Context(), tc.input)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	items, err := fx.service.ListPayments(t.Context(), payment.Filter{})
	if err != nil {
		t.Fatalf("list payments: %v", err)
	}
	if len(items) != len(memory.SeedPayments()) {
		t.Fatalf("rejected payments must not be stored, got %d rows", len(items))
	}
}

func TestTreasuryService_MarkReimbursed_ClearsFinancedDebt(t *testing.T) {
	fx := newTreasuryFixture(t)

	first, err := fx.service.MarkReimbursed(t.Context(), "seed-pay-2")
	if err != nil {
		t.Fatalf("mark reimbursed: %v", err)
	}
	if !first.ReimbursedToTeam {
		t.Fatalf("expected payment reimbursed")
	}
	if _, err := fx.service.MarkReimbursed(t.Context(), "seed-pay-2"); err != nil {
		t.Fatalf("repeat mark reimbursed: %v", err)
	}

	got, err := fx.service.GetPlayerAccount(t.Context(), memory.PlayerIDCaptain, feb2025)
	if err != nil {
		t.Fatalf("get player account: %v", err)
	}
	if !got.Account.FinancedDebt.IsZero() {
		t.Fatalf("expected financed debt cleared, got %s", got.Account.FinancedDebt)
	}
	if got.Account.Months[1].Status != treasury.MonthFinanced {
		t.Fatalf("reimbursed month must stay financed, got %s", got.Account.Months[1].Status)
	}

	if _, err := fx.service.MarkReimbursed(t.Context(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTreasuryService_RecordPayment_EditKeepsReimbursement(t *testing.T) {
	fx := newTreasuryFixture(t)

	if _, err := fx.service.MarkReimbursed(t.Context(), "seed-pay-2"); err != nil {
		t.Fatalf("mark reimbursed: %v", err)
	}

	edited, err := fx.service.RecordPayment(t.Context(), RecordPaymentInput{
		ID:               "seed-pay-2",
		PlayerID:         memory.PlayerIDCaptain,
		Month:            feb2025,
		Amount:           dec(5500),
		IsFinancedByTeam: true,
	})
	if err != nil {
		t.Fatalf("edit payment: %v", err)
	}
	if !edited.ReimbursedToTeam {
		t.Fatalf("edit must keep the payment reimbursed")
	}
	if !edited.AmountTotal.Equal(dec(5500)) {
		t.Fatalf("unexpected amount after edit: %s", edited.AmountTotal)
	}

	got, err := fx.service.GetPlayerAccount(t.Context(), memory.PlayerIDCaptain, feb2025)
	if err != nil {
		t.Fatalf("get player account: %v", err)
	}
	if !got.Account.FinancedDebt.IsZero() {
		t.Fatalf("expected no financed debt after edit, got %s", got.Account.FinancedDebt)
	}
}

func TestTreasuryService_ListPayments_Filter(t *testing.T) {
	fx := newTreasuryFixture(t)

	playerID := memory.PlayerIDCaptain
	items, err := fx.service.ListPayments(t.Context(), payment.Filter{PlayerID: &playerID})
	if err != nil {
		t.Fatalf("list payments: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("unexpected payment count: %d", len(items))
	}
	if items[0].ID != "seed-pay-2" {
		t.Fatalf("expected newest payment first, got %s", items[0].ID)
	}
}

func TestTreasuryService_FinalizeClosing_SnapshotSurvivesLatePayment(t *testing.T) {
	fx := newTreasuryFixture(t)

	closing, err := fx.service.FinalizeClosing(t.Context(), FinalizeClosingInput{
		Month:      jan2025,
		AmountPaid: dec(9000),
		Notes:      " transferencia ",
	})
	if err != nil {
		t.Fatalf("finalize closing: %v", err)
	}
	if !closing.CollectedTotal.Equal(dec(14000)) {
		t.Fatalf("unexpected collected total: %s", closing.CollectedTotal)
	}
	if !closing.Savings.Equal(dec(5000)) {
		t.Fatalf("unexpected savings: %s", closing.Savings)
	}
	if closing.Notes != "transferencia" {
		t.Fatalf("unexpected notes: %q", closing.Notes)
	}

	if _, err := fx.service.RecordPayment(t.Context(), RecordPaymentInput{
		PlayerID: memory.PlayerIDKeeper,
		Month:    jan2025,
		Amount:   dec(1500),
	}); err != nil {
		t.Fatalf("record late payment: %v", err)
	}

	stored, found, err := fx.closings.GetByMonth(t.Context(), jan2025)
	if err != nil || !found {
		t.Fatalf("stored closing missing: found=%v err=%v", found, err)
	}
	if !stored.CollectedTotal.Equal(dec(14000)) || !stored.Savings.Equal(dec(5000)) {
		t.Fatalf("stored closing changed: collected=%s savings=%s", stored.CollectedTotal, stored.Savings)
	}

	stats, err := fx.service.GetMonthlyStats(t.Context(), jan2025)
	if err != nil {
		t.Fatalf("get monthly stats: %v", err)
	}
	if !stats.HasClosed {
		t.Fatalf("expected month closed")
	}
	if !stats.TotalCollected.Equal(dec(15500)) {
		t.Fatalf("live collected total must include late payment, got %s", stats.TotalCollected)
	}
	if !stats.AmountPaidToClub.Equal(dec(9000)) {
		t.Fatalf("unexpected amount paid to club: %s", stats.AmountPaidToClub)
	}
}

func TestTreasuryService_FinalizeClosing_RefinalizeKeepsID(t *testing.T) {
	fx := newTreasuryFixture(t)

	first, err := fx.service.FinalizeClosing(t.Context(), FinalizeClosingInput{Month: feb2025, AmountPaid: dec(5000)})
	if err != nil {
		t.Fatalf("finalize closing: %v", err)
	}
	second, err := fx.service.FinalizeClosing(t.Context(), FinalizeClosingInput{Month: feb2025, AmountPaid: dec(4000)})
	if err != nil {
		t.Fatalf("refinalize closing: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected closing id reused: %s vs %s", first.ID, second.ID)
	}
	// February collected 5000, all of it financed by the team.
	if !second.Savings.Equal(dec(-4000)) {
		t.Fatalf("unexpected savings: %s", second.Savings)
	}
}

func TestTreasuryService_FinalizeClosing_NegativeAmount(t *testing.T) {
	fx := newTreasuryFixture(t)

	_, err := fx.service.FinalizeClosing(t.Context(), FinalizeClosingInput{Month: jan2025, AmountPaid: dec(-1)})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	closings, err := fx.closings.List(t.Context())
	if err != nil {
		t.Fatalf("list closings: %v", err)
	}
	if len(closings) != 0 {
		t.Fatalf("rejected closing must not be stored")
	}
}

func TestTreasuryService_UpsertFees(t *testing.T) {
	fx := newTreasuryFixture(t)
	apr := mar2025.Next()

	entries, err := fx.service.UpsertFees(t.Context(), UpsertFeesInput{
		Month: apr,
		Amounts: map[fee.Category]decimal.Decimal{
			fee.CategoryActive:  dec(5500),
			fee.CategoryPassive: dec(1800),
		},
		IsGroupPayment: true,
	})
	if err != nil {
		t.Fatalf("upsert fees: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("unexpected entry count: %d", len(entries))
	}
	if entries[0].Category != fee.CategoryActive {
		t.Fatalf("expected entries in category order, got %s first", entries[0].Category)
	}

	setting, found, err := fx.fees.GetSetting(t.Context(), apr)
	if err != nil || !found {
		t.Fatalf("monthly setting missing: found=%v err=%v", found, err)
	}
	if !setting.IsGroupPayment {
		t.Fatalf("expected group payment month")
	}

	_, err = fx.service.UpsertFees(t.Context(), UpsertFeesInput{
		Month:   apr,
		Amounts: map[fee.Category]decimal.Decimal{"vip": dec(1)},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown category, got %v", err)
	}
}

func TestTreasuryService_SetMonthlyStatus_ChangesBilledCategory(t *testing.T) {
	fx := newTreasuryFixture(t)

	if _, err := fx.service.SetMonthlyStatus(t.Context(), SetMonthlyStatusInput{
		PlayerID: memory.PlayerIDCaptain,
		Month:    mar2025,
		Status:   player.StatusPassive,
	}); err != nil {
		t.Fatalf("set monthly status: %v", err)
	}

	got, err := fx.service.GetPlayerAccount(t.Context(), memory.PlayerIDCaptain, mar2025)
	if err != nil {
		t.Fatalf("get player account: %v", err)
	}
	last := got.Account.Months[len(got.Account.Months)-1]
	if last.Category != fee.CategoryPassive {
		t.Fatalf("unexpected category: %s", last.Category)
	}
	if !last.Expected.Equal(dec(1500)) {
		t.Fatalf("unexpected expected amount: %s", last.Expected)
	}

	_, err = fx.service.SetMonthlyStatus(t.Context(), SetMonthlyStatusInput{
		PlayerID: memory.PlayerIDCaptain,
		Month:    mar2025,
		Status:   "retired",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTreasuryService_Overview(t *testing.T) {
	fx := newTreasuryFixture(t)

	if err := fx.fees.UpsertSetting(t.Context(), fee.MonthlySetting{Month: mar2025, IsGroupPayment: true}); err != nil {
		t.Fatalf("upsert setting: %v", err)
	}

	got, err := fx.service.Overview(t.Context(), calendar.Month{})
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if got.Month != mar2025 {
		t.Fatalf("expected current month, got %s", got.Month)
	}
	if !got.OutstandingFinanced.Equal(dec(5000)) {
		t.Fatalf("unexpected outstanding financed: %s", got.OutstandingFinanced)
	}
	if !got.MonthlySavings.Equal(dec(5000)) {
		t.Fatalf("unexpected monthly savings: %s", got.MonthlySavings)
	}
	// captain 5000, winger 6000, keeper 4500, director 12000
	if !got.TotalDebt.Equal(dec(27500)) {
		t.Fatalf("unexpected total debt: %s", got.TotalDebt)
	}
	if got.Debtors != 4 {
		t.Fatalf("unexpected debtor count: %d", got.Debtors)
	}
}

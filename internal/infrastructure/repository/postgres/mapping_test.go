package postgres

import (
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/outletfc/club-treasury/internal/domain/attendance"
	"github.com/outletfc/club-treasury/internal/domain/calendar"
	"github.com/outletfc/club-treasury/internal/domain/payment"
	qb "github.com/outletfc/club-treasury/internal/platform/querybuilder"
)

func TestPaymentFilterConditions(t *testing.T) {
	playerID := "p1"
	financed := true
	month := calendar.Month{Year: 2025, Month: time.February}

	query, args, err := qb.Select("id").From("payments").
		Where(paymentFilterConditions(payment.Filter{PlayerID: &playerID, Financed: &financed, Month: &month})...).
		ToSQL()
	if err != nil {
		t.Fatalf("build query: %v", err)
	}

	want := "SELECT id FROM payments WHERE player_id = $1 AND is_financed_by_team = $2 AND year = $3 AND month = $4"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 4 || args[0] != "p1" || args[1] != true || args[2] != 2025 || args[3] != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}

	query, _, err = qb.Select("id").From("payments").Where(paymentFilterConditions(payment.Filter{})...).ToSQL()
	if err != nil {
		t.Fatalf("build query: %v", err)
	}
	if query != "SELECT id FROM payments" {
		t.Fatalf("empty filter must not add conditions: %s", query)
	}
}

func TestPaymentFromRow(t *testing.T) {
	paid := time.Date(2025, time.March, 2, 10, 0, 0, 0, time.FixedZone("ART", -3*3600))
	got := paymentFromRow(paymentTableModel{
		ID:               "pay-1",
		PlayerID:         "p1",
		Year:             2025,
		Month:            3,
		AmountTotal:      decimal.RequireFromString("5000.50"),
		PaymentDate:      paid,
		IsFinancedByTeam: true,
	})

	if got.Month != (calendar.Month{Year: 2025, Month: time.March}) {
		t.Fatalf("unexpected month: %s", got.Month)
	}
	if !got.AmountTotal.Equal(decimal.RequireFromString("5000.5")) {
		t.Fatalf("unexpected amount: %s", got.AmountTotal)
	}
	if got.PaymentDate.Location() != time.UTC || !got.PaymentDate.Equal(paid) {
		t.Fatalf("expected payment date normalized to UTC: %v", got.PaymentDate)
	}
	if !got.OutstandingFinance() {
		t.Fatalf("expected outstanding finance")
	}
}

func TestAttendanceFromRow_NullTypeIsNotRecorded(t *testing.T) {
	row := attendanceRow{
		attendanceTableModel: attendanceTableModel{
			ID:           "att-1",
			MatchID:      "m-1",
			PlayerID:     "p1",
			Confirmation: "confirmed",
		},
		MatchDate: time.Date(2025, time.January, 12, 19, 0, 0, 0, time.UTC),
		Opponent:  "Deportivo Sur",
	}

	got := attendanceFromRow(row)
	if got.Type != attendance.TypeNotRecorded {
		t.Fatalf("expected not recorded type, got %q", got.Type)
	}
	if got.Confirmation != attendance.ConfirmationConfirmed || got.Opponent != "Deportivo Sur" {
		t.Fatalf("unexpected record: %+v", got)
	}

	row.AttendanceType = sql.NullString{String: "late_2nd_half", Valid: true}
	if got := attendanceFromRow(row); got.Type != attendance.TypeLateSecond {
		t.Fatalf("unexpected type: %q", got.Type)
	}
}

func TestPaymentUpsertStatement(t *testing.T) {
	query, args, err := qb.InsertModel("payments", paymentTableModel{ID: "pay-1"}, "ON CONFLICT (id) DO NOTHING "+paymentReturning)
	if err != nil {
		t.Fatalf("build query: %v", err)
	}
	if len(args) != len(paymentSelectColumns) {
		t.Fatalf("model and select columns drifted: %d args for %d columns", len(args), len(paymentSelectColumns))
	}
	wantSuffix := "RETURNING id, player_id, year, month, amount_total, payment_date, is_financed_by_team, reimbursed_to_team, is_pardoned, pardon_reason, created_at, updated_at"
	if len(query) < len(wantSuffix) || query[len(query)-len(wantSuffix):] != wantSuffix {
		t.Fatalf("unexpected returning clause: %s", query)
	}
}

func TestPaymentUpsertConflict_KeepsOneWayFlags(t *testing.T) {
	for _, want := range []string{
		"reimbursed_to_team = payments.reimbursed_to_team OR EXCLUDED.reimbursed_to_team",
		"is_pardoned = payments.is_pardoned OR EXCLUDED.is_pardoned",
	} {
		if !strings.Contains(paymentUpsertConflict, want) {
			t.Fatalf("upsert conflict clause missing %q", want)
		}
	}
	if strings.Contains(paymentUpsertConflict, "created_at") {
		t.Fatalf("upsert must not rewrite created_at")
	}
}

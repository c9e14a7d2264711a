package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/outletfc/club-treasury/internal/domain/calendar"
	"github.com/outletfc/club-treasury/internal/domain/clubclosing"
	qb "github.com/outletfc/club-treasury/internal/platform/querybuilder"
)

type ClubClosingRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

var clubPaymentSelectColumns = []string{
	"id",
	"year",
	"month",
	"amount_paid",
	"collected_total",
	"savings",
	"notes",
	"created_at",
	"updated_at",
}

func NewClubClosingRepository(db *sqlx.DB) *ClubClosingRepository {
	return &ClubClosingRepository{db: db, now: time.Now}
}

func (r *ClubClosingRepository) List(ctx context.Context) ([]clubclosing.Closing, error) {
	query, args, err := qb.Select(clubPaymentSelectColumns...).
		From("club_payments").
		OrderBy("year", "month").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select club payments query: %w", err)
	}

	var rows []clubPaymentTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select club payments: %w", err)
	}

	out := make([]clubclosing.Closing, 0, len(rows))
	for _, row := range rows {
		out = append(out, closingFromRow(row))
	}
	return out, nil
}

func (r *ClubClosingRepository) GetByMonth(ctx context.Context, month calendar.Month) (clubclosing.Closing, bool, error) {
	query, args, err := qb.Select(clubPaymentSelectColumns...).
		From("club_payments").
		Where(qb.Eq("year", month.Year), qb.Eq("month", int(month.Month))).
		Limit(1).
		ToSQL()
	if err != nil {
		return clubclosing.Closing{}, false, fmt.Errorf("build select club payment by month query: %w", err)
	}

	var row clubPaymentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return clubclosing.Closing{}, false, nil
		}
		return clubclosing.Closing{}, false, fmt.Errorf("get club payment by month: %w", err)
	}
	return closingFromRow(row), true, nil
}

// Upsert is keyed by month; a refinalized month keeps its id and created_at.
func (r *ClubClosingRepository) Upsert(ctx context.Context, closing clubclosing.Closing) (clubclosing.Closing, error) {
	now := r.now().UTC()
	query, args, err := qb.InsertModel("club_payments", clubPaymentTableModel{
		ID:             closing.ID,
		Year:           closing.Month.Year,
		Month:          int(closing.Month.Month),
		AmountPaid:     closing.AmountPaid,
		CollectedTotal: closing.CollectedTotal,
		Savings:        closing.Savings,
		Notes:          closing.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, `ON CONFLICT (year, month) DO UPDATE SET
	amount_paid = EXCLUDED.amount_paid,
	collected_total = EXCLUDED.collected_total,
	savings = EXCLUDED.savings,
	notes = EXCLUDED.notes,
	updated_at = EXCLUDED.updated_at
RETURNING id, year, month, amount_paid, collected_total, savings, notes, created_at, updated_at`)
	if err != nil {
		return clubclosing.Closing{}, fmt.Errorf("build upsert club payment query: %w", err)
	}

	var row clubPaymentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return clubclosing.Closing{}, fmt.Errorf("upsert club payment: %w", err)
	}
	return closingFromRow(row), nil
}

func closingFromRow(row clubPaymentTableModel) clubclosing.Closing {
	return clubclosing.Closing{
		ID:             row.ID,
		Month:          periodOf(row.Year, row.Month),
		AmountPaid:     row.AmountPaid,
		CollectedTotal: row.CollectedTotal,
		Savings:        row.Savings,
		Notes:          row.Notes,
		CreatedAt:      row.CreatedAt.UTC(),
		UpdatedAt:      row.UpdatedAt.UTC(),
	}
}

package postgres

import (
	"context"
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/outletfc/club-treasury/internal/domain/monthlystatus"
	"github.com/outletfc/club-treasury/internal/domain/player"
	qb "github.com/outletfc/club-treasury/internal/platform/querybuilder"
)

type MonthlyStatusRepository struct {
	db *sqlx.DB
}

var monthlyStatusColumns = []string{"id", "player_id", "year", "month", "status"}

func NewMonthlyStatusRepository(db *sqlx.DB) *MonthlyStatusRepository {
	return &MonthlyStatusRepository{db: db}
}

func (r *MonthlyStatusRepository) List(ctx context.Context) ([]monthlystatus.Entry, error) {
	return r.list(ctx)
}

func (r *MonthlyStatusRepository) ListByPlayer(ctx context.Context, playerID string) ([]monthlystatus.Entry, error) {
	return r.list(ctx, qb.Eq("player_id", playerID))
}

func (r *MonthlyStatusRepository) list(ctx context.Context, conditions ...qb.Condition) ([]monthlystatus.Entry, error) {
	query, args, err := qb.Select(monthlyStatusColumns...).
		From("player_monthly_status").
		Where(conditions...).
		OrderBy("player_id", "year", "month").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select monthly status query: %w", err)
	}

	var rows []monthlyStatusTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select monthly status: %w", err)
	}

	out := make([]monthlystatus.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, monthlyStatusFromRow(row))
	}
	return out, nil
}

func (r *MonthlyStatusRepository) Upsert(ctx context.Context, entry monthlystatus.Entry) (monthlystatus.Entry, error) {
	query, args, err := qb.InsertModel("player_monthly_status", monthlyStatusTableModel{
		ID:       entry.ID,
		PlayerID: entry.PlayerID,
		Year:     entry.Month.Year,
		Month:    int(entry.Month.Month),
		Status:   string(entry.Status),
	}, `ON CONFLICT (player_id, year, month) DO UPDATE SET status = EXCLUDED.status, updated_at = NOW()
RETURNING id, player_id, year, month, status`)
	if err != nil {
		return monthlystatus.Entry{}, fmt.Errorf("build upsert monthly status query: %w", err)
	}

	var row monthlyStatusTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isConstraintViolation(err) {
			return monthlystatus.Entry{}, crerr.Wrap(monthlystatus.ErrValidation, err.Error())
		}
		return monthlystatus.Entry{}, fmt.Errorf("upsert monthly status: %w", err)
	}
	return monthlyStatusFromRow(row), nil
}

func monthlyStatusFromRow(row monthlyStatusTableModel) monthlystatus.Entry {
	return monthlystatus.Entry{
		ID:       row.ID,
		PlayerID: row.PlayerID,
		Month:    periodOf(row.Year, row.Month),
		Status:   player.Status(row.Status),
	}
}

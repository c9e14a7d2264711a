package postgres

import (
	"context"
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/outletfc/club-treasury/internal/domain/calendar"
	"github.com/outletfc/club-treasury/internal/domain/fee"
	qb "github.com/outletfc/club-treasury/internal/platform/querybuilder"
)

type FeeRepository struct {
	db *sqlx.DB
}

func NewFeeRepository(db *sqlx.DB) *FeeRepository {
	return &FeeRepository{db: db}
}

func (r *FeeRepository) List(ctx context.Context) ([]fee.Entry, error) {
	query, args, err := qb.Select("id", "category", "year", "month", "amount").
		From("fees_config").
		OrderBy("year", "month", "category").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fees query: %w", err)
	}

	var rows []feeTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select fees: %w", err)
	}

	out := make([]fee.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, fee.Entry{
			ID:       row.ID,
			Category: fee.Category(row.Category),
			Month:    periodOf(row.Year, row.Month),
			Amount:   row.Amount,
		})
	}
	return out, nil
}

// Upsert writes all entries in one statement; existing rows keep their id.
func (r *FeeRepository) Upsert(ctx context.Context, entries []fee.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	models := make([]feeTableModel, 0, len(entries))
	for _, e := range entries {
		models = append(models, feeTableModel{
			ID:       e.ID,
			Category: string(e.Category),
			Year:     e.Month.Year,
			Month:    int(e.Month.Month),
			Amount:   e.Amount,
		})
	}

	query, args, err := qb.InsertModels("fees_config", models,
		"ON CONFLICT (category, year, month) DO UPDATE SET amount = EXCLUDED.amount, updated_at = NOW()")
	if err != nil {
		return fmt.Errorf("build upsert fees query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isConstraintViolation(err) {
			return crerr.Wrap(fee.ErrValidation, err.Error())
		}
		return fmt.Errorf("upsert fees: %w", err)
	}
	return nil
}

func (r *FeeRepository) GetSetting(ctx context.Context, month calendar.Month) (fee.MonthlySetting, bool, error) {
	query, args, err := qb.Select("year", "month", "is_group_payment").
		From("monthly_settings").
		Where(qb.Eq("year", month.Year), qb.Eq("month", int(month.Month))).
		Limit(1).
		ToSQL()
	if err != nil {
		return fee.MonthlySetting{}, false, fmt.Errorf("build select monthly setting query: %w", err)
	}

	var row monthlySettingTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fee.MonthlySetting{}, false, nil
		}
		return fee.MonthlySetting{}, false, fmt.Errorf("get monthly setting: %w", err)
	}

	return fee.MonthlySetting{
		Month:          periodOf(row.Year, row.Month),
		IsGroupPayment: row.IsGroupPayment,
	}, true, nil
}

func (r *FeeRepository) UpsertSetting(ctx context.Context, setting fee.MonthlySetting) error {
	query, args, err := qb.InsertModel("monthly_settings", monthlySettingTableModel{
		Year:           setting.Month.Year,
		Month:          int(setting.Month.Month),
		IsGroupPayment: setting.IsGroupPayment,
	}, "ON CONFLICT (year, month) DO UPDATE SET is_group_payment = EXCLUDED.is_group_payment, updated_at = NOW()")
	if err != nil {
		return fmt.Errorf("build upsert monthly setting query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert monthly setting: %w", err)
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/outletfc/club-treasury/internal/domain/payment"
	qb "github.com/outletfc/club-treasury/internal/platform/querybuilder"
)

type PaymentRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

var paymentSelectColumns = []string{
	"id",
	"player_id",
	"year",
	"month",
	"amount_total",
	"payment_date",
	"is_financed_by_team",
	"reimbursed_to_team",
	"is_pardoned",
	"pardon_reason",
	"created_at",
	"updated_at",
}

var paymentReturning = "RETURNING " + strings.Join(paymentSelectColumns, ", ")

// An edit keeps created_at and never clears reimbursed or pardoned.
const paymentUpsertConflict = `ON CONFLICT (id) DO UPDATE SET
	player_id = EXCLUDED.player_id,
	year = EXCLUDED.year,
	month = EXCLUDED.month,
	amount_total = EXCLUDED.amount_total,
	payment_date = EXCLUDED.payment_date,
	is_financed_by_team = EXCLUDED.is_financed_by_team,
	reimbursed_to_team = payments.reimbursed_to_team OR EXCLUDED.reimbursed_to_team,
	is_pardoned = payments.is_pardoned OR EXCLUDED.is_pardoned,
	pardon_reason = CASE WHEN payments.is_pardoned AND NOT EXCLUDED.is_pardoned THEN payments.pardon_reason ELSE EXCLUDED.pardon_reason END,
	updated_at = EXCLUDED.updated_at
`

func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db, now: time.Now}
}

func (r *PaymentRepository) List(ctx context.Context, filter payment.Filter) ([]payment.Payment, error) {
	query, args, err := qb.Select(paymentSelectColumns...).
		From("payments").
		Where(paymentFilterConditions(filter)...).
		OrderBy("payment_date DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select payments query: %w", err)
	}

	var rows []paymentTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select payments: %w", err)
	}

	out := make([]payment.Payment, 0, len(rows))
	for _, row := range rows {
		out = append(out, paymentFromRow(row))
	}
	return out, nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, paymentID string) (payment.Payment, bool, error) {
	query, args, err := qb.Select(paymentSelectColumns...).
		From("payments").
		Where(qb.Eq("id", paymentID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return payment.Payment{}, false, fmt.Errorf("build select payment by id query: %w", err)
	}

	var row paymentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return payment.Payment{}, false, nil
		}
		return payment.Payment{}, false, fmt.Errorf("get payment by id: %w", err)
	}
	return paymentFromRow(row), true, nil
}

// Upsert keeps created_at on edits, and an edit never clears an existing pardon.
func (r *PaymentRepository) Upsert(ctx context.Context, p payment.Payment) (payment.Payment, error) {
	if err := p.Validate(); err != nil {
		return payment.Payment{}, err
	}

	now := r.now().UTC()
	if p.PaymentDate.IsZero() {
		p.PaymentDate = now
	}
	model := paymentTableModel{
		ID:               p.ID,
		PlayerID:         p.PlayerID,
		Year:             p.Month.Year,
		Month:            int(p.Month.Month),
		AmountTotal:      p.AmountTotal,
		PaymentDate:      p.PaymentDate,
		IsFinancedByTeam: p.IsFinancedByTeam,
		ReimbursedToTeam: p.ReimbursedToTeam,
		IsPardoned:       p.IsPardoned,
		PardonReason:     p.PardonReason,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	query, args, err := qb.InsertModel("payments", model, paymentUpsertConflict+paymentReturning)
	if err != nil {
		return payment.Payment{}, fmt.Errorf("build upsert payment query: %w", err)
	}

	var row paymentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isConstraintViolation(err) {
			return payment.Payment{}, crerr.Wrap(payment.ErrValidation, err.Error())
		}
		return payment.Payment{}, fmt.Errorf("upsert payment: %w", err)
	}
	return paymentFromRow(row), nil
}

// MarkReimbursed is idempotent; updated_at only moves on the first call.
func (r *PaymentRepository) MarkReimbursed(ctx context.Context, paymentID string) (payment.Payment, error) {
	query, args, err := qb.Update("payments").
		SetExpr("updated_at", "CASE WHEN reimbursed_to_team THEN updated_at ELSE NOW() END").
		Set("reimbursed_to_team", true).
		Where(qb.Eq("id", paymentID)).
		Suffix(paymentReturning).
		ToSQL()
	if err != nil {
		return payment.Payment{}, fmt.Errorf("build mark reimbursed query: %w", err)
	}
	return r.updateOne(ctx, paymentID, "mark payment reimbursed", query, args)
}

func (r *PaymentRepository) SetPardoned(ctx context.Context, paymentID, reason string) (payment.Payment, error) {
	if strings.TrimSpace(reason) == "" {
		reason = payment.DefaultPardonReason
	}

	query, args, err := qb.Update("payments").
		SetExpr("pardon_reason", "CASE WHEN is_pardoned THEN pardon_reason ELSE ? END", reason).
		SetExpr("updated_at", "CASE WHEN is_pardoned THEN updated_at ELSE NOW() END").
		Set("is_pardoned", true).
		Where(qb.Eq("id", paymentID)).
		Suffix(paymentReturning).
		ToSQL()
	if err != nil {
		return payment.Payment{}, fmt.Errorf("build pardon payment query: %w", err)
	}
	return r.updateOne(ctx, paymentID, "pardon payment", query, args)
}

func (r *PaymentRepository) updateOne(ctx context.Context, paymentID, op, query string, args []any) (payment.Payment, error) {
	var row paymentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return payment.Payment{}, crerr.Wrapf(payment.ErrNotFound, "id=%s", paymentID)
		}
		return payment.Payment{}, fmt.Errorf("%s: %w", op, err)
	}
	return paymentFromRow(row), nil
}

func paymentFilterConditions(filter payment.Filter) []qb.Condition {
	conditions := []qb.Condition{
		qb.EqPtr("player_id", filter.PlayerID),
		qb.EqPtr("year", filter.Year),
		qb.EqPtr("is_financed_by_team", filter.Financed),
		qb.EqPtr("reimbursed_to_team", filter.Reimbursed),
	}
	if filter.Month != nil {
		conditions = append(conditions,
			qb.Eq("year", filter.Month.Year),
			qb.Eq("month", int(filter.Month.Month)),
		)
	}
	return conditions
}

func paymentFromRow(row paymentTableModel) payment.Payment {
	return payment.Payment{
		ID:               row.ID,
		PlayerID:         row.PlayerID,
		Month:            periodOf(row.Year, row.Month),
		AmountTotal:      row.AmountTotal,
		PaymentDate:      row.PaymentDate.UTC(),
		IsFinancedByTeam: row.IsFinancedByTeam,
		ReimbursedToTeam: row.ReimbursedToTeam,
		IsPardoned:       row.IsPardoned,
		PardonReason:     row.PardonReason,
		CreatedAt:        row.CreatedAt.UTC(),
		UpdatedAt:        row.UpdatedAt.UTC(),
	}
}

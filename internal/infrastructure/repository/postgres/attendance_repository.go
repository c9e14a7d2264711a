package postgres

import (
	"context"
	"fmt"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/outletfc/club-treasury/internal/domain/attendance"
	qb "github.com/outletfc/club-treasury/internal/platform/querybuilder"
)

type AttendanceRepository struct {
	db *sqlx.DB
}

var attendanceSelectColumns = []string{
	"a.id",
	"a.match_id",
	"a.player_id",
	"a.confirmation",
	"a.attendance_type",
	"a.forgot_jerseys",
	"a.washed_jerseys",
	"a.stays_for_social",
	"a.is_pardoned",
	"a.pardon_reason",
	"m.match_date",
	"m.opponent",
}

const attendanceMatchJoin = "JOIN matches m ON m.id = a.match_id"

func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

func (r *AttendanceRepository) List(ctx context.Context) ([]attendance.Record, error) {
	query, args, err := qb.Select(attendanceSelectColumns...).
		From("attendance a").
		Join(attendanceMatchJoin).
		OrderBy("m.match_date", "a.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select attendance query: %w", err)
	}

	var rows []attendanceRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select attendance: %w", err)
	}

	out := make([]attendance.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, attendanceFromRow(row))
	}
	return out, nil
}

func (r *AttendanceRepository) GetByID(ctx context.Context, recordID string) (attendance.Record, bool, error) {
	record, err := r.getByID(ctx, r.db, recordID)
	if err != nil {
		if isNotFound(err) {
			return attendance.Record{}, false, nil
		}
		return attendance.Record{}, false, err
	}
	return record, true, nil
}

func (r *AttendanceRepository) getByID(ctx context.Context, q sqlx.QueryerContext, recordID string) (attendance.Record, error) {
	query, args, err := qb.Select(attendanceSelectColumns...).
		From("attendance a").
		Join(attendanceMatchJoin).
		Where(qb.Eq("a.id", recordID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return attendance.Record{}, fmt.Errorf("build select attendance by id query: %w", err)
	}

	var row attendanceRow
	if err := sqlx.GetContext(ctx, q, &row, query, args...); err != nil {
		return attendance.Record{}, fmt.Errorf("get attendance by id: %w", err)
	}
	return attendanceFromRow(row), nil
}

// Upsert writes the match and the (match, player) row in one transaction.
// An existing row keeps its id and pardon.
func (r *AttendanceRepository) Upsert(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	if err := record.Validate(); err != nil {
		return attendance.Record{}, err
	}
	if record.Confirmation == "" {
		record.Confirmation = attendance.ConfirmationPending
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("begin upsert attendance tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	matchQuery, matchArgs, err := qb.InsertModel("matches", matchTableModel{
		ID:        record.MatchID,
		MatchDate: record.MatchDate.UTC(),
		Opponent:  strings.TrimSpace(record.Opponent),
	}, "ON CONFLICT (id) DO UPDATE SET match_date = EXCLUDED.match_date, opponent = COALESCE(NULLIF(EXCLUDED.opponent, ''), matches.opponent)")
	if err != nil {
		return attendance.Record{}, fmt.Errorf("build upsert match query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, matchQuery, matchArgs...); err != nil {
		return attendance.Record{}, fmt.Errorf("upsert match: %w", err)
	}

	query, args, err := qb.InsertModel("attendance", attendanceTableModel{
		ID:             record.ID,
		MatchID:        record.MatchID,
		PlayerID:       record.PlayerID,
		Confirmation:   string(record.Confirmation),
		AttendanceType: emptyToNullString(string(record.Type)),
		ForgotJerseys:  record.ForgotJerseys,
		WashedJerseys:  record.WashedJerseys,
		StaysForSocial: record.StaysForSocial,
	}, `ON CONFLICT (match_id, player_id) DO UPDATE SET
	confirmation = EXCLUDED.confirmation,
	attendance_type = EXCLUDED.attendance_type,
	forgot_jerseys = EXCLUDED.forgot_jerseys,
	washed_jerseys = EXCLUDED.washed_jerseys,
	stays_for_social = EXCLUDED.stays_for_social,
	updated_at = NOW()
RETURNING id`)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("build upsert attendance query: %w", err)
	}

	var savedID string
	if err := tx.GetContext(ctx, &savedID, query, args...); err != nil {
		return attendance.Record{}, fmt.Errorf("upsert attendance: %w", err)
	}

	saved, err := r.getByID(ctx, tx, savedID)
	if err != nil {
		return attendance.Record{}, err
	}
	if err := tx.Commit(); err != nil {
		return attendance.Record{}, fmt.Errorf("commit upsert attendance tx: %w", err)
	}
	return saved, nil
}

func (r *AttendanceRepository) SetPardoned(ctx context.Context, recordID, reason string) (attendance.Record, error) {
	if strings.TrimSpace(reason) == "" {
		reason = attendance.DefaultPardonReason
	}

	query, args, err := qb.Update("attendance").
		SetExpr("pardon_reason", "CASE WHEN is_pardoned THEN pardon_reason ELSE ? END", reason).
		SetExpr("updated_at", "CASE WHEN is_pardoned THEN updated_at ELSE NOW() END").
		Set("is_pardoned", true).
		Where(qb.Eq("id", recordID)).
		ToSQL()
	if err != nil {
		return attendance.Record{}, fmt.Errorf("build pardon attendance query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("pardon attendance: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return attendance.Record{}, crerr.Wrapf(attendance.ErrNotFound, "id=%s", recordID)
	}

	record, found, err := r.GetByID(ctx, recordID)
	if err != nil {
		return attendance.Record{}, err
	}
	if !found {
		return attendance.Record{}, crerr.Wrapf(attendance.ErrNotFound, "id=%s", recordID)
	}
	return record, nil
}

func attendanceFromRow(row attendanceRow) attendance.Record {
	return attendance.Record{
		ID:             row.ID,
		MatchID:        row.MatchID,
		MatchDate:      row.MatchDate.UTC(),
		Opponent:       row.Opponent,
		PlayerID:       row.PlayerID,
		Confirmation:   attendance.Confirmation(row.Confirmation),
		Type:           attendance.Type(row.AttendanceType.String),
		ForgotJerseys:  row.ForgotJerseys,
		WashedJerseys:  row.WashedJerseys,
		StaysForSocial: row.StaysForSocial,
		IsPardoned:     row.IsPardoned,
		PardonReason:   row.PardonReason,
	}
}

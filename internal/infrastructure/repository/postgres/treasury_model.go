package postgres

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

type feeTableModel struct {
	ID       string          `db:"id"`
	Category string          `db:"category"`
	Year     int             `db:"year"`
	Month    int             `db:"month"`
	Amount   decimal.Decimal `db:"amount"`
}

type monthlySettingTableModel struct {
	Year           int  `db:"year"`
	Month          int  `db:"month"`
	IsGroupPayment bool `db:"is_group_payment"`
}

type monthlyStatusTableModel struct {
	ID       string `db:"id"`
	PlayerID string `db:"player_id"`
	Year     int    `db:"year"`
	Month    int    `db:"month"`
	Status   string `db:"status"`
}

type paymentTableModel struct {
	ID               string          `db:"id"`
	PlayerID         string          `db:"player_id"`
	Year             int             `db:"year"`
	Month            int             `db:"month"`
	AmountTotal      decimal.Decimal `db:"amount_total"`
	PaymentDate      time.Time       `db:"payment_date"`
	IsFinancedByTeam bool            `db:"is_financed_by_team"`
	ReimbursedToTeam bool            `db:"reimbursed_to_team"`
	IsPardoned       bool            `db:"is_pardoned"`
	PardonReason     string          `db:"pardon_reason"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at"`
}

type clubPaymentTableModel struct {
	ID             string          `db:"id"`
	Year           int             `db:"year"`
	Month          int             `db:"month"`
	AmountPaid     decimal.Decimal `db:"amount_paid"`
	CollectedTotal decimal.Decimal `db:"collected_total"`
	Savings        decimal.Decimal `db:"savings"`
	Notes          string          `db:"notes"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

type matchTableModel struct {
	ID        string    `db:"id"`
	MatchDate time.Time `db:"match_date"`
	Opponent  string    `db:"opponent"`
}

type attendanceTableModel struct {
	ID             string         `db:"id"`
	MatchID        string         `db:"match_id"`
	PlayerID       string         `db:"player_id"`
	Confirmation   string         `db:"confirmation"`
	AttendanceType sql.NullString `db:"attendance_type"`
	ForgotJerseys  bool           `db:"forgot_jerseys"`
	WashedJerseys  bool           `db:"washed_jerseys"`
	StaysForSocial bool           `db:"stays_for_social"`
	IsPardoned     bool           `db:"is_pardoned"`
	PardonReason   string         `db:"pardon_reason"`
}

// attendanceRow is attendance joined with its match.
type attendanceRow struct {
	attendanceTableModel
	MatchDate time.Time `db:"match_date"`
	Opponent  string    `db:"opponent"`
}

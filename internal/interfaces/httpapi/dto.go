package httpapi

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/outletfc/club-treasury/internal/domain/attendance"
	"github.com/outletfc/club-treasury/internal/domain/clubclosing"
	"github.com/outletfc/club-treasury/internal/domain/fee"
	"github.com/outletfc/club-treasury/internal/domain/monthlystatus"
	"github.com/outletfc/club-treasury/internal/domain/payment"
	"github.com/outletfc/club-treasury/internal/domain/ranking"
	"github.com/outletfc/club-treasury/internal/domain/treasury"
	"github.com/outletfc/club-treasury/internal/usecase"
)

type recordPaymentRequest struct {
	ID               string          `json:"id" validate:"omitempty,max=64"`
	PlayerID         string          `json:"player_id" validate:"required"`
	Month            string          `json:"month" validate:"required"`
	AmountTotal      decimal.Decimal `json:"amount_total"`
	PaymentDate      *time.Time      `json:"payment_date"`
	IsFinancedByTeam bool            `json:"is_financed_by_team"`
	ReimbursedToTeam bool            `json:"reimbursed_to_team"`
}

type finalizeClosingRequest struct {
	AmountPaid decimal.Decimal `json:"amount_paid"`
	Notes      string          `json:"notes" validate:"max=500"`
}

type upsertFeesRequest struct {
	Amounts        map[string]decimal.Decimal `json:"amounts" validate:"required,min=1"`
	IsGroupPayment bool                       `json:"is_group_payment"`
}

type setMonthlyStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=activo semiactivo pasivo"`
}

type pardonRequest struct {
	Reason string `json:"reason" validate:"max=200"`
}

type recordAttendanceRequest struct {
	MatchDate      time.Time `json:"match_date" validate:"required"`
	Opponent       string    `json:"opponent" validate:"max=100"`
	Confirmation   string    `json:"confirmation" validate:"omitempty,oneof=pending confirmed declined"`
	AttendanceType string    `json:"attendance_type" validate:"omitempty,oneof=present late_1st_half late_2nd_half absent"`
	ForgotJerseys  bool      `json:"forgot_jerseys"`
	WashedJerseys  bool      `json:"washed_jerseys"`
	StaysForSocial bool      `json:"stays_for_social"`
}

type monthStatusDTO struct {
	Month        string          `json:"month"`
	Category     string          `json:"category"`
	Expected     decimal.Decimal `json:"expected"`
	Paid         decimal.Decimal `json:"paid"`
	Status       string          `json:"status"`
	IsFinanced   bool            `json:"is_financed"`
	FinancedDebt decimal.Decimal `json:"financed_debt"`
}

type accountDTO struct {
	PlayerID      string           `json:"player_id"`
	Name          string           `json:"name"`
	Role          string           `json:"role"`
	Status        string           `json:"status"`
	TotalExpected decimal.Decimal  `json:"total_expected"`
	TotalPaid     decimal.Decimal  `json:"total_paid"`
	TotalDebt     decimal.Decimal  `json:"total_debt"`
	FinancedDebt  decimal.Decimal  `json:"financed_debt"`
	Truncated     bool             `json:"truncated,omitempty"`
	Months        []monthStatusDTO `json:"months"`
}

type paymentDTO struct {
	ID               string          `json:"id"`
	PlayerID         string          `json:"player_id"`
	Month            string          `json:"month"`
	AmountTotal      decimal.Decimal `json:"amount_total"`
	PaymentDate      time.Time       `json:"payment_date"`
	IsFinancedByTeam bool            `json:"is_financed_by_team"`
	ReimbursedToTeam bool            `json:"reimbursed_to_team"`
	IsPardoned       bool            `json:"is_pardoned"`
	PardonReason     string          `json:"pardon_reason,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

type monthlyStatsDTO struct {
	Month            string          `json:"month"`
	TotalCollected   decimal.Decimal `json:"total_collected"`
	TotalFinanced    decimal.Decimal `json:"total_financed"`
	PaidCount        int             `json:"paid_count"`
	ActiveFee        decimal.Decimal `json:"active_fee"`
	SuggestedClubFee decimal.Decimal `json:"suggested_club_fee"`
	AmountPaidToClub decimal.Decimal `json:"amount_paid_to_club"`
	HasClosed        bool            `json:"has_closed"`
	Savings          decimal.Decimal `json:"savings"`
	Notes            string          `json:"notes,omitempty"`
}

type closingDTO struct {
	ID             string          `json:"id"`
	Month          string          `json:"month"`
	AmountPaid     decimal.Decimal `json:"amount_paid"`
	CollectedTotal decimal.Decimal `json:"collected_total"`
	Savings        decimal.Decimal `json:"savings"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

type feeDTO struct {
	Category string          `json:"category"`
	Month    string          `json:"month"`
	Amount   decimal.Decimal `json:"amount"`
}

type overviewDTO struct {
	Month               string          `json:"month"`
	TotalDebt           decimal.Decimal `json:"total_debt"`
	OutstandingFinanced decimal.Decimal `json:"outstanding_financed"`
	IsGroupPayment      bool            `json:"is_group_payment"`
	MonthlySavings      decimal.Decimal `json:"monthly_savings"`
	Debtors             int             `json:"debtors"`
}

type monthlyStatusEntryDTO struct {
	PlayerID string `json:"player_id"`
	Month    string `json:"month"`
	Status   string `json:"status"`
}

type breakdownDTO struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
}

type rankingEntryDTO struct {
	PlayerID       string                  `json:"player_id"`
	Name           string                  `json:"name"`
	AvatarURL      string                  `json:"avatar_url,omitempty"`
	Role           string                  `json:"role"`
	TotalPoints    int                     `json:"total_points"`
	PositivePoints int                     `json:"positive_points"`
	NegativePoints int                     `json:"negative_points"`
	InShame        bool                    `json:"in_shame"`
	Breakdown      map[string]breakdownDTO `json:"breakdown"`
}

type rankingBoardDTO struct {
	Entries     []rankingEntryDTO `json:"entries"`
	WallOfShame []rankingEntryDTO `json:"wall_of_shame"`
	ShameAlert  bool              `json:"shame_alert"`
}

type rankingEventDTO struct {
	ID          string    `json:"id"`
	Category    string    `json:"category"`
	Points      int       `json:"points"`
	Description string    `json:"description"`
	EventDate   time.Time `json:"event_date"`
	IsPardoned  bool      `json:"is_pardoned"`
}

type attendanceDTO struct {
	ID             string    `json:"id"`
	MatchID        string    `json:"match_id"`
	MatchDate      time.Time `json:"match_date"`
	Opponent       string    `json:"opponent,omitempty"`
	PlayerID       string    `json:"player_id"`
	Confirmation   string    `json:"confirmation"`
	AttendanceType string    `json:"attendance_type,omitempty"`
	ForgotJerseys  bool      `json:"forgot_jerseys"`
	WashedJerseys  bool      `json:"washed_jerseys"`
	StaysForSocial bool      `json:"stays_for_social"`
	IsPardoned     bool      `json:"is_pardoned"`
}

// accountToDTO lists months newest first, the order the treasury screen shows.
func accountToDTO(v usecase.PlayerAccount) accountDTO {
	months := v.Account.LatestFirst()
	items := make([]monthStatusDTO, 0, len(months))
	for _, m := range months {
		items = append(items, monthStatusDTO{
			Month:        m.Month.String(),
			Category:     string(m.Category),
			Expected:     m.Expected,
			Paid:         m.Paid,
			Status:       string(m.Status),
			IsFinanced:   m.IsFinanced,
			FinancedDebt: m.FinancedDebt,
		})
	}

	return accountDTO{
		PlayerID:      v.Player.ID,
		Name:          v.Player.DisplayName(),
		Role:          string(v.Player.Role),
		Status:        string(v.Player.Status),
		TotalExpected: v.Account.TotalExpected,
		TotalPaid:     v.Account.TotalPaid,
		TotalDebt:     v.Account.TotalDebt,
		FinancedDebt:  v.Account.FinancedDebt,
		Truncated:     v.Account.Truncated,
		Months:        items,
	}
}

func paymentToDTO(p payment.Payment) paymentDTO {
	return paymentDTO{
		ID:               p.ID,
		PlayerID:         p.PlayerID,
		Month:            p.Month.String(),
		AmountTotal:      p.AmountTotal,
		PaymentDate:      p.PaymentDate,
		IsFinancedByTeam: p.IsFinancedByTeam,
		ReimbursedToTeam: p.ReimbursedToTeam,
		IsPardoned:       p.IsPardoned,
		PardonReason:     p.PardonReason,
		CreatedAt:        p.CreatedAt,
	}
}

func monthlyStatsToDTO(v treasury.MonthlyClubStats) monthlyStatsDTO {
	return monthlyStatsDTO{
		Month:            v.Month.String(),
		TotalCollected:   v.TotalCollected,
		TotalFinanced:    v.TotalFinanced,
		PaidCount:        v.PaidCount,
		ActiveFee:        v.ActiveFee,
		SuggestedClubFee: v.SuggestedClubFee,
		AmountPaidToClub: v.AmountPaidToClub,
		HasClosed:        v.HasClosed,
		Savings:          v.Savings,
		Notes:            v.Notes,
	}
}

func closingToDTO(v clubclosing.Closing) closingDTO {
	return closingDTO{
		ID:             v.ID,
		Month:          v.Month.String(),
		AmountPaid:     v.AmountPaid,
		CollectedTotal: v.CollectedTotal,
		Savings:        v.Savings,
		Notes:          v.Notes,
		CreatedAt:      v.CreatedAt,
	}
}

func feesToDTO(entries []fee.Entry) []feeDTO {
	out := make([]feeDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, feeDTO{Category: string(e.Category), Month: e.Month.String(), Amount: e.Amount})
	}
	return out
}

func overviewToDTO(v treasury.Overview) overviewDTO {
	return overviewDTO{
		Month:               v.Month.String(),
		TotalDebt:           v.TotalDebt,
		OutstandingFinanced: v.OutstandingFinanced,
		IsGroupPayment:      v.IsGroupPayment,
		MonthlySavings:      v.MonthlySavings,
		Debtors:             v.Debtors,
	}
}

func monthlyStatusToDTO(v monthlystatus.Entry) monthlyStatusEntryDTO {
	return monthlyStatusEntryDTO{PlayerID: v.PlayerID, Month: v.Month.String(), Status: string(v.Status)}
}

func rankingEntryToDTO(v ranking.Entry) rankingEntryDTO {
	breakdown := make(map[string]breakdownDTO, len(v.Breakdown))
	for category, b := range v.Breakdown {
		breakdown[string(category)] = breakdownDTO{Positive: b.Positive, Negative: b.Negative}
	}
	return rankingEntryDTO{
		PlayerID:       v.PlayerID,
		Name:           v.Name,
		AvatarURL:      v.AvatarURL,
		Role:           string(v.Role),
		TotalPoints:    v.TotalPoints,
		PositivePoints: v.PositivePoints,
		NegativePoints: v.NegativePoints,
		InShame:        v.InShame(),
		Breakdown:      breakdown,
	}
}

func rankingEntriesToDTO(entries []ranking.Entry) []rankingEntryDTO {
	out := make([]rankingEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, rankingEntryToDTO(e))
	}
	return out
}

func rankingEventToDTO(v ranking.Event) rankingEventDTO {
	return rankingEventDTO{
		ID:          v.ID,
		Category:    string(v.Category),
		Points:      v.Points,
		Description: v.Description,
		EventDate:   v.EventDate,
		IsPardoned:  v.IsPardoned,
	}
}

func attendanceToDTO(v attendance.Record) attendanceDTO {
	return attendanceDTO{
		ID:             v.ID,
		MatchID:        v.MatchID,
		MatchDate:      v.MatchDate,
		Opponent:       v.Opponent,
		PlayerID:       v.PlayerID,
		Confirmation:   string(v.Confirmation),
		AttendanceType: string(v.Type),
		ForgotJerseys:  v.ForgotJerseys,
		WashedJerseys:  v.WashedJerseys,
		StaysForSocial: v.StaysForSocial,
		IsPardoned:     v.IsPardoned,
	}
}

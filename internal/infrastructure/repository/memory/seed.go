package memory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/outletfc/club-treasury/internal/domain/attendance"
	"github.com/outletfc/club-treasury/internal/domain/calendar"
	"github.com/outletfc/club-treasury/internal/domain/fee"
	"github.com/outletfc/club-treasury/internal/domain/payment"
	"github.com/outletfc/club-treasury/internal/domain/player"
)

const (
	PlayerIDDirector = "player-dt"
	PlayerIDCaptain  = "player-captain"
	PlayerIDWinger   = "player-winger"
	PlayerIDKeeper   = "player-keeper"
)

// SeedMonth is the first month the development fixtures bill.
var SeedMonth = calendar.Month{Year: 2025, Month: time.January}

func jersey(n int) *int {
	return &n
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: PlayerIDDirector, FullName: "Martín Ferreyra", Nickname: "Profe", Role: player.RoleDirector, Status: player.StatusActive},
		{ID: PlayerIDCaptain, FullName: "Lucas Benítez", Nickname: "Capi", JerseyNumber: jersey(5), Role: player.RolePlayer, Status: player.StatusActive},
		{ID: PlayerIDWinger, FullName: "Tomás Arias", JerseyNumber: jersey(11), Role: player.RolePlayer, Status: player.StatusSemiActive},
		{ID: PlayerIDKeeper, FullName: "Diego Sosa", Nickname: "Pulpo", JerseyNumber: jersey(1), Role: player.RoleAdmin, Status: player.StatusPassive},
	}
}

func SeedFees() []fee.Entry {
	amounts := map[fee.Category]int64{
		fee.CategoryActive:     5000,
		fee.CategorySemiActive: 3000,
		fee.CategoryPassive:    1500,
		fee.CategoryDirector:   1000,
	}

	months := calendar.Between(SeedMonth, calendar.Month{Year: 2025, Month: time.March}, 3)
	out := make([]fee.Entry, 0, len(months)*len(fee.AllCategories))
	for _, m := range months {
		for _, category := range fee.AllCategories {
			out = append(out, fee.Entry{Category: category, Month: m, Amount: decimal.NewFromInt(amounts[category])})
		}
	}
	return out
}

func SeedPayments() []payment.Payment {
	feb := SeedMonth.Next()
	return []payment.Payment{
		{ID: "seed-pay-1", PlayerID: PlayerIDCaptain, Month: SeedMonth, AmountTotal: decimal.NewFromInt(5000), PaymentDate: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)},
		{ID: "seed-pay-2", PlayerID: PlayerIDCaptain, Month: feb, AmountTotal: decimal.NewFromInt(5000), PaymentDate: time.Date(2025, 2, 4, 0, 0, 0, 0, time.UTC), IsFinancedByTeam: true},
		{ID: "seed-pay-3", PlayerID: PlayerIDWinger, Month: SeedMonth, AmountTotal: decimal.NewFromInt(3000), PaymentDate: time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC)},
		{ID: "seed-pay-4", PlayerID: PlayerIDDirector, Month: SeedMonth, AmountTotal: decimal.NewFromInt(6000), PaymentDate: time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)},
	}
}

func SeedAttendance() []attendance.Record {
	first := time.Date(2025, 1, 12, 19, 0, 0, 0, time.UTC)
	return []attendance.Record{
		{ID: "seed-att-1", MatchID: "seed-match-1", MatchDate: first, Opponent: "Deportivo Sur", PlayerID: PlayerIDCaptain, Confirmation: attendance.ConfirmationConfirmed, Type: attendance.TypePresent, WashedJerseys: true},
		{ID: "seed-att-2", MatchID: "seed-match-1", MatchDate: first, Opponent: "Deportivo Sur", PlayerID: PlayerIDWinger, Confirmation: attendance.ConfirmationConfirmed, Type: attendance.TypeLateFirst},
		{ID: "seed-att-3", MatchID: "seed-match-1", MatchDate: first, Opponent: "Deportivo Sur", PlayerID: PlayerIDKeeper, Confirmation: attendance.ConfirmationDeclined, Type: attendance.TypeAbsent, ForgotJerseys: true},
	}
}

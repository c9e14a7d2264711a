package ranking

import (
	"fmt"
	"time"

	"github.com/outletfc/club-treasury/internal/domain/attendance"
	"github.com/outletfc/club-treasury/internal/domain/calendar"
	"github.com/outletfc/club-treasury/internal/domain/payment"
	"github.com/outletfc/club-treasury/internal/domain/treasury"
)

const (
	kindWashedJerseys = "washed_jerseys"
	kindForgotJerseys = "forgot_jerseys"
	kindFinance       = "finance"
)

// Rules maps stored facts to points.
type Rules struct {
	Attendance    map[attendance.Type]int
	WashedJerseys int
	ForgotJerseys int
	MonthPaid     int
	MonthFinanced int
	MonthDebt     int
}

func DefaultRules() Rules {
	return Rules{
		Attendance: map[attendance.Type]int{
			attendance.TypePresent:    1,
			attendance.TypeLateFirst:  -1,
			attendance.TypeLateSecond: -2,
			attendance.TypeAbsent:     -3,
		},
		WashedJerseys: 2,
		ForgotJerseys: -2,
		MonthPaid:     1,
		MonthFinanced: -1,
		MonthDebt:     -3,
	}
}

// AttendanceEvents derives attendance and jersey-duty events from one record.
func (r Rules) AttendanceEvents(rec attendance.Record) []Event {
	out := make([]Event, 0, 3)
	if points, ok := r.Attendance[rec.Type]; ok && points != 0 {
		out = append(out, r.attendanceEvent(rec, string(rec.Type), CategoryAttendance, points, attendanceLabel(rec.Type)))
	}
	if rec.WashedJerseys && r.WashedJerseys != 0 {
		out = append(out, r.attendanceEvent(rec, kindWashedJerseys, CategoryLogistics, r.WashedJerseys, "Lavó las camisetas"))
	}
	if rec.ForgotJerseys && r.ForgotJerseys != 0 {
		out = append(out, r.attendanceEvent(rec, kindForgotJerseys, CategoryLogistics, r.ForgotJerseys, "Olvidó las camisetas"))
	}
	return out
}

func (r Rules) attendanceEvent(rec attendance.Record, kind string, category Category, points int, description string) Event {
	if rec.Opponent != "" {
		description = fmt.Sprintf("%s (vs %s)", description, rec.Opponent)
	}
	return Event{
		ID:          EventID(SourceAttendance, rec.ID, kind),
		PlayerID:    rec.PlayerID,
		Source:      SourceAttendance,
		SourceID:    rec.ID,
		Category:    category,
		Points:      points,
		Description: description,
		EventDate:   rec.MatchDate,
		IsPardoned:  rec.IsPardoned && points < 0,
	}
}

// FinanceEvents scores each billed month of a reconciled account. Debt only
// scores once the month is over; months still open are not penalized.
func (r Rules) FinanceEvents(account treasury.Account, payments []payment.Payment, current calendar.Month) []Event {
	byMonth := make(map[calendar.Month][]payment.Payment)
	for _, p := range payments {
		if p.PlayerID != account.PlayerID {
			continue
		}
		byMonth[p.Month] = append(byMonth[p.Month], p)
	}

	out := make([]Event, 0, len(account.Months))
	for _, m := range account.Months {
		var points int
		var description string
		switch m.Status {
		case treasury.MonthPaid:
			points, description = r.MonthPaid, "Cuota pagada"
		case treasury.MonthFinanced:
			points, description = r.MonthFinanced, "Cuota financiada por el equipo"
		case treasury.MonthDebt:
			if !m.Month.Before(current) {
				continue
			}
			points, description = r.MonthDebt, "Cuota impaga"
		}
		if points == 0 {
			continue
		}
		description = fmt.Sprintf("%s %s", description, m.Month)

		source := sourcePayment(byMonth[m.Month], m.Status == treasury.MonthFinanced)
		eventDate := time.Date(m.Month.Year, m.Month.Month, 1, 0, 0, 0, 0, time.UTC)
		if source == nil {
			out = append(out, Event{
				ID:          EventID(SourceMissing, account.PlayerID, m.Month.String()),
				PlayerID:    account.PlayerID,
				Source:      SourceMissing,
				Category:    CategoryFinance,
				Points:      points,
				Description: description,
				EventDate:   eventDate,
			})
			continue
		}
		out = append(out, Event{
			ID:          EventID(SourcePayment, source.ID, kindFinance),
			PlayerID:    account.PlayerID,
			Source:      SourcePayment,
			SourceID:    source.ID,
			Category:    CategoryFinance,
			Points:      points,
			Description: description,
			EventDate:   eventDate,
			IsPardoned:  source.IsPardoned && points < 0,
		})
	}
	return out
}

// sourcePayment picks the row a month's finance event is attached to: the
// financed payment when the month was financed, otherwise the latest payment.
func sourcePayment(payments []payment.Payment, financed bool) *payment.Payment {
	if len(payments) == 0 {
		return nil
	}
	sorted := append([]payment.Payment(nil), payments...)
	payment.SortByDateDesc(sorted)
	if financed {
		for i := range sorted {
			if sorted[i].IsFinancedByTeam {
				return &sorted[i]
			}
		}
	}
	return &sorted[0]
}

func attendanceLabel(t attendance.Type) string {
	switch t {
	case attendance.TypePresent:
		return "Asistió al partido"
	case attendance.TypeLateFirst:
		return "Llegó tarde (1er tiempo)"
	case attendance.TypeLateSecond:
		return "Llegó tarde (2do tiempo)"
	case attendance.TypeAbsent:
		return "Faltó al partido"
	default:
		return string(t)
	}
}

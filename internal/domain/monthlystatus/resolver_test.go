package monthlystatus

import (
	"errors"
	"testing"
	"time"

	"github.com/outletfc/club-treasury/internal/domain/calendar"
	"github.com/outletfc/club-treasury/internal/domain/fee"
	"github.com/outletfc/club-treasury/internal/domain/player"
)

func TestResolver_FallbackChain(t *testing.T) {
	jan := calendar.Month{Year: 2025, Month: time.January}
	feb := calendar.Month{Year: 2025, Month: time.February}

	resolver := NewResolver([]Entry{
		{PlayerID: "p1", Month: jan, Status: player.StatusPassive},
	})

	tests := []struct {
		name   string
		player player.Player
		month  calendar.Month
		want   fee.Category
	}{
		{name: "override wins", player: player.Player{ID: "p1", Status: player.StatusActive}, month: jan, want: fee.CategoryPassive},
		{name: "default status when no override", player: player.Player{ID: "p1", Status: player.StatusSemiActive}, month: feb, want: fee.CategorySemiActive},
		{name: "override is per player", player: player.Player{ID: "p2", Status: player.StatusActive}, month: jan, want: fee.CategoryActive},
		{name: "falls back to activo", player: player.Player{ID: "p3"}, month: jan, want: fee.CategoryActive},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := resolver.Resolve(tc.player, tc.month)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestResolver_RejectsInvalidMonth(t *testing.T) {
	resolver := NewResolver(nil)
	_, err := resolver.Resolve(player.Player{ID: "p1"}, calendar.Month{Year: 2025, Month: 0})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if !errors.Is(err, calendar.ErrInvalidMonth) {
		t.Fatalf("expected calendar.ErrInvalidMonth in chain, got %v", err)
	}
}

func TestResolver_RejectsUnknownStatus(t *testing.T) {
	jan := calendar.Month{Year: 2025, Month: time.January}
	resolver := NewResolver([]Entry{{PlayerID: "p2", Month: jan, Status: "retirado"}})

	if _, err := resolver.Resolve(player.Player{ID: "p1", Status: "lesionado"}, jan); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown profile status, got %v", err)
	}
	if _, err := resolver.Resolve(player.Player{ID: "p2", Status: player.StatusActive}, jan); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown override status, got %v", err)
	}
	got, err := resolver.Resolve(player.Player{ID: "p2", Status: player.StatusPassive}, jan.Next())
	if err != nil || got != fee.CategoryPassive {
		t.Fatalf("expected pasivo outside the override month, got %s (%v)", got, err)
	}
}

func TestEntry_Validate(t *testing.T) {
	jan := calendar.Month{Year: 2025, Month: time.January}
	if err := (Entry{PlayerID: "p1", Month: jan, Status: "dt"}).Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for dt status override, got %v", err)
	}
	if err := (Entry{Month: jan, Status: player.StatusActive}).Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for missing player id, got %v", err)
	}
	if err := (Entry{PlayerID: "p1", Month: jan, Status: player.StatusSemiActive}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

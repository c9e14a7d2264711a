package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/outletfc/club-treasury/internal/domain/calendar"
	"github.com/outletfc/club-treasury/internal/domain/monthlystatus"
)

type MonthlyStatusRepository struct {
	mu    sync.RWMutex
	items map[statusKey]monthlystatus.Entry
}

type statusKey struct {
	playerID string
	month    calendar.Month
}

func NewMonthlyStatusRepository(entries []monthlystatus.Entry) *MonthlyStatusRepository {
	items := make(map[statusKey]monthlystatus.Entry, len(entries))
	for _, e := range entries {
		items[statusKey{playerID: e.PlayerID, month: e.Month}] = e
	}
	return &MonthlyStatusRepository{items: items}
}

func (r *MonthlyStatusRepository) List(_ context.Context) ([]monthlystatus.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]monthlystatus.Entry, 0, len(r.items))
	for _, e := range r.items {
		out = append(out, e)
	}
	sortStatuses(out)
	return out, nil
}

func (r *MonthlyStatusRepository) ListByPlayer(_ context.Context, playerID string) ([]monthlystatus.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]monthlystatus.Entry, 0)
	for key, e := range r.items {
		if key.playerID == playerID {
			out = append(out, e)
		}
	}
	sortStatuses(out)
	return out, nil
}

func (r *MonthlyStatusRepository) Upsert(_ context.Context, entry monthlystatus.Entry) (monthlystatus.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := statusKey{playerID: entry.PlayerID, month: entry.Month}
	if existing, ok := r.items[key]; ok {
		entry.ID = existing.ID
	}
	r.items[key] = entry
	return entry, nil
}

func sortStatuses(items []monthlystatus.Entry) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].PlayerID != items[j].PlayerID {
			return items[i].PlayerID < items[j].PlayerID
		}
		return items[i].Month.Before(items[j].Month)
	})
}

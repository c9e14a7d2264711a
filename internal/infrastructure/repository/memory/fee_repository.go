package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/outletfc/club-treasury/internal/domain/calendar"
	"github.com/outletfc/club-treasury/internal/domain/fee"
)

type FeeRepository struct {
	mu       sync.RWMutex
	entries  map[feeKey]fee.Entry
	settings map[calendar.Month]fee.MonthlySetting
}

type feeKey struct {
	category fee.Category
	month    calendar.Month
}

func NewFeeRepository(entries []fee.Entry) *FeeRepository {
	r := &FeeRepository{
		entries:  make(map[feeKey]fee.Entry, len(entries)),
		settings: make(map[calendar.Month]fee.MonthlySetting),
	}
	for _, e := range entries {
		r.entries[feeKey{category: e.Category, month: e.Month}] = e
	}
	return r
}

func (r *FeeRepository) List(_ context.Context) ([]fee.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fee.Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month.Before(out[j].Month)
		}
		return out[i].Category < out[j].Category
	})

	return out, nil
}

func (r *FeeRepository) Upsert(_ context.Context, entries []fee.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range entries {
		key := feeKey{category: e.Category, month: e.Month}
		if existing, ok := r.entries[key]; ok {
			e.ID = existing.ID
		}
		r.entries[key] = e
	}
	return nil
}

func (r *FeeRepository) GetSetting(_ context.Context, month calendar.Month) (fee.MonthlySetting, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	setting, ok := r.settings[month]
	return setting, ok, nil
}

func (r *FeeRepository) UpsertSetting(_ context.Context, setting fee.MonthlySetting) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.settings[setting.Month] = setting
	return nil
}

package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/outletfc/club-treasury/internal/domain/calendar"
	"github.com/outletfc/club-treasury/internal/domain/clubclosing"
)

type ClubClosingRepository struct {
	mu    sync.RWMutex
	items map[calendar.Month]clubclosing.Closing
	now   func() time.Time
}

func NewClubClosingRepository(closings []clubclosing.Closing) *ClubClosingRepository {
	items := make(map[calendar.Month]clubclosing.Closing, len(closings))
	for _, c := range closings {
		items[c.Month] = c
	}
	return &ClubClosingRepository{items: items, now: time.Now}
}

func (r *ClubClosingRepository) List(_ context.Context) ([]clubclosing.Closing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]clubclosing.Closing, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Month.Before(out[j].Month)
	})
	return out, nil
}

func (r *ClubClosingRepository) GetByMonth(_ context.Context, month calendar.Month) (clubclosing.Closing, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[month]
	return c, ok, nil
}

func (r *ClubClosingRepository) Upsert(_ context.Context, closing clubclosing.Closing) (clubclosing.Closing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	if existing, ok := r.items[closing.Month]; ok {
		closing.ID = existing.ID
		closing.CreatedAt = existing.CreatedAt
	} else if closing.CreatedAt.IsZero() {
		closing.CreatedAt = now
	}
	closing.UpdatedAt = now
	r.items[closing.Month] = closing
	return closing, nil
}

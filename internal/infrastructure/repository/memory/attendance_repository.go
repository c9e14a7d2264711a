package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	crerr "github.com/cockroachdb/errors"

	"github.com/outletfc/club-treasury/internal/domain/attendance"
)

type AttendanceRepository struct {
	mu    sync.RWMutex
	items map[string]attendance.Record
}

func NewAttendanceRepository(records []attendance.Record) *AttendanceRepository {
	items := make(map[string]attendance.Record, len(records))
	for _, rec := range records {
		items[rec.ID] = rec
	}
	return &AttendanceRepository{items: items}
}

func (r *AttendanceRepository) List(_ context.Context) ([]attendance.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]attendance.Record, 0, len(r.items))
	for _, rec := range r.items {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].MatchDate.Equal(out[j].MatchDate) {
			return out[i].MatchDate.Before(out[j].MatchDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *AttendanceRepository) GetByID(_ context.Context, recordID string) (attendance.Record, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.items[recordID]
	return rec, ok, nil
}

func (r *AttendanceRepository) Upsert(_ context.Context, record attendance.Record) (attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, existing := range r.items {
		if existing.MatchID == record.MatchID && existing.PlayerID == record.PlayerID {
			record.ID = id
			record.IsPardoned = existing.IsPardoned
			record.PardonReason = existing.PardonReason
			break
		}
	}
	if err := record.Validate(); err != nil {
		return attendance.Record{}, err
	}
	r.items[record.ID] = record
	return record, nil
}

func (r *AttendanceRepository) SetPardoned(_ context.Context, recordID, reason string) (attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.items[recordID]
	if !ok {
		return attendance.Record{}, crerr.Wrapf(attendance.ErrNotFound, "id=%s", recordID)
	}
	if rec.IsPardoned {
		return rec, nil
	}
	if strings.TrimSpace(reason) == "" {
		reason = attendance.DefaultPardonReason
	}
	rec.IsPardoned = true
	rec.PardonReason = reason
	r.items[recordID] = rec
	return rec, nil
}

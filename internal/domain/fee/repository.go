package fee

import (
	"context"

	"github.com/outletfc/club-treasury/internal/domain/calendar"
)

// Repository describes fee schedule persistence.
type Repository interface {
	List(ctx context.Context) ([]Entry, error)
	// Upsert writes entries keyed by (category, month); existing amounts are overwritten.
	Upsert(ctx context.Context, entries []Entry) error
	GetSetting(ctx context.Context, month calendar.Month) (MonthlySetting, bool, error)
	UpsertSetting(ctx context.Context, setting MonthlySetting) error
}

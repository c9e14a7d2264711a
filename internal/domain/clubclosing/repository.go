package clubclosing

import (
	"context"

	"github.com/outletfc/club-treasury/internal/domain/calendar"
)

type Repository interface {
	List(ctx context.Context) ([]Closing, error)
	GetByMonth(ctx context.Context, month calendar.Month) (Closing, bool, error)
	// Upsert atomically writes the closing keyed by month.
	Upsert(ctx context.Context, closing Closing) (Closing, error)
}

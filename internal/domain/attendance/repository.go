package attendance

import "context"

type Repository interface {
	List(ctx context.Context) ([]Record, error)
	GetByID(ctx context.Context, recordID string) (Record, bool, error)
	// Upsert is keyed by (match, player).
	Upsert(ctx context.Context, record Record) (Record, error)
	SetPardoned(ctx context.Context, recordID, reason string) (Record, error)
}

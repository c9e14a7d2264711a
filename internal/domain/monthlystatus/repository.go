package monthlystatus

import "context"

type Repository interface {
	List(ctx context.Context) ([]Entry, error)
	ListByPlayer(ctx context.Context, playerID string) ([]Entry, error)
	// Upsert is keyed by (player, month).
	Upsert(ctx context.Context, entry Entry) (Entry, error)
}

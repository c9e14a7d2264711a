package payment

import "context"

// Repository describes payment persistence. Writes are single-row and
// last-write-wins.
type Repository interface {
	List(ctx context.Context, filter Filter) ([]Payment, error)
	GetByID(ctx context.Context, paymentID string) (Payment, bool, error)
	Upsert(ctx context.Context, p Payment) (Payment, error)
	MarkReimbursed(ctx context.Context, paymentID string) (Payment, error)
	SetPardoned(ctx context.Context, paymentID, reason string) (Payment, error)
}

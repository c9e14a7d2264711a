package memory

import (
	"context"
	"sync"
	"time"

	"github.com/outletfc/club-treasury/internal/domain/payment"
)

// PaymentRepository guards a payment.Ledger.
type PaymentRepository struct {
	mu     sync.RWMutex
	ledger *payment.Ledger
}

func NewPaymentRepository(payments []payment.Payment) *PaymentRepository {
	return &PaymentRepository{ledger: payment.NewLedger(time.Now, payments...)}
}

func (r *PaymentRepository) List(_ context.Context, filter payment.Filter) ([]payment.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.ledger.List(filter), nil
}

func (r *PaymentRepository) GetByID(_ context.Context, paymentID string) (payment.Payment, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.ledger.Get(paymentID)
	return p, ok, nil
}

func (r *PaymentRepository) Upsert(_ context.Context, p payment.Payment) (payment.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.ledger.Record(p)
}

func (r *PaymentRepository) MarkReimbursed(_ context.Context, paymentID string) (payment.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.ledger.MarkReimbursed(paymentID)
}

func (r *PaymentRepository) SetPardoned(_ context.Context, paymentID, reason string) (payment.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.ledger.SetPardoned(paymentID, reason)
}

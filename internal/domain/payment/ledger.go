package payment

import (
	"sort"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
)

// Ledger is an in-memory payment collection. It is not safe for concurrent use;
// callers serialize access.
type Ledger struct {
	byID map[string]Payment
	now  func() time.Time
}

func NewLedger(now func() time.Time, payments ...Payment) *Ledger {
	if now == nil {
		now = time.Now
	}
	l := &Ledger{
		byID: make(map[string]Payment, len(payments)),
		now:  now,
	}
	for _, p := range payments {
		l.byID[p.ID] = p
	}
	return l
}

func (l *Ledger) Len() int {
	return len(l.byID)
}

func (l *Ledger) Get(paymentID string) (Payment, bool) {
	p, ok := l.byID[strings.TrimSpace(paymentID)]
	return p, ok
}

// List returns matching payments, most recent payment date first.
func (l *Ledger) List(filter Filter) []Payment {
	out := make([]Payment, 0, len(l.byID))
	for _, p := range l.byID {
		if filter.Matches(p) {
			out = append(out, p)
		}
	}
	SortByDateDesc(out)
	return out
}

// Record creates the payment or replaces the one with the same ID. An edit
// never clears the reimbursed or pardoned flags.
// Invalid input leaves the ledger untouched.
func (l *Ledger) Record(p Payment) (Payment, error) {
	p.ID = strings.TrimSpace(p.ID)
	if p.ID == "" {
		return Payment{}, crerr.Wrap(ErrValidation, "payment id is required")
	}
	if err := p.Validate(); err != nil {
		return Payment{}, err
	}

	now := l.now().UTC()
	if existing, ok := l.byID[p.ID]; ok {
		p.CreatedAt = existing.CreatedAt
		p.ReimbursedToTeam = p.ReimbursedToTeam || existing.ReimbursedToTeam
		if !p.IsPardoned && existing.IsPardoned {
			p.IsPardoned = existing.IsPardoned
			p.PardonReason = existing.PardonReason
		}
	} else if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.PaymentDate.IsZero() {
		p.PaymentDate = now
	}
	p.UpdatedAt = now

	l.byID[p.ID] = p
	return p, nil
}

// MarkReimbursed flags a financed payment as paid back. Repeated calls are no-ops.
func (l *Ledger) MarkReimbursed(paymentID string) (Payment, error) {
	p, ok := l.Get(paymentID)
	if !ok {
		return Payment{}, crerr.Wrapf(ErrNotFound, "id=%s", paymentID)
	}
	if p.ReimbursedToTeam {
		return p, nil
	}
	p.ReimbursedToTeam = true
	p.UpdatedAt = l.now().UTC()
	l.byID[p.ID] = p
	return p, nil
}

// SetPardoned flags the payment so its negative scoring no longer counts.
func (l *Ledger) SetPardoned(paymentID, reason string) (Payment, error) {
	p, ok := l.Get(paymentID)
	if !ok {
		return Payment{}, crerr.Wrapf(ErrNotFound, "id=%s", paymentID)
	}
	if p.IsPardoned {
		return p, nil
	}
	if strings.TrimSpace(reason) == "" {
		reason = DefaultPardonReason
	}
	p.IsPardoned = true
	p.PardonReason = reason
	p.UpdatedAt = l.now().UTC()
	l.byID[p.ID] = p
	return p, nil
}

func SortByDateDesc(payments []Payment) {
	sort.SliceStable(payments, func(i, j int) bool {
		if !payments[i].PaymentDate.Equal(payments[j].PaymentDate) {
			return payments[i].PaymentDate.After(payments[j].PaymentDate)
		}
		return payments[i].ID < payments[j].ID
	})
}

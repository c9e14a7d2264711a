package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc/pool"

	"github.com/outletfc/club-treasury/internal/domain/calendar"
	"github.com/outletfc/club-treasury/internal/domain/clubclosing"
	"github.com/outletfc/club-treasury/internal/domain/fee"
	"github.com/outletfc/club-treasury/internal/domain/monthlystatus"
	"github.com/outletfc/club-treasury/internal/domain/payment"
	"github.com/outletfc/club-treasury/internal/domain/player"
	"github.com/outletfc/club-treasury/internal/domain/treasury"
	idgen "github.com/outletfc/club-treasury/internal/platform/id"
	"github.com/outletfc/club-treasury/internal/platform/logging"
)

const defaultReconcileWorkers = 8

type TreasuryConfig struct {
	SeasonStart calendar.Month
	Workers     int
}

// PlayerAccount pairs a reconciled account with its player.
type PlayerAccount struct {
	Player  player.Player
	Account treasury.Account
}

type RecordPaymentInput struct {
	ID               string
	PlayerID         string
	Month            calendar.Month
	Amount           decimal.Decimal
	PaymentDate      time.Time
	IsFinancedByTeam bool
	ReimbursedToTeam bool
}

type FinalizeClosingInput struct {
	Month      calendar.Month
	AmountPaid decimal.Decimal
	Notes      string
}

type UpsertFeesInput struct {
	Month          calendar.Month
	Amounts        map[fee.Category]decimal.Decimal
	IsGroupPayment bool
}

type SetMonthlyStatusInput struct {
	PlayerID string
	Month    calendar.Month
	Status   player.Status
}

type TreasuryService struct {
	playerRepo  player.Repository
	feeRepo     fee.Repository
	statusRepo  monthlystatus.Repository
	paymentRepo payment.Repository
	closingRepo clubclosing.Repository
	idGen       idgen.Generator
	seasonStart calendar.Month
	workers     int
	logger      *logging.Logger
	now         func() time.Time
}

func NewTreasuryService(
	playerRepo player.Repository,
	feeRepo fee.Repository,
	statusRepo monthlystatus.Repository,
	paymentRepo payment.Repository,
	closingRepo clubclosing.Repository,
	idGen idgen.Generator,
	cfg TreasuryConfig,
	logger *logging.Logger,
) *TreasuryService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultReconcileWorkers
	}

	return &TreasuryService{
		playerRepo:  playerRepo,
		feeRepo:     feeRepo,
		statusRepo:  statusRepo,
		paymentRepo: paymentRepo,
		closingRepo: closingRepo,
		idGen:       idGen,
		seasonStart: cfg.SeasonStart,
		workers:     cfg.Workers,
		logger:      logger,
		now:         time.Now,
	}
}

// treasurySnapshot holds every input of a computation, fetched in one round.
type treasurySnapshot struct {
	players  []player.Player
	fees     *fee.Resolver
	statuses *monthlystatus.Resolver
	payments []payment.Payment
	closings []clubclosing.Closing
}

func (s *TreasuryService) loadSnapshot(ctx context.Context) (treasurySnapshot, error) {
	var (
		snap     treasurySnapshot
		entries  []fee.Entry
		statuses []monthlystatus.Entry
	)

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		items, err := s.playerRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("list players: %w", err)
		}
		snap.players = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.feeRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("list fees: %w", err)
		}
		entries = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.statusRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("list monthly statuses: %w", err)
		}
		statuses = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.paymentRepo.List(ctx, payment.Filter{})
		if err != nil {
			return fmt.Errorf("list payments: %w", err)
		}
		snap.payments = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.closingRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("list club closings: %w", err)
		}
		snap.closings = items
		return nil
	})
	if err := p.Wait(); err != nil {
		return treasurySnapshot{}, classify("load treasury snapshot", err)
	}

	snap.fees = fee.NewResolver(entries)
	snap.statuses = monthlystatus.NewResolver(statuses)
	return snap, nil
}

func (s *TreasuryService) currentMonth() calendar.Month {
	return calendar.Of(s.now())
}

func (s *TreasuryService) resolveAsOf(asOf calendar.Month) (calendar.Month, error) {
	if asOf.IsZero() {
		return s.currentMonth(), nil
	}
	if err := asOf.Validate(); err != nil {
		return calendar.Month{}, classify("as of", err)
	}
	return asOf, nil
}

func (s *TreasuryService) computeAccount(snap treasurySnapshot, p player.Player, asOf calendar.Month) (treasury.Account, error) {
	return treasury.ComputeAccount(treasury.AccountInput{
		Player:      p,
		Fees:        snap.fees,
		Statuses:    snap.statuses,
		Payments:    snap.payments,
		SeasonStart: s.seasonStart,
		AsOf:        asOf,
	})
}

// GetPlayerAccount reconciles one player from the season start through asOf.
// A zero asOf means the current month.
func (s *TreasuryService) GetPlayerAccount(ctx context.Context, playerID string, asOf calendar.Month) (PlayerAccount, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TreasuryService.GetPlayerAccount")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return PlayerAccount{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	asOf, err := s.resolveAsOf(asOf)
	if err != nil {
		return PlayerAccount{}, err
	}

	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return PlayerAccount{}, err
	}

	for _, p := range snap.players {
		if p.ID != playerID {
			continue
		}
		account, err := s.computeAccount(snap, p, asOf)
		if err != nil {
			return PlayerAccount{}, classify("compute account", err)
		}
		return PlayerAccount{Player: p, Account: account}, nil
	}

	return PlayerAccount{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
}

// ListAccounts reconciles every player.
func (s *TreasuryService) ListAccounts(ctx context.Context, asOf calendar.Month) ([]PlayerAccount, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TreasuryService.ListAccounts")
	defer span.End()

	asOf, err := s.resolveAsOf(asOf)
	if err != nil {
		return nil, err
	}

	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	return s.reconcileAll(snap, asOf)
}

func (s *TreasuryService) reconcileAll(snap treasurySnapshot, asOf calendar.Month) ([]PlayerAccount, error) {
	if len(snap.players) == 0 {
		return []PlayerAccount{}, nil
	}

	workers, err := ants.NewPool(min(s.workers, len(snap.players)))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer workers.Release()

	out := make([]PlayerAccount, len(snap.players))
	errs := make([]error, len(snap.players))

	var wg sync.WaitGroup
	for i, p := range snap.players {
		wg.Add(1)
		if err := workers.Submit(func() {
			defer wg.Done()

			account, err := s.computeAccount(snap, p, asOf)
			if err != nil {
				errs[i] = fmt.Errorf("player=%s: %w", p.ID, err)
				return
			}
			out[i] = PlayerAccount{Player: p, Account: account}
		}); err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("submit reconcile task: %w", err)
		}
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, classify("compute accounts", err)
	}
	return out, nil
}

// GetMonthlyStats computes the club cash position for month.
func (s *TreasuryService) GetMonthlyStats(ctx context.Context, month calendar.Month) (treasury.MonthlyClubStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TreasuryService.GetMonthlyStats")
	defer span.End()

	if err := month.Validate(); err != nil {
		return treasury.MonthlyClubStats{}, classify("month", err)
	}

	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return treasury.MonthlyClubStats{}, err
	}

	stats, err := treasury.ComputeMonth(month, snap.payments, snap.fees, snap.closings)
	if err != nil {
		return treasury.MonthlyClubStats{}, classify("compute month", err)
	}
	return stats, nil
}

// FinalizeClosing snapshots the month's collected total and savings into a closing.
// Re-finalizing a month replaces the previous closing.
func (s *TreasuryService) FinalizeClosing(ctx context.Context, input FinalizeClosingInput) (clubclosing.Closing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TreasuryService.FinalizeClosing")
	defer span.End()

	if err := input.Month.Validate(); err != nil {
		return clubclosing.Closing{}, classify("month", err)
	}
	if input.AmountPaid.IsNegative() {
		return clubclosing.Closing{}, fmt.Errorf("%w: amount paid must be >= 0", ErrInvalidInput)
	}

	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return clubclosing.Closing{}, err
	}

	// Live figures only; an earlier closing must not feed the new snapshot.
	stats, err := treasury.ComputeMonth(input.Month, snap.payments, snap.fees, nil)
	if err != nil {
		return clubclosing.Closing{}, classify("compute month", err)
	}
	closing, err := treasury.NewClosing(stats, input.AmountPaid, input.Notes)
	if err != nil {
		return clubclosing.Closing{}, classify("build closing", err)
	}

	if existing, ok := clubclosing.Find(snap.closings, input.Month); ok {
		closing.ID = existing.ID
	} else {
		closing.ID, err = s.idGen.NewID()
		if err != nil {
			return clubclosing.Closing{}, fmt.Errorf("generate closing id: %w", err)
		}
	}

	saved, err := s.closingRepo.Upsert(ctx, closing)
	if err != nil {
		return clubclosing.Closing{}, fmt.Errorf("upsert club closing: %w", err)
	}

	s.logger.InfoContext(ctx, "club closing finalized",
		"month", input.Month.String(),
		"amount_paid", saved.AmountPaid.String(),
		"collected_total", saved.CollectedTotal.String(),
		"savings", saved.Savings.String(),
	)
	return saved, nil
}

// RecordPayment creates a payment, or edits the one with input.ID.
func (s *TreasuryService) RecordPayment(ctx context.Context, input RecordPaymentInput) (payment.Payment, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TreasuryService.RecordPayment")
	defer span.End()

	input.ID = strings.TrimSpace(input.ID)
	input.PlayerID = strings.TrimSpace(input.PlayerID)
	if input.PlayerID == "" {
		return payment.Payment{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	candidate := payment.Payment{
		ID:               input.ID,
		PlayerID:         input.PlayerID,
		Month:            input.Month,
		AmountTotal:      input.Amount,
		PaymentDate:      input.PaymentDate,
		IsFinancedByTeam: input.IsFinancedByTeam,
		ReimbursedToTeam: input.ReimbursedToTeam,
	}
	if err := candidate.Validate(); err != nil {
		return payment.Payment{}, classify("validate payment", err)
	}

	_, exists, err := s.playerRepo.GetByID(ctx, input.PlayerID)
	if err != nil {
		return payment.Payment{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return payment.Payment{}, fmt.Errorf("%w: player=%s", ErrNotFound, input.PlayerID)
	}

	if candidate.ID == "" {
		candidate.ID, err = s.idGen.NewID()
		if err != nil {
			return payment.Payment{}, fmt.Errorf("generate payment id: %w", err)
		}
	} else {
		existing, found, err := s.paymentRepo.GetByID(ctx, candidate.ID)
		if err != nil {
			return payment.Payment{}, fmt.Errorf("get payment: %w", err)
		}
		if !found {
			return payment.Payment{}, fmt.Errorf("%w: payment=%s", ErrNotFound, candidate.ID)
		}
		candidate.CreatedAt = existing.CreatedAt
		// reimbursement only moves forward through MarkReimbursed
		candidate.ReimbursedToTeam = candidate.ReimbursedToTeam || existing.ReimbursedToTeam
	}
	if candidate.PaymentDate.IsZero() {
		candidate.PaymentDate = s.now().UTC()
	}

	saved, err := s.paymentRepo.Upsert(ctx, candidate)
	if err != nil {
		return payment.Payment{}, classify("upsert payment", err)
	}

	s.logger.InfoContext(ctx, "payment recorded",
		"payment_id", saved.ID,
		"player_id", saved.PlayerID,
		"month", saved.Month.String(),
		"amount", saved.AmountTotal.String(),
		"financed", saved.IsFinancedByTeam,
	)
	return saved, nil
}

// ListPayments queries the ledger.
func (s *TreasuryService) ListPayments(ctx context.Context, filter payment.Filter) ([]payment.Payment, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TreasuryService.ListPayments")
	defer span.End()

	if filter.Month != nil {
		if err := filter.Month.Validate(); err != nil {
			return nil, classify("month", err)
		}
	}

	items, err := s.paymentRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return items, nil
}

// MarkReimbursed records that the player paid the team back. Repeated calls succeed.
func (s *TreasuryService) MarkReimbursed(ctx context.Context, paymentID string) (payment.Payment, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TreasuryService.MarkReimbursed")
	defer span.End()

	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return payment.Payment{}, fmt.Errorf("%w: payment id is required", ErrInvalidInput)
	}

	saved, err := s.paymentRepo.MarkReimbursed(ctx, paymentID)
	if err != nil {
		return payment.Payment{}, classify("mark reimbursed", err)
	}

	s.logger.InfoContext(ctx, "payment reimbursed", "payment_id", saved.ID, "player_id", saved.PlayerID)
	return saved, nil
}

// UpsertFees writes the month's fee for each given category and its group-payment flag.
func (s *TreasuryService) UpsertFees(ctx context.Context, input UpsertFeesInput) ([]fee.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TreasuryService.UpsertFees")
	defer span.End()

	if err := input.Month.Validate(); err != nil {
		return nil, classify("month", err)
	}
	if len(input.Amounts) == 0 {
		return nil, fmt.Errorf("%w: at least one fee amount is required", ErrInvalidInput)
	}

	for category := range input.Amounts {
		if err := category.Validate(); err != nil {
			return nil, classify("fee category", err)
		}
	}

	entries := make([]fee.Entry, 0, len(input.Amounts))
	for _, category := range fee.AllCategories {
		amount, ok := input.Amounts[category]
		if !ok {
			continue
		}
		entries = append(entries, fee.Entry{Category: category, Month: input.Month, Amount: amount})
	}
	for i := range entries {
		if err := entries[i].Validate(); err != nil {
			return nil, classify("validate fee", err)
		}
		id, err := s.idGen.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate fee id: %w", err)
		}
		entries[i].ID = id
	}

	if err := s.feeRepo.Upsert(ctx, entries); err != nil {
		return nil, fmt.Errorf("upsert fees: %w", err)
	}
	if err := s.feeRepo.UpsertSetting(ctx, fee.MonthlySetting{Month: input.Month, IsGroupPayment: input.IsGroupPayment}); err != nil {
		return nil, fmt.Errorf("upsert monthly setting: %w", err)
	}

	s.logger.InfoContext(ctx, "fees configured",
		"month", input.Month.String(),
		"categories", len(entries),
		"group_payment", input.IsGroupPayment,
	)
	return entries, nil
}

// SetMonthlyStatus overrides the category a player is billed under for one month.
func (s *TreasuryService) SetMonthlyStatus(ctx context.Context, input SetMonthlyStatusInput) (monthlystatus.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TreasuryService.SetMonthlyStatus")
	defer span.End()

	entry := monthlystatus.Entry{
		PlayerID: strings.TrimSpace(input.PlayerID),
		Month:    input.Month,
		Status:   player.Status(strings.ToLower(strings.TrimSpace(string(input.Status)))),
	}
	if err := entry.Validate(); err != nil {
		return monthlystatus.Entry{}, classify("validate monthly status", err)
	}

	_, exists, err := s.playerRepo.GetByID(ctx, entry.PlayerID)
	if err != nil {
		return monthlystatus.Entry{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return monthlystatus.Entry{}, fmt.Errorf("%w: player=%s", ErrNotFound, entry.PlayerID)
	}

	entry.ID, err = s.idGen.NewID()
	if err != nil {
		return monthlystatus.Entry{}, fmt.Errorf("generate monthly status id: %w", err)
	}

	saved, err := s.statusRepo.Upsert(ctx, entry)
	if err != nil {
		return monthlystatus.Entry{}, fmt.Errorf("upsert monthly status: %w", err)
	}

	s.logger.InfoContext(ctx, "monthly status set",
		"player_id", saved.PlayerID,
		"month", saved.Month.String(),
		"status", string(saved.Status),
	)
	return saved, nil
}

// Overview summarizes debt and financing across all players for month.
func (s *TreasuryService) Overview(ctx context.Context, month calendar.Month) (treasury.Overview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TreasuryService.Overview")
	defer span.End()

	month, err := s.resolveAsOf(month)
	if err != nil {
		return treasury.Overview{}, err
	}

	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return treasury.Overview{}, err
	}
	setting, _, err := s.feeRepo.GetSetting(ctx, month)
	if err != nil {
		return treasury.Overview{}, fmt.Errorf("get monthly setting: %w", err)
	}

	accounts, err := s.reconcileAll(snap, month)
	if err != nil {
		return treasury.Overview{}, err
	}
	plain := make([]treasury.Account, 0, len(accounts))
	for _, acc := range accounts {
		plain = append(plain, acc.Account)
	}

	out, err := treasury.ComputeOverview(month, plain, snap.payments, setting, snap.fees)
	if err != nil {
		return treasury.Overview{}, classify("compute overview", err)
	}
	return out, nil
}

package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/outletfc/club-treasury/internal/domain/attendance"
	"github.com/outletfc/club-treasury/internal/domain/player"
	"github.com/outletfc/club-treasury/internal/domain/ranking"
	idgen "github.com/outletfc/club-treasury/internal/platform/id"
	"github.com/outletfc/club-treasury/internal/platform/logging"
)

// LeaderboardPublisher mirrors computed standings to an external read model.
type LeaderboardPublisher interface {
	Publish(ctx context.Context, entries []ranking.Entry) error
}

type noopLeaderboard struct{}

func (noopLeaderboard) Publish(context.Context, []ranking.Entry) error { return nil }

type PardonInput struct {
	EventID string
	// ActorID, when set, must belong to a director or admin.
	ActorID string
	Reason  string
}

type RecordAttendanceInput struct {
	MatchID        string
	MatchDate      time.Time
	Opponent       string
	PlayerID       string
	Confirmation   attendance.Confirmation
	Type           attendance.Type
	ForgotJerseys  bool
	WashedJerseys  bool
	StaysForSocial bool
}

type RankingService struct {
	treasury       *TreasuryService
	attendanceRepo attendance.Repository
	rules          ranking.Rules
	publisher      LeaderboardPublisher
	idGen          idgen.Generator
	logger         *logging.Logger
}

func NewRankingService(
	treasury *TreasuryService,
	attendanceRepo attendance.Repository,
	rules ranking.Rules,
	publisher LeaderboardPublisher,
	idGen idgen.Generator,
	logger *logging.Logger,
) *RankingService {
	if logger == nil {
		logger = logging.Default()
	}
	if publisher == nil {
		publisher = noopLeaderboard{}
	}

	return &RankingService{
		treasury:       treasury,
		attendanceRepo: attendanceRepo,
		rules:          rules,
		publisher:      publisher,
		idGen:          idGen,
		logger:         logger,
	}
}

// events rebuilds every scoring event from attendance rows and reconciled accounts.
func (s *RankingService) events(ctx context.Context) ([]player.Player, []ranking.Event, error) {
	snap, err := s.treasury.loadSnapshot(ctx)
	if err != nil {
		return nil, nil, err
	}
	records, err := s.attendanceRepo.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list attendance: %w", err)
	}

	current := s.treasury.currentMonth()
	accounts, err := s.treasury.reconcileAll(snap, current)
	if err != nil {
		return nil, nil, err
	}

	out := make([]ranking.Event, 0, len(records)+len(accounts)*4)
	for _, rec := range records {
		out = append(out, s.rules.AttendanceEvents(rec)...)
	}
	for _, acc := range accounts {
		out = append(out, s.rules.FinanceEvents(acc.Account, snap.payments, current)...)
	}

	return snap.players, out, nil
}

// List builds the leaderboard and mirrors it to the publisher.
func (s *RankingService) List(ctx context.Context) (ranking.Board, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.List")
	defer span.End()

	players, events, err := s.events(ctx)
	if err != nil {
		return ranking.Board{}, err
	}

	board := ranking.BuildBoard(players, events)
	if err := s.publisher.Publish(ctx, board.Entries); err != nil {
		s.logger.WarnContext(ctx, "publish leaderboard failed", "error", err)
	}
	return board, nil
}

// PlayerEvents returns a player's scoring history, newest first. Pardoned
// events are included and flagged.
func (s *RankingService) PlayerEvents(ctx context.Context, playerID string) ([]ranking.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.PlayerEvents")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return nil, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	players, events, err := s.events(ctx)
	if err != nil {
		return nil, err
	}
	if !containsPlayer(players, playerID) {
		return nil, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	out := make([]ranking.Event, 0)
	for _, e := range events {
		if e.PlayerID == playerID {
			out = append(out, e)
		}
	}
	ranking.SortEventsNewestFirst(out)
	return out, nil
}

// Pardon flags the event's source row and returns the player's recomputed entry.
// Pardoning an already pardoned row succeeds without changes.
func (s *RankingService) Pardon(ctx context.Context, input PardonInput) (ranking.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.Pardon")
	defer span.End()

	ref, err := ranking.ParseEventID(input.EventID)
	if err != nil {
		return ranking.Entry{}, classify("parse event id", err)
	}

	if actorID := strings.TrimSpace(input.ActorID); actorID != "" {
		actor, exists, err := s.treasury.playerRepo.GetByID(ctx, actorID)
		if err != nil {
			return ranking.Entry{}, fmt.Errorf("get actor: %w", err)
		}
		if !exists || !actor.CanPardon() {
			return ranking.Entry{}, fmt.Errorf("%w: player=%s cannot pardon", ErrUnauthorized, actorID)
		}
	}

	reason := strings.TrimSpace(input.Reason)
	var playerID string
	switch ref.Source {
	case ranking.SourceAttendance:
		rec, err := s.attendanceRepo.SetPardoned(ctx, ref.SourceID, reason)
		if err != nil {
			return ranking.Entry{}, classify("pardon attendance", err)
		}
		playerID = rec.PlayerID
	case ranking.SourcePayment:
		p, err := s.treasury.paymentRepo.SetPardoned(ctx, ref.SourceID, reason)
		if err != nil {
			return ranking.Entry{}, classify("pardon payment", err)
		}
		playerID = p.PlayerID
	default:
		return ranking.Entry{}, fmt.Errorf("%w: event %s cannot be pardoned", ErrInvalidInput, input.EventID)
	}

	s.logger.InfoContext(ctx, "scoring event pardoned",
		"event_id", input.EventID,
		"source", string(ref.Source),
		"source_id", ref.SourceID,
		"player_id", playerID,
	)

	board, err := s.List(ctx)
	if err != nil {
		return ranking.Entry{}, err
	}
	for _, entry := range board.Entries {
		if entry.PlayerID == playerID {
			return entry, nil
		}
	}
	return ranking.Entry{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
}

// RecordAttendance upserts a player's attendance for a match.
func (s *RankingService) RecordAttendance(ctx context.Context, input RecordAttendanceInput) (attendance.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.RecordAttendance")
	defer span.End()

	input.MatchID = strings.TrimSpace(input.MatchID)
	input.PlayerID = strings.TrimSpace(input.PlayerID)
	if input.MatchID == "" {
		return attendance.Record{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if input.PlayerID == "" {
		return attendance.Record{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if input.MatchDate.IsZero() {
		return attendance.Record{}, fmt.Errorf("%w: match date is required", ErrInvalidInput)
	}

	_, exists, err := s.treasury.playerRepo.GetByID(ctx, input.PlayerID)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return attendance.Record{}, fmt.Errorf("%w: player=%s", ErrNotFound, input.PlayerID)
	}

	recordID, err := s.idGen.NewID()
	if err != nil {
		return attendance.Record{}, fmt.Errorf("generate attendance id: %w", err)
	}
	record := attendance.Record{
		ID:             recordID,
		MatchID:        input.MatchID,
		MatchDate:      input.MatchDate.UTC(),
		Opponent:       strings.TrimSpace(input.Opponent),
		PlayerID:       input.PlayerID,
		Confirmation:   input.Confirmation,
		Type:           input.Type,
		ForgotJerseys:  input.ForgotJerseys,
		WashedJerseys:  input.WashedJerseys,
		StaysForSocial: input.StaysForSocial,
	}
	if err := record.Validate(); err != nil {
		return attendance.Record{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	saved, err := s.attendanceRepo.Upsert(ctx, record)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("upsert attendance: %w", err)
	}

	s.logger.InfoContext(ctx, "attendance recorded",
		"match_id", saved.MatchID,
		"player_id", saved.PlayerID,
		"type", string(saved.Type),
	)
	return saved, nil
}

func containsPlayer(players []player.Player, playerID string) bool {
	for _, p := range players {
		if p.ID == playerID {
			return true
		}
	}
	return false
}

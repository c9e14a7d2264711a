package httpapi

import (
	"net/http"

	"github.com/outletfc/club-treasury/internal/domain/attendance"
	"github.com/outletfc/club-treasury/internal/usecase"
)

func (h *Handler) ListRankings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRankings")
	defer span.End()

	board, err := h.rankingService.List(ctx)
	if err != nil {
		h.fail(ctx, w, "list rankings failed", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rankingBoardDTO{
		Entries:     rankingEntriesToDTO(board.Entries),
		WallOfShame: rankingEntriesToDTO(board.WallOfShame),
		ShameAlert:  board.ShameAlert,
	})
}

func (h *Handler) ListPlayerEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerEvents")
	defer span.End()

	playerID := r.PathValue("playerID")
	events, err := h.rankingService.PlayerEvents(ctx, playerID)
	if err != nil {
		h.fail(ctx, w, "list player events failed", err, "player_id", playerID)
		return
	}

	items := make([]rankingEventDTO, 0, len(events))
	for _, e := range events {
		items = append(items, rankingEventToDTO(e))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) PardonEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PardonEvent")
	defer span.End()

	var req pardonRequest
	if r.ContentLength != 0 {
		if err := h.decodeRequest(ctx, r, &req); err != nil {
			writeError(ctx, w, err)
			return
		}
	}

	eventID := r.PathValue("eventID")
	entry, err := h.rankingService.Pardon(ctx, usecase.PardonInput{
		EventID: eventID,
		ActorID: actorFromContext(ctx),
		Reason:  req.Reason,
	})
	if err != nil {
		h.fail(ctx, w, "pardon event failed", err, "event_id", eventID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rankingEntryToDTO(entry))
}

func (h *Handler) RecordAttendance(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordAttendance")
	defer span.End()

	var req recordAttendanceRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	saved, err := h.rankingService.RecordAttendance(ctx, usecase.RecordAttendanceInput{
		MatchID:        r.PathValue("matchID"),
		MatchDate:      req.MatchDate.UTC(),
		Opponent:       req.Opponent,
		PlayerID:       r.PathValue("playerID"),
		Confirmation:   attendance.Confirmation(req.Confirmation),
		Type:           attendance.Type(req.AttendanceType),
		ForgotJerseys:  req.ForgotJerseys,
		WashedJerseys:  req.WashedJerseys,
		StaysForSocial: req.StaysForSocial,
	})
	if err != nil {
		h.fail(ctx, w, "record attendance failed", err, "match_id", r.PathValue("matchID"))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, attendanceToDTO(saved))
}

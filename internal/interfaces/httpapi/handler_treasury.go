package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/outletfc/club-treasury/internal/domain/calendar"
	"github.com/outletfc/club-treasury/internal/domain/fee"
	"github.com/outletfc/club-treasury/internal/domain/payment"
	"github.com/outletfc/club-treasury/internal/domain/player"
	"github.com/outletfc/club-treasury/internal/usecase"
)

func (h *Handler) GetTreasuryOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTreasuryOverview")
	defer span.End()

	month, err := parseOptionalMonth(r.URL.Query().Get("month"), "month")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	overview, err := h.treasuryService.Overview(ctx, month)
	if err != nil {
		h.fail(ctx, w, "get treasury overview failed", err, "month", month.String())
		return
	}

	writeSuccess(ctx, w, http.StatusOK, overviewToDTO(overview))
}

func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAccounts")
	defer span.End()

	asOf, err := parseOptionalMonth(r.URL.Query().Get("as_of"), "as_of")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	accounts, err := h.treasuryService.ListAccounts(ctx, asOf)
	if err != nil {
		h.fail(ctx, w, "list accounts failed", err)
		return
	}

	items := make([]accountDTO, 0, len(accounts))
	for _, acc := range accounts {
		items = append(items, accountToDTO(acc))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPlayerAccount(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerAccount")
	defer span.End()

	playerID := r.PathValue("playerID")
	asOf, err := parseOptionalMonth(r.URL.Query().Get("as_of"), "as_of")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	account, err := h.treasuryService.GetPlayerAccount(ctx, playerID, asOf)
	if err != nil {
		h.fail(ctx, w, "get player account failed", err, "player_id", playerID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, accountToDTO(account))
}

func (h *Handler) GetMonthlyStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMonthlyStats")
	defer span.End()

	month, err := parseMonth(r.PathValue("month"), "month")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	stats, err := h.treasuryService.GetMonthlyStats(ctx, month)
	if err != nil {
		h.fail(ctx, w, "get monthly stats failed", err, "month", month.String())
		return
	}

	writeSuccess(ctx, w, http.StatusOK, monthlyStatsToDTO(stats))
}

func (h *Handler) FinalizeClosing(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FinalizeClosing")
	defer span.End()

	month, err := parseMonth(r.PathValue("month"), "month")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req finalizeClosingRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	closing, err := h.treasuryService.FinalizeClosing(ctx, usecase.FinalizeClosingInput{
		Month:      month,
		AmountPaid: req.AmountPaid,
		Notes:      req.Notes,
	})
	if err != nil {
		h.fail(ctx, w, "finalize closing failed", err, "month", month.String())
		return
	}

	writeSuccess(ctx, w, http.StatusOK, closingToDTO(closing))
}

func (h *Handler) UpsertFees(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpsertFees")
	defer span.End()

	month, err := parseMonth(r.PathValue("month"), "month")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req upsertFeesRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	amounts := make(map[fee.Category]decimal.Decimal, len(req.Amounts))
	for category, amount := range req.Amounts {
		amounts[fee.Category(strings.ToLower(strings.TrimSpace(category)))] = amount
	}

	entries, err := h.treasuryService.UpsertFees(ctx, usecase.UpsertFeesInput{
		Month:          month,
		Amounts:        amounts,
		IsGroupPayment: req.IsGroupPayment,
	})
	if err != nil {
		h.fail(ctx, w, "upsert fees failed", err, "month", month.String())
		return
	}

	writeSuccess(ctx, w, http.StatusOK, feesToDTO(entries))
}

func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPayments")
	defer span.End()

	filter, err := paymentFilterFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	payments, err := h.treasuryService.ListPayments(ctx, filter)
	if err != nil {
		h.fail(ctx, w, "list payments failed", err)
		return
	}

	items := make([]paymentDTO, 0, len(payments))
	for _, p := range payments {
		items = append(items, paymentToDTO(p))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordPayment")
	defer span.End()

	var req recordPaymentRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	month, err := parseMonth(req.Month, "month")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.RecordPaymentInput{
		ID:               req.ID,
		PlayerID:         req.PlayerID,
		Month:            month,
		Amount:           req.AmountTotal,
		IsFinancedByTeam: req.IsFinancedByTeam,
		ReimbursedToTeam: req.ReimbursedToTeam,
	}
	if req.PaymentDate != nil {
		input.PaymentDate = req.PaymentDate.UTC()
	}

	saved, err := h.treasuryService.RecordPayment(ctx, input)
	if err != nil {
		h.fail(ctx, w, "record payment failed", err, "player_id", req.PlayerID)
		return
	}

	status := http.StatusCreated
	if strings.TrimSpace(req.ID) != "" {
		status = http.StatusOK
	}
	writeSuccess(ctx, w, status, paymentToDTO(saved))
}

func (h *Handler) MarkPaymentReimbursed(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MarkPaymentReimbursed")
	defer span.End()

	paymentID := r.PathValue("paymentID")
	saved, err := h.treasuryService.MarkReimbursed(ctx, paymentID)
	if err != nil {
		h.fail(ctx, w, "mark payment reimbursed failed", err, "payment_id", paymentID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, paymentToDTO(saved))
}

func (h *Handler) SetMonthlyStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetMonthlyStatus")
	defer span.End()

	month, err := parseMonth(r.PathValue("month"), "month")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req setMonthlyStatusRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	saved, err := h.treasuryService.SetMonthlyStatus(ctx, usecase.SetMonthlyStatusInput{
		PlayerID: r.PathValue("playerID"),
		Month:    month,
		Status:   player.Status(req.Status),
	})
	if err != nil {
		h.fail(ctx, w, "set monthly status failed", err, "player_id", r.PathValue("playerID"))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, monthlyStatusToDTO(saved))
}

func paymentFilterFromQuery(r *http.Request) (payment.Filter, error) {
	query := r.URL.Query()
	var filter payment.Filter

	if playerID := strings.TrimSpace(query.Get("player_id")); playerID != "" {
		filter.PlayerID = &playerID
	}
	if raw := strings.TrimSpace(query.Get("month")); raw != "" {
		month, err := parseMonth(raw, "month")
		if err != nil {
			return payment.Filter{}, err
		}
		filter.Month = &month
	}

	var err error
	if filter.Year, err = parseOptionalInt(query.Get("year"), "year"); err != nil {
		return payment.Filter{}, err
	}
	if filter.Year != nil {
		if _, err := calendar.New(*filter.Year, 1); err != nil {
			return payment.Filter{}, fmt.Errorf("%w: year: %v", usecase.ErrInvalidInput, err)
		}
	}
	if filter.Financed, err = parseOptionalBool(query.Get("financed"), "financed"); err != nil {
		return payment.Filter{}, err
	}
	if filter.Reimbursed, err = parseOptionalBool(query.Get("reimbursed"), "reimbursed"); err != nil {
		return payment.Filter{}, err
	}
	return filter, nil
}

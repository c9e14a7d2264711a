package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/outletfc/club-treasury/internal/domain/ranking"
	"github.com/outletfc/club-treasury/internal/infrastructure/repository/memory"
	idgen "github.com/outletfc/club-treasury/internal/platform/id"
	"github.com/outletfc/club-treasury/internal/platform/logging"
	"github.com/outletfc/club-treasury/internal/usecase"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := logging.NewNop()
	treasurySvc := usecase.NewTreasuryService(
		memory.NewPlayerRepository(memory.SeedPlayers()),
		memory.NewFeeRepository(memory.SeedFees()),
		memory.NewMonthlyStatusRepository(nil),
		memory.NewPaymentRepository(memory.SeedPayments()),
		memory.NewClubClosingRepository(nil),
		idgen.NewUUIDGenerator(),
		usecase.TreasuryConfig{SeasonStart: memory.SeedMonth, Workers: 2},
		logger,
	)
	rankingSvc := usecase.NewRankingService(
		treasurySvc,
		memory.NewAttendanceRepository(memory.SeedAttendance()),
		ranking.DefaultRules(),
		nil,
		idgen.NewUUIDGenerator(),
		logger,
	)
	return NewRouter(NewHandler(treasurySvc, rankingSvc, logger), logger, []string{"*"})
}

type envelope struct {
	APIVersion string         `json:"apiVersion"`
	Data       any            `json:"data"`
	Error      map[string]any `json:"error"`
}

func doRequest(t *testing.T, router http.Handler, method, target, body string, headers ...string) (int, envelope) {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	var req *http.Request
	if reader != nil {
		req = httptest.NewRequest(method, target, reader)
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var out envelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal %s %s response: %v (body=%s)", method, target, err, rec.Body.String())
	}
	return rec.Code, out
}

func dataObject(t *testing.T, env envelope) map[string]any {
	t.Helper()
	obj, ok := env.Data.(map[string]any)
	if !ok {
		t.Fatalf("expected object data, got %T", env.Data)
	}
	return obj
}

func TestHandler_Healthz(t *testing.T) {
	router := newTestRouter(t)

	status, env := doRequest(t, router, http.MethodGet, "/healthz", "")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if got := dataObject(t, env)["status"]; got != "ok" {
		t.Fatalf("unexpected health payload: %v", env.Data)
	}
}

func TestHandler_GetPlayerAccount(t *testing.T) {
	router := newTestRouter(t)

	status, env := doRequest(t, router, http.MethodGet, "/v1/treasury/accounts/"+memory.PlayerIDCaptain+"?as_of=2025-03", "")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d (%v)", status, env.Error)
	}

	account := dataObject(t, env)
	if account["total_debt"] != "5000" {
		t.Fatalf("unexpected total debt: %v", account["total_debt"])
	}
	if account["financed_debt"] != "5000" {
		t.Fatalf("unexpected financed debt: %v", account["financed_debt"])
	}
	months, ok := account["months"].([]any)
	if !ok || len(months) != 3 {
		t.Fatalf("unexpected months: %v", account["months"])
	}
	latest := months[0].(map[string]any)
	if latest["month"] != "2025-03" || latest["status"] != "debt" {
		t.Fatalf("expected newest month first, got %v", latest)
	}
}

func TestHandler_GetPlayerAccount_Errors(t *testing.T) {
	router := newTestRouter(t)

	status, _ := doRequest(t, router, http.MethodGet, "/v1/treasury/accounts/ghost?as_of=2025-03", "")
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown player, got %d", status)
	}

	status, env := doRequest(t, router, http.MethodGet, "/v1/treasury/accounts/"+memory.PlayerIDCaptain+"?as_of=2025-13", "")
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid month, got %d", status)
	}
	if env.Error["status"] != "INVALID_ARGUMENT" {
		t.Fatalf("unexpected error status: %v", env.Error["status"])
	}
}

func TestHandler_RecordPaymentAndReimburse(t *testing.T) {
	router := newTestRouter(t)

	status, env := doRequest(t, router, http.MethodPost, "/v1/treasury/payments",
		`{"player_id":"player-winger","month":"2025-03","amount_total":3000,"is_financed_by_team":true}`)
	if status != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%v)", status, env.Error)
	}
	created := dataObject(t, env)
	paymentID, _ := created["id"].(string)
	if paymentID == "" {
		t.Fatalf("expected generated payment id")
	}
	if created["amount_total"] != "3000" || created["is_financed_by_team"] != true {
		t.Fatalf("unexpected payment: %v", created)
	}

	status, env = doRequest(t, router, http.MethodPost, "/v1/treasury/payments/"+paymentID+"/reimburse", "")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d (%v)", status, env.Error)
	}
	if dataObject(t, env)["reimbursed_to_team"] != true {
		t.Fatalf("expected reimbursed payment: %v", env.Data)
	}

	status, env = doRequest(t, router, http.MethodGet, "/v1/treasury/payments?player_id=player-winger&financed=true", "")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	items, ok := env.Data.([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("expected one financed winger payment, got %v", env.Data)
	}
}

func TestHandler_RecordPayment_Rejections(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		name string
		body string
		want int
	}{
		{name: "negative amount", body: `{"player_id":"player-winger","month":"2025-03","amount_total":-1}`, want: http.StatusBadRequest},
		{name: "missing player", body: `{"month":"2025-03","amount_total":10}`, want: http.StatusBadRequest},
		{name: "bad month", body: `{"player_id":"player-winger","month":"March","amount_total":10}`, want: http.StatusBadRequest},
		{name: "unknown field", body: `{"player_id":"player-winger","month":"2025-03","amount":10}`, want: http.StatusBadRequest},
		{name: "unknown player", body: `{"player_id":"ghost","month":"2025-03","amount_total":10}`, want: http.StatusNotFound},
		{name: "unknown payment id", body: `{"id":"nope","player_id":"player-winger","month":"2025-03","amount_total":10}`, want: http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, _ := doRequest(t, router, http.MethodPost, "/v1/treasury/payments", tc.body)
			if status != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, status)
			}
		})
	}
}

func TestHandler_FinalizeClosing(t *testing.T) {
	router := newTestRouter(t)

	status, env := doRequest(t, router, http.MethodPut, "/v1/treasury/months/2025-01/closing", `{"amount_paid":"9000","notes":" cancha "}`)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d (%v)", status, env.Error)
	}
	closing := dataObject(t, env)
	if closing["collected_total"] != "14000" || closing["notes"] != "cancha" {
		t.Fatalf("unexpected closing: %v", closing)
	}

	status, env = doRequest(t, router, http.MethodGet, "/v1/treasury/months/2025-01", "")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	stats := dataObject(t, env)
	if stats["has_closed"] != true || stats["amount_paid_to_club"] != "9000" {
		t.Fatalf("expected closing to override stats: %v", stats)
	}

	status, _ = doRequest(t, router, http.MethodPut, "/v1/treasury/months/2025-01/closing", `{"amount_paid":"-1"}`)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative amount, got %d", status)
	}
}

func TestHandler_UpsertFeesAndMonthlyStatus(t *testing.T) {
	router := newTestRouter(t)

	status, env := doRequest(t, router, http.MethodPut, "/v1/treasury/months/2025-04/fees",
		`{"amounts":{"activo":"5500","dt":"6500"},"is_group_payment":true}`)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d (%v)", status, env.Error)
	}
	if items, ok := env.Data.([]any); !ok || len(items) != 2 {
		t.Fatalf("expected two fee entries, got %v", env.Data)
	}

	status, _ = doRequest(t, router, http.MethodPut, "/v1/treasury/months/2025-04/fees", `{"amounts":{"vip":"1"}}`)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown category, got %d", status)
	}

	status, env = doRequest(t, router, http.MethodGet, "/v1/treasury/overview?month=2025-04", "")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	overview := dataObject(t, env)
	if overview["is_group_payment"] != true || overview["monthly_savings"] != "5500" {
		t.Fatalf("unexpected overview: %v", overview)
	}

	status, env = doRequest(t, router, http.MethodPut, "/v1/players/player-keeper/monthly-status/2025-02", `{"status":"activo"}`)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d (%v)", status, env.Error)
	}
	if dataObject(t, env)["status"] != "activo" {
		t.Fatalf("unexpected status entry: %v", env.Data)
	}

	status, _ = doRequest(t, router, http.MethodPut, "/v1/players/player-keeper/monthly-status/2025-02", `{"status":"dt"}`)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for dt override, got %d", status)
	}
}

func TestHandler_RankingsAndPardon(t *testing.T) {
	router := newTestRouter(t)

	status, env := doRequest(t, router, http.MethodGet, "/v1/rankings", "")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d (%v)", status, env.Error)
	}
	board := dataObject(t, env)
	entries, ok := board["entries"].([]any)
	if !ok || len(entries) != 4 {
		t.Fatalf("unexpected entries: %v", board["entries"])
	}

	status, env = doRequest(t, router, http.MethodGet, "/v1/rankings/"+memory.PlayerIDKeeper+"/events", "")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if events, ok := env.Data.([]any); !ok || len(events) == 0 {
		t.Fatalf("expected keeper events, got %v", env.Data)
	}

	eventID := ranking.EventID(ranking.SourceAttendance, "seed-att-3", "absent")
	status, _ = doRequest(t, router, http.MethodPost, "/v1/rankings/events/"+eventID+"/pardon", `{"reason":"Lesionado"}`,
		actorHeader, memory.PlayerIDCaptain)
	if status != http.StatusForbidden {
		t.Fatalf("expected 403 for plain player, got %d", status)
	}

	status, env = doRequest(t, router, http.MethodPost, "/v1/rankings/events/"+eventID+"/pardon", `{"reason":"Lesionado"}`,
		actorHeader, memory.PlayerIDDirector)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d (%v)", status, env.Error)
	}
	if dataObject(t, env)["player_id"] != memory.PlayerIDKeeper {
		t.Fatalf("unexpected pardoned entry: %v", env.Data)
	}

	missing := ranking.EventID(ranking.SourceMissing, memory.PlayerIDKeeper, "2025-01")
	status, _ = doRequest(t, router, http.MethodPost, "/v1/rankings/events/"+missing+"/pardon", "")
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing-payment event, got %d", status)
	}
}

func TestHandler_RecordAttendance(t *testing.T) {
	router := newTestRouter(t)

	status, env := doRequest(t, router, http.MethodPut, "/v1/matches/seed-match-2/attendance/"+memory.PlayerIDWinger,
		`{"match_date":"2025-02-09T19:00:00Z","opponent":"Atlético Norte","confirmation":"confirmed","attendance_type":"present","washed_jerseys":true}`)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d (%v)", status, env.Error)
	}
	rec := dataObject(t, env)
	if rec["match_id"] != "seed-match-2" || rec["attendance_type"] != "present" {
		t.Fatalf("unexpected attendance: %v", rec)
	}

	status, _ = doRequest(t, router, http.MethodPut, "/v1/matches/seed-match-2/attendance/"+memory.PlayerIDWinger,
		`{"match_date":"2025-02-09T19:00:00Z","attendance_type":"sleeping"}`)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown attendance type, got %d", status)
	}
}

func TestRecoverPanic_WritesInternalError(t *testing.T) {
	handler := recoverPanic(logging.NewNop(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/rankings", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

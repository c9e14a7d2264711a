package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerTreasuryRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/treasury/overview", handler.GetTreasuryOverview)
	mux.HandleFunc("GET /v1/treasury/accounts", handler.ListAccounts)
	mux.HandleFunc("GET /v1/treasury/accounts/{playerID}", handler.GetPlayerAccount)
	mux.HandleFunc("GET /v1/treasury/months/{month}", handler.GetMonthlyStats)
	mux.HandleFunc("PUT /v1/treasury/months/{month}/closing", handler.FinalizeClosing)
	mux.HandleFunc("PUT /v1/treasury/months/{month}/fees", handler.UpsertFees)
	mux.HandleFunc("GET /v1/treasury/payments", handler.ListPayments)
	mux.HandleFunc("POST /v1/treasury/payments", handler.RecordPayment)
	mux.HandleFunc("POST /v1/treasury/payments/{paymentID}/reimburse", handler.MarkPaymentReimbursed)
	mux.HandleFunc("PUT /v1/players/{playerID}/monthly-status/{month}", handler.SetMonthlyStatus)
}

func registerRankingRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/rankings", handler.ListRankings)
	mux.HandleFunc("GET /v1/rankings/{playerID}/events", handler.ListPlayerEvents)
	mux.HandleFunc("POST /v1/rankings/events/{eventID}/pardon", handler.PardonEvent)
	mux.HandleFunc("PUT /v1/matches/{matchID}/attendance/{playerID}", handler.RecordAttendance)
}

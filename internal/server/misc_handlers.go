package server

import (
	"net/http"
	"time"

	"github.com/globalpocket/backend/internal/calculator"
	"github.com/globalpocket/backend/internal/metrics"
	"github.com/globalpocket/backend/internal/middleware"
	"github.com/globalpocket/backend/internal/rates"
	"github.com/globalpocket/backend/internal/service"
	"github.com/shopspring/decimal"
)

// handleSummary computes the dashboard totals from the current collections.
// Nothing is persisted; the numbers are recomputed on every call.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	accounts, err := s.accounts.List(r.Context(), ownerID)
	if err != nil {
		respondError(w, err)
		return
	}
	debts, err := s.debts.List(r.Context(), ownerID)
	if err != nil {
		respondError(w, err)
		return
	}
	holdings, err := s.holdings.List(r.Context(), ownerID)
	if err != nil {
		respondError(w, err)
		return
	}

	summary := calculator.Summarize(accounts, debts)
	holdingsValue := calculator.HoldingsValue(holdings, s.rates.CryptoPrices())

	writeJSON(w, http.StatusOK, struct {
		calculator.Summary
		HoldingsValueUSD decimal.Decimal `json:"holdingsValueUsd"`
	}{Summary: summary, HoldingsValueUSD: holdingsValue})
}

// handleMigrate imports the client's pre-authentication local cache.
func (s *Server) handleMigrate(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	var body struct {
		Accounts []service.LocalAccount `json:"accounts"`
		Debts    []service.LocalDebt    `json:"debts"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.migrations.Import(r.Context(), ownerID, body.Accounts, body.Debts)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type ratesResponse struct {
	Rates     interface{} `json:"rates"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// handleFiatRates serves the latest cached fiat snapshot.
func (s *Server) handleFiatRates(w http.ResponseWriter, r *http.Request) {
	fiat, updatedAt := s.rates.Fiat()
	if fiat == nil {
		fiat = []rates.FiatRate{}
	}
	writeJSON(w, http.StatusOK, ratesResponse{Rates: fiat, UpdatedAt: updatedAt})
}

// handleCryptoRates serves the latest cached crypto snapshot.
func (s *Server) handleCryptoRates(w http.ResponseWriter, r *http.Request) {
	crypto, updatedAt := s.rates.Crypto()
	if crypto == nil {
		crypto = []rates.CryptoRate{}
	}
	writeJSON(w, http.StatusOK, ratesResponse{Rates: crypto, UpdatedAt: updatedAt})
}

// handleRequestDemo sends the demo-request notification, once per email.
// It is fully independent of the authenticated data path.
func (s *Server) handleRequestDemo(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if body.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	sent, err := s.store.IsDemoRequestSent(r.Context(), body.Email)
	if err != nil {
		respondError(w, err)
		return
	}
	if sent {
		writeJSON(w, http.StatusOK, map[string]string{"message": "demo request already sent"})
		return
	}

	if err := s.mailer.SendDemoRequest(r.Context(), body.Email); err != nil {
		s.logger.Error("Demo request send failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to send demo request")
		return
	}

	if err := s.store.SetDemoRequestSent(r.Context(), body.Email); err != nil {
		respondError(w, err)
		return
	}

	metrics.DemoRequests.Inc()
	writeJSON(w, http.StatusOK, map[string]string{"message": "demo request sent successfully"})
}

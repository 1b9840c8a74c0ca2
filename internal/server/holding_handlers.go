package server

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/globalpocket/backend/internal/middleware"
	"github.com/globalpocket/backend/internal/models"
)

type holdingRequest struct {
	Symbol string          `json:"symbol"`
	Amount decimal.Decimal `json:"amount"`
}

func (s *Server) handleListHoldings(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	holdings, err := s.holdings.List(r.Context(), ownerID)
	if err != nil {
		respondError(w, err)
		return
	}
	if holdings == nil {
		holdings = []models.CryptoHolding{}
	}

	writeJSON(w, http.StatusOK, holdings)
}

func (s *Server) handleCreateHolding(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	var body holdingRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	holding := &models.CryptoHolding{Symbol: body.Symbol, Amount: body.Amount}
	created, err := s.holdings.Create(r.Context(), ownerID, holding)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateHolding(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	var body holdingRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	holding := &models.CryptoHolding{
		ID:     r.PathValue("id"),
		Symbol: body.Symbol,
		Amount: body.Amount,
	}
	if err := s.holdings.Update(r.Context(), ownerID, holding); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, holding)
}

func (s *Server) handleDeleteHolding(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	if err := s.holdings.Delete(r.Context(), ownerID, r.PathValue("id")); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "holding deleted"})
}

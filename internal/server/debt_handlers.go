package server

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/globalpocket/backend/internal/middleware"
	"github.com/globalpocket/backend/internal/models"
)

type debtRequest struct {
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	AccountID string          `json:"accountId"`
}

func (s *Server) handleListDebts(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	debts, err := s.debts.List(r.Context(), ownerID)
	if err != nil {
		respondError(w, err)
		return
	}
	if debts == nil {
		debts = []models.Debt{}
	}

	writeJSON(w, http.StatusOK, debts)
}

func (s *Server) handleCreateDebt(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	var body debtRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	debt := &models.Debt{Name: body.Name, Amount: body.Amount, AccountID: body.AccountID}
	created, err := s.debts.Create(r.Context(), ownerID, debt)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateDebt(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	var body debtRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	debt := &models.Debt{
		ID:        r.PathValue("id"),
		Name:      body.Name,
		Amount:    body.Amount,
		AccountID: body.AccountID,
	}
	if err := s.debts.Update(r.Context(), ownerID, debt); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, debt)
}

func (s *Server) handleDeleteDebt(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	if err := s.debts.Delete(r.Context(), ownerID, r.PathValue("id")); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "debt deleted"})
}

package server

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/globalpocket/backend/internal/middleware"
	"github.com/globalpocket/backend/internal/models"
)

type accountRequest struct {
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	accounts, err := s.accounts.List(r.Context(), ownerID)
	if err != nil {
		respondError(w, err)
		return
	}
	if accounts == nil {
		accounts = []models.Account{}
	}

	writeJSON(w, http.StatusOK, accounts)
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	var body accountRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	account, err := s.accounts.Create(r.Context(), ownerID, body.Name, body.Balance)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, account)
}

func (s *Server) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	var body accountRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	account := &models.Account{
		ID:      r.PathValue("id"),
		Name:    body.Name,
		Balance: body.Balance,
	}
	if err := s.accounts.Update(r.Context(), ownerID, account); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, account)
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	if err := s.accounts.Delete(r.Context(), ownerID, r.PathValue("id")); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "account deleted"})
}

package server

import (
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/globalpocket/backend/internal/middleware"
	"github.com/globalpocket/backend/internal/models"
	"github.com/globalpocket/backend/internal/service"
)

// recordTransactionRequest carries the amount as a JSON string or number;
// non-numeric input fails decoding and is rejected before any I/O.
type recordTransactionRequest struct {
	Amount      decimal.Decimal        `json:"amount"`
	Type        models.TransactionType `json:"type"`
	Description string                 `json:"description"`
}

type recordTransactionResponse struct {
	Account     *models.Account     `json:"account"`
	Transaction *models.Transaction `json:"transaction"`
}

// handleRecordTransaction is the coordinator endpoint: it adjusts the account
// balance and appends the paired transaction atomically.
func (s *Server) handleRecordTransaction(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())
	accountID := r.PathValue("id")

	var body recordTransactionRequest
	if err := decodeJSON(r, &body); err != nil {
		// Includes non-numeric amounts: rejected before any I/O.
		writeError(w, http.StatusBadRequest, service.ErrInvalidAmount.Error())
		return
	}

	account, txn, err := s.ledger.RecordTransaction(
		r.Context(), ownerID, accountID, body.Amount, body.Type, body.Description,
	)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, recordTransactionResponse{
		Account:     account,
		Transaction: txn,
	})
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = parsed
	}

	txns, err := s.ledger.ListTransactions(r.Context(), ownerID, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	if txns == nil {
		txns = []models.Transaction{}
	}

	writeJSON(w, http.StatusOK, txns)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	if err := s.ledger.DeleteTransaction(r.Context(), ownerID, r.PathValue("id")); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "transaction deleted"})
}

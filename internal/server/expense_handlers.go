package server

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/globalpocket/backend/internal/middleware"
	"github.com/globalpocket/backend/internal/models"
)

type expenseRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	IsPaid      bool            `json:"isPaid"`
}

func (r expenseRequest) toModel(id string) *models.MonthlyExpense {
	date := r.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	return &models.MonthlyExpense{
		ID:          id,
		Description: r.Description,
		Amount:      r.Amount,
		Date:        date,
		IsPaid:      r.IsPaid,
	}
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	expenses, err := s.expenses.List(r.Context(), ownerID)
	if err != nil {
		respondError(w, err)
		return
	}
	if expenses == nil {
		expenses = []models.MonthlyExpense{}
	}

	writeJSON(w, http.StatusOK, expenses)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	var body expenseRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	expense, err := s.expenses.Create(r.Context(), ownerID, body.toModel(""))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, expense)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	var body expenseRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	expense := body.toModel(r.PathValue("id"))
	if err := s.expenses.Update(r.Context(), ownerID, expense); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, expense)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())

	if err := s.expenses.Delete(r.Context(), ownerID, r.PathValue("id")); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "expense deleted"})
}

// Package server exposes the REST/JSON API over net/http.
package server

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/globalpocket/backend/internal/auth"
	"github.com/globalpocket/backend/internal/middleware"
	"github.com/globalpocket/backend/internal/notify"
	"github.com/globalpocket/backend/internal/rates"
	"github.com/globalpocket/backend/internal/service"
	"github.com/globalpocket/backend/internal/storage"
)

// Server wires the services to HTTP routes.
type Server struct {
	store      storage.Store
	authSvc    *service.AuthService
	accounts   *service.AccountService
	debts      *service.DebtService
	ledger     *service.LedgerService
	migrations *service.MigrationService
	expenses   *service.ExpenseService
	holdings   *service.HoldingService
	rates      *rates.Poller
	mailer     notify.Mailer
	jwtManager *auth.JWTManager
	staticDir  string
	logger     *slog.Logger
}

// Options collects the dependencies for New.
type Options struct {
	Store      storage.Store
	AuthSvc    *service.AuthService
	Accounts   *service.AccountService
	Debts      *service.DebtService
	Ledger     *service.LedgerService
	Migrations *service.MigrationService
	Expenses   *service.ExpenseService
	Holdings   *service.HoldingService
	Rates      *rates.Poller
	Mailer     notify.Mailer
	JWTManager *auth.JWTManager
	StaticDir  string
	Logger     *slog.Logger
}

// New creates a server from its dependencies.
func New(opts Options) *Server {
	return &Server{
		store:      opts.Store,
		authSvc:    opts.AuthSvc,
		accounts:   opts.Accounts,
		debts:      opts.Debts,
		ledger:     opts.Ledger,
		migrations: opts.Migrations,
		expenses:   opts.Expenses,
		holdings:   opts.Holdings,
		rates:      opts.Rates,
		mailer:     opts.Mailer,
		jwtManager: opts.JWTManager,
		staticDir:  opts.StaticDir,
		logger:     opts.Logger,
	}
}

// Handler builds the full route table with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Public routes.
	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/logout", s.handleLogout)
	mux.HandleFunc("POST /api/auth/reset-password", s.handleRequestPasswordReset)
	mux.HandleFunc("POST /api/auth/reset-password/confirm", s.handleConfirmPasswordReset)
	mux.HandleFunc("POST /api/request-demo", s.handleRequestDemo)
	mux.HandleFunc("GET /api/rates/fiat", s.handleFiatRates)
	mux.HandleFunc("GET /api/rates/crypto", s.handleCryptoRates)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Authenticated routes.
	authed := middleware.RequireAuth(s.jwtManager)
	protected := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, authed(h))
	}

	protected("GET /api/me", s.handleCurrentUser)

	protected("GET /api/accounts", s.handleListAccounts)
	protected("POST /api/accounts", s.handleCreateAccount)
	protected("PUT /api/accounts/{id}", s.handleUpdateAccount)
	protected("DELETE /api/accounts/{id}", s.handleDeleteAccount)
	protected("POST /api/accounts/{id}/transactions", s.handleRecordTransaction)

	protected("GET /api/debts", s.handleListDebts)
	protected("POST /api/debts", s.handleCreateDebt)
	protected("PUT /api/debts/{id}", s.handleUpdateDebt)
	protected("DELETE /api/debts/{id}", s.handleDeleteDebt)

	protected("GET /api/transactions", s.handleListTransactions)
	protected("DELETE /api/transactions/{id}", s.handleDeleteTransaction)

	protected("GET /api/expenses", s.handleListExpenses)
	protected("POST /api/expenses", s.handleCreateExpense)
	protected("PUT /api/expenses/{id}", s.handleUpdateExpense)
	protected("DELETE /api/expenses/{id}", s.handleDeleteExpense)

	protected("GET /api/holdings", s.handleListHoldings)
	protected("POST /api/holdings", s.handleCreateHolding)
	protected("PUT /api/holdings/{id}", s.handleUpdateHolding)
	protected("DELETE /api/holdings/{id}", s.handleDeleteHolding)

	protected("GET /api/summary", s.handleSummary)
	protected("POST /api/migrate", s.handleMigrate)

	// Static file fallback for the SPA.
	mux.HandleFunc("/", s.handleStatic)

	return middleware.Logging(middleware.CORS(mux))
}

// handleStatic serves the frontend build, falling back to index.html for
// client-side routes. API paths never reach the fallback.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		http.NotFound(w, r)
		return
	}
	if s.staticDir == "" {
		http.NotFound(w, r)
		return
	}

	urlPath := r.URL.Path
	if urlPath == "/" {
		urlPath = "/index.html"
	}

	filePath := filepath.Join(s.staticDir, filepath.Clean(urlPath))
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(s.staticDir, "index.html"))
		return
	}

	http.ServeFile(w, r, filePath)
}

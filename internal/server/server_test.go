package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globalpocket/backend/internal/auth"
	"github.com/globalpocket/backend/internal/rates"
	"github.com/globalpocket/backend/internal/service"
	"github.com/globalpocket/backend/internal/storage/sqlite"
)

// fakeMailer records sends instead of calling a mail API.
type fakeMailer struct {
	demoEmails  []string
	resetTokens map[string]string
}

func (m *fakeMailer) SendDemoRequest(_ context.Context, email string) error {
	m.demoEmails = append(m.demoEmails, email)
	return nil
}

func (m *fakeMailer) SendPasswordReset(_ context.Context, email, token string) error {
	if m.resetTokens == nil {
		m.resetTokens = make(map[string]string)
	}
	m.resetTokens[email] = token
	return nil
}

type testEnv struct {
	srv    *httptest.Server
	mailer *fakeMailer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	logger := slog.New(slog.DiscardHandler)
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store)
	mailer := &fakeMailer{}
	poller := rates.NewPoller(rates.NewClient("", ""), time.Minute, logger)

	server := New(Options{
		Store:      store,
		AuthSvc:    service.NewAuthService(authenticator, jwtManager, mailer, logger),
		Accounts:   service.NewAccountService(store, logger),
		Debts:      service.NewDebtService(store, logger),
		Ledger:     service.NewLedgerService(store, logger),
		Migrations: service.NewMigrationService(store, logger),
		Expenses:   service.NewExpenseService(store, logger),
		Holdings:   service.NewHoldingService(store, logger),
		Rates:      poller,
		Mailer:     mailer,
		JWTManager: jwtManager,
		Logger:     logger,
	})

	srv := httptest.NewServer(server.Handler())
	t.Cleanup(srv.Close)

	return &testEnv{srv: srv, mailer: mailer}
}

// do sends a JSON request and decodes the JSON response into out (when non-nil).
func (e *testEnv) do(t *testing.T, method, path, token string, body, out interface{}) int {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, e.srv.URL+path, reqBody)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (e *testEnv) register(t *testing.T, email string) string {
	t.Helper()

	var session struct {
		Token string `json:"token"`
	}
	status := e.do(t, http.MethodPost, "/api/auth/register", "",
		map[string]string{"email": email, "password": "password123"}, &session)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, session.Token)

	return session.Token
}

func TestAPIEndToEnd(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "alice@example.com")

	var account struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Balance string `json:"balance"`
	}
	status := env.do(t, http.MethodPost, "/api/accounts", token,
		map[string]interface{}{"name": "Cash", "balance": "100"}, &account)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, account.ID)

	t.Run("record deposit", func(t *testing.T) {
		var result struct {
			Account struct {
				Balance string `json:"balance"`
			} `json:"account"`
			Transaction struct {
				ID          string `json:"id"`
				AccountName string `json:"accountName"`
				Type        string `json:"type"`
			} `json:"transaction"`
		}
		status := env.do(t, http.MethodPost, fmt.Sprintf("/api/accounts/%s/transactions", account.ID), token,
			map[string]interface{}{"amount": "50", "type": "deposit", "description": "salary"}, &result)
		require.Equal(t, http.StatusCreated, status)
		assert.Equal(t, "150", result.Account.Balance)
		assert.Equal(t, "Cash", result.Transaction.AccountName)
		assert.NotEmpty(t, result.Transaction.ID)
	})

	t.Run("non-numeric amount rejected", func(t *testing.T) {
		status := env.do(t, http.MethodPost, fmt.Sprintf("/api/accounts/%s/transactions", account.ID), token,
			map[string]interface{}{"amount": "lots", "type": "deposit"}, nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("zero amount rejected", func(t *testing.T) {
		status := env.do(t, http.MethodPost, fmt.Sprintf("/api/accounts/%s/transactions", account.ID), token,
			map[string]interface{}{"amount": "0", "type": "withdrawal"}, nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("summary", func(t *testing.T) {
		var debt struct {
			ID string `json:"id"`
		}
		status := env.do(t, http.MethodPost, "/api/debts", token,
			map[string]interface{}{"name": "Loan", "amount": "30"}, &debt)
		require.Equal(t, http.StatusCreated, status)

		var summary struct {
			TotalBalance string `json:"totalBalance"`
			TotalDebt    string `json:"totalDebt"`
			NetBalance   string `json:"netBalance"`
		}
		status = env.do(t, http.MethodGet, "/api/summary", token, nil, &summary)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "150", summary.TotalBalance)
		assert.Equal(t, "30", summary.TotalDebt)
		assert.Equal(t, "120", summary.NetBalance)
	})

	t.Run("transactions list newest first", func(t *testing.T) {
		var txns []struct {
			Type string `json:"type"`
		}
		status := env.do(t, http.MethodGet, "/api/transactions", token, nil, &txns)
		require.Equal(t, http.StatusOK, status)
		require.Len(t, txns, 1)
	})

	t.Run("delete account with referencing debt", func(t *testing.T) {
		var bank struct {
			ID string `json:"id"`
		}
		status := env.do(t, http.MethodPost, "/api/accounts", token,
			map[string]interface{}{"name": "Bank", "balance": "0"}, &bank)
		require.Equal(t, http.StatusCreated, status)

		status = env.do(t, http.MethodPost, "/api/debts", token,
			map[string]interface{}{"name": "Mortgage", "amount": "10", "accountId": bank.ID}, nil)
		require.Equal(t, http.StatusCreated, status)

		status = env.do(t, http.MethodDelete, "/api/accounts/"+bank.ID, token, nil, nil)
		assert.Equal(t, http.StatusConflict, status)
	})
}

func TestAPIAuthRequired(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/api/accounts", "/api/summary", "/api/transactions"} {
		status := env.do(t, http.MethodGet, path, "", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, status, "path %s", path)
	}

	status := env.do(t, http.MethodGet, "/api/accounts", "garbage-token", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAPIOwnerIsolation(t *testing.T) {
	env := newTestEnv(t)
	aliceToken := env.register(t, "alice@example.com")
	bobToken := env.register(t, "bob@example.com")

	var account struct {
		ID string `json:"id"`
	}
	status := env.do(t, http.MethodPost, "/api/accounts", aliceToken,
		map[string]interface{}{"name": "Cash", "balance": "100"}, &account)
	require.Equal(t, http.StatusCreated, status)

	var bobAccounts []interface{}
	status = env.do(t, http.MethodGet, "/api/accounts", bobToken, nil, &bobAccounts)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, bobAccounts)

	status = env.do(t, http.MethodDelete, "/api/accounts/"+account.ID, bobToken, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAPIRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	t.Run("weak password", func(t *testing.T) {
		status := env.do(t, http.MethodPost, "/api/auth/register", "",
			map[string]string{"email": "a@b.com", "password": "short"}, nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("duplicate email", func(t *testing.T) {
		env.register(t, "alice@example.com")
		status := env.do(t, http.MethodPost, "/api/auth/register", "",
			map[string]string{"email": "alice@example.com", "password": "password123"}, nil)
		assert.Equal(t, http.StatusConflict, status)
	})
}

func TestAPIDemoRequest(t *testing.T) {
	env := newTestEnv(t)

	status := env.do(t, http.MethodPost, "/api/request-demo", "",
		map[string]string{"email": "curious@example.com"}, nil)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, env.mailer.demoEmails, 1)

	t.Run("second request is suppressed", func(t *testing.T) {
		var resp struct {
			Message string `json:"message"`
		}
		status := env.do(t, http.MethodPost, "/api/request-demo", "",
			map[string]string{"email": "curious@example.com"}, &resp)
		require.Equal(t, http.StatusOK, status)
		assert.Len(t, env.mailer.demoEmails, 1, "no second mail")
		assert.Contains(t, resp.Message, "already")
	})

	t.Run("missing email", func(t *testing.T) {
		status := env.do(t, http.MethodPost, "/api/request-demo", "", map[string]string{}, nil)
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestAPIMigrate(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "alice@example.com")

	body := map[string]interface{}{
		"accounts": []map[string]interface{}{
			{"id": "local-1", "name": "Cash", "balance": "100"},
		},
		"debts": []map[string]interface{}{
			{"id": "d-1", "name": "Loan", "amount": "30", "accountId": "local-1"},
			{"id": "d-2", "name": "Orphan", "amount": "5", "accountId": "gone"},
		},
	}

	var result struct {
		AlreadyDone  bool `json:"alreadyDone"`
		Accounts     int  `json:"accounts"`
		Debts        int  `json:"debts"`
		DroppedDebts int  `json:"droppedDebts"`
	}
	status := env.do(t, http.MethodPost, "/api/migrate", token, body, &result)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, result.Accounts)
	assert.Equal(t, 1, result.Debts)
	assert.Equal(t, 1, result.DroppedDebts)

	status = env.do(t, http.MethodPost, "/api/migrate", token, body, &result)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, result.AlreadyDone)
}

func TestAPIPasswordResetFlow(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice@example.com")

	status := env.do(t, http.MethodPost, "/api/auth/reset-password", "",
		map[string]string{"email": "alice@example.com"}, nil)
	require.Equal(t, http.StatusOK, status)
	token := env.mailer.resetTokens["alice@example.com"]
	require.NotEmpty(t, token)

	// Unknown emails get the same response and no mail.
	status = env.do(t, http.MethodPost, "/api/auth/reset-password", "",
		map[string]string{"email": "nobody@example.com"}, nil)
	require.Equal(t, http.StatusOK, status)
	assert.NotContains(t, env.mailer.resetTokens, "nobody@example.com")

	status = env.do(t, http.MethodPost, "/api/auth/reset-password/confirm", "",
		map[string]string{"token": token, "password": "new-password-1"}, nil)
	require.Equal(t, http.StatusOK, status)

	var session struct {
		Token string `json:"token"`
	}
	status = env.do(t, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "alice@example.com", "password": "new-password-1"}, &session)
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, session.Token)
}

func TestAPIRatesEmptySnapshot(t *testing.T) {
	env := newTestEnv(t)

	var resp struct {
		Rates []interface{} `json:"rates"`
	}
	status := env.do(t, http.MethodGet, "/api/rates/fiat", "", nil, &resp)
	require.Equal(t, http.StatusOK, status)
	assert.NotNil(t, resp.Rates)

	status = env.do(t, http.MethodGet, "/api/rates/crypto", "", nil, &resp)
	require.Equal(t, http.StatusOK, status)
}

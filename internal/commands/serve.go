package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/globalpocket/backend/internal/auth"
	"github.com/globalpocket/backend/internal/config"
	"github.com/globalpocket/backend/internal/notify"
	"github.com/globalpocket/backend/internal/rates"
	"github.com/globalpocket/backend/internal/server"
	"github.com/globalpocket/backend/internal/service"
	"github.com/globalpocket/backend/internal/storage/sqlite"
	"github.com/globalpocket/backend/pkg/logging"
)

func newServeCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to YAML config file")

	return cmd
}

func runServe(ctx context.Context, configPath string) error {
	logging.Setup()
	logger := slog.Default()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	logger.Info("Storage initialized", "database", cfg.DBPath)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL.Std())
	authenticator := auth.NewPasswordAuthenticator(store)
	mailer := notify.NewHTTPMailer(cfg.Mail.Endpoint, cfg.Mail.APIKey, cfg.Mail.From, cfg.Mail.DemoRecipient)

	poller := rates.NewPoller(
		rates.NewClient(cfg.Rates.FiatURL, cfg.Rates.CryptoURL),
		cfg.Rates.Interval.Std(),
		logger,
	)

	srv := server.New(server.Options{
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
		StaticDir:  cfg.StaticDir,
		Logger:     logger,
	})

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go poller.Run(ctx)

	// h2c enables HTTP/2 without TLS for clients that support it.
	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: h2c.NewHandler(srv.Handler(), &http2.Server{}),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Shutdown failed", "error", err)
		}
	}()

	logger.Info("Server starting", "address", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	logger.Info("Server stopped")
	return nil
}

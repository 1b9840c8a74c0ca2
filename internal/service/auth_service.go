package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/globalpocket/backend/internal/auth"
	"github.com/globalpocket/backend/internal/models"
)

// ResetNotifier delivers password reset tokens to users.
type ResetNotifier interface {
	SendPasswordReset(ctx context.Context, email, token string) error
}

// AuthService combines the authenticator and token manager into the session
// operations the HTTP layer exposes.
type AuthService struct {
	authenticator *auth.PasswordAuthenticator
	jwtManager    *auth.JWTManager
	notifier      ResetNotifier
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator *auth.PasswordAuthenticator, jwtManager *auth.JWTManager, notifier ResetNotifier, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		notifier:      notifier,
		logger:        logger,
	}
}

// Register creates a new user account and returns it with a session token.
func (s *AuthService) Register(ctx context.Context, email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", auth.ErrInvalidCredentials
	}

	user, err := s.authenticator.Register(ctx, email, password)
	if err != nil {
		s.logger.Warn("Registration failed", "email", email, "error", err)
		return nil, "", err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, "", err
	}

	s.logger.Info("User registered", "user_id", user.ID, "email", user.Email)
	return user, token, nil
}

// Login authenticates a user and returns a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", auth.ErrInvalidCredentials
	}

	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		s.logger.Warn("Login failed", "email", email, "error", err)
		return nil, "", auth.ErrInvalidCredentials
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, "", err
	}

	s.logger.Info("User logged in", "user_id", user.ID, "email", user.Email)
	return user, token, nil
}

// RequestPasswordReset issues a reset token and delivers it by email.
// Unknown emails are reported to the caller as success to avoid leaking which
// addresses have accounts; the attempt is still logged.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	token, err := s.authenticator.RequestReset(ctx, email)
	if errors.Is(err, auth.ErrUnknownEmail) {
		s.logger.Warn("Password reset requested for unknown email", "email", email)
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.notifier.SendPasswordReset(ctx, email, token); err != nil {
		s.logger.Error("Failed to send password reset", "email", email, "error", err)
		return err
	}

	s.logger.Info("Password reset sent", "email", email)
	return nil
}

// ConfirmPasswordReset consumes a reset token and sets the new password.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	return s.authenticator.ConfirmReset(ctx, token, newPassword)
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/globalpocket/backend/internal/models"
	"github.com/globalpocket/backend/internal/storage"
)

// memoryUserStorage is an in-memory UserStorage for tests.
type memoryUserStorage struct {
	users  map[string]*models.User // keyed by ID
	resets map[string]resetEntry   // keyed by token
}

type resetEntry struct {
	userID    string
	expiresAt int64
}

func newMemoryUserStorage() *memoryUserStorage {
	return &memoryUserStorage{
		users:  make(map[string]*models.User),
		resets: make(map[string]resetEntry),
	}
}

func (m *memoryUserStorage) CreateUser(_ context.Context, user *models.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return fmt.Errorf("email taken")
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *memoryUserStorage) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memoryUserStorage) GetUserByID(_ context.Context, id string) (*models.User, error) {
	return m.users[id], nil
}

func (m *memoryUserStorage) UpdateUserPassword(_ context.Context, userID, passwordHash string) error {
	user, ok := m.users[userID]
	if !ok {
		return storage.ErrNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

func (m *memoryUserStorage) CreatePasswordReset(_ context.Context, token, userID string, expiresAt int64) error {
	m.resets[token] = resetEntry{userID: userID, expiresAt: expiresAt}
	return nil
}

func (m *memoryUserStorage) ConsumePasswordReset(_ context.Context, token string) (string, error) {
	entry, ok := m.resets[token]
	if !ok {
		return "", storage.ErrNotFound
	}
	delete(m.resets, token)
	if entry.expiresAt < time.Now().Unix() {
		return "", storage.ErrNotFound
	}
	return entry.userID, nil
}

func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	authenticator := NewPasswordAuthenticator(newMemoryUserStorage())

	user, err := authenticator.Register(ctx, "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("failed to register: %v", err)
	}
	if user.PasswordHash == "password123" {
		t.Error("password stored in plain text")
	}

	t.Run("correct password", func(t *testing.T) {
		got, err := authenticator.Authenticate(ctx, "alice@example.com", "password123")
		if err != nil {
			t.Fatalf("failed to authenticate: %v", err)
		}
		if got.ID != user.ID {
			t.Errorf("got user %s, want %s", got.ID, user.ID)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if _, err := authenticator.Authenticate(ctx, "alice@example.com", "nope-nope"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		if _, err := authenticator.Authenticate(ctx, "bob@example.com", "password123"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("duplicate registration", func(t *testing.T) {
		if _, err := authenticator.Register(ctx, "alice@example.com", "password456"); !errors.Is(err, ErrEmailExists) {
			t.Errorf("expected ErrEmailExists, got %v", err)
		}
	})

	t.Run("weak password", func(t *testing.T) {
		if _, err := authenticator.Register(ctx, "bob@example.com", "1234567"); !errors.Is(err, ErrWeakPassword) {
			t.Errorf("expected ErrWeakPassword, got %v", err)
		}
	})
}

func TestPasswordReset(t *testing.T) {
	ctx := context.Background()
	authenticator := NewPasswordAuthenticator(newMemoryUserStorage())

	if _, err := authenticator.Register(ctx, "alice@example.com", "password123"); err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	t.Run("unknown email", func(t *testing.T) {
		if _, err := authenticator.RequestReset(ctx, "nobody@example.com"); !errors.Is(err, ErrUnknownEmail) {
			t.Errorf("expected ErrUnknownEmail, got %v", err)
		}
	})

	token, err := authenticator.RequestReset(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("failed to request reset: %v", err)
	}

	t.Run("weak replacement password rejected before consuming", func(t *testing.T) {
		if err := authenticator.ConfirmReset(ctx, token, "short"); !errors.Is(err, ErrWeakPassword) {
			t.Errorf("expected ErrWeakPassword, got %v", err)
		}
	})

	t.Run("confirm", func(t *testing.T) {
		if err := authenticator.ConfirmReset(ctx, token, "new-password-1"); err != nil {
			t.Fatalf("failed to confirm reset: %v", err)
		}
		if _, err := authenticator.Authenticate(ctx, "alice@example.com", "new-password-1"); err != nil {
			t.Errorf("new password does not authenticate: %v", err)
		}
		if _, err := authenticator.Authenticate(ctx, "alice@example.com", "password123"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("old password still authenticates")
		}
	})

	t.Run("token is single use", func(t *testing.T) {
		if err := authenticator.ConfirmReset(ctx, token, "yet-another-1"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound on reuse, got %v", err)
		}
	})
}

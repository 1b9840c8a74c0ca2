package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/globalpocket/backend/internal/models"
	"github.com/globalpocket/backend/internal/storage"
)

// SQL shared between direct calls and write batches so both paths stay identical.
const (
	insertAccountSQL = "INSERT INTO accounts (id, owner_id, name, balance) VALUES (?, ?, ?, ?)"
	updateAccountSQL = "UPDATE accounts SET name = ?, balance = ? WHERE id = ? AND owner_id = ?"
)

// ListAccounts returns all accounts for the owner, ordered by name.
func (s *SQLiteStore) ListAccounts(ctx context.Context, ownerID string) ([]models.Account, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, balance FROM accounts WHERE owner_id = ? ORDER BY name",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var account models.Account
		if err := rows.Scan(&account.ID, &account.Name, &account.Balance); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}

	return accounts, nil
}

// GetAccount retrieves a single account by ID within the owner's scope.
func (s *SQLiteStore) GetAccount(ctx context.Context, ownerID, accountID string) (*models.Account, error) {
	account := &models.Account{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, balance FROM accounts WHERE id = ? AND owner_id = ?",
		accountID, ownerID,
	).Scan(&account.ID, &account.Name, &account.Balance)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account %s: %w", accountID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return account, nil
}

// CreateAccount persists a new account, assigning an ID if unset.
func (s *SQLiteStore) CreateAccount(ctx context.Context, ownerID string, account *models.Account) error {
	if account.ID == "" {
		account.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx, insertAccountSQL,
		account.ID, ownerID, account.Name, account.Balance,
	)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// UpdateAccount overwrites an existing account's name and balance.
func (s *SQLiteStore) UpdateAccount(ctx context.Context, ownerID string, account *models.Account) error {
	res, err := s.db.ExecContext(ctx, updateAccountSQL,
		account.Name, account.Balance, account.ID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("account %s: %w", account.ID, storage.ErrNotFound)
	}

	return nil
}

// DeleteAccount removes an account. It does not check for referencing debts;
// that check belongs to the service layer.
func (s *SQLiteStore) DeleteAccount(ctx context.Context, ownerID, accountID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM accounts WHERE id = ? AND owner_id = ?",
		accountID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("account %s: %w", accountID, storage.ErrNotFound)
	}

	return nil
}

// CountDebtsForAccount returns how many of the owner's debts reference the account.
func (s *SQLiteStore) CountDebtsForAccount(ctx context.Context, ownerID, accountID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM debts WHERE owner_id = ? AND account_id = ?",
		ownerID, accountID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count debts for account: %w", err)
	}

	return count, nil
}

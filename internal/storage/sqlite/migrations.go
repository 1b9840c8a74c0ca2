package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
//
// Money amounts are stored as TEXT (decimal strings), never REAL.
// debts.account_id deliberately has no foreign key: it is a weak reference,
// and the no-delete-while-referenced rule is enforced by the service layer.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS accounts (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    name TEXT NOT NULL,
    balance TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS debts (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    name TEXT NOT NULL,
    amount TEXT NOT NULL,
    account_id TEXT
);

CREATE TABLE IF NOT EXISTS transactions (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    account_id TEXT NOT NULL,
    account_name TEXT NOT NULL,
    amount TEXT NOT NULL,
    type TEXT NOT NULL,
    date TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS monthly_expenses (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    description TEXT NOT NULL,
    amount TEXT NOT NULL,
    date TEXT NOT NULL,
    is_paid INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS crypto_holdings (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    symbol TEXT NOT NULL,
    amount TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS markers (
    name TEXT NOT NULL,
    scope TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    PRIMARY KEY (name, scope)
);

CREATE TABLE IF NOT EXISTS password_resets (
    token TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    expires_at INTEGER NOT NULL,
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_accounts_owner_id ON accounts(owner_id);
CREATE INDEX IF NOT EXISTS idx_debts_owner_id ON debts(owner_id);
CREATE INDEX IF NOT EXISTS idx_debts_account_id ON debts(owner_id, account_id);
CREATE INDEX IF NOT EXISTS idx_transactions_owner_date ON transactions(owner_id, date);
CREATE INDEX IF NOT EXISTS idx_monthly_expenses_owner_id ON monthly_expenses(owner_id);
CREATE INDEX IF NOT EXISTS idx_crypto_holdings_owner_id ON crypto_holdings(owner_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}

package sqlite

import (
	"context"
	"fmt"
	"time"
)

// Marker names. A marker is a (name, scope) pair recording that a one-time
// action already happened: migration per owner, demo request per email.
const (
	markerMigrationDone   = "migration-done"
	markerDemoRequestSent = "demo-request-sent"
)

func (s *SQLiteStore) hasMarker(ctx context.Context, name, scope string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM markers WHERE name = ? AND scope = ?",
		name, scope,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check marker %s: %w", name, err)
	}

	return count > 0, nil
}

func (s *SQLiteStore) setMarker(ctx context.Context, name, scope string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO markers (name, scope, created_at) VALUES (?, ?, ?)",
		name, scope, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to set marker %s: %w", name, err)
	}

	return nil
}

// IsMigrationDone reports whether the owner's local-data migration already ran.
func (s *SQLiteStore) IsMigrationDone(ctx context.Context, ownerID string) (bool, error) {
	return s.hasMarker(ctx, markerMigrationDone, ownerID)
}

// SetMigrationDone records that the owner's migration completed.
func (s *SQLiteStore) SetMigrationDone(ctx context.Context, ownerID string) error {
	return s.setMarker(ctx, markerMigrationDone, ownerID)
}

// IsDemoRequestSent reports whether a demo request was already sent for the email.
func (s *SQLiteStore) IsDemoRequestSent(ctx context.Context, email string) (bool, error) {
	return s.hasMarker(ctx, markerDemoRequestSent, email)
}

// SetDemoRequestSent records that a demo request went out for the email.
func (s *SQLiteStore) SetDemoRequestSent(ctx context.Context, email string) error {
	return s.setMarker(ctx, markerDemoRequestSent, email)
}

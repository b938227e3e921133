// ABOUTME: Principal entity store methods including transactional registration
// ABOUTME: Registration provisions the principal, home workspace, and owner membership atomically

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// RegisterPrincipal creates a principal together with its home workspace and
// an owner membership in a single transaction. Either all three rows exist
// afterwards or none do; a principal is never persisted without an owned
// workspace.
//
// On success p.ID and the returned workspace are populated.
func (s *SQLiteStore) RegisterPrincipal(ctx context.Context, p *Principal, workspaceName string) (*Workspace, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning registration tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO principals (email, password_hash, display_name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, p.Email, p.PasswordHash, p.DisplayName, formatTime(now), formatTime(now))
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("inserting principal: %w", err)
	}

	principalID, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading principal id: %w", err)
	}

	res, err = tx.ExecContext(ctx, `
		INSERT INTO workspaces (name, owner_id, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, workspaceName, principalID, formatTime(now), formatTime(now))
	if err != nil {
		return nil, fmt.Errorf("inserting workspace: %w", err)
	}

	workspaceID, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading workspace id: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO memberships (workspace_id, principal_id, role, created_at)
		VALUES (?, ?, ?, ?)
	`, workspaceID, principalID, RoleOwner, formatTime(now)); err != nil {
		return nil, fmt.Errorf("inserting owner membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing registration tx: %w", err)
	}

	p.ID = principalID
	p.CreatedAt = now
	p.UpdatedAt = now

	s.logger.Info("registered principal", "id", principalID, "email", p.Email, "workspace_id", workspaceID)

	return &Workspace{
		ID:        workspaceID,
		Name:      workspaceName,
		OwnerID:   principalID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// GetPrincipal retrieves a principal by ID.
func (s *SQLiteStore) GetPrincipal(ctx context.Context, id int64) (*Principal, error) {
	return s.scanPrincipal(s.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, display_name, created_at, updated_at, last_login_at
		FROM principals
		WHERE id = ?
	`, id))
}

// GetPrincipalByEmail retrieves a principal by email.
func (s *SQLiteStore) GetPrincipalByEmail(ctx context.Context, email string) (*Principal, error) {
	return s.scanPrincipal(s.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, display_name, created_at, updated_at, last_login_at
		FROM principals
		WHERE email = ?
	`, email))
}

func (s *SQLiteStore) scanPrincipal(row *sql.Row) (*Principal, error) {
	var p Principal
	var createdAtStr, updatedAtStr string
	var lastLoginStr sql.NullString

	err := row.Scan(
		&p.ID,
		&p.Email,
		&p.PasswordHash,
		&p.DisplayName,
		&createdAtStr,
		&updatedAtStr,
		&lastLoginStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying principal: %w", err)
	}

	if p.CreatedAt, err = parseTime(createdAtStr); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updatedAtStr); err != nil {
		return nil, err
	}
	if p.LastLoginAt, err = parseNullTime(lastLoginStr); err != nil {
		return nil, err
	}

	return &p, nil
}

// UpdatePrincipalName updates a principal's display name.
func (s *SQLiteStore) UpdatePrincipalName(ctx context.Context, id int64, displayName string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE principals SET display_name = ?, updated_at = ? WHERE id = ?
	`, displayName, formatTime(time.Now()), id)
	if err != nil {
		return fmt.Errorf("updating principal name: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	s.logger.Info("updated principal name", "id", id)
	return nil
}

// TouchLastLogin records a successful login timestamp.
func (s *SQLiteStore) TouchLastLogin(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE principals SET last_login_at = ? WHERE id = ?
	`, formatTime(time.Now()), id)
	if err != nil {
		return fmt.Errorf("updating last login: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

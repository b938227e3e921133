// ABOUTME: Workspace entity store methods
// ABOUTME: Workspace creation always installs an owner membership in the same transaction

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CreateWorkspace creates a workspace and the owner membership for
// w.OwnerID in a single transaction. A workspace never exists without at
// least one owner membership.
func (s *SQLiteStore) CreateWorkspace(ctx context.Context, w *Workspace) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning workspace tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO workspaces (name, owner_id, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, w.Name, w.OwnerID, formatTime(now), formatTime(now))
	if err != nil {
		return fmt.Errorf("inserting workspace: %w", err)
	}

	workspaceID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading workspace id: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO memberships (workspace_id, principal_id, role, created_at)
		VALUES (?, ?, ?, ?)
	`, workspaceID, w.OwnerID, RoleOwner, formatTime(now)); err != nil {
		return fmt.Errorf("inserting owner membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing workspace tx: %w", err)
	}

	w.ID = workspaceID
	w.CreatedAt = now
	w.UpdatedAt = now

	s.logger.Info("created workspace", "id", workspaceID, "owner_id", w.OwnerID)
	return nil
}

// GetWorkspace retrieves a workspace by ID.
func (s *SQLiteStore) GetWorkspace(ctx context.Context, id int64) (*Workspace, error) {
	return s.scanWorkspace(s.db.QueryRowContext(ctx, `
		SELECT id, name, owner_id, created_at, updated_at
		FROM workspaces
		WHERE id = ?
	`, id))
}

// GetHomeWorkspace retrieves a principal's home workspace: the earliest
// workspace the principal owns. The home relation is derived here rather
// than assumed unique, so a principal holding several owned workspaces
// still resolves deterministically.
func (s *SQLiteStore) GetHomeWorkspace(ctx context.Context, principalID int64) (*Workspace, error) {
	return s.scanWorkspace(s.db.QueryRowContext(ctx, `
		SELECT w.id, w.name, w.owner_id, w.created_at, w.updated_at
		FROM workspaces w
		JOIN memberships m ON m.workspace_id = w.id
		WHERE m.principal_id = ? AND m.role = 'owner'
		ORDER BY w.id
		LIMIT 1
	`, principalID))
}

func (s *SQLiteStore) scanWorkspace(row *sql.Row) (*Workspace, error) {
	var w Workspace
	var createdAtStr, updatedAtStr string

	err := row.Scan(&w.ID, &w.Name, &w.OwnerID, &createdAtStr, &updatedAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying workspace: %w", err)
	}

	if w.CreatedAt, err = parseTime(createdAtStr); err != nil {
		return nil, err
	}
	if w.UpdatedAt, err = parseTime(updatedAtStr); err != nil {
		return nil, err
	}

	return &w, nil
}

// UpdateWorkspaceName renames a workspace.
func (s *SQLiteStore) UpdateWorkspaceName(ctx context.Context, id int64, name string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE workspaces SET name = ?, updated_at = ? WHERE id = ?
	`, name, formatTime(time.Now()), id)
	if err != nil {
		return fmt.Errorf("updating workspace name: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	s.logger.Info("renamed workspace", "id", id, "name", name)
	return nil
}

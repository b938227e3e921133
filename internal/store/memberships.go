// ABOUTME: Membership entity store methods for workspace access control
// ABOUTME: Enforces one membership row per (workspace, principal) via unique index

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// AddMembership adds a principal to a workspace with the given role.
// Duplicate (workspace, principal) pairs hit the unique index; the loser of
// a concurrent add observes ErrDuplicateMembership.
func (s *SQLiteStore) AddMembership(ctx context.Context, m *Membership) error {
	if !ValidRole(m.Role) {
		return fmt.Errorf("invalid role %q", m.Role)
	}

	now := time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO memberships (workspace_id, principal_id, role, created_at)
		VALUES (?, ?, ?, ?)
	`, m.WorkspaceID, m.PrincipalID, m.Role, formatTime(now))
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicateMembership
		}
		return fmt.Errorf("inserting membership: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading membership id: %w", err)
	}

	m.ID = id
	m.CreatedAt = now

	s.logger.Info("added membership", "id", id, "workspace_id", m.WorkspaceID, "principal_id", m.PrincipalID, "role", m.Role)
	return nil
}

// GetMembership retrieves the membership for a (workspace, principal) pair.
func (s *SQLiteStore) GetMembership(ctx context.Context, workspaceID, principalID int64) (*Membership, error) {
	return s.scanMembership(s.db.QueryRowContext(ctx, `
		SELECT id, workspace_id, principal_id, role, created_at
		FROM memberships
		WHERE workspace_id = ? AND principal_id = ?
	`, workspaceID, principalID))
}

// GetMembershipByID retrieves a membership row by its own ID.
func (s *SQLiteStore) GetMembershipByID(ctx context.Context, id int64) (*Membership, error) {
	return s.scanMembership(s.db.QueryRowContext(ctx, `
		SELECT id, workspace_id, principal_id, role, created_at
		FROM memberships
		WHERE id = ?
	`, id))
}

func (s *SQLiteStore) scanMembership(row *sql.Row) (*Membership, error) {
	var m Membership
	var role, createdAtStr string

	err := row.Scan(&m.ID, &m.WorkspaceID, &m.PrincipalID, &role, &createdAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying membership: %w", err)
	}

	m.Role = Role(role)
	if m.CreatedAt, err = parseTime(createdAtStr); err != nil {
		return nil, err
	}

	return &m, nil
}

// ListMembers returns all memberships of a workspace joined with each
// principal's display name and email, ordered by join time.
func (s *SQLiteStore) ListMembers(ctx context.Context, workspaceID int64) ([]Member, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.id, m.workspace_id, m.principal_id, m.role, m.created_at,
		       p.display_name, p.email
		FROM memberships m
		JOIN principals p ON p.id = m.principal_id
		WHERE m.workspace_id = ?
		ORDER BY m.id
	`, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		var m Member
		var role, createdAtStr string

		if err := rows.Scan(&m.ID, &m.WorkspaceID, &m.PrincipalID, &role, &createdAtStr, &m.Name, &m.Email); err != nil {
			return nil, fmt.Errorf("scanning member: %w", err)
		}

		m.Role = Role(role)
		if m.CreatedAt, err = parseTime(createdAtStr); err != nil {
			return nil, err
		}
		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating members: %w", err)
	}

	// Return empty slice (not nil) if no members
	if members == nil {
		members = []Member{}
	}

	return members, nil
}

// DeleteMembership removes a membership row by ID.
func (s *SQLiteStore) DeleteMembership(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM memberships WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting membership: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	s.logger.Info("deleted membership", "id", id)
	return nil
}

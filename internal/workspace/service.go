// ABOUTME: Workspace service for tenant details, renames, and member management
// ABOUTME: Every operation passes through the authorization guard before touching the store

package workspace

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/2389/workbench/internal/auth"
	"github.com/2389/workbench/internal/fault"
	"github.com/2389/workbench/internal/store"
)

// Store is the persistence surface the workspace service needs.
type Store interface {
	GetWorkspace(ctx context.Context, id int64) (*store.Workspace, error)
	UpdateWorkspaceName(ctx context.Context, id int64, name string) error
	AddMembership(ctx context.Context, m *store.Membership) error
	GetMembershipByID(ctx context.Context, id int64) (*store.Membership, error)
	ListMembers(ctx context.Context, workspaceID int64) ([]store.Member, error)
	DeleteMembership(ctx context.Context, id int64) error
	GetPrincipalByEmail(ctx context.Context, email string) (*store.Principal, error)
}

// Service implements workspace and membership operations.
type Service struct {
	store  Store
	guard  *auth.Guard
	logger *slog.Logger
}

// NewService creates a workspace service.
func NewService(s Store, guard *auth.Guard) *Service {
	return &Service{
		store:  s,
		guard:  guard,
		logger: slog.Default().With("component", "workspace"),
	}
}

// Get returns a workspace the principal is a member of.
func (s *Service) Get(ctx context.Context, principalID, workspaceID int64) (*store.Workspace, error) {
	if _, err := s.guard.Authorize(ctx, principalID, workspaceID, auth.CapabilityWorkspaceRead); err != nil {
		return nil, err
	}

	ws, err := s.store.GetWorkspace(ctx, workspaceID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fault.NotFound("workspace not found")
	}
	if err != nil {
		return nil, fault.Internal(err)
	}
	return ws, nil
}

// UpdateName renames a workspace and returns the updated record.
func (s *Service) UpdateName(ctx context.Context, principalID, workspaceID int64, name string) (*store.Workspace, error) {
	if _, err := s.guard.Authorize(ctx, principalID, workspaceID, auth.CapabilityWorkspaceUpdate); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fault.Validation("workspace name is required")
	}

	if err := s.store.UpdateWorkspaceName(ctx, workspaceID, name); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fault.NotFound("workspace not found")
		}
		return nil, fault.Internal(err)
	}

	ws, err := s.store.GetWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fault.Internal(err)
	}

	s.logger.Info("workspace renamed", "workspace_id", workspaceID, "principal_id", principalID)

	return ws, nil
}

// ListMembers returns every membership in the workspace joined with the
// member's profile.
func (s *Service) ListMembers(ctx context.Context, principalID, workspaceID int64) ([]store.Member, error) {
	if _, err := s.guard.Authorize(ctx, principalID, workspaceID, auth.CapabilityMembersRead); err != nil {
		return nil, err
	}

	members, err := s.store.ListMembers(ctx, workspaceID)
	if err != nil {
		return nil, fault.Internal(err)
	}
	return members, nil
}

// AddMember grants an existing account a role in the workspace. Only
// principals holding the members:manage capability may call this.
func (s *Service) AddMember(ctx context.Context, principalID, workspaceID int64, email string, role store.Role) (*store.Member, error) {
	if _, err := s.guard.Authorize(ctx, principalID, workspaceID, auth.CapabilityMembersManage); err != nil {
		return nil, err
	}

	if !store.ValidRole(role) {
		return nil, fault.Validation("role must be owner or member")
	}

	email = strings.ToLower(strings.TrimSpace(email))
	target, err := s.store.GetPrincipalByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fault.NotFound("no account with that email")
	}
	if err != nil {
		return nil, fault.Internal(err)
	}

	m := &store.Membership{
		WorkspaceID: workspaceID,
		PrincipalID: target.ID,
		Role:        role,
	}
	if err := s.store.AddMembership(ctx, m); err != nil {
		if errors.Is(err, store.ErrDuplicateMembership) {
			return nil, fault.Conflict("already a member of this workspace")
		}
		return nil, fault.Internal(err)
	}

	s.logger.Info("member added", "workspace_id", workspaceID, "principal_id", target.ID, "role", role)

	return &store.Member{
		Membership: *m,
		Name:       target.DisplayName,
		Email:      target.Email,
	}, nil
}

// RemoveMember deletes a membership by its row ID. The membership must
// belong to the workspace, and the caller may not remove their own.
func (s *Service) RemoveMember(ctx context.Context, principalID, workspaceID, membershipID int64) error {
	authCtx, err := s.guard.Authorize(ctx, principalID, workspaceID, auth.CapabilityMembersManage)
	if err != nil {
		return err
	}

	target, err := s.store.GetMembershipByID(ctx, membershipID)
	if errors.Is(err, store.ErrNotFound) {
		return fault.NotFound("membership not found")
	}
	if err != nil {
		return fault.Internal(err)
	}
	// A membership row from another workspace is invisible here.
	if target.WorkspaceID != workspaceID {
		return fault.NotFound("membership not found")
	}

	if err := auth.CheckRemoveMember(authCtx, target); err != nil {
		return err
	}

	if err := s.store.DeleteMembership(ctx, membershipID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fault.NotFound("membership not found")
		}
		return fault.Internal(err)
	}

	s.logger.Info("member removed", "workspace_id", workspaceID, "membership_id", membershipID, "removed_by", principalID)

	return nil
}

// CheckPermission reports whether the principal holds any membership in
// the workspace. It never fails on a missing membership; it just answers
// false.
func (s *Service) CheckPermission(ctx context.Context, principalID, workspaceID int64) (bool, error) {
	return s.guard.HasAccess(ctx, principalID, workspaceID)
}

// ABOUTME: Per-request authorization guard turning credentials and memberships into verdicts
// ABOUTME: Membership is resolved strictly before workspace existence is revealed

package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/2389/workbench/internal/fault"
	"github.com/2389/workbench/internal/store"
)

// GuardStore is the read-only store surface the guard needs.
type GuardStore interface {
	GetMembership(ctx context.Context, workspaceID, principalID int64) (*store.Membership, error)
	GetWorkspace(ctx context.Context, id int64) (*store.Workspace, error)
}

// Guard is the per-request authorization entry point. It verifies the
// bearer credential, resolves workspace membership, and consults the role
// matrix. Verdicts are terminal: no retries, no side effects beyond the
// membership and workspace reads.
type Guard struct {
	tokens *TokenService
	store  GuardStore
	logger *slog.Logger
}

// NewGuard creates a guard over the given token service and store.
func NewGuard(tokens *TokenService, s GuardStore) *Guard {
	return &Guard{
		tokens: tokens,
		store:  s,
		logger: slog.Default().With("component", "auth"),
	}
}

// extractBearerToken extracts a bearer token from the Authorization header.
// Returns the token and an error message (empty if successful).
func extractBearerToken(authHeader string) (string, string) {
	if authHeader == "" {
		return "", "missing authorization header"
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", "invalid authorization header format"
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		return "", "empty token"
	}
	return token, ""
}

// Authenticate turns an Authorization header into a caller identity.
// Every failure mode (missing header, malformed token, bad signature,
// expired) is collapsed to a single unauthenticated verdict outward; the
// specific token failure is logged.
func (g *Guard) Authenticate(authHeader string) (*Identity, error) {
	token, errMsg := extractBearerToken(authHeader)
	if errMsg != "" {
		return nil, fault.Unauthenticated("%s", errMsg)
	}

	claims, err := g.tokens.Verify(token)
	if err != nil {
		// Keep the token-level failure kind for the log only.
		g.logger.Warn("token verification failed", "reason", err)
		return nil, fault.Unauthenticated("invalid token")
	}

	return &Identity{
		PrincipalID: claims.PrincipalID,
		Email:       claims.Email,
	}, nil
}

// Authorize produces an authorization verdict for a principal acting on a
// workspace with the given capability.
//
// Membership is checked strictly before workspace existence: a caller with
// no membership row learns only that access is forbidden, never whether
// the workspace exists. A member of a since-deleted workspace gets not
// found.
func (g *Guard) Authorize(ctx context.Context, principalID, workspaceID int64, capability Capability) (*AuthContext, error) {
	membership, err := g.store.GetMembership(ctx, workspaceID, principalID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fault.Forbidden("no access to this workspace")
	}
	if err != nil {
		g.logger.Error("membership lookup failed", "workspace_id", workspaceID, "principal_id", principalID, "error", err)
		return nil, fault.Internal(err)
	}

	if _, err := g.store.GetWorkspace(ctx, workspaceID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fault.NotFound("workspace not found")
		}
		g.logger.Error("workspace lookup failed", "workspace_id", workspaceID, "error", err)
		return nil, fault.Internal(err)
	}

	if !Allows(membership.Role, capability) {
		g.logger.Warn("capability denied", "workspace_id", workspaceID, "principal_id", principalID, "role", membership.Role, "capability", capability)
		return nil, fault.Forbidden("insufficient role for this action")
	}

	return &AuthContext{
		PrincipalID: principalID,
		WorkspaceID: workspaceID,
		Role:        membership.Role,
	}, nil
}

// HasAccess reports whether a principal holds any membership in the
// workspace. Unlike Authorize it never returns a classified failure for a
// missing membership; store errors are still surfaced.
func (g *Guard) HasAccess(ctx context.Context, principalID, workspaceID int64) (bool, error) {
	_, err := g.store.GetMembership(ctx, workspaceID, principalID)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fault.Internal(err)
	}
	return true, nil
}

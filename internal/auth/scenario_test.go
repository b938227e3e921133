// ABOUTME: End-to-end scenario tests for auth using real SQLite
// ABOUTME: Validates credential issue, verification, and workspace verdicts without mocking

package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/2389/workbench/internal/fault"
	"github.com/2389/workbench/internal/store"
)

// createScenarioStore creates a real SQLite store in a temp directory.
func createScenarioStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create SQLite store: %v", err)
	}

	t.Cleanup(func() {
		s.Close()
	})

	return s
}

// scenarioTestSecret is a 32-byte secret that meets MinSecretLength.
var scenarioTestSecret = []byte("scenario-test-secret-32-bytes!!!")

func TestScenario_FullAuthFlow(t *testing.T) {
	s := createScenarioStore(t)
	ctx := context.Background()

	// Register a principal; the home workspace and owner membership are
	// provisioned in the same transaction.
	owner := &store.Principal{
		Email:        "owner@x.com",
		PasswordHash: "$2a$10$hash",
		DisplayName:  "Owner",
	}
	ws, err := s.RegisterPrincipal(ctx, owner, "Owner's Workspace")
	if err != nil {
		t.Fatalf("registering principal: %v", err)
	}

	tokens, err := NewTokenService(scenarioTestSecret, 24*time.Hour)
	if err != nil {
		t.Fatalf("creating token service: %v", err)
	}
	guard := NewGuard(tokens, s)

	// Issue a credential and authenticate with it.
	token, err := tokens.Issue(owner.ID, owner.Email)
	if err != nil {
		t.Fatalf("issuing token: %v", err)
	}

	identity, err := guard.Authenticate("Bearer " + token)
	if err != nil {
		t.Fatalf("authenticating: %v", err)
	}
	if identity.PrincipalID != owner.ID {
		t.Errorf("identity.PrincipalID = %d, want %d", identity.PrincipalID, owner.ID)
	}

	// The owner may manage members in their own workspace.
	authCtx, err := guard.Authorize(ctx, identity.PrincipalID, ws.ID, CapabilityMembersManage)
	if err != nil {
		t.Fatalf("authorizing owner: %v", err)
	}
	if authCtx.Role != store.RoleOwner {
		t.Errorf("role = %s, want owner", authCtx.Role)
	}
}

func TestScenario_MemberCannotManageMembers(t *testing.T) {
	s := createScenarioStore(t)
	ctx := context.Background()

	owner := &store.Principal{Email: "owner@x.com", PasswordHash: "$2a$10$h", DisplayName: "Owner"}
	ws, err := s.RegisterPrincipal(ctx, owner, "Owner's Workspace")
	if err != nil {
		t.Fatalf("registering owner: %v", err)
	}

	guest := &store.Principal{Email: "guest@x.com", PasswordHash: "$2a$10$h", DisplayName: "Guest"}
	if _, err := s.RegisterPrincipal(ctx, guest, "Guest's Workspace"); err != nil {
		t.Fatalf("registering guest: %v", err)
	}
	if err := s.AddMembership(ctx, &store.Membership{
		WorkspaceID: ws.ID, PrincipalID: guest.ID, Role: store.RoleMember,
	}); err != nil {
		t.Fatalf("adding membership: %v", err)
	}

	tokens, _ := NewTokenService(scenarioTestSecret, time.Hour)
	guard := NewGuard(tokens, s)

	// The guest can read but not manage members.
	if _, err := guard.Authorize(ctx, guest.ID, ws.ID, CapabilityWorkspaceRead); err != nil {
		t.Errorf("member read should be allowed, got %v", err)
	}

	_, err = guard.Authorize(ctx, guest.ID, ws.ID, CapabilityMembersManage)
	if fault.KindOf(err) != fault.KindForbidden {
		t.Errorf("member manage-members: kind = %v, want forbidden", fault.KindOf(err))
	}
}

func TestScenario_StrangerIsForbiddenRegardlessOfWorkspace(t *testing.T) {
	s := createScenarioStore(t)
	ctx := context.Background()

	owner := &store.Principal{Email: "owner@x.com", PasswordHash: "$2a$10$h", DisplayName: "Owner"}
	ws, err := s.RegisterPrincipal(ctx, owner, "Owner's Workspace")
	if err != nil {
		t.Fatalf("registering owner: %v", err)
	}

	stranger := &store.Principal{Email: "stranger@x.com", PasswordHash: "$2a$10$h", DisplayName: "Stranger"}
	if _, err := s.RegisterPrincipal(ctx, stranger, "Stranger's Workspace"); err != nil {
		t.Fatalf("registering stranger: %v", err)
	}

	tokens, _ := NewTokenService(scenarioTestSecret, time.Hour)
	guard := NewGuard(tokens, s)

	// Existing workspace, no membership: forbidden.
	_, err = guard.Authorize(ctx, stranger.ID, ws.ID, CapabilityWorkspaceRead)
	if fault.KindOf(err) != fault.KindForbidden {
		t.Errorf("kind = %v, want forbidden", fault.KindOf(err))
	}

	// Nonexistent workspace, no membership: still forbidden, not not-found.
	_, err = guard.Authorize(ctx, stranger.ID, 424242, CapabilityWorkspaceRead)
	if fault.KindOf(err) != fault.KindForbidden {
		t.Errorf("kind = %v, want forbidden", fault.KindOf(err))
	}
}

func TestScenario_RequireAuthMiddleware(t *testing.T) {
	s := createScenarioStore(t)
	ctx := context.Background()

	owner := &store.Principal{Email: "owner@x.com", PasswordHash: "$2a$10$h", DisplayName: "Owner"}
	if _, err := s.RegisterPrincipal(ctx, owner, "Owner's Workspace"); err != nil {
		t.Fatalf("registering owner: %v", err)
	}

	tokens, _ := NewTokenService(scenarioTestSecret, time.Hour)
	guard := NewGuard(tokens, s)

	var seen *Identity
	handler := RequireAuth(guard)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	// Without a credential: 401, handler never runs.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if seen != nil {
		t.Error("handler should not run without a credential")
	}

	// With a valid credential: identity lands in the context.
	token, _ := tokens.Issue(owner.ID, owner.Email)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if seen == nil || seen.PrincipalID != owner.ID {
		t.Errorf("identity = %+v, want principal %d", seen, owner.ID)
	}
}

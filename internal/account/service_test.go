// ABOUTME: Tests for the account service over a real SQLite store
// ABOUTME: Covers registration atomicity, login verdicts, and profile operations

package account

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/2389/workbench/internal/auth"
	"github.com/2389/workbench/internal/fault"
	"github.com/2389/workbench/internal/store"
)

var testSecret = []byte("account-service-secret-32-bytes!")

func newTestService(t *testing.T) (*Service, *store.SQLiteStore) {
	t.Helper()

	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create SQLite store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})

	tokens, err := auth.NewTokenService(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}

	return NewService(s, tokens, auth.NewBcryptVerifier()), s
}

func TestRegister(t *testing.T) {
	svc, s := newTestService(t)
	ctx := context.Background()

	sess, err := svc.Register(ctx, "Alice@X.com", "correct horse", "Alice")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if sess.Principal.ID == 0 {
		t.Error("principal ID should be populated")
	}
	if sess.Principal.Email != "alice@x.com" {
		t.Errorf("email = %q, want normalized lowercase", sess.Principal.Email)
	}
	if sess.Principal.PasswordHash == "correct horse" {
		t.Error("password must not be stored in plaintext")
	}
	if sess.Workspace == nil || sess.Workspace.Name != "Alice's Workspace" {
		t.Errorf("workspace = %+v, want Alice's Workspace", sess.Workspace)
	}
	if sess.Token == "" {
		t.Error("registration should issue a token")
	}

	// The owner membership exists in the same database.
	m, err := s.GetMembership(ctx, sess.Workspace.ID, sess.Principal.ID)
	if err != nil {
		t.Fatalf("GetMembership() error = %v", err)
	}
	if m.Role != store.RoleOwner {
		t.Errorf("role = %s, want owner", m.Role)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		display  string
	}{
		{"empty email", "", "correct horse", "Alice"},
		{"email without at", "not-an-email", "correct horse", "Alice"},
		{"empty name", "a@x.com", "correct horse", "   "},
		{"short password", "a@x.com", "short", "Alice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.email, tt.password, tt.display)
			if fault.KindOf(err) != fault.KindValidation {
				t.Errorf("kind = %v, want validation", fault.KindOf(err))
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "a@x.com", "correct horse", "Alice"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// Same email differing only in case still conflicts.
	_, err := svc.Register(ctx, "A@X.COM", "other password", "Impostor")
	if fault.KindOf(err) != fault.KindConflict {
		t.Errorf("kind = %v, want conflict", fault.KindOf(err))
	}
}

func TestLogin(t *testing.T) {
	svc, s := newTestService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, "a@x.com", "correct horse", "Alice")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	sess, err := svc.Login(ctx, "a@x.com", "correct horse")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if sess.Principal.ID != reg.Principal.ID {
		t.Errorf("principal ID = %d, want %d", sess.Principal.ID, reg.Principal.ID)
	}
	if sess.Token == "" {
		t.Error("login should issue a token")
	}

	// Login stamps the last-login timestamp.
	p, err := s.GetPrincipal(ctx, reg.Principal.ID)
	if err != nil {
		t.Fatalf("GetPrincipal() error = %v", err)
	}
	if p.LastLoginAt == nil {
		t.Error("LastLoginAt should be set after login")
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "a@x.com", "correct horse", "Alice"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// Unknown email and wrong password must be indistinguishable outward.
	_, unknownErr := svc.Login(ctx, "nobody@x.com", "correct horse")
	_, wrongErr := svc.Login(ctx, "a@x.com", "wrong password")

	for _, err := range []error{unknownErr, wrongErr} {
		if fault.KindOf(err) != fault.KindUnauthenticated {
			t.Errorf("kind = %v, want unauthenticated", fault.KindOf(err))
		}
	}
	if fault.MessageOf(unknownErr) != fault.MessageOf(wrongErr) {
		t.Errorf("messages differ: %q vs %q", fault.MessageOf(unknownErr), fault.MessageOf(wrongErr))
	}
}

func TestMe(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, "a@x.com", "correct horse", "Alice")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	p, err := svc.Me(ctx, reg.Principal.ID)
	if err != nil {
		t.Fatalf("Me() error = %v", err)
	}
	if p.Email != "a@x.com" || p.DisplayName != "Alice" {
		t.Errorf("profile = %+v", p)
	}

	_, err = svc.Me(ctx, 424242)
	if fault.KindOf(err) != fault.KindNotFound {
		t.Errorf("kind = %v, want not_found", fault.KindOf(err))
	}
}

func TestHomeWorkspace(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, "a@x.com", "correct horse", "Alice")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	ws, err := svc.HomeWorkspace(ctx, reg.Principal.ID)
	if err != nil {
		t.Fatalf("HomeWorkspace() error = %v", err)
	}
	if ws.ID != reg.Workspace.ID {
		t.Errorf("workspace ID = %d, want %d", ws.ID, reg.Workspace.ID)
	}

	_, err = svc.HomeWorkspace(ctx, 424242)
	if fault.KindOf(err) != fault.KindNotFound {
		t.Errorf("kind = %v, want not_found", fault.KindOf(err))
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, "a@x.com", "correct horse", "Alice")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	p, err := svc.UpdateProfile(ctx, reg.Principal.ID, "Alice B")
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if p.DisplayName != "Alice B" {
		t.Errorf("display name = %q, want Alice B", p.DisplayName)
	}

	_, err = svc.UpdateProfile(ctx, reg.Principal.ID, "  ")
	if fault.KindOf(err) != fault.KindValidation {
		t.Errorf("kind = %v, want validation", fault.KindOf(err))
	}

	_, err = svc.UpdateProfile(ctx, 424242, "Nobody")
	if fault.KindOf(err) != fault.KindNotFound {
		t.Errorf("kind = %v, want not_found", fault.KindOf(err))
	}
}

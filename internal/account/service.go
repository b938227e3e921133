// ABOUTME: Account service handling registration, login, and profile operations
// ABOUTME: Registration provisions the principal, home workspace, and owner membership atomically

package account

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/2389/workbench/internal/auth"
	"github.com/2389/workbench/internal/fault"
	"github.com/2389/workbench/internal/store"
)

// Store is the persistence surface the account service needs.
type Store interface {
	RegisterPrincipal(ctx context.Context, p *store.Principal, workspaceName string) (*store.Workspace, error)
	GetPrincipal(ctx context.Context, id int64) (*store.Principal, error)
	GetPrincipalByEmail(ctx context.Context, email string) (*store.Principal, error)
	UpdatePrincipalName(ctx context.Context, id int64, displayName string) error
	TouchLastLogin(ctx context.Context, id int64) error
	GetHomeWorkspace(ctx context.Context, principalID int64) (*store.Workspace, error)
}

// Session is the result of a successful registration or login.
type Session struct {
	Principal *store.Principal
	Workspace *store.Workspace // nil on login
	Token     string
}

// Service implements account lifecycle operations.
type Service struct {
	store  Store
	tokens *auth.TokenService
	creds  auth.CredentialVerifier
	logger *slog.Logger
}

// NewService creates an account service.
func NewService(s Store, tokens *auth.TokenService, creds auth.CredentialVerifier) *Service {
	return &Service{
		store:  s,
		tokens: tokens,
		creds:  creds,
		logger: slog.Default().With("component", "account"),
	}
}

// normalizeEmail lowercases and trims an email address so lookups and the
// uniqueness constraint are case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a principal with a hashed password, provisions their
// home workspace with an owner membership in the same transaction, and
// issues a session token. Either everything exists afterward or nothing
// does.
func (s *Service) Register(ctx context.Context, email, password, name string) (*Session, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)

	if email == "" || !strings.Contains(email, "@") {
		return nil, fault.Validation("a valid email is required")
	}
	if name == "" {
		return nil, fault.Validation("name is required")
	}

	hash, err := s.creds.Hash(password)
	if err != nil {
		return nil, fault.Validation("%s", err.Error())
	}

	p := &store.Principal{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  name,
	}

	ws, err := s.store.RegisterPrincipal(ctx, p, name+"'s Workspace")
	if errors.Is(err, store.ErrEmailExists) {
		return nil, fault.Conflict("email already registered")
	}
	if err != nil {
		s.logger.Error("registration failed", "email", email, "error", err)
		return nil, fault.Internal(err)
	}

	token, err := s.tokens.Issue(p.ID, p.Email)
	if err != nil {
		return nil, fault.Internal(err)
	}

	s.logger.Info("principal registered", "principal_id", p.ID, "workspace_id", ws.ID)

	return &Session{Principal: p, Workspace: ws, Token: token}, nil
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password produce the same outward verdict, and the unknown-email
// path still burns a hash comparison so the two are not distinguishable by
// timing.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)

	p, err := s.store.GetPrincipalByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		s.creds.CompareDummy(password)
		return nil, fault.Unauthenticated("invalid email or password")
	}
	if err != nil {
		s.logger.Error("principal lookup failed", "email", email, "error", err)
		return nil, fault.Internal(err)
	}

	if !s.creds.Compare(p.PasswordHash, password) {
		s.logger.Warn("login rejected", "principal_id", p.ID)
		return nil, fault.Unauthenticated("invalid email or password")
	}

	// Best effort; a failed timestamp update must not fail the login.
	if err := s.store.TouchLastLogin(ctx, p.ID); err != nil {
		s.logger.Warn("updating last login failed", "principal_id", p.ID, "error", err)
	}

	token, err := s.tokens.Issue(p.ID, p.Email)
	if err != nil {
		return nil, fault.Internal(err)
	}

	s.logger.Info("principal logged in", "principal_id", p.ID)

	return &Session{Principal: p, Token: token}, nil
}

// Me returns the profile of the authenticated principal.
func (s *Service) Me(ctx context.Context, principalID int64) (*store.Principal, error) {
	p, err := s.store.GetPrincipal(ctx, principalID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fault.NotFound("account not found")
	}
	if err != nil {
		return nil, fault.Internal(err)
	}
	return p, nil
}

// HomeWorkspace returns the principal's earliest owned workspace, which is
// the one provisioned at registration unless it has since been deleted.
func (s *Service) HomeWorkspace(ctx context.Context, principalID int64) (*store.Workspace, error) {
	ws, err := s.store.GetHomeWorkspace(ctx, principalID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fault.NotFound("no workspace found")
	}
	if err != nil {
		return nil, fault.Internal(err)
	}
	return ws, nil
}

// UpdateProfile changes the principal's display name and returns the
// updated profile.
func (s *Service) UpdateProfile(ctx context.Context, principalID int64, displayName string) (*store.Principal, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, fault.Validation("name is required")
	}

	if err := s.store.UpdatePrincipalName(ctx, principalID, displayName); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fault.NotFound("account not found")
		}
		return nil, fault.Internal(err)
	}

	p, err := s.store.GetPrincipal(ctx, principalID)
	if err != nil {
		return nil, fault.Internal(err)
	}
	return p, nil
}

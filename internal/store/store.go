// ABOUTME: Store interface and data types for workbench persistence
// ABOUTME: Defines Principal, Workspace, Membership, Product and sentinel errors

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when registering a principal with an email
// that is already taken
var ErrEmailExists = errors.New("email already registered")

// ErrDuplicateMembership is returned when adding a membership for a
// (workspace, principal) pair that already has one
var ErrDuplicateMembership = errors.New("membership already exists")

// Role is the closed set of membership roles. Role checks go through the
// auth package's capability matrix, never through ad-hoc string comparison.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleMember Role = "member"
)

// ValidRole reports whether r is a known role.
func ValidRole(r Role) bool {
	switch r {
	case RoleOwner, RoleMember:
		return true
	}
	return false
}

// Principal represents a registered human account
type Principal struct {
	ID           int64
	Email        string
	PasswordHash string // bcrypt hash, never exposed outside the store and verifier
	DisplayName  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  *time.Time
}

// Workspace represents a tenant container owning resources and memberships
type Workspace struct {
	ID        int64
	Name      string
	OwnerID   int64 // principal that created the workspace
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Membership grants a principal a role within a workspace. Exactly one row
// may exist per (WorkspaceID, PrincipalID) pair; the store enforces this
// with a unique index so concurrent duplicate adds resolve to one row.
type Membership struct {
	ID          int64
	WorkspaceID int64
	PrincipalID int64
	Role        Role
	CreatedAt   time.Time
}

// Member is a membership joined with the principal's profile, as returned
// by member listings.
type Member struct {
	Membership
	Name  string
	Email string
}

// Product is a workspace-scoped resource
type Product struct {
	ID          int64
	WorkspaceID int64
	Name        string
	Price       int64
	ImageURL    string
	Status      string
	CreatedBy   int64 // principal that created the product
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Store defines the interface for workbench persistence
type Store interface {
	// Principals
	RegisterPrincipal(ctx context.Context, p *Principal, workspaceName string) (*Workspace, error)
	GetPrincipal(ctx context.Context, id int64) (*Principal, error)
	GetPrincipalByEmail(ctx context.Context, email string) (*Principal, error)
	UpdatePrincipalName(ctx context.Context, id int64, displayName string) error
	TouchLastLogin(ctx context.Context, id int64) error

	// Workspaces
	CreateWorkspace(ctx context.Context, w *Workspace) error
	GetWorkspace(ctx context.Context, id int64) (*Workspace, error)
	GetHomeWorkspace(ctx context.Context, principalID int64) (*Workspace, error)
	UpdateWorkspaceName(ctx context.Context, id int64, name string) error

	// Memberships
	AddMembership(ctx context.Context, m *Membership) error
	GetMembership(ctx context.Context, workspaceID, principalID int64) (*Membership, error)
	GetMembershipByID(ctx context.Context, id int64) (*Membership, error)
	ListMembers(ctx context.Context, workspaceID int64) ([]Member, error)
	DeleteMembership(ctx context.Context, id int64) error

	// Products
	CreateProduct(ctx context.Context, p *Product) error
	GetProduct(ctx context.Context, id int64) (*Product, error)
	ListProducts(ctx context.Context, workspaceID int64) ([]Product, error)
	UpdateProduct(ctx context.Context, p *Product) error
	DeleteProduct(ctx context.Context, id, workspaceID int64) error

	// Close releases any resources held by the store
	Close() error
}

// ABOUTME: Identity and authorization context propagated through request handling
// ABOUTME: Provides WithIdentity/IdentityFromContext for handler access to the caller

package auth

import (
	"context"

	"github.com/2389/workbench/internal/store"
)

// Identity is the authenticated caller as established from a verified
// session credential, before any workspace authorization has happened.
type Identity struct {
	PrincipalID int64
	Email       string
}

// AuthContext is a workspace-scoped authorization verdict: the caller, the
// workspace they were checked against, and the role that granted access.
// Produced by Guard.Authorize and handed to resource handlers.
type AuthContext struct {
	PrincipalID int64
	WorkspaceID int64
	Role        store.Role
}

// identityKey is the key type for storing Identity in context.Context.
type identityKey struct{}

// WithIdentity returns a new context with the Identity attached.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext retrieves the Identity from the context, returning
// nil if not present.
func IdentityFromContext(ctx context.Context) *Identity {
	val := ctx.Value(identityKey{})
	if val == nil {
		return nil
	}
	id, ok := val.(*Identity)
	if !ok {
		return nil
	}
	return id
}

// MustIdentityFromContext retrieves the Identity from the context,
// panicking if not present. Only for handlers behind RequireAuth.
func MustIdentityFromContext(ctx context.Context) *Identity {
	id := IdentityFromContext(ctx)
	if id == nil {
		panic("auth: Identity not found in context")
	}
	return id
}

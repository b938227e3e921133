// Package store provides persistence for workbench identities and tenants.
//
// # Entities
//
// The store owns four tables:
//
//   - principals: registered accounts, unique on email
//   - workspaces: tenant containers, each owned by a principal
//   - memberships: the join entity granting a principal a role in a
//     workspace, unique on (workspace_id, principal_id)
//   - products: workspace-scoped resources
//
// # Invariants
//
//   - A principal is never persisted without an owned workspace:
//     RegisterPrincipal writes principal, workspace, and owner membership
//     in one transaction.
//   - A workspace is never persisted without an owner membership:
//     CreateWorkspace installs one in the same transaction.
//   - At most one membership row exists per (workspace, principal) pair.
//     The unique index arbitrates concurrent duplicate adds: exactly one
//     insert wins, the loser gets ErrDuplicateMembership.
//
// # Error Mapping
//
// Store methods return sentinel errors that callers classify:
//
//   - ErrNotFound: the entity does not exist
//   - ErrEmailExists: principal email uniqueness violation
//   - ErrDuplicateMembership: membership uniqueness violation
//
// # Implementation
//
// SQLiteStore is the only implementation, using modernc.org/sqlite (pure
// Go, no cgo) with WAL mode and foreign keys enabled. Timestamps are stored
// as RFC3339 TEXT columns in UTC.
package store

// Package auth provides authentication and authorization for workbench.
//
// # Session Credentials
//
// Principals authenticate with JWT session credentials signed with HS256
// using the configured jwt_secret. Claims carry the principal id and email
// plus issued-at and expiry; the default lifetime is 24 hours. Credentials
// are stateless: validity is fully determined by signature and expiry, and
// an issued credential cannot be revoked before it expires. This is an
// accepted limitation; logout is purely client-side.
//
// The signing secret must be at least MinSecretLength bytes and has no
// default. A missing or short secret is a startup error.
//
// # Authorization Guard
//
// Guard is the per-request gate:
//
//	identity, err := guard.Authenticate(r.Header.Get("Authorization"))
//	authCtx, err := guard.Authorize(ctx, identity.PrincipalID, workspaceID, CapabilityMembersManage)
//
// Authenticate collapses every credential failure (missing header,
// malformed token, bad signature, expired) to a single unauthenticated
// verdict; the specific failure is logged but never surfaced. Authorize
// resolves the caller's membership strictly before checking workspace
// existence, so non-members cannot probe which workspace ids exist.
//
// # Role Matrix
//
// Two roles exist: owner and member. The matrix is pure policy:
//
//   - members:manage (adding and removing members) is owner-only
//   - every other capability is granted to any membership
//   - an actor may never remove their own membership, regardless of role
//
// # Credential Verifier
//
// Password hashing is bcrypt at default cost behind the CredentialVerifier
// interface. Login burns a dummy comparison when the email is unknown so
// response timing does not reveal whether an account exists.
package auth

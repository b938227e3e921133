// ABOUTME: Role matrix mapping (role, capability) to an allow/deny verdict
// ABOUTME: Pure policy, checked exhaustively over the closed role and capability sets

package auth

import (
	"github.com/2389/workbench/internal/fault"
	"github.com/2389/workbench/internal/store"
)

// Capability is a named action gated by the role matrix.
type Capability string

const (
	CapabilityWorkspaceRead   Capability = "workspace:read"
	CapabilityWorkspaceUpdate Capability = "workspace:update"
	CapabilityMembersRead     Capability = "members:read"
	CapabilityMembersManage   Capability = "members:manage"
	CapabilityResourceRead    Capability = "resource:read"
	CapabilityResourceWrite   Capability = "resource:write"
)

// Allows reports whether a role grants a capability. Member management is
// owner-only; every other capability is granted to any membership. Unknown
// roles and unknown capabilities are denied.
func Allows(role store.Role, c Capability) bool {
	switch role {
	case store.RoleOwner:
		switch c {
		case CapabilityWorkspaceRead, CapabilityWorkspaceUpdate,
			CapabilityMembersRead, CapabilityMembersManage,
			CapabilityResourceRead, CapabilityResourceWrite:
			return true
		}
		return false
	case store.RoleMember:
		switch c {
		case CapabilityWorkspaceRead, CapabilityWorkspaceUpdate,
			CapabilityMembersRead,
			CapabilityResourceRead, CapabilityResourceWrite:
			return true
		case CapabilityMembersManage:
			return false
		}
		return false
	}
	return false
}

// CheckRemoveMember enforces the structural rule that an actor may never
// remove their own membership: a workspace must always retain an owner.
// Role-level permission for the removal is checked separately via Allows.
func CheckRemoveMember(actor *AuthContext, target *store.Membership) error {
	if actor.PrincipalID == target.PrincipalID {
		return fault.InvalidOperation("cannot remove your own membership")
	}
	return nil
}

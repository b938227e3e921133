// ABOUTME: Unit tests for the role matrix
// ABOUTME: Covers the full (role, capability) grid and the owner self-removal rule

package auth

import (
	"testing"

	"github.com/2389/workbench/internal/fault"
	"github.com/2389/workbench/internal/store"
)

func TestAllows_Grid(t *testing.T) {
	tests := []struct {
		role store.Role
		cap  Capability
		want bool
	}{
		{store.RoleOwner, CapabilityWorkspaceRead, true},
		{store.RoleOwner, CapabilityWorkspaceUpdate, true},
		{store.RoleOwner, CapabilityMembersRead, true},
		{store.RoleOwner, CapabilityMembersManage, true},
		{store.RoleOwner, CapabilityResourceRead, true},
		{store.RoleOwner, CapabilityResourceWrite, true},

		{store.RoleMember, CapabilityWorkspaceRead, true},
		{store.RoleMember, CapabilityWorkspaceUpdate, true},
		{store.RoleMember, CapabilityMembersRead, true},
		{store.RoleMember, CapabilityMembersManage, false},
		{store.RoleMember, CapabilityResourceRead, true},
		{store.RoleMember, CapabilityResourceWrite, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.cap), func(t *testing.T) {
			if got := Allows(tt.role, tt.cap); got != tt.want {
				t.Errorf("Allows(%s, %s) = %v, want %v", tt.role, tt.cap, got, tt.want)
			}
		})
	}
}

func TestAllows_UnknownRoleDenied(t *testing.T) {
	if Allows(store.Role("superuser"), CapabilityWorkspaceRead) {
		t.Error("unknown roles must be denied everything")
	}
}

func TestAllows_UnknownCapabilityDenied(t *testing.T) {
	if Allows(store.RoleOwner, Capability("workspace:drop")) {
		t.Error("unknown capabilities must be denied even for owners")
	}
}

func TestCheckRemoveMember_SelfRemovalRejected(t *testing.T) {
	actor := &AuthContext{PrincipalID: 1, WorkspaceID: 10, Role: store.RoleOwner}
	target := &store.Membership{ID: 5, WorkspaceID: 10, PrincipalID: 1, Role: store.RoleOwner}

	err := CheckRemoveMember(actor, target)
	if err == nil {
		t.Fatal("CheckRemoveMember() should reject self-removal")
	}
	if fault.KindOf(err) != fault.KindInvalidOperation {
		t.Errorf("kind = %v, want invalid_operation", fault.KindOf(err))
	}
}

func TestCheckRemoveMember_OtherMemberAllowed(t *testing.T) {
	actor := &AuthContext{PrincipalID: 1, WorkspaceID: 10, Role: store.RoleOwner}
	target := &store.Membership{ID: 6, WorkspaceID: 10, PrincipalID: 2, Role: store.RoleMember}

	if err := CheckRemoveMember(actor, target); err != nil {
		t.Errorf("CheckRemoveMember() error = %v, want nil", err)
	}
}

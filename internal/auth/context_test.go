// ABOUTME: Unit tests for identity context propagation
// ABOUTME: Covers WithIdentity/IdentityFromContext round trips and absence

package auth

import (
	"context"
	"testing"
)

func TestIdentityContext_RoundTrip(t *testing.T) {
	id := &Identity{PrincipalID: 42, Email: "a@x.com"}

	ctx := WithIdentity(context.Background(), id)

	got := IdentityFromContext(ctx)
	if got == nil {
		t.Fatal("IdentityFromContext() = nil, want identity")
	}
	if got.PrincipalID != 42 || got.Email != "a@x.com" {
		t.Errorf("IdentityFromContext() = %+v, want %+v", got, id)
	}
}

func TestIdentityFromContext_Absent(t *testing.T) {
	if got := IdentityFromContext(context.Background()); got != nil {
		t.Errorf("IdentityFromContext() = %+v, want nil", got)
	}
}

func TestMustIdentityFromContext_PanicsWhenAbsent(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustIdentityFromContext() should panic without identity")
		}
	}()

	MustIdentityFromContext(context.Background())
}

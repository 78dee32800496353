package access

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestAuthorizeOwner(t *testing.T) {
	owner := uuid.New()
	actor := Actor{ID: owner, Roles: []string{"user"}}

	if err := Authorize(actor, &owner); err != nil {
		t.Fatalf("owner should be authorized, got %v", err)
	}
}

func TestAuthorizeNonOwner(t *testing.T) {
	owner := uuid.New()
	actor := Actor{ID: uuid.New(), Roles: []string{"user"}}

	if err := Authorize(actor, &owner); !errors.Is(err, ErrForbidden) {
		t.Fatalf("non-owner should be forbidden, got %v", err)
	}
}

func TestAuthorizeAdminBypass(t *testing.T) {
	owner := uuid.New()
	admin := Actor{ID: uuid.New(), Roles: []string{"admin"}}

	if err := Authorize(admin, &owner); err != nil {
		t.Fatalf("admin should bypass ownership, got %v", err)
	}
	// Admin also passes on ownerless resources.
	if err := Authorize(admin, nil); err != nil {
		t.Fatalf("admin should access anonymous resources, got %v", err)
	}
}

func TestAuthorizeAnonymousResource(t *testing.T) {
	// A resource with no owner is admin-only, not public.
	actor := Actor{ID: uuid.New(), Roles: []string{"user"}}
	if err := Authorize(actor, nil); !errors.Is(err, ErrForbidden) {
		t.Fatalf("ownerless resource should deny non-admins, got %v", err)
	}
}

func TestAuthorizeAnonymousActor(t *testing.T) {
	owner := uuid.New()
	if err := Authorize(Actor{}, &owner); !errors.Is(err, ErrForbidden) {
		t.Fatal("anonymous actor should be forbidden")
	}
}

func TestRequireRole(t *testing.T) {
	actor := Actor{ID: uuid.New(), Roles: []string{"user", "admin"}}
	if err := RequireRole(actor, "admin"); err != nil {
		t.Fatalf("expected role check to pass, got %v", err)
	}
	if err := RequireRole(Actor{Roles: []string{"user"}}, "admin"); !errors.Is(err, ErrForbidden) {
		t.Fatal("missing role should be forbidden")
	}
}

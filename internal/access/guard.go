// Package access implements the role/ownership checks gating every mutation
// on submissions, files and admin-only resources. Callers compose the two
// checks: HasRole for admin-only operations, Authorize for self-service
// operations on owned resources.
package access

import (
	"errors"

	"github.com/google/uuid"
)

// ErrForbidden is returned when an actor lacks ownership or the required
// role for the requested operation.
var ErrForbidden = errors.New("forbidden")

// Actor is the authenticated identity performing an operation. A zero-value
// Actor (no ID, no roles) represents an anonymous caller.
type Actor struct {
	ID    uuid.UUID
	Email string
	Roles []string
}

// HasRole reports whether the actor carries the given role.
func (a Actor) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the actor carries the admin role.
func (a Actor) IsAdmin() bool {
	return a.HasRole("admin")
}

// Authorize checks that the actor may mutate a resource owned by ownerID.
// Admins always pass. A nil ownerID (anonymous resource) denies all
// non-admin access: ownerless resources are admin-only, not public.
func Authorize(actor Actor, ownerID *uuid.UUID) error {
	if actor.IsAdmin() {
		return nil
	}
	if ownerID == nil {
		return ErrForbidden
	}
	if actor.ID == uuid.Nil || actor.ID != *ownerID {
		return ErrForbidden
	}
	return nil
}

// RequireRole checks role membership, returning ErrForbidden when absent.
func RequireRole(actor Actor, role string) error {
	if !actor.HasRole(role) {
		return ErrForbidden
	}
	return nil
}

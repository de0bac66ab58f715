package authz

import "github.com/google/uuid"

// Role represents the access level of an authenticated user
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// IsValid checks if the role is a known value
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// Actor is the authenticated identity performing a request.
// It is resolved per-request by the authentication middleware and is
// never constructed from client-supplied identifiers.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

// IsAdmin reports whether the actor carries the admin role
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanMutate decides whether an actor may edit or delete a resource
// owned by ownerID. The rule is the same for every resource type:
// the owner may always mutate, and admins may mutate anything.
//
// The predicate is pure and total. Callers are responsible for loading
// ownerID fresh from the repository before evaluating it, and for
// translating a false result into a forbidden error. A missing resource
// must be reported as not-found before this check is ever reached.
func CanMutate(actor Actor, ownerID uuid.UUID) bool {
	return actor.ID == ownerID || actor.Role == RoleAdmin
}

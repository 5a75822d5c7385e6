package policy

import (
	"github.com/avoronov/techstore-backend/internal/app/model"
)

// Identity is the authenticated actor as resolved from a bearer token.
// A zero Identity (ID == 0) means the request is anonymous.
type Identity struct {
	ID    uint
	Login string
	Role  model.UserRole
}

// Anonymous reports whether the identity belongs to no authenticated user
func (i Identity) Anonymous() bool {
	return i.ID == 0
}

// IsAdmin reports whether the identity carries the admin role
func (i Identity) IsAdmin() bool {
	return i.Role == model.RoleAdmin
}

// Reason tags why a decision allowed or denied an operation. The HTTP
// boundary maps reasons to status codes; the policy itself knows nothing
// about HTTP.
type Reason string

const (
	ReasonAllowed        Reason = "allowed"
	ReasonForbidden      Reason = "forbidden"
	ReasonNotOwner       Reason = "not-owner"
	ReasonSelfDeletion   Reason = "self-deletion"
	ReasonProtectedAdmin Reason = "protected-admin"
)

// Decision is the outcome of a policy check
type Decision struct {
	Allowed bool
	Reason  Reason
}

func allow() Decision {
	return Decision{Allowed: true, Reason: ReasonAllowed}
}

func deny(reason Reason) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// CanDeleteUser decides whether actor may delete target. Admins may delete
// ordinary users, but never themselves and never another admin.
func CanDeleteUser(actor Identity, target *model.User) Decision {
	if actor.ID == target.ID {
		return deny(ReasonSelfDeletion)
	}
	if target.Role == model.RoleAdmin {
		return deny(ReasonProtectedAdmin)
	}
	if actor.IsAdmin() {
		return allow()
	}
	return deny(ReasonForbidden)
}

// CanMutateComment decides whether actor may edit a comment. Only the
// author may, admins included.
func CanMutateComment(actor Identity, comment *model.Comment) Decision {
	if actor.ID == comment.UserID {
		return allow()
	}
	return deny(ReasonNotOwner)
}

// CanDeleteComment decides whether actor may delete a comment: the author
// or any admin.
func CanDeleteComment(actor Identity, comment *model.Comment) Decision {
	if actor.ID == comment.UserID || actor.IsAdmin() {
		return allow()
	}
	return deny(ReasonForbidden)
}

// CanWriteCatalog decides whether actor may create, update or delete
// catalog entities (products and brands).
func CanWriteCatalog(actor Identity) Decision {
	if actor.IsAdmin() {
		return allow()
	}
	return deny(ReasonForbidden)
}

// Package authz holds the authorization policy for the pizza service: a
// single pure decision function evaluated by every guarded endpoint, in
// place of per-route role checks.
package authz

import (
	"github.com/jwtpizza/pizza-service/users"
)

// Context is the resolved principal attached to a request after successful
// token validation. A nil *Context means the request is anonymous; there is
// no partially-authenticated state.
type Context struct {
	ID    int                    `json:"id"`
	Name  string                 `json:"name"`
	Email string                 `json:"email"`
	Roles []users.RoleAssignment `json:"roles"`
}

// IsRole reports whether the principal holds a role of the given kind.
// Safe to call on a nil context.
func (c *Context) IsRole(role users.Role) bool {
	if c == nil {
		return false
	}
	for _, r := range c.Roles {
		if r.Role == role {
			return true
		}
	}
	return false
}

// Operation identifies a guarded action on a resource.
type Operation string

const (
	OpViewProfile        Operation = "user.viewProfile"
	OpUpdateUser         Operation = "user.update"
	OpListUsers          Operation = "user.list"
	OpCreateFranchise    Operation = "franchise.create"
	OpDeleteFranchise    Operation = "franchise.delete"
	OpListUserFranchises Operation = "franchise.listForUser"
	OpCreateStore        Operation = "store.create"
	OpDeleteStore        Operation = "store.delete"
	OpEditMenu           Operation = "menu.edit"
	OpListOrders         Operation = "order.list"
	OpCreateOrder        Operation = "order.create"
)

// Facts carries the ownership facts a decision needs. Callers populate only
// the fields relevant to the operation.
type Facts struct {
	// TargetUserID is the user a user-scoped operation acts on.
	TargetUserID int

	// FranchiseAdminIDs are the IDs listed as admins of the target
	// franchise, for store operations.
	FranchiseAdminIDs []int
}

// Decide answers whether the principal may perform op given the supplied
// facts. It returns nil to allow, UnauthenticatedErr when no principal is
// present, and ForbiddenErr when the principal lacks authorization.
//
// The admin role satisfies every ownership-based check; ownership never
// satisfies an admin-only check.
func Decide(c *Context, op Operation, facts Facts) error {
	if c == nil {
		return UnauthenticatedErr
	}

	switch op {
	case OpViewProfile, OpListUsers, OpListOrders, OpCreateOrder:
		// Any authenticated principal. Orders are scoped to the caller by
		// the resource layer, never to another principal.
		return nil

	case OpUpdateUser, OpListUserFranchises:
		if c.ID == facts.TargetUserID || c.IsRole(users.RoleAdmin) {
			return nil
		}
		return ForbiddenErr

	case OpCreateFranchise, OpDeleteFranchise, OpEditMenu:
		if c.IsRole(users.RoleAdmin) {
			return nil
		}
		return ForbiddenErr

	case OpCreateStore, OpDeleteStore:
		if c.IsRole(users.RoleAdmin) {
			return nil
		}
		for _, id := range facts.FranchiseAdminIDs {
			if id == c.ID {
				return nil
			}
		}
		return ForbiddenErr
	}

	// Unknown operations fail closed.
	return ForbiddenErr
}

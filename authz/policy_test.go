package authz_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jwtpizza/pizza-service/authz"
	"github.com/jwtpizza/pizza-service/users"
)

func adminContext() *authz.Context {
	return &authz.Context{ID: 1, Roles: []users.RoleAssignment{{Role: users.RoleAdmin}}}
}

func franchiseeContext(id int) *authz.Context {
	return &authz.Context{ID: id, Roles: []users.RoleAssignment{{Role: users.RoleFranchisee, ObjectID: 5}}}
}

func dinerContext(id int) *authz.Context {
	return &authz.Context{ID: id, Roles: []users.RoleAssignment{{Role: users.RoleDiner}}}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name    string
		caller  *authz.Context
		op      authz.Operation
		facts   authz.Facts
		wantErr error
	}{
		{name: "anonymous is unauthenticated", caller: nil, op: authz.OpViewProfile, wantErr: authz.UnauthenticatedErr},
		{name: "anonymous admin op is unauthenticated not forbidden", caller: nil, op: authz.OpCreateFranchise, wantErr: authz.UnauthenticatedErr},

		{name: "any principal views own profile", caller: dinerContext(2), op: authz.OpViewProfile},
		{name: "any principal lists users", caller: dinerContext(2), op: authz.OpListUsers},
		{name: "any principal lists own orders", caller: dinerContext(2), op: authz.OpListOrders},
		{name: "any principal creates orders", caller: dinerContext(2), op: authz.OpCreateOrder},

		{name: "user updates self", caller: dinerContext(2), op: authz.OpUpdateUser, facts: authz.Facts{TargetUserID: 2}},
		{name: "user cannot update another user", caller: dinerContext(2), op: authz.OpUpdateUser, facts: authz.Facts{TargetUserID: 3}, wantErr: authz.ForbiddenErr},
		{name: "admin updates any user", caller: adminContext(), op: authz.OpUpdateUser, facts: authz.Facts{TargetUserID: 3}},

		{name: "user lists own franchises", caller: franchiseeContext(4), op: authz.OpListUserFranchises, facts: authz.Facts{TargetUserID: 4}},
		{name: "user cannot list another user's franchises", caller: franchiseeContext(4), op: authz.OpListUserFranchises, facts: authz.Facts{TargetUserID: 9}, wantErr: authz.ForbiddenErr},
		{name: "admin lists anyone's franchises", caller: adminContext(), op: authz.OpListUserFranchises, facts: authz.Facts{TargetUserID: 9}},

		{name: "admin creates franchise", caller: adminContext(), op: authz.OpCreateFranchise},
		{name: "franchisee cannot create franchise", caller: franchiseeContext(4), op: authz.OpCreateFranchise, wantErr: authz.ForbiddenErr},
		{name: "admin deletes franchise", caller: adminContext(), op: authz.OpDeleteFranchise},
		{name: "owner cannot delete franchise", caller: franchiseeContext(4), op: authz.OpDeleteFranchise, facts: authz.Facts{FranchiseAdminIDs: []int{4}}, wantErr: authz.ForbiddenErr},

		{name: "admin edits menu", caller: adminContext(), op: authz.OpEditMenu},
		{name: "diner cannot edit menu", caller: dinerContext(2), op: authz.OpEditMenu, wantErr: authz.ForbiddenErr},

		{name: "listed owner creates store", caller: franchiseeContext(4), op: authz.OpCreateStore, facts: authz.Facts{FranchiseAdminIDs: []int{4, 8}}},
		{name: "unlisted franchisee cannot create store", caller: franchiseeContext(4), op: authz.OpCreateStore, facts: authz.Facts{FranchiseAdminIDs: []int{8}}, wantErr: authz.ForbiddenErr},
		{name: "admin creates store without ownership", caller: adminContext(), op: authz.OpCreateStore, facts: authz.Facts{FranchiseAdminIDs: []int{8}}},
		{name: "listed owner deletes store", caller: franchiseeContext(4), op: authz.OpDeleteStore, facts: authz.Facts{FranchiseAdminIDs: []int{4}}},
		{name: "diner cannot delete store", caller: dinerContext(2), op: authz.OpDeleteStore, facts: authz.Facts{FranchiseAdminIDs: []int{4}}, wantErr: authz.ForbiddenErr},

		{name: "unknown operation fails closed", caller: adminContext(), op: authz.Operation("bogus"), wantErr: authz.ForbiddenErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := authz.Decide(tt.caller, tt.op, tt.facts)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestForbiddenAndUnauthenticatedAreDistinct(t *testing.T) {
	// both render as "unauthorized" but map to different statuses
	require.Equal(t, authz.UnauthenticatedErr.Error(), authz.ForbiddenErr.Error())
	require.NotErrorIs(t, authz.ForbiddenErr, authz.UnauthenticatedErr)
}

func TestIsRoleOnNilContext(t *testing.T) {
	var c *authz.Context
	require.False(t, c.IsRole(users.RoleAdmin))
}

package users_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jwtpizza/pizza-service/users"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := users.HashPassword("toomanysecrets")
	require.NoError(t, err)
	require.NotEqual(t, "toomanysecrets", hash)

	require.True(t, users.CheckPasswordHash("toomanysecrets", hash))
	require.False(t, users.CheckPasswordHash("wrong", hash))
	require.False(t, users.CheckPasswordHash("toomanysecrets", "not-a-hash"))
}

func TestIsRole(t *testing.T) {
	u := &users.User{Roles: []users.RoleAssignment{
		{Role: users.RoleDiner},
		{Role: users.RoleFranchisee, ObjectID: 3},
	}}

	require.True(t, u.IsRole(users.RoleDiner))
	require.True(t, u.IsRole(users.RoleFranchisee))
	require.False(t, u.IsRole(users.RoleAdmin))
}

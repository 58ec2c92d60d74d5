package users

import (
	"golang.org/x/crypto/bcrypt"
)

// Role is the kind of capability granted to a user.
type Role string

const (
	RoleAdmin      Role = "admin"      // Can manage users, franchises, stores, and the menu
	RoleFranchisee Role = "franchisee" // Listed as an admin of one or more franchises
	RoleDiner      Role = "diner"      // Regular customer, assigned at registration
)

// RoleAssignment grants a role to a user. ObjectID optionally references the
// franchise a franchisee grant relates to; role checks evaluate the kind only.
type RoleAssignment struct {
	Role     Role `json:"role"`
	ObjectID int  `json:"objectId,omitempty"`
}

// User is a registered principal.
type User struct {
	ID       int              `json:"id,omitempty"`
	Name     string           `json:"name,omitempty"`
	Email    string           `json:"email,omitempty"`
	Password string           `json:"-"` // Hashed password - never serialize
	Roles    []RoleAssignment `json:"roles,omitempty"`
}

// IsRole reports whether the user holds a role of the given kind.
func (u *User) IsRole(role Role) bool {
	for _, r := range u.Roles {
		if r.Role == role {
			return true
		}
	}
	return false
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

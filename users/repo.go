package users

import "context"

// Repo defines persistence for users and their role assignments.
type Repo interface {
	// Add stores a new user (password already hashed) and returns it with
	// its assigned ID.
	Add(ctx context.Context, user *User) (*User, error)

	// Get retrieves a user by ID
	Get(ctx context.Context, id int) (*User, error)

	// GetByEmail retrieves a user by email address
	GetByEmail(ctx context.Context, email string) (*User, error)

	// List returns users filtered by name (substring match, empty matches
	// all), paginated by page/limit. A limit of zero returns everything.
	List(ctx context.Context, page, limit int, name string) ([]*User, error)

	// Update stores changed name/email/password for an existing user and
	// returns the stored state.
	Update(ctx context.Context, user *User) (*User, error)
}

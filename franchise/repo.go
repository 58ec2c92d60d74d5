package franchise

import "context"

// Repo defines persistence for franchises and their stores.
type Repo interface {
	// Create stores a new franchise. Admins are referenced by email; the
	// implementation resolves them to existing users and fills in their
	// IDs and names.
	Create(ctx context.Context, f *Franchise) (*Franchise, error)

	// Delete removes a franchise along with its stores
	Delete(ctx context.Context, franchiseID int) error

	// List returns franchises filtered by name (substring match), paginated
	// by page/limit, plus a flag indicating more pages remain. Admin
	// rosters are not included; listing is public.
	List(ctx context.Context, page, limit int, name string) ([]*Franchise, bool, error)

	// ListForUser returns the franchises whose admin roster includes the user
	ListForUser(ctx context.Context, userID int) ([]*Franchise, error)

	// Get retrieves a single franchise with its admin roster and stores
	Get(ctx context.Context, franchiseID int) (*Franchise, error)

	// CreateStore adds a store under a franchise
	CreateStore(ctx context.Context, franchiseID int, store *Store) (*Store, error)

	// DeleteStore removes a store from a franchise
	DeleteStore(ctx context.Context, franchiseID, storeID int) error
}

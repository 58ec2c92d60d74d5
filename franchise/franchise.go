package franchise

// Admin is a principal summary listed in a franchise's admin roster. A user
// owns a franchise iff their ID appears in this list.
type Admin struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Store is a single outlet of a franchise. Ownership is transitive: whoever
// owns the parent franchise owns the store.
type Store struct {
	ID           int     `json:"id"`
	FranchiseID  int     `json:"franchiseId,omitempty"`
	Name         string  `json:"name"`
	TotalRevenue float64 `json:"totalRevenue,omitempty"`
}

type Franchise struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Admins []Admin `json:"admins,omitempty"`
	Stores []Store `json:"stores"`
}

// AdminIDs returns the IDs of the franchise's listed admins, the ownership
// fact the authorization policy evaluates for store operations.
func (f *Franchise) AdminIDs() []int {
	ids := make([]int, 0, len(f.Admins))
	for _, a := range f.Admins {
		ids = append(ids, a.ID)
	}
	return ids
}

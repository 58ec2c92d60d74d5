package fakefranchiserepo

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jwtpizza/pizza-service/franchise"
	"github.com/jwtpizza/pizza-service/users"
	"github.com/pkg/errors"
)

var _ franchise.Repo = (*FakeFranchiseRepo)(nil)

type FakeFranchiseRepo struct {
	franchises map[int]*franchise.Franchise
	nextID     int
	nextStore  int
	userRepo   users.Repo // resolves admin emails on create, may be nil
	lock       sync.RWMutex
}

func NewFakeFranchiseRepo(userRepo users.Repo) *FakeFranchiseRepo {
	return &FakeFranchiseRepo{
		franchises: make(map[int]*franchise.Franchise),
		nextID:     1,
		nextStore:  1,
		userRepo:   userRepo,
	}
}

func (fr *FakeFranchiseRepo) Create(ctx context.Context, f *franchise.Franchise) (*franchise.Franchise, error) {
	fr.lock.Lock()
	defer fr.lock.Unlock()

	stored := cloneFranchise(f)
	for i, admin := range stored.Admins {
		if fr.userRepo == nil {
			continue
		}
		user, err := fr.userRepo.GetByEmail(ctx, admin.Email)
		if err != nil {
			return nil, errors.Wrapf(err, "unknown admin %s", admin.Email)
		}
		stored.Admins[i] = franchise.Admin{ID: user.ID, Name: user.Name, Email: user.Email}
	}
	stored.ID = fr.nextID
	fr.nextID++
	if stored.Stores == nil {
		stored.Stores = []franchise.Store{}
	}
	fr.franchises[stored.ID] = stored
	return cloneFranchise(stored), nil
}

func (fr *FakeFranchiseRepo) Delete(ctx context.Context, franchiseID int) error {
	fr.lock.Lock()
	defer fr.lock.Unlock()
	delete(fr.franchises, franchiseID)
	return nil
}

func (fr *FakeFranchiseRepo) List(ctx context.Context, page, limit int, name string) ([]*franchise.Franchise, bool, error) {
	fr.lock.RLock()
	defer fr.lock.RUnlock()

	list := make([]*franchise.Franchise, 0, len(fr.franchises))
	for _, f := range fr.franchises {
		if name != "" && !strings.Contains(strings.ToLower(f.Name), strings.ToLower(name)) {
			continue
		}
		c := cloneFranchise(f)
		c.Admins = nil
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })

	if limit <= 0 {
		return list, false, nil
	}
	offset := page * limit
	if offset >= len(list) {
		return []*franchise.Franchise{}, false, nil
	}
	end := offset + limit
	more := end < len(list)
	if end > len(list) {
		end = len(list)
	}
	return list[offset:end], more, nil
}

func (fr *FakeFranchiseRepo) ListForUser(ctx context.Context, userID int) ([]*franchise.Franchise, error) {
	fr.lock.RLock()
	defer fr.lock.RUnlock()

	list := make([]*franchise.Franchise, 0)
	for _, f := range fr.franchises {
		for _, admin := range f.Admins {
			if admin.ID == userID {
				list = append(list, cloneFranchise(f))
				break
			}
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (fr *FakeFranchiseRepo) Get(ctx context.Context, franchiseID int) (*franchise.Franchise, error) {
	fr.lock.RLock()
	defer fr.lock.RUnlock()

	f, ok := fr.franchises[franchiseID]
	if !ok {
		return nil, errors.New("unknown franchise")
	}
	return cloneFranchise(f), nil
}

func (fr *FakeFranchiseRepo) CreateStore(ctx context.Context, franchiseID int, store *franchise.Store) (*franchise.Store, error) {
	fr.lock.Lock()
	defer fr.lock.Unlock()

	f, ok := fr.franchises[franchiseID]
	if !ok {
		return nil, errors.New("unknown franchise")
	}
	created := franchise.Store{
		ID:          fr.nextStore,
		FranchiseID: franchiseID,
		Name:        store.Name,
	}
	fr.nextStore++
	f.Stores = append(f.Stores, created)
	return &created, nil
}

func (fr *FakeFranchiseRepo) DeleteStore(ctx context.Context, franchiseID, storeID int) error {
	fr.lock.Lock()
	defer fr.lock.Unlock()

	f, ok := fr.franchises[franchiseID]
	if !ok {
		return errors.New("unknown franchise")
	}
	for i, s := range f.Stores {
		if s.ID == storeID {
			f.Stores = append(f.Stores[:i], f.Stores[i+1:]...)
			return nil
		}
	}
	return nil
}

func cloneFranchise(f *franchise.Franchise) *franchise.Franchise {
	c := *f
	c.Admins = append([]franchise.Admin(nil), f.Admins...)
	c.Stores = append([]franchise.Store(nil), f.Stores...)
	return &c
}

package fakeuserrepo

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jwtpizza/pizza-service/users"
	"github.com/pkg/errors"
)

var _ users.Repo = (*FakeUserRepo)(nil)

type FakeUserRepo struct {
	users    map[int]*users.User
	emailIds map[string]int // email to user id
	nextID   int
	lock     sync.RWMutex
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		users:    make(map[int]*users.User),
		emailIds: make(map[string]int),
		nextID:   1,
	}
}

func (ur *FakeUserRepo) Add(ctx context.Context, user *users.User) (*users.User, error) {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if _, ok := ur.emailIds[user.Email]; ok {
		return nil, errors.New("email already registered")
	}

	stored := cloneUser(user)
	stored.ID = ur.nextID
	ur.nextID++
	ur.users[stored.ID] = stored
	ur.emailIds[stored.Email] = stored.ID
	return cloneUser(stored), nil
}

func (ur *FakeUserRepo) Get(ctx context.Context, id int) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	user, ok := ur.users[id]
	if !ok {
		return nil, errors.New("unknown user")
	}
	return cloneUser(user), nil
}

func (ur *FakeUserRepo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	id, ok := ur.emailIds[email]
	if !ok {
		return nil, errors.New("unknown user")
	}
	return cloneUser(ur.users[id]), nil
}

func (ur *FakeUserRepo) List(ctx context.Context, page, limit int, name string) ([]*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	list := make([]*users.User, 0, len(ur.users))
	for _, u := range ur.users {
		if name != "" && !strings.Contains(strings.ToLower(u.Name), strings.ToLower(name)) {
			continue
		}
		list = append(list, cloneUser(u))
	}

	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })

	if limit <= 0 {
		return list, nil
	}
	offset := page * limit
	if offset >= len(list) {
		return []*users.User{}, nil
	}
	end := offset + limit
	if end > len(list) {
		end = len(list)
	}
	return list[offset:end], nil
}

func (ur *FakeUserRepo) Update(ctx context.Context, user *users.User) (*users.User, error) {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	existing, ok := ur.users[user.ID]
	if !ok {
		return nil, errors.New("unknown user")
	}

	if user.Name != "" {
		existing.Name = user.Name
	}
	if user.Email != "" {
		delete(ur.emailIds, existing.Email)
		existing.Email = user.Email
		ur.emailIds[existing.Email] = existing.ID
	}
	if user.Password != "" {
		existing.Password = user.Password
	}
	return cloneUser(existing), nil
}

func cloneUser(u *users.User) *users.User {
	c := *u
	c.Roles = append([]users.RoleAssignment(nil), u.Roles...)
	return &c
}

package fakerevocationstore

import (
	"context"
	"sync"

	"github.com/jwtpizza/pizza-service/session"
)

var _ session.RevocationStore = (*FakeRevocationStore)(nil)

// FakeRevocationStore is an in-memory revocation store for tests. Err, when
// set, is returned from every call to exercise fail-closed behavior.
type FakeRevocationStore struct {
	loggedIn map[string]struct{}
	lock     sync.RWMutex

	Err error
}

func NewFakeRevocationStore() *FakeRevocationStore {
	return &FakeRevocationStore{
		loggedIn: make(map[string]struct{}),
	}
}

func (rs *FakeRevocationStore) RecordLogin(ctx context.Context, token string) error {
	if rs.Err != nil {
		return rs.Err
	}
	rs.lock.Lock()
	defer rs.lock.Unlock()
	rs.loggedIn[token] = struct{}{}
	return nil
}

func (rs *FakeRevocationStore) RecordLogout(ctx context.Context, token string) error {
	if rs.Err != nil {
		return rs.Err
	}
	rs.lock.Lock()
	defer rs.lock.Unlock()
	delete(rs.loggedIn, token)
	return nil
}

func (rs *FakeRevocationStore) IsLoggedIn(ctx context.Context, token string) (bool, error) {
	if rs.Err != nil {
		return false, rs.Err
	}
	rs.lock.RLock()
	defer rs.lock.RUnlock()
	_, ok := rs.loggedIn[token]
	return ok, nil
}

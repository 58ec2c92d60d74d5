package fakeorderrepo

import (
	"context"
	"sync"
	"time"

	"github.com/jwtpizza/pizza-service/order"
)

var _ order.Repo = (*FakeOrderRepo)(nil)

// FakeOrderRepo is an in-memory order store for tests. MenuErr, when set,
// is returned from menu reads.
type FakeOrderRepo struct {
	menu      []order.MenuItem
	orders    map[int][]*order.Order // dinerID -> orders
	nextMenu  int
	nextOrder int
	lock      sync.RWMutex

	MenuErr error
}

func NewFakeOrderRepo() *FakeOrderRepo {
	return &FakeOrderRepo{
		menu:      []order.MenuItem{},
		orders:    make(map[int][]*order.Order),
		nextMenu:  1,
		nextOrder: 1,
	}
}

func (or *FakeOrderRepo) Menu(ctx context.Context) ([]order.MenuItem, error) {
	if or.MenuErr != nil {
		return nil, or.MenuErr
	}
	or.lock.RLock()
	defer or.lock.RUnlock()
	return append([]order.MenuItem(nil), or.menu...), nil
}

func (or *FakeOrderRepo) AddMenuItem(ctx context.Context, item *order.MenuItem) (*order.MenuItem, error) {
	or.lock.Lock()
	defer or.lock.Unlock()

	added := *item
	added.ID = or.nextMenu
	or.nextMenu++
	or.menu = append(or.menu, added)
	return &added, nil
}

func (or *FakeOrderRepo) OrdersForDiner(ctx context.Context, dinerID, page int) (*order.DinerOrders, error) {
	or.lock.RLock()
	defer or.lock.RUnlock()

	return &order.DinerOrders{
		DinerID: dinerID,
		Orders:  append([]*order.Order{}, or.orders[dinerID]...),
		Page:    page,
	}, nil
}

func (or *FakeOrderRepo) AddDinerOrder(ctx context.Context, dinerID int, o *order.Order) (*order.Order, error) {
	or.lock.Lock()
	defer or.lock.Unlock()

	stored := *o
	stored.ID = or.nextOrder
	stored.Date = time.Now()
	or.nextOrder++
	or.orders[dinerID] = append(or.orders[dinerID], &stored)
	return &stored, nil
}

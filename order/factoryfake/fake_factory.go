package fakefactory

import (
	"context"
	"sync"

	"github.com/jwtpizza/pizza-service/order"
)

var _ order.Factory = (*FakeFactory)(nil)

// FakeFactory is a configurable in-memory factory for tests.
type FakeFactory struct {
	JWT       string
	ReportURL string
	Fail      bool

	calls int
	lock  sync.Mutex
}

func NewFakeFactory() *FakeFactory {
	return &FakeFactory{
		JWT:       "factory-jwt",
		ReportURL: "https://factory.example.com/report/1",
	}
}

func (f *FakeFactory) Fulfill(ctx context.Context, diner order.Diner, o *order.Order) (*order.Fulfillment, error) {
	f.lock.Lock()
	f.calls++
	f.lock.Unlock()

	if f.Fail {
		return &order.Fulfillment{ReportURL: f.ReportURL}, order.FulfillFailedErr
	}
	return &order.Fulfillment{JWT: f.JWT, ReportURL: f.ReportURL}, nil
}

// Calls reports how many fulfillment attempts were made.
func (f *FakeFactory) Calls() int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.calls
}

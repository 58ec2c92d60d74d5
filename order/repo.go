package order

import "context"

// Repo defines persistence for the menu and diner orders.
type Repo interface {
	// Menu returns every menu item
	Menu(ctx context.Context) ([]MenuItem, error)

	// AddMenuItem stores a new menu item and returns it with its ID
	AddMenuItem(ctx context.Context, item *MenuItem) (*MenuItem, error)

	// OrdersForDiner returns a page of the diner's own orders. Orders are
	// always scoped to the given diner, never another principal's.
	OrdersForDiner(ctx context.Context, dinerID, page int) (*DinerOrders, error)

	// AddDinerOrder persists a new order for the diner
	AddDinerOrder(ctx context.Context, dinerID int, o *Order) (*Order, error)
}

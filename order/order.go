package order

import "time"

// MenuItem is a pizza offered for sale.
type MenuItem struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
}

// Item is a single line of an order, priced at order time.
type Item struct {
	MenuID      int     `json:"menuId"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// Order is a diner's purchase at a specific store.
type Order struct {
	ID          int       `json:"id,omitempty"`
	FranchiseID int       `json:"franchiseId"`
	StoreID     int       `json:"storeId"`
	Date        time.Time `json:"date,omitempty"`
	Items       []Item    `json:"items"`
}

// Total is the sum of the order's item prices.
func (o *Order) Total() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.Price
	}
	return total
}

// DinerOrders is a page of a diner's order history.
type DinerOrders struct {
	DinerID int      `json:"dinerId"`
	Orders  []*Order `json:"orders"`
	Page    int      `json:"page"`
}

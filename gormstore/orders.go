package gormstore

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/jwtpizza/pizza-service/order"
)

// ordersPageSize matches the page length served by the order history endpoint.
const ordersPageSize = 10

type Orders struct {
	db *gorm.DB
}

var _ order.Repo = (*Orders)(nil)

func NewOrders(db *gorm.DB) *Orders {
	return &Orders{db: db}
}

func (r *Orders) Menu(ctx context.Context) ([]order.MenuItem, error) {
	var records []menuItemRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, errors.Wrap(err, "load menu")
	}

	menu := make([]order.MenuItem, 0, len(records))
	for _, record := range records {
		menu = append(menu, order.MenuItem{
			ID:          record.ID,
			Title:       record.Title,
			Description: record.Description,
			Image:       record.Image,
			Price:       record.Price,
		})
	}
	return menu, nil
}

func (r *Orders) AddMenuItem(ctx context.Context, item *order.MenuItem) (*order.MenuItem, error) {
	record := menuItemRecord{
		Title:       item.Title,
		Description: item.Description,
		Image:       item.Image,
		Price:       item.Price,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, errors.Wrap(err, "add menu item")
	}

	added := *item
	added.ID = record.ID
	return &added, nil
}

func (r *Orders) OrdersForDiner(ctx context.Context, dinerID, page int) (*order.DinerOrders, error) {
	var records []orderRecord
	err := r.db.WithContext(ctx).
		Where("diner_id = ?", dinerID).
		Order("id").
		Offset(page * ordersPageSize).
		Limit(ordersPageSize).
		Find(&records).Error
	if err != nil {
		return nil, errors.Wrap(err, "load orders")
	}

	orders := make([]*order.Order, 0, len(records))
	for _, record := range records {
		items, err := r.itemsOf(ctx, record.ID)
		if err != nil {
			return nil, err
		}
		orders = append(orders, &order.Order{
			ID:          record.ID,
			FranchiseID: record.FranchiseID,
			StoreID:     record.StoreID,
			Date:        record.Date,
			Items:       items,
		})
	}

	return &order.DinerOrders{DinerID: dinerID, Orders: orders, Page: page}, nil
}

func (r *Orders) AddDinerOrder(ctx context.Context, dinerID int, o *order.Order) (*order.Order, error) {
	record := orderRecord{
		DinerID:     dinerID,
		FranchiseID: o.FranchiseID,
		StoreID:     o.StoreID,
		Date:        time.Now(),
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return errors.Wrap(err, "create order")
		}
		for _, item := range o.Items {
			itemRecord := orderItemRecord{
				OrderID:     record.ID,
				MenuID:      item.MenuID,
				Description: item.Description,
				Price:       item.Price,
			}
			if err := tx.Create(&itemRecord).Error; err != nil {
				return errors.Wrap(err, "create order item")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	stored := *o
	stored.ID = record.ID
	stored.Date = record.Date
	return &stored, nil
}

func (r *Orders) itemsOf(ctx context.Context, orderID int) ([]order.Item, error) {
	var records []orderItemRecord
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("id").Find(&records).Error; err != nil {
		return nil, errors.Wrap(err, "load order items")
	}

	items := make([]order.Item, 0, len(records))
	for _, record := range records {
		items = append(items, order.Item{MenuID: record.MenuID, Description: record.Description, Price: record.Price})
	}
	return items, nil
}

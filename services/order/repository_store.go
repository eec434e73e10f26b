package order

import (
	"context"
	"fmt"
	"time"

	"github.com/MarcGrol/marketplace/lib/mystore"
)

type storeRepository struct {
	orderStore mystore.Store[Order]
}

func NewStoreRepository(orderStore mystore.Store[Order]) *storeRepository {
	return &storeRepository{
		orderStore: orderStore,
	}
}

func (r *storeRepository) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	return r.orderStore.RunInTransaction(c, f)
}

func (r *storeRepository) Insert(c context.Context, order Order) error {
	_, exists, err := r.orderStore.Get(c, order.UID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("order %s already exists", order.UID)
	}
	return r.orderStore.Put(c, order.UID, order)
}

func (r *storeRepository) Get(c context.Context, orderUID string) (Order, bool, error) {
	return r.orderStore.Get(c, orderUID)
}

func (r *storeRepository) UpdateStatus(c context.Context, orderUID string, expected OrderStatus, next OrderStatus, lastModified time.Time) (Order, error) {
	var order Order
	err := r.orderStore.RunInTransaction(c, func(c context.Context) error {
		var exists bool
		var err error
		order, exists, err = r.orderStore.Get(c, orderUID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("order %s: %w", orderUID, ErrOrderNotFound)
		}
		if order.OrderStatus != expected {
			return fmt.Errorf("order %s is %s, not %s: %w", orderUID, order.OrderStatus, expected, ErrStatusMismatch)
		}
		order.OrderStatus = next
		order.LastModified = lastModified
		return r.orderStore.Put(c, orderUID, order)
	})
	if err != nil {
		return Order{}, err
	}
	return order, nil
}

func (r *storeRepository) ListByCustomer(c context.Context, customerUID string) ([]Order, error) {
	return r.orderStore.Query(c, []mystore.Filter{{Field: "CustomerUID", Compare: "=", Value: customerUID}}, "-CreatedAt")
}

func (r *storeRepository) ListByVendor(c context.Context, vendorUID string) ([]Order, error) {
	return r.orderStore.Query(c, []mystore.Filter{{Field: "VendorUID", Compare: "=", Value: vendorUID}}, "-CreatedAt")
}

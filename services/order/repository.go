package order

import (
	"context"
	"errors"
	"time"
)

var (
	ErrStatusMismatch     = errors.New("order status changed concurrently")
	// ErrRollbackIncomplete reports that a failed transaction could not undo all of its writes.
	ErrRollbackIncomplete = errors.New("order writes of failed transaction not undone")
)

type Repository interface {
	RunInTransaction(c context.Context, f func(c context.Context) error) error
	Insert(c context.Context, order Order) error
	Get(c context.Context, orderUID string) (Order, bool, error)
	// UpdateStatus is a compare-and-set: it fails with ErrStatusMismatch when the current status is not expected.
	UpdateStatus(c context.Context, orderUID string, expected OrderStatus, next OrderStatus, lastModified time.Time) (Order, error)
	ListByCustomer(c context.Context, customerUID string) ([]Order, error)
	ListByVendor(c context.Context, vendorUID string) ([]Order, error)
}

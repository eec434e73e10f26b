package checkout

import (
	"context"

	"github.com/MarcGrol/marketplace/services/catalog"
	"github.com/MarcGrol/marketplace/services/customer"
	"github.com/MarcGrol/marketplace/services/order"
)

//go:generate mockgen -source=api.go -package checkout -destination api_mock.go CustomerDirectory CartMutator ProductCatalog StockLedger OrderCreator

type CustomerDirectory interface {
	GetCustomer(c context.Context, customerUID string) (customer.Customer, error)
}

// CartMutator removes what was checked out, leaving items added in the meantime.
type CartMutator interface {
	RemoveCheckedOut(c context.Context, customerUID string, checkedOut []customer.CartItem) error
}

type ProductCatalog interface {
	GetProduct(c context.Context, productUID string) (catalog.Product, error)
}

// StockLedger reserves stock atomically per product.
type StockLedger interface {
	Available(c context.Context, productUID string) (int, error)
	CheckAndReserve(c context.Context, productUID string, quantity int) error
	Release(c context.Context, productUID string, quantity int) error
}

type OrderCreator interface {
	Create(c context.Context, o order.Order) (order.Order, error)
}

package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/MarcGrol/marketplace/lib/myerrors"
)

var ErrProductNotFound = errors.New("product not found")

// InsufficientStockError reports the stock that was available when a decrement was refused.
type InsufficientStockError struct {
	ProductUID string
	Requested  int
	Available  int
}

func (e InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d", e.ProductUID, e.Requested, e.Available)
}

func (e InsufficientStockError) GetHTTPErrorCode() int {
	return http.StatusConflict
}

// Catalog is the authoritative source of products and their stock.
// DecrementStock checks and decrements as one atomic unit and never lets stock drop below zero.
type Catalog interface {
	GetProduct(c context.Context, productUID string) (Product, error)
	PutProduct(c context.Context, product Product) error
	ListProductsOfVendor(c context.Context, vendorUID string) ([]Product, error)
	DecrementStock(c context.Context, productUID string, quantity int) (Product, error)
	IncrementStock(c context.Context, productUID string, quantity int) (Product, error)
}

func notFound(productUID string) error {
	return myerrors.NewNotFoundError(fmt.Errorf("product %s: %w", productUID, ErrProductNotFound))
}

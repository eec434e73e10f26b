package customer

import (
	"context"
	"errors"

	"github.com/MarcGrol/marketplace/lib/mylog"
	"github.com/MarcGrol/marketplace/lib/mystore"
	"github.com/MarcGrol/marketplace/lib/mytime"
	"github.com/MarcGrol/marketplace/services/catalog"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrNotInCart        = errors.New("product not in cart")
)

type ProductGetter interface {
	GetProduct(c context.Context, productUID string) (catalog.Product, error)
}

// Service is the customer directory and the only mutator of carts.
type Service struct {
	customerStore mystore.Store[Customer]
	products      ProductGetter
	nower         mytime.Nower
	logger        mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(store mystore.Store[Customer], products ProductGetter, nower mytime.Nower) *Service {
	return &Service{
		customerStore: store,
		products:      products,
		nower:         nower,
		logger:        mylog.New("customer"),
	}
}

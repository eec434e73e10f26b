package checkout

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"

	"github.com/MarcGrol/marketplace/lib/mylog"
	"github.com/MarcGrol/marketplace/services/catalog"
	"github.com/MarcGrol/marketplace/services/customer"
)

// readSnapshot resolves the cart against the live catalog. It has no side effects.
func (s *Service) readSnapshot(c context.Context, customerUID string) ([]CartLine, error) {
	c, span := s.tracer.Start(c, "checkout.snapshot")
	defer span.End()

	cust, err := s.customers.GetCustomer(c, customerUID)
	if err != nil {
		if errors.Is(err, customer.ErrCustomerNotFound) {
			return nil, newError(KindCustomerNotFound, nil, "customer %s not found", customerUID)
		}
		return nil, newError(KindStorageFault, err, "error fetching customer %s", customerUID)
	}
	lines := make([]CartLine, 0, len(cust.Cart))
	for _, item := range cust.Cart {
		if item.Quantity < 1 {
			s.logger.Log(c, customerUID, mylog.SeverityWarn, "Skipping %s with quantity %d in cart of customer %s", item.ProductUID, item.Quantity, customerUID)
			continue
		}
		product, err := s.products.GetProduct(c, item.ProductUID)
		if err != nil {
			return nil, productError(item.ProductUID, err)
		}
		lines = append(lines, CartLine{
			ProductUID: product.UID,
			Quantity:   item.Quantity,
			VendorUID:  product.VendorUID,
			UnitPrice:  product.Price,
		})
	}

	if len(lines) == 0 {
		return nil, newError(KindEmptyCart, nil, "cart of customer %s is empty", customerUID)
	}

	span.SetAttributes(attribute.Int("cart.lines", len(lines)))

	return lines, nil
}

func productError(productUID string, err error) *Error {
	if errors.Is(err, catalog.ErrProductNotFound) {
		e := newError(KindProductNotFound, nil, "product %s no longer exists", productUID)
		e.ProductUID = productUID
		return e
	}
	return newError(KindStorageFault, err, "error fetching product %s", productUID)
}

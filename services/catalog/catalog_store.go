package catalog

import (
	"context"
	"fmt"

	"github.com/MarcGrol/marketplace/lib/myerrors"
	"github.com/MarcGrol/marketplace/lib/mystore"
	"github.com/MarcGrol/marketplace/lib/mytime"
)

type storeCatalog struct {
	productStore mystore.Store[Product]
	nower        mytime.Nower
}

func NewStoreCatalog(productStore mystore.Store[Product], nower mytime.Nower) *storeCatalog {
	return &storeCatalog{
		productStore: productStore,
		nower:        nower,
	}
}

func (s *storeCatalog) GetProduct(c context.Context, productUID string) (Product, error) {
	product, found, err := s.productStore.Get(c, productUID)
	if err != nil {
		return Product{}, myerrors.NewUnavailableError(err)
	}
	if !found {
		return Product{}, notFound(productUID)
	}
	return product, nil
}

func (s *storeCatalog) PutProduct(c context.Context, product Product) error {
	product.LastModified = s.nower.Now()
	err := s.productStore.Put(c, product.UID, product)
	if err != nil {
		return myerrors.NewUnavailableError(err)
	}
	return nil
}

func (s *storeCatalog) ListProductsOfVendor(c context.Context, vendorUID string) ([]Product, error) {
	products, err := s.productStore.Query(c, []mystore.Filter{{Field: "VendorUID", Compare: "=", Value: vendorUID}}, "UID")
	if err != nil {
		return nil, myerrors.NewUnavailableError(err)
	}
	return products, nil
}

func (s *storeCatalog) DecrementStock(c context.Context, productUID string, quantity int) (Product, error) {
	if quantity <= 0 {
		return Product{}, myerrors.NewInvalidInputErrorf("quantity must be positive, got %d", quantity)
	}
	return s.adjustStock(c, productUID, func(product Product) (int, error) {
		if product.Stock < quantity {
			return 0, InsufficientStockError{ProductUID: productUID, Requested: quantity, Available: product.Stock}
		}
		return product.Stock - quantity, nil
	})
}

func (s *storeCatalog) IncrementStock(c context.Context, productUID string, quantity int) (Product, error) {
	if quantity <= 0 {
		return Product{}, myerrors.NewInvalidInputErrorf("quantity must be positive, got %d", quantity)
	}
	return s.adjustStock(c, productUID, func(product Product) (int, error) {
		return product.Stock + quantity, nil
	})
}

func (s *storeCatalog) adjustStock(c context.Context, productUID string, newStock func(Product) (int, error)) (Product, error) {
	var product Product
	err := s.productStore.RunInTransaction(c, func(c context.Context) error {
		var found bool
		var err error
		product, found, err = s.productStore.Get(c, productUID)
		if err != nil {
			return myerrors.NewUnavailableError(err)
		}
		if !found {
			return notFound(productUID)
		}

		stock, err := newStock(product)
		if err != nil {
			return err
		}

		product.Stock = stock
		product.LastModified = s.nower.Now()
		err = s.productStore.Put(c, productUID, product)
		if err != nil {
			return myerrors.NewUnavailableError(fmt.Errorf("error storing stock of product %s: %w", productUID, err))
		}
		return nil
	})
	if err != nil {
		return Product{}, err
	}
	return product, nil
}

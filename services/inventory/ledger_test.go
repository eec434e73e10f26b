package inventory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/marketplace/lib/myerrors"
	"github.com/MarcGrol/marketplace/lib/mystore"
	"github.com/MarcGrol/marketplace/lib/mytime"
	"github.com/MarcGrol/marketplace/services/catalog"
)

func TestLedger(t *testing.T) {
	c := context.TODO()

	t.Run("Available", func(t *testing.T) {
		// setup
		sut, _ := setup(t, 5)

		// when
		available, err := sut.Available(c, "p1")

		// then
		assert.NoError(t, err)
		assert.Equal(t, 5, available)
	})

	t.Run("Available of unknown product", func(t *testing.T) {
		// setup
		sut, _ := setup(t, 5)

		// when
		_, err := sut.Available(c, "p9")

		// then
		assert.True(t, errors.Is(err, catalog.ErrProductNotFound))
	})

	t.Run("Reserve within stock", func(t *testing.T) {
		// setup
		sut, products := setup(t, 5)

		// when
		err := sut.CheckAndReserve(c, "p1", 2)

		// then
		assert.NoError(t, err)
		assertStock(t, products, 3)
	})

	t.Run("Reserve exactly all stock", func(t *testing.T) {
		// setup
		sut, products := setup(t, 5)

		// when
		err := sut.CheckAndReserve(c, "p1", 5)

		// then
		assert.NoError(t, err)
		assertStock(t, products, 0)
	})

	t.Run("Reserve more than stock", func(t *testing.T) {
		// setup
		sut, products := setup(t, 3)

		// when
		err := sut.CheckAndReserve(c, "p1", 10)

		// then
		var insufficient catalog.InsufficientStockError
		assert.True(t, errors.As(err, &insufficient))
		assert.Equal(t, catalog.InsufficientStockError{ProductUID: "p1", Requested: 10, Available: 3}, insufficient)
		assertStock(t, products, 3)
	})

	t.Run("Reserve zero", func(t *testing.T) {
		// setup
		sut, products := setup(t, 3)

		// when
		err := sut.CheckAndReserve(c, "p1", 0)

		// then
		assert.Equal(t, 400, myerrors.GetHTTPStatus(err))
		assertStock(t, products, 3)
	})

	t.Run("Release", func(t *testing.T) {
		// setup
		sut, products := setup(t, 3)

		// given
		assert.NoError(t, sut.CheckAndReserve(c, "p1", 2))

		// when
		err := sut.Release(c, "p1", 2)

		// then
		assert.NoError(t, err)
		assertStock(t, products, 3)
	})

	t.Run("Concurrent reservations never oversell", func(t *testing.T) {
		// setup
		sut, products := setup(t, 10)

		// when
		var succeeded atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < 25; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if sut.CheckAndReserve(c, "p1", 1) == nil {
					succeeded.Add(1)
				}
			}()
		}
		wg.Wait()

		// then
		assert.Equal(t, int32(10), succeeded.Load())
		assertStock(t, products, 0)
	})
}

func setup(t *testing.T, stock int) (*Ledger, catalog.Catalog) {
	c := context.TODO()
	store, _, err := mystore.NewInMemoryStore[catalog.Product](c)
	assert.NoError(t, err)
	products := catalog.NewStoreCatalog(store, mytime.RealNower{})
	err = products.PutProduct(c, catalog.Product{UID: "p1", Name: "Tennis racket", VendorUID: "A", Price: decimal.NewFromInt(10), Stock: stock})
	assert.NoError(t, err)

	return NewLedger(products), products
}

func assertStock(t *testing.T, products catalog.Catalog, expected int) {
	product, err := products.GetProduct(context.TODO(), "p1")
	assert.NoError(t, err)
	assert.Equal(t, expected, product.Stock)
}

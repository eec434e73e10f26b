package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/marketplace/lib/myerrors"
	"github.com/MarcGrol/marketplace/lib/mystore"
	"github.com/MarcGrol/marketplace/lib/mytime"
)

var (
	racket = Product{UID: "p1", Name: "Tennis racket", VendorUID: "A", Price: decimal.NewFromInt(10), Stock: 5}
	balls  = Product{UID: "p2", Name: "Tennis balls", VendorUID: "B", Price: decimal.NewFromInt(50), Stock: 5}
)

type fixedNower struct{}

func (n fixedNower) Now() time.Time {
	return mytime.ExampleTime
}

func newTestCatalog(t *testing.T, products ...Product) *storeCatalog {
	c := context.TODO()
	store, _, err := mystore.NewInMemoryStore[Product](c)
	assert.NoError(t, err)
	sut := NewStoreCatalog(store, fixedNower{})
	for _, p := range products {
		assert.NoError(t, sut.PutProduct(c, p))
	}
	return sut
}

func TestStoreCatalog(t *testing.T) {
	c := context.TODO()

	t.Run("Get product", func(t *testing.T) {
		sut := newTestCatalog(t, racket)

		product, err := sut.GetProduct(c, "p1")

		assert.NoError(t, err)
		assert.Equal(t, "Tennis racket", product.Name)
		assert.True(t, decimal.NewFromInt(10).Equal(product.Price))
		assert.Equal(t, mytime.ExampleTime, product.LastModified)
	})

	t.Run("Get unknown product", func(t *testing.T) {
		sut := newTestCatalog(t)

		_, err := sut.GetProduct(c, "p1")

		assert.True(t, errors.Is(err, ErrProductNotFound))
		assert.Equal(t, 404, myerrors.GetHTTPStatus(err))
	})

	t.Run("Decrement stock", func(t *testing.T) {
		sut := newTestCatalog(t, racket)

		product, err := sut.DecrementStock(c, "p1", 2)

		assert.NoError(t, err)
		assert.Equal(t, 3, product.Stock)
		stored, _ := sut.GetProduct(c, "p1")
		assert.Equal(t, 3, stored.Stock)
	})

	t.Run("Decrement entire stock", func(t *testing.T) {
		sut := newTestCatalog(t, racket)

		product, err := sut.DecrementStock(c, "p1", 5)

		assert.NoError(t, err)
		assert.Equal(t, 0, product.Stock)
	})

	t.Run("Decrement beyond stock leaves stock unchanged", func(t *testing.T) {
		sut := newTestCatalog(t, racket)

		_, err := sut.DecrementStock(c, "p1", 6)

		var insufficient InsufficientStockError
		assert.True(t, errors.As(err, &insufficient))
		assert.Equal(t, InsufficientStockError{ProductUID: "p1", Requested: 6, Available: 5}, insufficient)
		assert.Equal(t, 409, myerrors.GetHTTPStatus(err))
		stored, _ := sut.GetProduct(c, "p1")
		assert.Equal(t, 5, stored.Stock)
	})

	t.Run("Decrement unknown product", func(t *testing.T) {
		sut := newTestCatalog(t)

		_, err := sut.DecrementStock(c, "p1", 1)

		assert.True(t, errors.Is(err, ErrProductNotFound))
	})

	t.Run("Decrement non positive quantity", func(t *testing.T) {
		sut := newTestCatalog(t, racket)

		_, err := sut.DecrementStock(c, "p1", 0)

		assert.Equal(t, 400, myerrors.GetHTTPStatus(err))
	})

	t.Run("Increment stock", func(t *testing.T) {
		sut := newTestCatalog(t, racket)

		product, err := sut.IncrementStock(c, "p1", 3)

		assert.NoError(t, err)
		assert.Equal(t, 8, product.Stock)
	})

	t.Run("List products of vendor", func(t *testing.T) {
		sut := newTestCatalog(t, racket, balls)

		products, err := sut.ListProductsOfVendor(c, "B")

		assert.NoError(t, err)
		assert.Len(t, products, 1)
		assert.Equal(t, "p2", products[0].UID)
	})

	t.Run("Concurrent decrements never oversell", func(t *testing.T) {
		sut := newTestCatalog(t, racket)

		succeeded := int32(0)
		wg := sync.WaitGroup{}
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := sut.DecrementStock(c, "p1", 1)
				if err == nil {
					atomic.AddInt32(&succeeded, 1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(5), succeeded)
		stored, _ := sut.GetProduct(c, "p1")
		assert.Equal(t, 0, stored.Stock)
	})
}

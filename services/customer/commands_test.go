package customer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/marketplace/lib/mystore"
	"github.com/MarcGrol/marketplace/lib/mytime"
	"github.com/MarcGrol/marketplace/services/catalog"
)

func TestRemoveCheckedOut(t *testing.T) {
	c := context.TODO()

	t.Run("Checked out cart becomes empty", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, storer, nower := setupService(t, ctrl)

		// given
		storer.Put(c, "c1", Customer{UID: "c1", Cart: []CartItem{{ProductUID: "p1", Quantity: 2}, {ProductUID: "p2", Quantity: 1}}})
		nower.EXPECT().Now().Return(mytime.ExampleTime)

		// when
		err := sut.RemoveCheckedOut(c, "c1", []CartItem{{ProductUID: "p1", Quantity: 2}, {ProductUID: "p2", Quantity: 1}})

		// then
		require.NoError(t, err)
		customer, _, _ := storer.Get(c, "c1")
		assert.Empty(t, customer.Cart)
	})

	t.Run("Items added during checkout stay", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, storer, nower := setupService(t, ctrl)

		// given
		storer.Put(c, "c1", Customer{UID: "c1", Cart: []CartItem{{ProductUID: "p1", Quantity: 3}, {ProductUID: "p2", Quantity: 1}}})
		nower.EXPECT().Now().Return(mytime.ExampleTime)

		// when
		err := sut.RemoveCheckedOut(c, "c1", []CartItem{{ProductUID: "p1", Quantity: 2}})

		// then
		require.NoError(t, err)
		customer, _, _ := storer.Get(c, "c1")
		assert.Equal(t, []CartItem{{ProductUID: "p1", Quantity: 1}, {ProductUID: "p2", Quantity: 1}}, customer.Cart)
	})

	t.Run("Product removed during checkout is ignored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, storer, nower := setupService(t, ctrl)

		// given
		storer.Put(c, "c1", Customer{UID: "c1", Cart: []CartItem{{ProductUID: "p2", Quantity: 1}}})
		nower.EXPECT().Now().Return(mytime.ExampleTime)

		// when
		err := sut.RemoveCheckedOut(c, "c1", []CartItem{{ProductUID: "p1", Quantity: 2}})

		// then
		require.NoError(t, err)
		customer, _, _ := storer.Get(c, "c1")
		assert.Equal(t, []CartItem{{ProductUID: "p2", Quantity: 1}}, customer.Cart)
	})

	t.Run("Unknown customer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, _, _ := setupService(t, ctrl)

		// when
		err := sut.RemoveCheckedOut(c, "c1", []CartItem{{ProductUID: "p1", Quantity: 2}})

		// then
		assert.True(t, errors.Is(err, ErrCustomerNotFound))
	})
}

func setupService(t *testing.T, ctrl *gomock.Controller) (*Service, mystore.Store[Customer], *mytime.MockNower) {
	c := context.TODO()
	storer, _, err := mystore.NewInMemoryStore[Customer](c)
	require.NoError(t, err)
	productStore, _, err := mystore.NewInMemoryStore[catalog.Product](c)
	require.NoError(t, err)
	nower := mytime.NewMockNower(ctrl)

	return NewService(storer, catalog.NewStoreCatalog(productStore, mytime.RealNower{}), nower), storer, nower
}

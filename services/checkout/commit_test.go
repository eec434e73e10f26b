package checkout

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/marketplace/lib/myerrors"
	"github.com/MarcGrol/marketplace/lib/mypublisher"
	"github.com/MarcGrol/marketplace/services/catalog"
	"github.com/MarcGrol/marketplace/services/checkout/checkoutevents"
	"github.com/MarcGrol/marketplace/services/customer"
	"github.com/MarcGrol/marketplace/services/order"
)

type mocks struct {
	customers *MockCustomerDirectory
	carts     *MockCartMutator
	products  *MockProductCatalog
	ledger    *MockStockLedger
	orders    *MockOrderCreator
	publisher *mypublisher.MockPublisher
}

func setupMocks(ctrl *gomock.Controller) (*Service, mocks) {
	m := mocks{
		customers: NewMockCustomerDirectory(ctrl),
		carts:     NewMockCartMutator(ctrl),
		products:  NewMockProductCatalog(ctrl),
		ledger:    NewMockStockLedger(ctrl),
		orders:    NewMockOrderCreator(ctrl),
		publisher: mypublisher.NewMockPublisher(ctrl),
	}
	return NewService(m.customers, m.carts, m.products, m.ledger, m.orders, m.publisher), m
}

// givenTwoVendorCart expects a cart with p1 and p3 at vendor A and p2 at vendor B, all sufficiently in stock.
func (m mocks) givenTwoVendorCart() {
	m.customers.EXPECT().GetCustomer(gomock.Any(), "c1").Return(customer.Customer{UID: "c1", Cart: []customer.CartItem{
		{ProductUID: "p1", Quantity: 2},
		{ProductUID: "p2", Quantity: 1},
		{ProductUID: "p3", Quantity: 1},
	}}, nil)
	m.products.EXPECT().GetProduct(gomock.Any(), "p1").Return(racket, nil)
	m.products.EXPECT().GetProduct(gomock.Any(), "p2").Return(balls, nil)
	m.products.EXPECT().GetProduct(gomock.Any(), "p3").Return(grip, nil)
	m.ledger.EXPECT().Available(gomock.Any(), "p1").Return(5, nil)
	m.ledger.EXPECT().Available(gomock.Any(), "p2").Return(5, nil)
	m.ledger.EXPECT().Available(gomock.Any(), "p3").Return(1, nil)
}

func (m mocks) givenVendorACommitted() order.Order {
	created := order.Order{UID: "o1", CustomerUID: "c1", VendorUID: "A", TotalAmount: decimal.RequireFromString("22.5")}
	m.ledger.EXPECT().CheckAndReserve(gomock.Any(), "p1", 2).Return(nil)
	m.ledger.EXPECT().CheckAndReserve(gomock.Any(), "p3", 1).Return(nil)
	m.orders.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(c context.Context, o order.Order) (order.Order, error) {
		if o.VendorUID != "A" || !o.TotalAmount.Equal(decimal.RequireFromString("22.5")) {
			return order.Order{}, errors.New("unexpected order")
		}
		return created, nil
	})
	return created
}

func TestCheckoutCommitFailures(t *testing.T) {
	c := context.TODO()

	t.Run("Stock taken by another checkout at second vendor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, m := setupMocks(ctrl)

		// given
		m.givenTwoVendorCart()
		committed := m.givenVendorACommitted()
		m.ledger.EXPECT().CheckAndReserve(gomock.Any(), "p2", 1).Return(catalog.InsufficientStockError{ProductUID: "p2", Requested: 1, Available: 0})
		m.publisher.EXPECT().Publish(gomock.Any(), checkoutevents.TopicName, checkoutevents.CheckoutPartiallyFailed{
			CustomerUID:        "c1",
			CommittedOrderUIDs: []string{"o1"},
			FailedAtVendorUID:  "B",
			Reason:             "insufficient stock for product p2: requested 1, available 0",
		}).Return(nil)

		// when
		result, err := sut.Checkout(c, codRequest("c1"))

		// then
		checkoutErr := assertKind(t, err, KindPartialCommitFailure)
		assert.Equal(t, "B", checkoutErr.FailedAtVendorUID)
		assert.Equal(t, []order.Order{committed}, checkoutErr.CommittedOrders)
		assert.Equal(t, []order.Order{committed}, result.Orders)
		assert.Equal(t, 500, myerrors.GetHTTPStatus(err))

		var insufficient catalog.InsufficientStockError
		assert.True(t, errors.As(err, &insufficient))
	})

	t.Run("Order creation fails at second vendor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, m := setupMocks(ctrl)

		// given
		m.givenTwoVendorCart()
		m.givenVendorACommitted()
		m.ledger.EXPECT().CheckAndReserve(gomock.Any(), "p2", 1).Return(nil)
		m.orders.EXPECT().Create(gomock.Any(), gomock.Any()).Return(order.Order{}, myerrors.NewUnavailableError(errors.New("datastore down")))
		m.ledger.EXPECT().Release(gomock.Any(), "p2", 1).Return(nil)
		m.publisher.EXPECT().Publish(gomock.Any(), checkoutevents.TopicName, gomock.Any()).Return(nil)

		// when
		_, err := sut.Checkout(c, codRequest("c1"))

		// then
		checkoutErr := assertKind(t, err, KindPartialCommitFailure)
		assert.Equal(t, "B", checkoutErr.FailedAtVendorUID)
		assert.Len(t, checkoutErr.CommittedOrders, 1)
	})

	t.Run("Second line of first vendor is short", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, m := setupMocks(ctrl)

		// given
		m.givenTwoVendorCart()
		m.ledger.EXPECT().CheckAndReserve(gomock.Any(), "p1", 2).Return(nil)
		m.ledger.EXPECT().CheckAndReserve(gomock.Any(), "p3", 1).Return(catalog.InsufficientStockError{ProductUID: "p3", Requested: 1, Available: 0})
		m.ledger.EXPECT().Release(gomock.Any(), "p1", 2).Return(nil)

		// when
		result, err := sut.Checkout(c, codRequest("c1"))

		// then
		checkoutErr := assertKind(t, err, KindInsufficientStock)
		assert.Equal(t, "p3", checkoutErr.ProductUID)
		assert.Equal(t, 1, checkoutErr.Requested)
		assert.Equal(t, 0, checkoutErr.Available)
		assert.Empty(t, checkoutErr.CommittedOrders)
		assert.Empty(t, result.Orders)
	})

	t.Run("Order creation fails at first vendor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, m := setupMocks(ctrl)

		// given
		m.givenTwoVendorCart()
		m.ledger.EXPECT().CheckAndReserve(gomock.Any(), "p1", 2).Return(nil)
		m.ledger.EXPECT().CheckAndReserve(gomock.Any(), "p3", 1).Return(nil)
		m.orders.EXPECT().Create(gomock.Any(), gomock.Any()).Return(order.Order{}, myerrors.NewUnavailableError(errors.New("datastore down")))
		m.ledger.EXPECT().Release(gomock.Any(), "p1", 2).Return(nil)
		m.ledger.EXPECT().Release(gomock.Any(), "p3", 1).Return(nil)

		// when
		_, err := sut.Checkout(c, codRequest("c1"))

		// then
		assertKind(t, err, KindStorageFault)
		assert.Equal(t, 503, myerrors.GetHTTPStatus(err))
	})

	t.Run("Stock stays reserved when failed order could not be removed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, m := setupMocks(ctrl)

		// given
		m.givenTwoVendorCart()
		m.ledger.EXPECT().CheckAndReserve(gomock.Any(), "p1", 2).Return(nil)
		m.ledger.EXPECT().CheckAndReserve(gomock.Any(), "p3", 1).Return(nil)
		m.orders.EXPECT().Create(gomock.Any(), gomock.Any()).Return(order.Order{}, errors.Join(
			myerrors.NewUnavailableError(errors.New("outbox down")),
			fmt.Errorf("%w: %w", order.ErrRollbackIncomplete, errors.New("dynamodb down")),
		))

		// when
		_, err := sut.Checkout(c, codRequest("c1"))

		// then
		assertKind(t, err, KindStorageFault)
		assert.True(t, errors.Is(err, order.ErrRollbackIncomplete))
	})

	t.Run("Failing release keeps the original failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, m := setupMocks(ctrl)

		// given
		m.givenTwoVendorCart()
		m.ledger.EXPECT().CheckAndReserve(gomock.Any(), "p1", 2).Return(nil)
		m.ledger.EXPECT().CheckAndReserve(gomock.Any(), "p3", 1).Return(errors.New("datastore down"))
		m.ledger.EXPECT().Release(gomock.Any(), "p1", 2).Return(errors.New("datastore still down"))

		// when
		_, err := sut.Checkout(c, codRequest("c1"))

		// then
		assertKind(t, err, KindStorageFault)
	})

	t.Run("Cart cannot be cleared", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, m := setupMocks(ctrl)

		// given
		m.givenTwoVendorCart()
		m.givenVendorACommitted()
		m.ledger.EXPECT().CheckAndReserve(gomock.Any(), "p2", 1).Return(nil)
		m.orders.EXPECT().Create(gomock.Any(), gomock.Any()).Return(order.Order{UID: "o2", VendorUID: "B"}, nil)
		m.carts.EXPECT().RemoveCheckedOut(gomock.Any(), "c1", gomock.Any()).Return(myerrors.NewUnavailableError(errors.New("datastore down")))

		// when
		result, err := sut.Checkout(c, codRequest("c1"))

		// then
		checkoutErr := assertKind(t, err, KindStorageFault)
		assert.Len(t, checkoutErr.CommittedOrders, 2)
		assert.Len(t, result.Orders, 2)
	})

	t.Run("Customer directory unavailable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, m := setupMocks(ctrl)

		// given
		m.customers.EXPECT().GetCustomer(gomock.Any(), "c1").Return(customer.Customer{}, myerrors.NewUnavailableError(errors.New("datastore down")))

		// when
		_, err := sut.Checkout(c, codRequest("c1"))

		// then
		assertKind(t, err, KindStorageFault)
	})

	t.Run("Completed checkout survives failing event publication", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, m := setupMocks(ctrl)

		// given
		m.givenTwoVendorCart()
		m.givenVendorACommitted()
		m.ledger.EXPECT().CheckAndReserve(gomock.Any(), "p2", 1).Return(nil)
		m.orders.EXPECT().Create(gomock.Any(), gomock.Any()).Return(order.Order{UID: "o2", VendorUID: "B"}, nil)
		m.carts.EXPECT().RemoveCheckedOut(gomock.Any(), "c1", []customer.CartItem{
			{ProductUID: "p1", Quantity: 2},
			{ProductUID: "p2", Quantity: 1},
			{ProductUID: "p3", Quantity: 1},
		}).Return(nil)
		m.publisher.EXPECT().Publish(gomock.Any(), checkoutevents.TopicName, checkoutevents.CheckoutCompleted{
			CustomerUID:   "c1",
			OrderUIDs:     []string{"o1", "o2"},
			TotalAmount:   "72.5",
			PaymentMethod: "COD",
		}).Return(errors.New("outbox down"))

		// when
		result, err := sut.Checkout(c, codRequest("c1"))

		// then
		require.NoError(t, err)
		assert.Len(t, result.Orders, 2)
	})
}

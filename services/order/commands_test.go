package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/marketplace/lib/myerrors"
	"github.com/MarcGrol/marketplace/lib/mypublisher"
	"github.com/MarcGrol/marketplace/lib/mystore"
	"github.com/MarcGrol/marketplace/lib/mytime"
	"github.com/MarcGrol/marketplace/lib/myuuid"
	"github.com/MarcGrol/marketplace/services/order/orderevents"
)

func TestOrderService(t *testing.T) {
	c := context.TODO()

	t.Run("Create order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, nower, uuider, publisher := setupService(t, ctrl)

		// given
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		uuider.EXPECT().Create().Return("o1")
		publisher.EXPECT().Publish(gomock.Any(), orderevents.TopicName, orderevents.OrderCreated{
			OrderUID:      "o1",
			CustomerUID:   "c1",
			VendorUID:     "A",
			TotalAmount:   "20",
			PaymentMethod: "COD",
			ItemCount:     1,
		}).Return(nil)

		// when
		order, err := sut.Create(c, newDraft("c1", "A", racketItem(2)))

		// then
		require.NoError(t, err)
		assert.Equal(t, "o1", order.UID)
		assert.Equal(t, mytime.ExampleTime, order.CreatedAt)
		assert.Equal(t, PaymentStatusPending, order.PaymentStatus)
		assert.Equal(t, OrderStatusPending, order.OrderStatus)
		assert.True(t, decimal.NewFromInt(20).Equal(order.TotalAmount))

		stored, err := sut.FindByID(c, "o1")
		require.NoError(t, err)
		assert.Equal(t, "c1", stored.CustomerUID)
	})

	t.Run("Create order with mismatching total", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, _, _, _ := setupService(t, ctrl)

		// given
		draft := newDraft("c1", "A", racketItem(2))
		draft.TotalAmount = decimal.NewFromInt(25)

		// when
		_, err := sut.Create(c, draft)

		// then
		assert.Equal(t, 400, myerrors.GetHTTPStatus(err))
	})

	t.Run("Create order with item of other vendor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, _, _, _ := setupService(t, ctrl)

		// when
		_, err := sut.Create(c, newDraft("c1", "B", racketItem(2)))

		// then
		assert.Equal(t, 400, myerrors.GetHTTPStatus(err))
	})

	t.Run("Create UPI order without details", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, _, _, _ := setupService(t, ctrl)

		// given
		draft := newDraft("c1", "A", racketItem(2))
		draft.PaymentMethod = PaymentMethodUPI

		// when
		_, err := sut.Create(c, draft)

		// then
		assert.Equal(t, 400, myerrors.GetHTTPStatus(err))
	})

	t.Run("Create order fails when event cannot be published", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, nower, uuider, publisher := setupService(t, ctrl)

		// given
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		uuider.EXPECT().Create().Return("o1")
		publisher.EXPECT().Publish(gomock.Any(), orderevents.TopicName, gomock.Any()).Return(errors.New("outbox down"))

		// when
		_, err := sut.Create(c, newDraft("c1", "A", racketItem(2)))

		// then
		assert.Equal(t, 503, myerrors.GetHTTPStatus(err))
		_, err = sut.FindByID(c, "o1")
		assert.True(t, errors.Is(err, ErrOrderNotFound))
	})

	t.Run("Create order on dynamodb fails when event cannot be published", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		nower := mytime.NewMockNower(ctrl)
		uuider := myuuid.NewMockUUIDer(ctrl)
		publisher := mypublisher.NewMockPublisher(ctrl)
		sut := NewService(NewDynamoRepository(newFakeDynamo(), "orders"), nower, uuider, publisher)

		// given
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		uuider.EXPECT().Create().Return("o1")
		publisher.EXPECT().Publish(gomock.Any(), orderevents.TopicName, gomock.Any()).Return(errors.New("outbox down"))

		// when
		_, err := sut.Create(c, newDraft("c1", "A", racketItem(2)))

		// then
		assert.Equal(t, 503, myerrors.GetHTTPStatus(err))
		_, err = sut.FindByID(c, "o1")
		assert.True(t, errors.Is(err, ErrOrderNotFound))
	})

	t.Run("Find unknown order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, _, _, _ := setupService(t, ctrl)

		// when
		_, err := sut.FindByID(c, "o9")

		// then
		assert.Equal(t, 404, myerrors.GetHTTPStatus(err))
		assert.True(t, errors.Is(err, ErrOrderNotFound))
	})

	t.Run("Move order forward", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, nower, _, publisher := setupService(t, ctrl)

		// given
		givenOrder(t, sut, "o1", "c1")
		nower.EXPECT().Now().Return(mytime.ExampleTime.Add(time.Hour))
		publisher.EXPECT().Publish(gomock.Any(), orderevents.TopicName, orderevents.OrderStatusChanged{
			OrderUID:    "o1",
			CustomerUID: "c1",
			VendorUID:   "A",
			OldStatus:   "pending",
			NewStatus:   "shipped",
		}).Return(nil)

		// when
		order, err := sut.UpdateStatus(c, "o1", OrderStatusShipped)

		// then
		require.NoError(t, err)
		assert.Equal(t, OrderStatusShipped, order.OrderStatus)
		assert.Equal(t, mytime.ExampleTime.Add(time.Hour), order.LastModified)
	})

	t.Run("Move order backward", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, nower, _, publisher := setupService(t, ctrl)

		// given
		givenOrder(t, sut, "o1", "c1")
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		publisher.EXPECT().Publish(gomock.Any(), orderevents.TopicName, gomock.Any()).Return(nil)
		_, err := sut.UpdateStatus(c, "o1", OrderStatusShipped)
		require.NoError(t, err)

		// when
		_, err = sut.UpdateStatus(c, "o1", OrderStatusProcessing)

		// then
		assert.Equal(t, 409, myerrors.GetHTTPStatus(err))
		assert.True(t, errors.Is(err, ErrStatusConflict))
	})

	t.Run("Same status is a no-op", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, _, _, _ := setupService(t, ctrl)

		// given
		givenOrder(t, sut, "o1", "c1")

		// when
		order, err := sut.UpdateStatus(c, "o1", OrderStatusPending)

		// then
		require.NoError(t, err)
		assert.Equal(t, OrderStatusPending, order.OrderStatus)
	})

	t.Run("Unknown status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, _, _, _ := setupService(t, ctrl)

		// when
		_, err := sut.UpdateStatus(c, "o1", OrderStatus("lost"))

		// then
		assert.Equal(t, 400, myerrors.GetHTTPStatus(err))
	})

	t.Run("Cancel pending order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, nower, _, publisher := setupService(t, ctrl)

		// given
		givenOrder(t, sut, "o1", "c1")
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		publisher.EXPECT().Publish(gomock.Any(), orderevents.TopicName, gomock.Any()).Return(nil)

		// when
		order, err := sut.Cancel(c, "c1", "o1")

		// then
		require.NoError(t, err)
		assert.Equal(t, OrderStatusCancelled, order.OrderStatus)
	})

	t.Run("Cancel processing order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, nower, _, publisher := setupService(t, ctrl)

		// given
		givenOrder(t, sut, "o1", "c1")
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		publisher.EXPECT().Publish(gomock.Any(), orderevents.TopicName, gomock.Any()).Return(nil)
		_, err := sut.UpdateStatus(c, "o1", OrderStatusProcessing)
		require.NoError(t, err)

		// when
		_, err = sut.Cancel(c, "c1", "o1")

		// then
		assert.Equal(t, 409, myerrors.GetHTTPStatus(err))
		order, _ := sut.FindByID(c, "o1")
		assert.Equal(t, OrderStatusProcessing, order.OrderStatus)
	})

	t.Run("Cancelled is final", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, nower, _, publisher := setupService(t, ctrl)

		// given
		givenOrder(t, sut, "o1", "c1")
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		publisher.EXPECT().Publish(gomock.Any(), orderevents.TopicName, gomock.Any()).Return(nil)
		_, err := sut.Cancel(c, "c1", "o1")
		require.NoError(t, err)

		// when
		_, err = sut.UpdateStatus(c, "o1", OrderStatusShipped)

		// then
		assert.Equal(t, 409, myerrors.GetHTTPStatus(err))
	})

	t.Run("Cancel order of other customer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, _, _, _ := setupService(t, ctrl)

		// given
		givenOrder(t, sut, "o1", "c1")

		// when
		_, err := sut.Cancel(c, "c2", "o1")

		// then
		assert.Equal(t, 404, myerrors.GetHTTPStatus(err))
	})

	t.Run("List orders of customer and vendor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, _, _, _ := setupService(t, ctrl)

		// given
		givenOrder(t, sut, "o1", "c1")
		givenOrder(t, sut, "o2", "c2")
		givenOrder(t, sut, "o3", "c1")

		// when
		ofCustomer, err := sut.ListByCustomer(c, "c1")
		require.NoError(t, err)
		ofVendor, err := sut.ListByVendor(c, "A")
		require.NoError(t, err)
		ofOtherVendor, err := sut.ListByVendor(c, "B")
		require.NoError(t, err)

		// then
		assert.Equal(t, []string{"o3", "o1"}, uids(ofCustomer))
		assert.Equal(t, []string{"o3", "o2", "o1"}, uids(ofVendor))
		assert.Empty(t, ofOtherVendor)
	})
}

func setupService(t *testing.T, ctrl *gomock.Controller) (*Service, *mytime.MockNower, *myuuid.MockUUIDer, *mypublisher.MockPublisher) {
	store, _, err := mystore.NewInMemoryStore[Order](context.TODO())
	require.NoError(t, err)
	nower := mytime.NewMockNower(ctrl)
	uuider := myuuid.NewMockUUIDer(ctrl)
	publisher := mypublisher.NewMockPublisher(ctrl)

	return NewService(NewStoreRepository(store), nower, uuider, publisher), nower, uuider, publisher
}

var orderSequence int

// givenOrder stores a pending order directly, each one created a minute after the previous one.
func givenOrder(t *testing.T, sut *Service, orderUID string, customerUID string) {
	orderSequence++
	order := newDraft(customerUID, "A", racketItem(1))
	order.UID = orderUID
	order.CreatedAt = mytime.ExampleTime.Add(time.Duration(orderSequence) * time.Minute)
	order.PaymentStatus = PaymentStatusPending
	order.OrderStatus = OrderStatusPending
	err := sut.repo.Insert(context.TODO(), order)
	require.NoError(t, err)
}

func uids(orders []Order) []string {
	result := []string{}
	for _, o := range orders {
		result = append(result, o.UID)
	}
	return result
}

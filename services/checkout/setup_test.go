package checkout

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/marketplace/lib/mypublisher"
	"github.com/MarcGrol/marketplace/lib/mystore"
	"github.com/MarcGrol/marketplace/lib/mytime"
	"github.com/MarcGrol/marketplace/lib/myuuid"
	"github.com/MarcGrol/marketplace/services/catalog"
	"github.com/MarcGrol/marketplace/services/customer"
	"github.com/MarcGrol/marketplace/services/inventory"
	"github.com/MarcGrol/marketplace/services/order"
)

var (
	racket = catalog.Product{UID: "p1", Name: "Tennis racket", VendorUID: "A", Price: decimal.NewFromInt(10), Stock: 5}
	balls  = catalog.Product{UID: "p2", Name: "Tennis balls", VendorUID: "B", Price: decimal.NewFromInt(50), Stock: 5}
	grip   = catalog.Product{UID: "p3", Name: "Grip tape", VendorUID: "A", Price: decimal.RequireFromString("2.50"), Stock: 1}

	shippingAddress = order.Address{Street: "Main street 1", City: "Amsterdam", PostalCode: "1011AA", Country: "NL"}
	contactInfo     = order.ContactInfo{Name: "Marc", PhoneNumber: "+31612345678"}
)

func codRequest(customerUID string) Request {
	return Request{
		CustomerUID:     customerUID,
		ShippingAddress: shippingAddress,
		ContactInfo:     contactInfo,
		PaymentMethod:   order.PaymentMethodCOD,
	}
}

// world wires the checkout to real in-memory collaborators.
type world struct {
	sut           *Service
	products      catalog.Catalog
	customerStore mystore.Store[customer.Customer]
	orders        *order.Service
	publisher     *mypublisher.MockPublisher
}

func newWorld(t *testing.T, ctrl *gomock.Controller, products ...catalog.Product) world {
	c := context.TODO()

	productStore, _, err := mystore.NewInMemoryStore[catalog.Product](c)
	require.NoError(t, err)
	productCatalog := catalog.NewStoreCatalog(productStore, mytime.RealNower{})
	for _, p := range products {
		require.NoError(t, productCatalog.PutProduct(c, p))
	}

	customerStore, _, err := mystore.NewInMemoryStore[customer.Customer](c)
	require.NoError(t, err)
	customers := customer.NewService(customerStore, productCatalog, mytime.RealNower{})

	orderStore, _, err := mystore.NewInMemoryStore[order.Order](c)
	require.NoError(t, err)
	publisher := mypublisher.NewMockPublisher(ctrl)
	orders := order.NewService(order.NewStoreRepository(orderStore), mytime.RealNower{}, myuuid.RealUUIDer{}, publisher)

	return world{
		sut:           NewService(customers, customers, productCatalog, inventory.NewLedger(productCatalog), orders, publisher),
		products:      productCatalog,
		customerStore: customerStore,
		orders:        orders,
		publisher:     publisher,
	}
}

func (w world) givenCart(t *testing.T, customerUID string, items ...customer.CartItem) {
	err := w.customerStore.Put(context.TODO(), customerUID, customer.Customer{UID: customerUID, Name: "Marc", Cart: items})
	require.NoError(t, err)
}

func (w world) cart(t *testing.T, customerUID string) []customer.CartItem {
	cust, found, err := w.customerStore.Get(context.TODO(), customerUID)
	require.NoError(t, err)
	require.True(t, found)
	return cust.Cart
}

func (w world) stock(t *testing.T, productUID string) int {
	product, err := w.products.GetProduct(context.TODO(), productUID)
	require.NoError(t, err)
	return product.Stock
}

func (w world) ordersOf(t *testing.T, customerUID string) []order.Order {
	orders, err := w.orders.ListByCustomer(context.TODO(), customerUID)
	require.NoError(t, err)
	return orders
}

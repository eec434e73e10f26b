package checkout

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/MarcGrol/marketplace/lib/mylog"
	"github.com/MarcGrol/marketplace/lib/mypublisher"
)

const instrumentationName = "github.com/MarcGrol/marketplace/services/checkout"

// Service turns a customer's cart into one order per vendor.
type Service struct {
	customers CustomerDirectory
	carts     CartMutator
	products  ProductCatalog
	ledger    StockLedger
	orders    OrderCreator
	publisher mypublisher.Publisher
	tracer    trace.Tracer
	logger    mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(customers CustomerDirectory, carts CartMutator, products ProductCatalog, ledger StockLedger, orders OrderCreator, publisher mypublisher.Publisher) *Service {
	return &Service{
		customers: customers,
		carts:     carts,
		products:  products,
		ledger:    ledger,
		orders:    orders,
		publisher: publisher,
		tracer:    otel.Tracer(instrumentationName),
		logger:    mylog.New("checkout"),
	}
}

package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/MarcGrol/marketplace/services/order"
)

// CartLine is a cart entry resolved against the catalog at the start of a checkout.
// Price and vendor are copied so later catalog changes do not affect the attempt.
type CartLine struct {
	ProductUID string
	Quantity   int
	VendorUID  string
	UnitPrice  decimal.Decimal
}

func (l CartLine) Amount() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// VendorBucket holds the lines of a single vendor; Total is always recomputed from the lines.
type VendorBucket struct {
	VendorUID string
	Lines     []CartLine
	Total     decimal.Decimal
}

type Request struct {
	CustomerUID     string
	ShippingAddress order.Address
	ContactInfo     order.ContactInfo
	PaymentMethod   order.PaymentMethod
	PaymentDetails  *order.PaymentDetails
}

type Result struct {
	Orders []order.Order
}

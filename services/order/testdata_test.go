package order

import (
	"github.com/shopspring/decimal"
)

var (
	address = Address{Street: "Main street 1", City: "Amsterdam", PostalCode: "1011AA", Country: "NL"}
	contact = ContactInfo{Name: "Marc", PhoneNumber: "+31612345678", EmailAddress: "marc@example.com"}
)

func newDraft(customerUID string, vendorUID string, items ...Item) Order {
	return Order{
		CustomerUID:     customerUID,
		VendorUID:       vendorUID,
		Items:           items,
		ShippingAddress: address,
		ContactInfo:     contact,
		TotalAmount:     Total(items),
		PaymentMethod:   PaymentMethodCOD,
	}
}

func racketItem(quantity int) Item {
	return Item{ProductUID: "p1", Quantity: quantity, Price: decimal.NewFromInt(10), VendorUID: "A"}
}

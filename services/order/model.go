package order

import (
	"fmt"
	"time"

	"cloud.google.com/go/datastore"
	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodCOD PaymentMethod = "COD"
	PaymentMethodUPI PaymentMethod = "UPI"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

type Address struct {
	Street     string `dynamodbav:"street"`
	City       string `dynamodbav:"city"`
	State      string `dynamodbav:"state,omitempty"`
	PostalCode string `dynamodbav:"postal_code"`
	Country    string `dynamodbav:"country"`
}

type ContactInfo struct {
	Name         string `dynamodbav:"name"`
	PhoneNumber  string `dynamodbav:"phone_number"`
	EmailAddress string `dynamodbav:"email_address,omitempty"`
}

// PaymentDetails is only recorded, never processed
type PaymentDetails struct {
	UPIID         string `dynamodbav:"upi_id,omitempty"`
	TransactionID string `dynamodbav:"transaction_id,omitempty"`
}

type Item struct {
	ProductUID string
	Quantity   int
	Price      decimal.Decimal
	VendorUID  string
}

// Order belongs to exactly one customer and one vendor.
type Order struct {
	UID             string
	CustomerUID     string
	VendorUID       string
	Items           []Item
	ShippingAddress Address
	ContactInfo     ContactInfo
	TotalAmount     decimal.Decimal
	PaymentMethod   PaymentMethod
	PaymentDetails  *PaymentDetails
	PaymentStatus   PaymentStatus
	OrderStatus     OrderStatus
	CreatedAt       time.Time
	LastModified    time.Time
}

// Total is the sum of price times quantity over all items.
func Total(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// orderRecord is the persisted representation: amounts are exact decimal strings.
type orderRecord struct {
	UID             string         `dynamodbav:"order_uid"`
	CustomerUID     string         `dynamodbav:"customer_uid"`
	VendorUID       string         `dynamodbav:"vendor_uid"`
	Items           []itemRecord   `datastore:",noindex" dynamodbav:"items"`
	ShippingAddress Address        `datastore:",noindex" dynamodbav:"shipping_address"`
	ContactInfo     ContactInfo    `datastore:",noindex" dynamodbav:"contact_info"`
	TotalAmount     string         `datastore:",noindex" dynamodbav:"total_amount"`
	PaymentMethod   string         `dynamodbav:"payment_method"`
	PaymentDetails  PaymentDetails `datastore:",noindex" dynamodbav:"payment_details"`
	PaymentStatus   string         `dynamodbav:"payment_status"`
	OrderStatus     string         `dynamodbav:"order_status"`
	CreatedAt       time.Time      `dynamodbav:"created_at"`
	LastModified    time.Time      `dynamodbav:"last_modified"`
}

type itemRecord struct {
	ProductUID string `dynamodbav:"product_uid"`
	Quantity   int    `dynamodbav:"quantity"`
	Price      string `dynamodbav:"price"`
	VendorUID  string `dynamodbav:"vendor_uid"`
}

func toRecord(o Order) orderRecord {
	items := make([]itemRecord, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, itemRecord{
			ProductUID: item.ProductUID,
			Quantity:   item.Quantity,
			Price:      item.Price.String(),
			VendorUID:  item.VendorUID,
		})
	}
	details := PaymentDetails{}
	if o.PaymentDetails != nil {
		details = *o.PaymentDetails
	}
	return orderRecord{
		UID:             o.UID,
		CustomerUID:     o.CustomerUID,
		VendorUID:       o.VendorUID,
		Items:           items,
		ShippingAddress: o.ShippingAddress,
		ContactInfo:     o.ContactInfo,
		TotalAmount:     o.TotalAmount.String(),
		PaymentMethod:   string(o.PaymentMethod),
		PaymentDetails:  details,
		PaymentStatus:   string(o.PaymentStatus),
		OrderStatus:     string(o.OrderStatus),
		CreatedAt:       o.CreatedAt,
		LastModified:    o.LastModified,
	}
}

func fromRecord(r orderRecord) (Order, error) {
	items := make([]Item, 0, len(r.Items))
	for _, item := range r.Items {
		price, err := decimal.NewFromString(item.Price)
		if err != nil {
			return Order{}, fmt.Errorf("error parsing price %q of order %s: %w", item.Price, r.UID, err)
		}
		items = append(items, Item{
			ProductUID: item.ProductUID,
			Quantity:   item.Quantity,
			Price:      price,
			VendorUID:  item.VendorUID,
		})
	}
	total, err := decimal.NewFromString(r.TotalAmount)
	if err != nil {
		return Order{}, fmt.Errorf("error parsing total %q of order %s: %w", r.TotalAmount, r.UID, err)
	}
	var details *PaymentDetails
	if r.PaymentDetails != (PaymentDetails{}) {
		d := r.PaymentDetails
		details = &d
	}
	return Order{
		UID:             r.UID,
		CustomerUID:     r.CustomerUID,
		VendorUID:       r.VendorUID,
		Items:           items,
		ShippingAddress: r.ShippingAddress,
		ContactInfo:     r.ContactInfo,
		TotalAmount:     total,
		PaymentMethod:   PaymentMethod(r.PaymentMethod),
		PaymentDetails:  details,
		PaymentStatus:   PaymentStatus(r.PaymentStatus),
		OrderStatus:     OrderStatus(r.OrderStatus),
		CreatedAt:       r.CreatedAt,
		LastModified:    r.LastModified,
	}, nil
}

func (o *Order) Load(props []datastore.Property) error {
	r := orderRecord{}
	err := datastore.LoadStruct(&r, props)
	if err != nil {
		return err
	}
	*o, err = fromRecord(r)
	return err
}

func (o *Order) Save() ([]datastore.Property, error) {
	r := toRecord(*o)
	return datastore.SaveStruct(&r)
}

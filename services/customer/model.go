package customer

import "time"

type Customer struct {
	UID          string
	Name         string
	EmailAddress string
	Cart         []CartItem
	LastModified time.Time
}

// CartItem is unique by ProductUID within a cart
type CartItem struct {
	ProductUID string
	Quantity   int
}

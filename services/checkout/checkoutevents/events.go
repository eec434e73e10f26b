package checkoutevents

const (
	TopicName                   = "checkout"
	checkoutCompletedName       = TopicName + ".completed"
	checkoutPartiallyFailedName = TopicName + ".partially.failed"
)

type CheckoutCompleted struct {
	CustomerUID   string
	OrderUIDs     []string
	TotalAmount   string
	PaymentMethod string
}

func (e CheckoutCompleted) GetEventTypeName() string {
	return checkoutCompletedName
}

func (e CheckoutCompleted) GetAggregateName() string {
	return e.CustomerUID
}

// CheckoutPartiallyFailed signals orders that were created while the rest of the cart was not; they need reconciliation.
type CheckoutPartiallyFailed struct {
	CustomerUID        string
	CommittedOrderUIDs []string
	FailedAtVendorUID  string
	Reason             string
}

func (e CheckoutPartiallyFailed) GetEventTypeName() string {
	return checkoutPartiallyFailedName
}

func (e CheckoutPartiallyFailed) GetAggregateName() string {
	return e.CustomerUID
}

package orderevents

const (
	TopicName              = "order"
	orderCreatedName       = TopicName + ".created"
	orderStatusChangedName = TopicName + ".status.changed"
)

type OrderCreated struct {
	OrderUID      string
	CustomerUID   string
	VendorUID     string
	TotalAmount   string
	PaymentMethod string
	ItemCount     int
}

func (e OrderCreated) GetEventTypeName() string {
	return orderCreatedName
}

func (e OrderCreated) GetAggregateName() string {
	return e.OrderUID
}

type OrderStatusChanged struct {
	OrderUID    string
	CustomerUID string
	VendorUID   string
	OldStatus   string
	NewStatus   string
}

func (e OrderStatusChanged) GetEventTypeName() string {
	return orderStatusChangedName
}

func (e OrderStatusChanged) GetAggregateName() string {
	return e.OrderUID
}

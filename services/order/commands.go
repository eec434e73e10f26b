package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/MarcGrol/marketplace/lib/myerrors"
	"github.com/MarcGrol/marketplace/lib/mylog"
	"github.com/MarcGrol/marketplace/services/order/orderevents"
)

var statusRank = map[OrderStatus]int{
	OrderStatusPending:    0,
	OrderStatusProcessing: 1,
	OrderStatusShipped:    2,
	OrderStatusDelivered:  3,
}

func notFound(orderUID string) error {
	return myerrors.NewNotFoundError(fmt.Errorf("order %s: %w", orderUID, ErrOrderNotFound))
}

func validate(order Order) error {
	if order.CustomerUID == "" || order.VendorUID == "" {
		return fmt.Errorf("order requires a customer and a vendor")
	}
	if len(order.Items) == 0 {
		return fmt.Errorf("order requires at least one item")
	}
	for _, item := range order.Items {
		if item.VendorUID != order.VendorUID {
			return fmt.Errorf("item %s belongs to vendor %s, not %s", item.ProductUID, item.VendorUID, order.VendorUID)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("item %s has quantity %d", item.ProductUID, item.Quantity)
		}
		if item.Price.IsNegative() {
			return fmt.Errorf("item %s has negative price %s", item.ProductUID, item.Price)
		}
	}
	if total := Total(order.Items); !order.TotalAmount.Equal(total) {
		return fmt.Errorf("total amount %s does not match items total %s", order.TotalAmount, total)
	}
	switch order.PaymentMethod {
	case PaymentMethodUPI:
		if order.PaymentDetails == nil || order.PaymentDetails.UPIID == "" {
			return fmt.Errorf("payment method %s requires payment details", order.PaymentMethod)
		}
	case PaymentMethodCOD:
		if order.PaymentDetails != nil {
			return fmt.Errorf("payment method %s does not accept payment details", order.PaymentMethod)
		}
	default:
		return fmt.Errorf("unsupported payment method %q", order.PaymentMethod)
	}
	return nil
}

// Create persists a new order: it assigns uid and creation time and starts both statuses at pending.
func (s *Service) Create(c context.Context, order Order) (Order, error) {
	err := validate(order)
	if err != nil {
		return Order{}, myerrors.NewInvalidInputError(err)
	}

	now := s.nower.Now()
	order.UID = s.uuider.Create()
	order.CreatedAt = now
	order.LastModified = now
	order.PaymentStatus = PaymentStatusPending
	order.OrderStatus = OrderStatusPending

	s.logger.Log(c, order.UID, mylog.SeverityInfo, "Create order %s of customer %s at vendor %s for %s", order.UID, order.CustomerUID, order.VendorUID, order.TotalAmount)

	err = s.repo.RunInTransaction(c, func(c context.Context) error {
		err := s.repo.Insert(c, order)
		if err != nil {
			return myerrors.NewUnavailableError(err)
		}

		err = s.publisher.Publish(c, orderevents.TopicName, orderevents.OrderCreated{
			OrderUID:      order.UID,
			CustomerUID:   order.CustomerUID,
			VendorUID:     order.VendorUID,
			TotalAmount:   order.TotalAmount.String(),
			PaymentMethod: string(order.PaymentMethod),
			ItemCount:     len(order.Items),
		})
		if err != nil {
			return myerrors.NewUnavailableError(err)
		}
		return nil
	})
	if err != nil {
		return Order{}, err
	}

	return order, nil
}

func (s *Service) FindByID(c context.Context, orderUID string) (Order, error) {
	order, found, err := s.repo.Get(c, orderUID)
	if err != nil {
		return Order{}, myerrors.NewUnavailableError(err)
	}
	if !found {
		return Order{}, notFound(orderUID)
	}
	return order, nil
}

func checkTransition(current OrderStatus, next OrderStatus) error {
	if current == OrderStatusCancelled {
		return fmt.Errorf("order is %s", current)
	}
	if next == OrderStatusCancelled {
		if current != OrderStatusPending {
			return fmt.Errorf("cannot cancel order that is %s", current)
		}
		return nil
	}
	if statusRank[next] < statusRank[current] {
		return fmt.Errorf("cannot move order from %s back to %s", current, next)
	}
	return nil
}

// UpdateStatus moves an order forward through its lifecycle. Cancellation is only allowed while pending.
func (s *Service) UpdateStatus(c context.Context, orderUID string, next OrderStatus) (Order, error) {
	if !next.Valid() {
		return Order{}, myerrors.NewInvalidInputErrorf("unknown order status %q", next)
	}

	s.logger.Log(c, orderUID, mylog.SeverityInfo, "Update status of order %s to %s", orderUID, next)

	var order Order
	err := s.repo.RunInTransaction(c, func(c context.Context) error {
		current, found, err := s.repo.Get(c, orderUID)
		if err != nil {
			return myerrors.NewUnavailableError(err)
		}
		if !found {
			return notFound(orderUID)
		}

		err = checkTransition(current.OrderStatus, next)
		if err != nil {
			return myerrors.NewConflictError(fmt.Errorf("order %s: %w: %w", orderUID, ErrStatusConflict, err))
		}
		if current.OrderStatus == next {
			order = current
			return nil
		}

		order, err = s.repo.UpdateStatus(c, orderUID, current.OrderStatus, next, s.nower.Now())
		if err != nil {
			if errors.Is(err, ErrStatusMismatch) {
				return myerrors.NewConflictError(fmt.Errorf("%w: %w", ErrStatusConflict, err))
			}
			if errors.Is(err, ErrOrderNotFound) {
				return myerrors.NewNotFoundError(err)
			}
			return myerrors.NewUnavailableError(err)
		}

		err = s.publisher.Publish(c, orderevents.TopicName, orderevents.OrderStatusChanged{
			OrderUID:    order.UID,
			CustomerUID: order.CustomerUID,
			VendorUID:   order.VendorUID,
			OldStatus:   string(current.OrderStatus),
			NewStatus:   string(order.OrderStatus),
		})
		if err != nil {
			return myerrors.NewUnavailableError(err)
		}
		return nil
	})
	if err != nil {
		return Order{}, err
	}

	return order, nil
}

// Cancel is the customer initiated cancellation; orders of other customers are reported as not found.
func (s *Service) Cancel(c context.Context, customerUID string, orderUID string) (Order, error) {
	order, err := s.FindByID(c, orderUID)
	if err != nil {
		return Order{}, err
	}
	if order.CustomerUID != customerUID {
		return Order{}, notFound(orderUID)
	}
	return s.UpdateStatus(c, orderUID, OrderStatusCancelled)
}

func (s *Service) ListByCustomer(c context.Context, customerUID string) ([]Order, error) {
	orders, err := s.repo.ListByCustomer(c, customerUID)
	if err != nil {
		return nil, myerrors.NewUnavailableError(err)
	}
	return orders, nil
}

func (s *Service) ListByVendor(c context.Context, vendorUID string) ([]Order, error) {
	orders, err := s.repo.ListByVendor(c, vendorUID)
	if err != nil {
		return nil, myerrors.NewUnavailableError(err)
	}
	return orders, nil
}

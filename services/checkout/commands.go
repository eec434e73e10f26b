package checkout

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/MarcGrol/marketplace/lib/myerrors"
	"github.com/MarcGrol/marketplace/lib/mylog"
	"github.com/MarcGrol/marketplace/services/catalog"
	"github.com/MarcGrol/marketplace/services/checkout/checkoutevents"
	"github.com/MarcGrol/marketplace/services/customer"
	"github.com/MarcGrol/marketplace/services/order"
)

func validateRequest(req Request) error {
	switch req.PaymentMethod {
	case order.PaymentMethodUPI:
		if req.PaymentDetails == nil || req.PaymentDetails.UPIID == "" {
			return fmt.Errorf("payment method %s requires payment details", req.PaymentMethod)
		}
	case order.PaymentMethodCOD:
		if req.PaymentDetails != nil {
			return fmt.Errorf("payment method %s does not accept payment details", req.PaymentMethod)
		}
	default:
		return fmt.Errorf("unsupported payment method %q", req.PaymentMethod)
	}
	return nil
}

// Checkout converts the cart into one order per vendor and takes the checked out items out of the cart.
//
// Stock of every line is verified before anything is reserved, so a shortage found up front leaves no trace.
// Buckets are then committed one by one. When a commit fails after earlier buckets were committed,
// those orders stay and are reported in a PartialCommitFailure.
func (s *Service) Checkout(c context.Context, req Request) (Result, error) {
	c, span := s.tracer.Start(c, "checkout")
	defer span.End()
	span.SetAttributes(attribute.String("customer.uid", req.CustomerUID))

	result, err := s.checkout(c, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return result, err
	}
	span.SetStatus(codes.Ok, "checkout completed")
	return result, nil
}

func (s *Service) checkout(c context.Context, req Request) (Result, error) {
	err := validateRequest(req)
	if err != nil {
		return Result{}, myerrors.NewInvalidInputError(err)
	}

	s.logger.Log(c, req.CustomerUID, mylog.SeverityInfo, "Start checkout of customer %s", req.CustomerUID)

	lines, err := s.readSnapshot(c, req.CustomerUID)
	if err != nil {
		return Result{}, err
	}

	buckets := Partition(lines)

	err = s.checkStock(c, buckets)
	if err != nil {
		return Result{}, err
	}

	// Once committing has started the request runs to completion.
	c = context.WithoutCancel(c)

	committed := []order.Order{}
	for _, bucket := range buckets {
		created, err := s.commitBucket(c, req, bucket)
		if err != nil {
			return Result{Orders: committed}, s.commitFailure(c, req.CustomerUID, committed, bucket, err)
		}
		committed = append(committed, created)
	}

	err = s.carts.RemoveCheckedOut(c, req.CustomerUID, checkedOutItems(lines))
	if err != nil {
		s.logger.Log(c, req.CustomerUID, mylog.SeverityError, "Error clearing cart of customer %s after creating %d orders: %s", req.CustomerUID, len(committed), err)
		e := newError(KindStorageFault, err, "orders were created but the cart of customer %s was not cleared", req.CustomerUID)
		e.CommittedOrders = committed
		return Result{Orders: committed}, e
	}

	s.publishCompleted(c, req, buckets, committed)

	s.logger.Log(c, req.CustomerUID, mylog.SeverityInfo, "Checkout of customer %s created %d orders", req.CustomerUID, len(committed))

	return Result{Orders: committed}, nil
}

// checkStock is the read-only pass over all buckets.
func (s *Service) checkStock(c context.Context, buckets []VendorBucket) error {
	c, span := s.tracer.Start(c, "checkout.check")
	defer span.End()

	requested := map[string]int{}
	productUIDs := []string{}
	for _, bucket := range buckets {
		for _, line := range bucket.Lines {
			if _, seen := requested[line.ProductUID]; !seen {
				productUIDs = append(productUIDs, line.ProductUID)
			}
			requested[line.ProductUID] += line.Quantity
		}
	}

	for _, productUID := range productUIDs {
		available, err := s.ledger.Available(c, productUID)
		if err != nil {
			return productError(productUID, err)
		}
		if requested[productUID] > available {
			return insufficientStock(productUID, requested[productUID], available)
		}
	}
	return nil
}

func insufficientStock(productUID string, requested int, available int) *Error {
	e := newError(KindInsufficientStock, nil, "product %s: requested %d, available %d", productUID, requested, available)
	e.ProductUID = productUID
	e.Requested = requested
	e.Available = available
	return e
}

// commitBucket reserves every line and creates the order of one vendor.
// When it fails the reservations it made are released again.
func (s *Service) commitBucket(c context.Context, req Request, bucket VendorBucket) (order.Order, error) {
	c, span := s.tracer.Start(c, "checkout.commit")
	defer span.End()
	span.SetAttributes(
		attribute.String("vendor.uid", bucket.VendorUID),
		attribute.Int("bucket.lines", len(bucket.Lines)),
		attribute.String("bucket.total", bucket.Total.String()),
	)

	reserved := []CartLine{}
	for _, line := range bucket.Lines {
		err := s.ledger.CheckAndReserve(c, line.ProductUID, line.Quantity)
		if err != nil {
			s.release(c, req.CustomerUID, reserved)
			return order.Order{}, err
		}
		reserved = append(reserved, line)
	}

	items := make([]order.Item, 0, len(bucket.Lines))
	for _, line := range bucket.Lines {
		items = append(items, order.Item{
			ProductUID: line.ProductUID,
			Quantity:   line.Quantity,
			Price:      line.UnitPrice,
			VendorUID:  line.VendorUID,
		})
	}

	created, err := s.orders.Create(c, order.Order{
		CustomerUID:     req.CustomerUID,
		VendorUID:       bucket.VendorUID,
		Items:           items,
		ShippingAddress: req.ShippingAddress,
		ContactInfo:     req.ContactInfo,
		TotalAmount:     bucket.Total,
		PaymentMethod:   req.PaymentMethod,
		PaymentDetails:  req.PaymentDetails,
	})
	if err != nil {
		if errors.Is(err, order.ErrRollbackIncomplete) {
			// The order may still exist, so its stock stays reserved.
			s.logger.Log(c, req.CustomerUID, mylog.SeverityError, "Keeping stock reserved for vendor %s of customer %s: %s", bucket.VendorUID, req.CustomerUID, err)
			return order.Order{}, err
		}
		s.release(c, req.CustomerUID, reserved)
		return order.Order{}, err
	}

	span.SetAttributes(attribute.String("order.uid", created.UID))

	return created, nil
}

func (s *Service) release(c context.Context, customerUID string, lines []CartLine) {
	for _, line := range lines {
		err := s.ledger.Release(c, line.ProductUID, line.Quantity)
		if err != nil {
			s.logger.Log(c, customerUID, mylog.SeverityError, "Stock of %s is %d too low after failed checkout of customer %s: %s", line.ProductUID, line.Quantity, customerUID, err)
		}
	}
}

func checkedOutItems(lines []CartLine) []customer.CartItem {
	items := make([]customer.CartItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, customer.CartItem{ProductUID: line.ProductUID, Quantity: line.Quantity})
	}
	return items
}

func orderUIDs(orders []order.Order) []string {
	uids := make([]string, 0, len(orders))
	for _, o := range orders {
		uids = append(uids, o.UID)
	}
	return uids
}

// commitFailure reports a failure of the commit pass.
// Without committed buckets nothing remains and the failure is reported as what it is.
func (s *Service) commitFailure(c context.Context, customerUID string, committed []order.Order, bucket VendorBucket, cause error) error {
	if len(committed) == 0 {
		var insufficient catalog.InsufficientStockError
		if errors.As(cause, &insufficient) {
			return insufficientStock(insufficient.ProductUID, insufficient.Requested, insufficient.Available)
		}
		if errors.Is(cause, catalog.ErrProductNotFound) {
			return newError(KindProductNotFound, cause, "product removed while committing order for vendor %s", bucket.VendorUID)
		}
		return newError(KindStorageFault, cause, "error committing order for vendor %s", bucket.VendorUID)
	}

	s.logger.Log(c, customerUID, mylog.SeverityError, "Checkout of customer %s failed at vendor %s after %d orders: %s", customerUID, bucket.VendorUID, len(committed), cause)

	e := newError(KindPartialCommitFailure, cause, "%d orders created, failed at vendor %s", len(committed), bucket.VendorUID)
	e.FailedAtVendorUID = bucket.VendorUID
	e.CommittedOrders = committed

	err := s.publisher.Publish(c, checkoutevents.TopicName, checkoutevents.CheckoutPartiallyFailed{
		CustomerUID:        customerUID,
		CommittedOrderUIDs: orderUIDs(committed),
		FailedAtVendorUID:  bucket.VendorUID,
		Reason:             cause.Error(),
	})
	if err != nil {
		s.logger.Log(c, customerUID, mylog.SeverityError, "Error publishing partial failure of customer %s: %s", customerUID, err)
	}

	return e
}

func (s *Service) publishCompleted(c context.Context, req Request, buckets []VendorBucket, committed []order.Order) {
	err := s.publisher.Publish(c, checkoutevents.TopicName, checkoutevents.CheckoutCompleted{
		CustomerUID:   req.CustomerUID,
		OrderUIDs:     orderUIDs(committed),
		TotalAmount:   GrandTotal(buckets).String(),
		PaymentMethod: string(req.PaymentMethod),
	})
	if err != nil {
		s.logger.Log(c, req.CustomerUID, mylog.SeverityError, "Error publishing completed checkout of customer %s: %s", req.CustomerUID, err)
	}
}

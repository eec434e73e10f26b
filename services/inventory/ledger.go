package inventory

import (
	"context"
	"errors"

	"github.com/MarcGrol/marketplace/lib/myerrors"
	"github.com/MarcGrol/marketplace/lib/mylog"
	"github.com/MarcGrol/marketplace/services/catalog"
)

// StockKeeper is the catalog primitive the ledger builds upon: DecrementStock must check and decrement atomically.
type StockKeeper interface {
	GetProduct(c context.Context, productUID string) (catalog.Product, error)
	DecrementStock(c context.Context, productUID string, quantity int) (catalog.Product, error)
	IncrementStock(c context.Context, productUID string, quantity int) (catalog.Product, error)
}

// Ledger is the only writer of product stock during checkout.
type Ledger struct {
	stock  StockKeeper
	logger mylog.Logger
}

func NewLedger(stock StockKeeper) *Ledger {
	return &Ledger{
		stock:  stock,
		logger: mylog.New("inventory"),
	}
}

// Available returns the current stock without reserving anything.
func (l *Ledger) Available(c context.Context, productUID string) (int, error) {
	product, err := l.stock.GetProduct(c, productUID)
	if err != nil {
		return 0, err
	}
	return product.Stock, nil
}

// CheckAndReserve decrements stock by quantity or fails with catalog.InsufficientStockError leaving stock untouched.
func (l *Ledger) CheckAndReserve(c context.Context, productUID string, quantity int) error {
	if quantity < 1 {
		return myerrors.NewInvalidInputErrorf("quantity must be at least 1, got %d", quantity)
	}

	product, err := l.stock.DecrementStock(c, productUID, quantity)
	if err != nil {
		var insufficient catalog.InsufficientStockError
		if errors.As(err, &insufficient) {
			l.logger.Log(c, productUID, mylog.SeverityWarn, "Refused reservation of %d x %s: only %d available", quantity, productUID, insufficient.Available)
		}
		return err
	}

	l.logger.Log(c, productUID, mylog.SeverityInfo, "Reserved %d x %s: %d left", quantity, productUID, product.Stock)

	return nil
}

// Release returns previously reserved units to stock.
func (l *Ledger) Release(c context.Context, productUID string, quantity int) error {
	if quantity < 1 {
		return myerrors.NewInvalidInputErrorf("quantity must be at least 1, got %d", quantity)
	}

	product, err := l.stock.IncrementStock(c, productUID, quantity)
	if err != nil {
		l.logger.Log(c, productUID, mylog.SeverityError, "Error releasing %d x %s: %s", quantity, productUID, err)
		return err
	}

	l.logger.Log(c, productUID, mylog.SeverityInfo, "Released %d x %s: %d left", quantity, productUID, product.Stock)

	return nil
}

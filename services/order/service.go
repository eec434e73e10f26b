package order

import (
	"errors"

	"github.com/MarcGrol/marketplace/lib/mylog"
	"github.com/MarcGrol/marketplace/lib/mypublisher"
	"github.com/MarcGrol/marketplace/lib/mytime"
	"github.com/MarcGrol/marketplace/lib/myuuid"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrStatusConflict = errors.New("order status transition not allowed")
)

// Service is the order store: it creates orders and guards their status transitions.
type Service struct {
	repo      Repository
	nower     mytime.Nower
	uuider    myuuid.UUIDer
	publisher mypublisher.Publisher
	logger    mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(repo Repository, nower mytime.Nower, uuider myuuid.UUIDer, publisher mypublisher.Publisher) *Service {
	return &Service{
		repo:      repo,
		nower:     nower,
		uuider:    uuider,
		publisher: publisher,
		logger:    mylog.New("order"),
	}
}

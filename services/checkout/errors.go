package checkout

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MarcGrol/marketplace/services/order"
)

type Kind string

const (
	KindCustomerNotFound     Kind = "CustomerNotFound"
	KindEmptyCart            Kind = "EmptyCart"
	KindProductNotFound      Kind = "ProductNotFound"
	KindInsufficientStock    Kind = "InsufficientStock"
	KindPartialCommitFailure Kind = "PartialCommitFailure"
	KindStorageFault         Kind = "StorageFault"
)

// Error is the single structured failure of a checkout.
// CommittedOrders lists the orders that were created before the failure; it is only filled when side effects remain.
type Error struct {
	Kind              Kind
	Detail            string
	ProductUID        string        `json:",omitempty"`
	Requested         int           `json:",omitempty"`
	Available         int           `json:",omitempty"`
	FailedAtVendorUID string        `json:",omitempty"`
	CommittedOrders   []order.Order `json:",omitempty"`
	cause             error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Detail, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) GetHTTPErrorCode() int {
	switch e.Kind {
	case KindCustomerNotFound, KindProductNotFound:
		return http.StatusNotFound
	case KindEmptyCart:
		return http.StatusBadRequest
	case KindInsufficientStock:
		return http.StatusConflict
	case KindStorageFault:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// MarshalJSON adds the cause as text. Requested and Available are always present for InsufficientStock, zero included.
func (e *Error) MarshalJSON() ([]byte, error) {
	type plain Error
	cause := ""
	if e.cause != nil {
		cause = e.cause.Error()
	}
	var requested, available *int
	if e.Kind == KindInsufficientStock {
		requested = &e.Requested
		available = &e.Available
	}
	return json.Marshal(struct {
		*plain
		Requested *int   `json:",omitempty"`
		Available *int   `json:",omitempty"`
		Cause     string `json:",omitempty"`
	}{
		plain:     (*plain)(e),
		Requested: requested,
		Available: available,
		Cause:     cause,
	})
}

func newError(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{
		Kind:   kind,
		Detail: fmt.Sprintf(format, args...),
		cause:  cause,
	}
}

package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"

	formcodec "github.com/go-playground/form/v4"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/MarcGrol/marketplace/lib/mycontext"
	"github.com/MarcGrol/marketplace/lib/myerrors"
	"github.com/MarcGrol/marketplace/lib/myhttp"
	"github.com/MarcGrol/marketplace/lib/mylog"
	"github.com/MarcGrol/marketplace/services/checkout/checkoutevents"
	"github.com/MarcGrol/marketplace/services/order"
)

type AddressRequest struct {
	Street     string `form:"street" json:"street" validate:"required"`
	City       string `form:"city" json:"city" validate:"required"`
	State      string `form:"state" json:"state"`
	PostalCode string `form:"postalCode" json:"postalCode" validate:"required"`
	Country    string `form:"country" json:"country" validate:"required"`
}

type ContactInfoRequest struct {
	Name         string `form:"name" json:"name" validate:"required"`
	PhoneNumber  string `form:"phoneNumber" json:"phoneNumber" validate:"required"`
	EmailAddress string `form:"emailAddress" json:"emailAddress" validate:"omitempty,email"`
}

type PaymentDetailsRequest struct {
	UPIID         string `form:"upiId" json:"upiId"`
	TransactionID string `form:"transactionId" json:"transactionId"`
}

type CheckoutRequest struct {
	ShippingAddress AddressRequest        `form:"shippingAddress" json:"shippingAddress"`
	ContactInfo     ContactInfoRequest    `form:"contactInfo" json:"contactInfo"`
	PaymentMethod   string                `form:"paymentMethod" json:"paymentMethod" validate:"required,oneof=COD UPI"`
	PaymentDetails  PaymentDetailsRequest `form:"paymentDetails" json:"paymentDetails"`
}

type CheckoutResponse struct {
	Orders []order.Order
}

type webService struct {
	logger    mylog.Logger
	service   *Service
	validator *validator.Validate
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewWebService(service *Service) *webService {
	v := validator.New()
	v.RegisterStructValidation(checkoutRequestStructValidation, CheckoutRequest{})

	return &webService{
		logger:    mylog.New("checkout"),
		service:   service,
		validator: v,
	}
}

// UPI payments need an UPI id, cash on delivery carries no payment details.
func checkoutRequestStructValidation(sl validator.StructLevel) {
	req := sl.Current().Interface().(CheckoutRequest)
	switch order.PaymentMethod(req.PaymentMethod) {
	case order.PaymentMethodUPI:
		if req.PaymentDetails.UPIID == "" {
			sl.ReportError(req.PaymentDetails.UPIID, "PaymentDetails.UPIID", "UPIID", "required_for_upi", "")
		}
	case order.PaymentMethodCOD:
		if req.PaymentDetails != (PaymentDetailsRequest{}) {
			sl.ReportError(req.PaymentDetails, "PaymentDetails", "PaymentDetails", "excluded_for_cod", "")
		}
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	err := s.service.publisher.CreateTopic(c, checkoutevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", checkoutevents.TopicName, err)
	}

	router.HandleFunc("/api/customer/{customerUID}/checkout", s.checkout()).Methods("POST")

	return nil
}

func (s *webService) decode(r *http.Request) (CheckoutRequest, error) {
	req := CheckoutRequest{}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded":
		err := r.ParseForm()
		if err != nil {
			return req, myerrors.NewInvalidInputError(err)
		}
		err = formcodec.NewDecoder().Decode(&req, r.Form)
		if err != nil {
			return req, myerrors.NewInvalidInputError(fmt.Errorf("error decoding form: %s", err))
		}
	case "application/json", "":
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			return req, myerrors.NewInvalidInputError(fmt.Errorf("error parsing request: %s", err))
		}
	default:
		return req, myerrors.NewUnsupportedMediaTypeError(fmt.Errorf("unsupported content-type %s", mediaType))
	}

	err := s.validator.Struct(req)
	if err != nil {
		return req, myerrors.NewInvalidInputError(err)
	}
	return req, nil
}

func (req CheckoutRequest) toRequest(customerUID string) Request {
	var details *order.PaymentDetails
	if req.PaymentDetails != (PaymentDetailsRequest{}) {
		details = &order.PaymentDetails{
			UPIID:         req.PaymentDetails.UPIID,
			TransactionID: req.PaymentDetails.TransactionID,
		}
	}
	return Request{
		CustomerUID: customerUID,
		ShippingAddress: order.Address{
			Street:     req.ShippingAddress.Street,
			City:       req.ShippingAddress.City,
			State:      req.ShippingAddress.State,
			PostalCode: req.ShippingAddress.PostalCode,
			Country:    req.ShippingAddress.Country,
		},
		ContactInfo: order.ContactInfo{
			Name:         req.ContactInfo.Name,
			PhoneNumber:  req.ContactInfo.PhoneNumber,
			EmailAddress: req.ContactInfo.EmailAddress,
		},
		PaymentMethod:  order.PaymentMethod(req.PaymentMethod),
		PaymentDetails: details,
	}
}

func (s *webService) checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req, err := s.decode(r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		customerUID := mux.Vars(r)["customerUID"]
		result, err := s.service.Checkout(c, req.toRequest(customerUID))
		if err != nil {
			var checkoutErr *Error
			if errors.As(err, &checkoutErr) {
				errorWriter.Write(c, w, checkoutErr.GetHTTPErrorCode(), checkoutErr)
				return
			}
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		w.Header().Set("Location", fmt.Sprintf("%s/api/customer/%s/order", myhttp.HostnameWithScheme(r), customerUID))
		errorWriter.Write(c, w, http.StatusCreated, CheckoutResponse{Orders: result.Orders})
	}
}

package customer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/MarcGrol/marketplace/lib/mycontext"
	"github.com/MarcGrol/marketplace/lib/myerrors"
	"github.com/MarcGrol/marketplace/lib/myhttp"
	"github.com/MarcGrol/marketplace/lib/mylog"
)

type PutCustomerRequest struct {
	Name         string `validate:"required"`
	EmailAddress string `validate:"omitempty,email"`
}

type AddToCartRequest struct {
	ProductUID string `validate:"required"`
	Quantity   int    `validate:"gte=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `validate:"gte=0"`
}

type webService struct {
	logger    mylog.Logger
	service   *Service
	validator *validator.Validate
}

func NewWebService(service *Service) *webService {
	return &webService{
		logger:    mylog.New("customer"),
		service:   service,
		validator: validator.New(),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/customer/{customerUID}", s.getCustomer()).Methods("GET")
	router.HandleFunc("/api/customer/{customerUID}", s.putCustomer()).Methods("PUT")

	router.HandleFunc("/api/customer/{customerUID}/cart", s.getCart()).Methods("GET")
	router.HandleFunc("/api/customer/{customerUID}/cart", s.addToCart()).Methods("POST")
	router.HandleFunc("/api/customer/{customerUID}/cart", s.clearCart()).Methods("DELETE")
	router.HandleFunc("/api/customer/{customerUID}/cart/{productUID}", s.updateCartItem()).Methods("PUT")
	router.HandleFunc("/api/customer/{customerUID}/cart/{productUID}", s.removeFromCart()).Methods("DELETE")

	return nil
}

func (s *webService) decode(r *http.Request, req any) error {
	err := json.NewDecoder(r.Body).Decode(req)
	if err != nil {
		return myerrors.NewInvalidInputError(fmt.Errorf("error parsing request: %s", err))
	}
	err = s.validator.Struct(req)
	if err != nil {
		return myerrors.NewInvalidInputError(err)
	}
	return nil
}

func (s *webService) getCustomer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		customer, err := s.service.GetCustomer(c, mux.Vars(r)["customerUID"])
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, customer)
	}
}

func (s *webService) putCustomer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := PutCustomerRequest{}
		err := s.decode(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		customer, err := s.service.PutCustomer(c, mux.Vars(r)["customerUID"], req.Name, req.EmailAddress)
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, customer)
	}
}

func (s *webService) getCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		customer, err := s.service.GetCustomer(c, mux.Vars(r)["customerUID"])
		if err != nil {
			errorWriter.WriteError(c, w, 4, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, customer.Cart)
	}
}

func (s *webService) addToCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := AddToCartRequest{}
		err := s.decode(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, 5, err)
			return
		}

		customer, err := s.service.AddToCart(c, mux.Vars(r)["customerUID"], req.ProductUID, req.Quantity)
		if err != nil {
			errorWriter.WriteError(c, w, 6, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, customer.Cart)
	}
}

func (s *webService) updateCartItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := UpdateCartItemRequest{}
		err := s.decode(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, 7, err)
			return
		}

		customer, err := s.service.UpdateCartItem(c, mux.Vars(r)["customerUID"], mux.Vars(r)["productUID"], req.Quantity)
		if err != nil {
			errorWriter.WriteError(c, w, 8, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, customer.Cart)
	}
}

func (s *webService) removeFromCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		customer, err := s.service.RemoveFromCart(c, mux.Vars(r)["customerUID"], mux.Vars(r)["productUID"])
		if err != nil {
			errorWriter.WriteError(c, w, 9, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, customer.Cart)
	}
}

func (s *webService) clearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		err := s.service.ClearCart(c, mux.Vars(r)["customerUID"])
		if err != nil {
			errorWriter.WriteError(c, w, 10, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{Message: "Cart cleared"})
	}
}

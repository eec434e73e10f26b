package order

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
	"github.com/MarcGrol/marketplace/services/order/orderevents"
)

type UpdateStatusRequest struct {
	Status OrderStatus `validate:"required,oneof=pending processing shipped delivered cancelled"`
}

type webService struct {
	logger    mylog.Logger
	service   *Service
	validator *validator.Validate
}

func NewWebService(service *Service) *webService {
	return &webService{
		logger:    mylog.New("order"),
		service:   service,
		validator: validator.New(),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	err := s.service.publisher.CreateTopic(c, orderevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", orderevents.TopicName, err)
	}

	router.HandleFunc("/api/order/{orderUID}", s.getOrder()).Methods("GET")
	router.HandleFunc("/api/order/{orderUID}/status", s.updateStatus()).Methods("PUT")
	router.HandleFunc("/api/customer/{customerUID}/order", s.listOrdersOfCustomer()).Methods("GET")
	router.HandleFunc("/api/customer/{customerUID}/order/{orderUID}/cancel", s.cancelOrder()).Methods("POST")
	router.HandleFunc("/api/vendor/{vendorUID}/order", s.listOrdersOfVendor()).Methods("GET")

	return nil
}

func (s *webService) getOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		order, err := s.service.FindByID(c, mux.Vars(r)["orderUID"])
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, order)
	}
}

func (s *webService) updateStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := UpdateStatusRequest{}
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			errorWriter.WriteError(c, w, 2, myerrors.NewInvalidInputError(fmt.Errorf("error parsing request: %s", err)))
			return
		}
		err = s.validator.Struct(req)
		if err != nil {
			errorWriter.WriteError(c, w, 3, myerrors.NewInvalidInputError(err))
			return
		}

		order, err := s.service.UpdateStatus(c, mux.Vars(r)["orderUID"], req.Status)
		if err != nil {
			errorWriter.WriteError(c, w, 4, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, order)
	}
}

func (s *webService) listOrdersOfCustomer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		orders, err := s.service.ListByCustomer(c, mux.Vars(r)["customerUID"])
		if err != nil {
			errorWriter.WriteError(c, w, 5, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, orders)
	}
}

func (s *webService) cancelOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		order, err := s.service.Cancel(c, mux.Vars(r)["customerUID"], mux.Vars(r)["orderUID"])
		if err != nil {
			errorWriter.WriteError(c, w, 6, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, order)
	}
}

func (s *webService) listOrdersOfVendor() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		orders, err := s.service.ListByVendor(c, mux.Vars(r)["vendorUID"])
		if err != nil {
			errorWriter.WriteError(c, w, 7, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, orders)
	}
}

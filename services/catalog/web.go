package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/MarcGrol/marketplace/lib/mycontext"
	"github.com/MarcGrol/marketplace/lib/myerrors"
	"github.com/MarcGrol/marketplace/lib/myhttp"
	"github.com/MarcGrol/marketplace/lib/mylog"
)

type PutProductRequest struct {
	Name      string `validate:"required"`
	VendorUID string `validate:"required"`
	Price     decimal.Decimal
	Stock     int `validate:"gte=0"`
}

type webService struct {
	logger    mylog.Logger
	catalog   Catalog
	validator *validator.Validate
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewWebService(catalog Catalog) *webService {
	v := validator.New()
	v.RegisterStructValidation(putProductStructValidation, PutProductRequest{})

	return &webService{
		logger:    mylog.New("catalog"),
		catalog:   catalog,
		validator: v,
	}
}

func putProductStructValidation(sl validator.StructLevel) {
	req := sl.Current().Interface().(PutProductRequest)
	if req.Price.IsNegative() {
		sl.ReportError(req.Price, "Price", "Price", "nonnegative", "")
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/product/{productUID}", s.getProduct()).Methods("GET")
	router.HandleFunc("/api/product/{productUID}", s.putProduct()).Methods("PUT")
	router.HandleFunc("/api/vendor/{vendorUID}/product", s.listProductsOfVendor()).Methods("GET")

	return nil
}

func (s *webService) getProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		productUID := mux.Vars(r)["productUID"]

		product, err := s.catalog.GetProduct(c, productUID)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, product)
	}
}

func (s *webService) putProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		productUID := mux.Vars(r)["productUID"]

		req := PutProductRequest{}
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

		s.logger.Log(c, productUID, mylog.SeverityInfo, "Put product %s of vendor %s with stock %d", productUID, req.VendorUID, req.Stock)

		product := Product{
			UID:       productUID,
			Name:      req.Name,
			VendorUID: req.VendorUID,
			Price:     req.Price,
			Stock:     req.Stock,
		}
		err = s.catalog.PutProduct(c, product)
		if err != nil {
			errorWriter.WriteError(c, w, 4, err)
			return
		}

		product, err = s.catalog.GetProduct(c, productUID)
		if err != nil {
			errorWriter.WriteError(c, w, 5, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, product)
	}
}

func (s *webService) listProductsOfVendor() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		vendorUID := mux.Vars(r)["vendorUID"]

		products, err := s.catalog.ListProductsOfVendor(c, vendorUID)
		if err != nil {
			errorWriter.WriteError(c, w, 6, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, products)
	}
}

package warmup

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/marketplace/lib/mycontext"
	"github.com/MarcGrol/marketplace/lib/myerrors"
	"github.com/MarcGrol/marketplace/lib/myhttp"
	"github.com/MarcGrol/marketplace/lib/mylog"
)

// Check touches a backend so that connections are established before real traffic arrives.
type Check func(c context.Context) error

type NamedCheck struct {
	Name  string
	Check Check
}

type webService struct {
	logger mylog.Logger
	checks []NamedCheck
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewService(checks ...NamedCheck) *webService {
	return &webService{
		logger: mylog.New("warmup"),
		checks: checks,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/_ah/warmup", s.warmupPage()).Methods("GET")

	return nil
}

func (s *webService) warmupPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		responseWriter := myhttp.NewWriter(s.logger)

		for _, check := range s.checks {
			err := check.Check(c)
			if err != nil {
				err = fmt.Errorf("warmup of %s failed: %w", check.Name, err)
				responseWriter.WriteError(c, w, 1, myerrors.NewUnavailableError(err))
				return
			}
		}

		responseWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Successfully processed warmup request",
		})
	}
}

package mycontext

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextFromHTTPRequest(t *testing.T) {
	t.Run("Cloud trace header", func(t *testing.T) {
		t.Setenv("GOOGLE_CLOUD_PROJECT", "my-project")

		request, err := http.NewRequest(http.MethodGet, "/api/order/123", nil)
		assert.NoError(t, err)
		request.Header.Set("X-Cloud-Trace-Context", "105445aa7843bc8bf206b12000100000/1;o=1")

		c := ContextFromHTTPRequest(request)

		assert.Equal(t, "projects/my-project/traces/105445aa7843bc8bf206b12000100000", TraceFromContext(c))
	})

	t.Run("No trace available", func(t *testing.T) {
		request, err := http.NewRequest(http.MethodGet, "/api/order/123", nil)
		assert.NoError(t, err)

		c := ContextFromHTTPRequest(request)

		assert.Equal(t, "", TraceFromContext(c))
	})

	t.Run("Plain context", func(t *testing.T) {
		assert.Equal(t, "", TraceFromContext(context.TODO()))
	})
}

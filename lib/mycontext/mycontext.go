package mycontext

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"go.opentelemetry.io/otel/trace"
)

// CtxTraceContext is a context key for the trace context this (used by mylog)
type CtxTraceContext struct{}

// ContextFromHTTPRequest derives the request context and attaches the trace-id used for log correlation.
func ContextFromHTTPRequest(r *http.Request) context.Context {
	var traceID string

	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	traceContext := r.Header.Get("X-Cloud-Trace-Context")
	traceParts := strings.Split(traceContext, "/")

	if len(traceParts) > 0 && len(traceParts[0]) > 0 {
		traceID = fmt.Sprintf("projects/%s/traces/%s", projectID, traceParts[0])
	} else if spanContext := trace.SpanContextFromContext(r.Context()); spanContext.HasTraceID() {
		traceID = spanContext.TraceID().String()
	}

	return context.WithValue(r.Context(), CtxTraceContext{}, traceID)
}

// TraceFromContext returns the trace-id attached by ContextFromHTTPRequest or an empty string.
func TraceFromContext(c context.Context) string {
	traceID, ok := c.Value(CtxTraceContext{}).(string)
	if !ok {
		return ""
	}
	return traceID
}

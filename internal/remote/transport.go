package remote

import (
	"context"
)

// Request is one evaluation exchange with the scoring service: a metric
// identifier, the reshaped row records, and metric-specific parameters.
// Records are positionally aligned with the caller's table rows.
type Request struct {
	// Metric identifies the evaluation the service should run.
	Metric string

	// Records holds one flat record per input row, already renamed to the
	// metric's canonical field names.
	Records []map[string]any

	// Params carries metric-specific configuration (scenario description,
	// personas, guideline text, matching method).
	Params map[string]any

	// TraceID correlates logs across the pipeline. Assigned by the logging
	// middleware when empty.
	TraceID string
}

// Response carries the scoring service's results for one request.
type Response struct {
	// Results holds one record per submitted record, in the same order,
	// each containing the metric's canonical score field(s).
	Results []map[string]any

	// FromCache marks responses served by the cache middleware.
	FromCache bool

	// LatencyMs is the wall-clock duration of the underlying HTTP exchange.
	LatencyMs int64
}

// Handler processes evaluation requests through a composable middleware
// pipeline. Core abstraction enabling cross-cutting concerns like caching,
// retries, and observability without touching the HTTP exchange itself.
type Handler interface {
	Handle(ctx context.Context, req *Request) (*Response, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(context.Context, *Request) (*Response, error)

// Handle implements the Handler interface.
func (f HandlerFunc) Handle(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}

// Middleware transforms a Handler into an enhanced Handler.
type Middleware func(Handler) Handler

// Chain builds a middleware pipeline around a core handler. Middleware
// executes in the order provided with the first middleware outermost.
func Chain(h Handler, middlewares ...Middleware) Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

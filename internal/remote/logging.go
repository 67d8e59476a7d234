package remote

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// NewLoggingMiddleware creates structured logging middleware for the
// evaluation pipeline. Assigns a request id when the caller supplied none,
// and records metric, batch size, duration, and classified error type.
// Record contents are never logged.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next Handler) Handler {
		return HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
			if req.TraceID == "" {
				req.TraceID = uuid.New().String()
			}

			logger.Debug("evaluation request started",
				"request_id", req.TraceID,
				"metric", req.Metric,
				"records", len(req.Records),
			)

			start := time.Now()
			resp, err := next.Handle(ctx, req)
			duration := time.Since(start)

			if err != nil {
				logger.Error("evaluation request failed",
					"request_id", req.TraceID,
					"metric", req.Metric,
					"records", len(req.Records),
					"duration_ms", duration.Milliseconds(),
					"error_type", string(Classify(err)),
					"error", err,
				)
				return nil, err
			}

			logger.Info("evaluation request completed",
				"request_id", req.TraceID,
				"metric", req.Metric,
				"records", len(req.Records),
				"results", len(resp.Results),
				"duration_ms", duration.Milliseconds(),
				"from_cache", resp.FromCache,
			)
			return resp, nil
		})
	}
}

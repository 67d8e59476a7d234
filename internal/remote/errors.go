package remote

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// ErrorType categorizes evaluation request failures for retry classification.
// Types determine whether a request should be retried and with what backoff.
type ErrorType string

const (
	// ErrorTypeTimeout indicates request timeout or deadline exceeded (retryable).
	ErrorTypeTimeout ErrorType = "timeout"

	// ErrorTypeRateLimit indicates rate limit exceeded, retry with backoff (retryable).
	ErrorTypeRateLimit ErrorType = "rate_limit"

	// ErrorTypeNetwork indicates network connectivity issues (retryable).
	ErrorTypeNetwork ErrorType = "network"

	// ErrorTypeUnavailable indicates the scoring service is unavailable (retryable).
	ErrorTypeUnavailable ErrorType = "service_unavailable"

	// ErrorTypeAuth indicates authentication failed (non-retryable).
	ErrorTypeAuth ErrorType = "authentication"

	// ErrorTypeValidation indicates the service rejected the request payload (non-retryable).
	ErrorTypeValidation ErrorType = "validation_failed"

	// ErrorTypeContract indicates the response violated the evaluation
	// contract (non-retryable).
	ErrorTypeContract ErrorType = "contract_violation"

	// ErrorTypeUnknown indicates an unclassified error.
	ErrorTypeUnknown ErrorType = "unknown"
)

// Common evaluation boundary errors.
var (
	// ErrMisalignedResults indicates the result count does not match the
	// submitted record count. Positional alignment is the only correlation
	// mechanism, so a mismatch makes every result unusable.
	ErrMisalignedResults = errors.New("result count does not match record count")

	// ErrMalformedResponse indicates the service returned a body that does
	// not decode into the evaluation response shape.
	ErrMalformedResponse = errors.New("malformed evaluation response")

	// ErrMissingEndpoint indicates the client was constructed without a
	// service endpoint.
	ErrMissingEndpoint = errors.New("scoring service endpoint is required")
)

// APIError captures a structured error response from the scoring service.
// Includes the HTTP status, service error code, and retry timing to enable
// appropriate retry behavior and diagnosis.
type APIError struct {
	StatusCode int       `json:"status_code"`
	Message    string    `json:"message"`
	Code       string    `json:"code"`
	Type       ErrorType `json:"type"`
	RetryAfter int       `json:"retry_after"` // Retry-After header value in seconds
}

// Error returns the formatted service error with status code context.
func (e *APIError) Error() string {
	return fmt.Sprintf("scoring service error (status %d): %s", e.StatusCode, e.Message)
}

// IsRetryable reports whether the error warrants a retry attempt.
func (e *APIError) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeTimeout, ErrorTypeRateLimit, ErrorTypeNetwork, ErrorTypeUnavailable:
		return true
	default:
		return false
	}
}

// GetRetryAfter returns the server-requested backoff, or zero when absent.
func (e *APIError) GetRetryAfter() time.Duration {
	if e.RetryAfter > 0 {
		return time.Duration(e.RetryAfter) * time.Second
	}
	return 0
}

// classifyStatus maps an HTTP status code to an ErrorType.
func classifyStatus(status int) ErrorType {
	switch {
	case status == http.StatusTooManyRequests:
		return ErrorTypeRateLimit
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return ErrorTypeAuth
	case status == http.StatusRequestTimeout, status == http.StatusGatewayTimeout:
		return ErrorTypeTimeout
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return ErrorTypeValidation
	case status >= 500:
		return ErrorTypeUnavailable
	default:
		return ErrorTypeUnknown
	}
}

// Classify maps any error from the evaluation pipeline to an ErrorType.
func Classify(err error) ErrorType {
	if err == nil {
		return ErrorTypeUnknown
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Type
	}

	switch {
	case errors.Is(err, ErrMisalignedResults), errors.Is(err, ErrMalformedResponse):
		return ErrorTypeContract
	case errors.Is(err, context.DeadlineExceeded):
		return ErrorTypeTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return ErrorTypeTimeout
		}
		return ErrorTypeNetwork
	}

	return ErrorTypeUnknown
}

// IsRetryable reports whether an error from the evaluation pipeline is worth
// retrying. Contract violations and auth failures never are.
func IsRetryable(err error) bool {
	switch Classify(err) {
	case ErrorTypeTimeout, ErrorTypeRateLimit, ErrorTypeNetwork, ErrorTypeUnavailable:
		return true
	default:
		return false
	}
}

// RetryAfter extracts a server-requested backoff from the error chain,
// or zero when none is present.
func RetryAfter(err error) time.Duration {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.GetRetryAfter()
	}
	return 0
}
